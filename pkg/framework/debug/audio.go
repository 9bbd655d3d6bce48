package debug

import (
	"fmt"
	"math"
	"strings"
)

// AnalysisResult summarises one channel buffer.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	InfCount       int
	Silent         bool
}

// AudioAnalyzer measures rendered output buffers.
type AudioAnalyzer struct {
	ClippingThreshold float32
	SilenceThreshold  float32
}

// NewAudioAnalyzer creates an analyzer with default thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		SilenceThreshold:  0.0001,
	}
}

// Analyze measures a single buffer. Non-finite samples are counted and
// excluded from the level statistics.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	var result AnalysisResult
	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	var sum, sumSquares float64
	finite := 0
	for _, sample := range buffer {
		s := float64(sample)
		switch {
		case math.IsNaN(s):
			result.NaNCount++
			continue
		case math.IsInf(s, 0):
			result.InfCount++
			continue
		}

		abs := float32(math.Abs(s))
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.ClippingThreshold {
			result.ClippedSamples++
		}
		sum += s
		sumSquares += s * s
		finite++
	}

	if finite > 0 {
		result.RMS = float32(math.Sqrt(sumSquares / float64(finite)))
		result.DC = float32(sum / float64(finite))
	}
	result.Silent = result.RMS < a.SilenceThreshold
	return result
}

// AnalyzeChannels measures every channel, reusing results when it has room.
func (a *AudioAnalyzer) AnalyzeChannels(channels [][]float32, results []AnalysisResult) []AnalysisResult {
	results = results[:0]
	for _, ch := range channels {
		results = append(results, a.Analyze(ch))
	}
	return results
}

// TotalPower returns the summed mean square level of results. For a panned
// unit-gain source it stays close to the source's mean square level.
func TotalPower(results []AnalysisResult) float64 {
	var total float64
	for _, r := range results {
		total += float64(r.RMS) * float64(r.RMS)
	}
	return total
}

// CheckBuffer reports problems in a buffer, one string per issue.
func CheckBuffer(buffer []float32, name string) []string {
	var issues []string
	result := NewAudioAnalyzer().Analyze(buffer)

	if result.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, result.NaNCount))
	}
	if result.InfCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d infinite values", name, result.InfCount))
	}
	if result.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d samples clipped (peak %.3f)", name, result.ClippedSamples, result.Peak))
	}
	if math.Abs(float64(result.DC)) > 0.01 {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.4f", name, result.DC))
	}
	return issues
}

// MeterBar renders a level in [0, 1] as a fixed-width bar.
func MeterBar(level float32, width int) string {
	if width < 1 {
		return ""
	}
	if level < 0 || level != level {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	filled := int(math.Round(float64(level) * float64(width)))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

// FormatChannels renders one meter line per channel.
func FormatChannels(results []AnalysisResult, width int) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "ch%-2d |%s| %5.3f\n", i, MeterBar(r.RMS, width), r.RMS)
	}
	return sb.String()
}

// LogChannelStats logs a single line with the RMS of each channel.
func LogChannelStats(logger *Logger, channels [][]float32) {
	if !logger.Enabled(LogLevelDebug) {
		return
	}
	var sb strings.Builder
	analyzer := NewAudioAnalyzer()
	for i, ch := range channels {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.3f", analyzer.Analyze(ch).RMS)
	}
	logger.Debug("channel rms: %s", sb.String())
}
