package debug

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestAudioAnalyzer(t *testing.T) {
	analyzer := NewAudioAnalyzer()

	t.Run("EmptyBuffer", func(t *testing.T) {
		result := analyzer.Analyze(nil)
		if !result.Silent || result.Peak != 0 {
			t.Error("Empty buffer should be silent")
		}
	})

	t.Run("Constant", func(t *testing.T) {
		buffer := []float32{0.5, 0.5, 0.5, 0.5}
		result := analyzer.Analyze(buffer)

		if math.Abs(float64(result.Peak)-0.5) > 1e-6 {
			t.Errorf("Expected peak 0.5, got %f", result.Peak)
		}
		if math.Abs(float64(result.RMS)-0.5) > 1e-6 {
			t.Errorf("Expected RMS 0.5, got %f", result.RMS)
		}
		if math.Abs(float64(result.DC)-0.5) > 1e-6 {
			t.Errorf("Expected DC 0.5, got %f", result.DC)
		}
		if result.Silent {
			t.Error("Constant signal is not silent")
		}
	})

	t.Run("NonFinite", func(t *testing.T) {
		buffer := []float32{float32(math.NaN()), float32(math.Inf(1)), 1.0, -1.0}
		result := analyzer.Analyze(buffer)

		if result.NaNCount != 1 || result.InfCount != 1 {
			t.Errorf("Expected 1 NaN and 1 Inf, got %d/%d", result.NaNCount, result.InfCount)
		}
		if result.ClippedSamples != 2 {
			t.Errorf("Expected 2 clipped samples, got %d", result.ClippedSamples)
		}
		if result.DC != 0 {
			t.Errorf("Expected zero DC, got %f", result.DC)
		}
	})
}

func TestTotalPower(t *testing.T) {
	g := float32(math.Sqrt(0.5))
	channels := [][]float32{{g, -g, g, -g}, {g, -g, g, -g}}

	analyzer := NewAudioAnalyzer()
	results := analyzer.AnalyzeChannels(channels, make([]AnalysisResult, 0, 2))
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if p := TotalPower(results); math.Abs(p-1) > 1e-6 {
		t.Errorf("Expected total power 1, got %f", p)
	}
}

func TestCheckBuffer(t *testing.T) {
	if issues := CheckBuffer([]float32{0.1, -0.1, 0.2, -0.2}, "ok"); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}

	issues := CheckBuffer([]float32{float32(math.NaN()), 1.5, 0.5}, "bad")
	joined := strings.Join(issues, "\n")
	for _, want := range []string{"NaN", "clipped", "DC offset"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected issue mentioning %q in %v", want, issues)
		}
	}
}

func TestMeterBar(t *testing.T) {
	tests := []struct {
		level float32
		want  string
	}{
		{0, ".........."},
		{0.5, "#####....."},
		{1, "##########"},
		{2, "##########"},
		{-1, ".........."},
	}
	for _, tt := range tests {
		if got := MeterBar(tt.level, 10); got != tt.want {
			t.Errorf("MeterBar(%f) = %q, want %q", tt.level, got, tt.want)
		}
	}
	if MeterBar(1, 0) != "" {
		t.Error("Zero width meter should be empty")
	}

	out := FormatChannels([]AnalysisResult{{RMS: 0.5}, {RMS: 0}}, 4)
	if strings.Count(out, "\n") != 2 || !strings.Contains(out, "ch0  |##..|") {
		t.Errorf("Unexpected channel meters %q", out)
	}
}

func TestLogChannelStats(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", 0)

	LogChannelStats(logger, [][]float32{{1, 1}})
	if buf.Len() != 0 {
		t.Error("Stats should only be logged at debug level")
	}

	logger.SetLevel(LogLevelDebug)
	LogChannelStats(logger, [][]float32{{1, 1}, {0, 0}})
	if !strings.Contains(buf.String(), "channel rms: 1.000 0.000") {
		t.Errorf("Unexpected stats line %q", buf.String())
	}
}

func BenchmarkAnalyzer(b *testing.B) {
	buffer := make([]float32, 512)
	for i := range buffer {
		buffer[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 48000))
	}
	analyzer := NewAudioAnalyzer()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analyzer.Analyze(buffer)
	}
}
