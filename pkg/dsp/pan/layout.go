package pan

import (
	"fmt"
	"math"
)

// Error codes returned while building a layout.
type Error int

const (
	// ErrInvalidFormat is returned for a channel count below one, a
	// non-positive sample rate or unusable channel positions.
	ErrInvalidFormat Error = iota + 1
)

func (e Error) Error() string {
	switch e {
	case ErrInvalidFormat:
		return "invalid format"
	default:
		return "unknown error"
	}
}

// Layout describes where each output channel sits on the speaker array.
// Positions are normalized to [0, 1] and strictly increasing. A Layout is
// immutable once built; reconfiguring produces a new one.
type Layout struct {
	positions  []float64
	sampleRate float64
	uniform    bool
}

// Configure builds an evenly spaced layout: channel i sits at
// i/(channelCount-1), a single channel sits at 0.5.
func Configure(channelCount int, sampleRate float64) (*Layout, error) {
	if channelCount < 1 {
		return nil, fmt.Errorf("channel count %d: %w", channelCount, ErrInvalidFormat)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sample rate %g: %w", sampleRate, ErrInvalidFormat)
	}

	positions := make([]float64, channelCount)
	if channelCount == 1 {
		positions[0] = 0.5
	} else {
		last := float64(channelCount - 1)
		for i := range positions {
			positions[i] = float64(i) / last
		}
	}

	return &Layout{positions: positions, sampleRate: sampleRate, uniform: true}, nil
}

// NewLayout builds a layout from explicit channel positions, e.g. the
// centres of the screens reported by the window coordination service.
func NewLayout(positions []float64, sampleRate float64) (*Layout, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("no channel positions: %w", ErrInvalidFormat)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sample rate %g: %w", sampleRate, ErrInvalidFormat)
	}

	for i, p := range positions {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("channel %d position %g outside [0, 1]: %w", i, p, ErrInvalidFormat)
		}
		if i > 0 && p <= positions[i-1] {
			return nil, fmt.Errorf("channel %d position %g not after %g: %w", i, p, positions[i-1], ErrInvalidFormat)
		}
	}

	l := &Layout{
		positions:  append([]float64(nil), positions...),
		sampleRate: sampleRate,
	}
	return l, nil
}

// Len returns the number of channels.
func (l *Layout) Len() int {
	return len(l.positions)
}

// Position returns the normalized position of channel i.
func (l *Layout) Position(i int) float64 {
	return l.positions[i]
}

// Positions returns a copy of all channel positions.
func (l *Layout) Positions() []float64 {
	return append([]float64(nil), l.positions...)
}

// SampleRate returns the sample rate the layout was negotiated with.
func (l *Layout) SampleRate() float64 {
	return l.sampleRate
}

// Uniform reports whether the layout came from Configure.
func (l *Layout) Uniform() bool {
	return l.uniform
}

// Nearest returns the index of the channel closest to location. Exact
// ties resolve to the lower index.
func (l *Layout) Nearest(location float64) int {
	location = clamp01(location)
	best := 0
	bestDist := math.Abs(location - l.positions[0])
	for i := 1; i < len(l.positions); i++ {
		d := math.Abs(location - l.positions[i])
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
