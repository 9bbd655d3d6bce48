// Package param provides parameter management and click-free smoothing
// for plugin parameters.
package param

import (
	"math"
	"time"
)

// SmoothingType defines different parameter smoothing algorithms.
type SmoothingType int

const (
	// LinearSmoothing ramps by a constant step for a fixed number of samples.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing uses a one-pole filter reaching -60dB of the
	// remaining distance after the ramp length, then snaps to the target.
	ExponentialSmoothing
)

// DefaultRampTime is the ramp length used when none is configured.
const DefaultRampTime = 20 * time.Millisecond

// RampSamples converts a ramp duration to a sample count, at least one.
func RampSamples(sampleRate float64, d time.Duration) int {
	n := int(math.Round(sampleRate * d.Seconds()))
	if n < 1 {
		return 1
	}
	return n
}

// Smoother holds the render-side state of one smoothed value: the current
// value, the ramp target and the number of ramp samples left. It is not
// safe for concurrent use; only the render thread touches it.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rampSamples   int
	remaining     int

	step  float64 // linear
	coeff float64 // exponential
}

// NewSmoother creates a smoother that settles within rampSamples.
func NewSmoother(smoothingType SmoothingType, rampSamples int) *Smoother {
	s := &Smoother{smoothingType: smoothingType}
	s.SetRampSamples(rampSamples)
	return s
}

// SetRampSamples updates the ramp length. A ramp in progress keeps its
// current step until the next SetTarget.
func (s *Smoother) SetRampSamples(rampSamples int) {
	if rampSamples < 1 {
		rampSamples = 1
	}
	s.rampSamples = rampSamples
	s.coeff = math.Exp(-6.908 / float64(rampSamples))
}

// RampSamples returns the configured ramp length.
func (s *Smoother) RampSamples() int {
	return s.rampSamples
}

// SetTarget starts a new ramp from the current value towards target.
func (s *Smoother) SetTarget(target float64) {
	if target == s.target {
		return
	}
	s.target = target
	s.remaining = s.rampSamples
	s.step = (target - s.current) / float64(s.rampSamples)
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if s.remaining == 0 {
		return s.current
	}

	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		s.current = s.target + (s.current-s.target)*s.coeff
	default:
		s.current += s.step
	}
	return s.current
}

// Skip advances n samples at once and returns the resulting value.
func (s *Smoother) Skip(n int) float64 {
	if n <= 0 || s.remaining == 0 {
		return s.current
	}
	if n >= s.remaining {
		s.remaining = 0
		s.current = s.target
		return s.current
	}
	s.remaining -= n
	switch s.smoothingType {
	case ExponentialSmoothing:
		s.current = s.target + (s.current-s.target)*math.Pow(s.coeff, float64(n))
	default:
		s.current += s.step * float64(n)
	}
	return s.current
}

// Current returns the value without advancing.
func (s *Smoother) Current() float64 {
	return s.current
}

// Target returns the ramp target.
func (s *Smoother) Target() float64 {
	return s.target
}

// Remaining returns the number of samples left in the ramp.
func (s *Smoother) Remaining() int {
	return s.remaining
}

// IsSmoothing returns true if the smoother is currently smoothing.
func (s *Smoother) IsSmoothing() bool {
	return s.remaining > 0
}

// Reset jumps to value and cancels any ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.remaining = 0
	s.step = 0
}
