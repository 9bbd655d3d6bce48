// Package oscillator generates test signals for monitoring the panner.
package oscillator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Waveform selects the signal an Oscillator produces.
type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Noise
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Saw:
		return "saw"
	case Square:
		return "square"
	case Noise:
		return "noise"
	}
	return fmt.Sprintf("waveform(%d)", int(w))
}

// ParseWaveform maps a name to a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine", "":
		return Sine, nil
	case "saw":
		return Saw, nil
	case "square":
		return Square, nil
	case "noise":
		return Noise, nil
	}
	return Sine, fmt.Errorf("unknown waveform %q", name)
}

// Oscillator is a mono test tone. It is not safe for concurrent use.
type Oscillator struct {
	sampleRate float64
	phase      float64
	phaseInc   float64
	waveform   Waveform
	amplitude  float32
	rng        *rand.Rand
}

// New creates a 440 Hz sine at amplitude 0.5.
func New(sampleRate float64) *Oscillator {
	o := &Oscillator{
		sampleRate: sampleRate,
		amplitude:  0.5,
		rng:        rand.New(rand.NewPCG(1, 2)),
	}
	o.SetFrequency(440)
	return o
}

// SetFrequency sets the frequency in Hz.
func (o *Oscillator) SetFrequency(freq float64) {
	o.phaseInc = freq / o.sampleRate
}

// SetWaveform selects the waveform.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform = w
}

// SetAmplitude sets the peak amplitude.
func (o *Oscillator) SetAmplitude(a float32) {
	o.amplitude = a
}

// Reset returns the phase to 0.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Next returns one sample.
func (o *Oscillator) Next() float32 {
	var s float64
	switch o.waveform {
	case Saw:
		s = 2*o.phase - 1
	case Square:
		s = 1
		if o.phase >= 0.5 {
			s = -1
		}
	case Noise:
		s = 2*o.rng.Float64() - 1
	default:
		s = math.Sin(2 * math.Pi * o.phase)
	}

	o.phase += o.phaseInc
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return float32(s) * o.amplitude
}

// Process fills buffer - no allocations
func (o *Oscillator) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Next()
	}
}
