// Package pan provides the multi-channel pan law used to place a mono
// source on a linear speaker array.
package pan

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Law selects the crossfade curve between two adjacent channels.
type Law int

const (
	// EqualPower uses a cosine/sine crossfade; the sum of squared gains is 1
	// everywhere.
	EqualPower Law = iota
	// Linear crossfades amplitudes; power dips to 0.5 halfway between
	// channels.
	Linear
)

// PowerTolerance is the allowed deviation of the summed channel power from
// 1.0 for power preserving laws.
const PowerTolerance = 0.1

// String returns the name of the law.
func (law Law) String() string {
	switch law {
	case EqualPower:
		return "equal-power"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseLaw converts a law name, as used on command lines, into a Law.
func ParseLaw(name string) (Law, error) {
	switch strings.ToLower(name) {
	case "equal-power", "equalpower", "cosine", "":
		return EqualPower, nil
	case "linear":
		return Linear, nil
	}
	return EqualPower, fmt.Errorf("unknown pan law %q", name)
}

// PowerPreserving reports whether the law keeps the summed power at 1.
func (law Law) PowerPreserving() bool {
	return law == EqualPower
}

// ComputeGains returns the equal-power gain vector for location.
func ComputeGains(location float64, layout *Layout, dst []float64) []float64 {
	return EqualPower.Gains(location, layout, dst)
}

// Gains writes one gain per channel of layout into dst and returns it.
// When cap(dst) >= layout.Len() no allocation happens. Only the two
// channels bracketing location receive signal; a location at or
// outside the outermost channel goes entirely to that channel.
// Out-of-range locations are clamped.
func (law Law) Gains(location float64, layout *Layout, dst []float64) []float64 {
	n := layout.Len()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = 0
	}

	if n == 1 {
		dst[0] = 1
		return dst
	}

	location = clamp01(location)
	p := layout.positions
	switch {
	case location <= p[0]:
		dst[0] = 1
		return dst
	case location >= p[n-1]:
		dst[n-1] = 1
		return dst
	}

	j := layout.segment(location)
	if p[j] == location {
		dst[j] = 1
		return dst
	}

	i := j - 1
	t := clamp01((location - p[i]) / (p[j] - p[i]))
	dst[i], dst[j] = law.crossfade(t)
	return dst
}

// segment returns the smallest index j with positions[j] >= location.
func (l *Layout) segment(location float64) int {
	if l.uniform {
		scaled := location * float64(len(l.positions)-1)
		j := int(math.Ceil(scaled))
		if j >= len(l.positions) {
			j = len(l.positions) - 1
		}
		return j
	}
	return sort.SearchFloat64s(l.positions, location)
}

// crossfade returns the gains of the lower and upper channel for a
// fractional position t in [0, 1] between them.
func (law Law) crossfade(t float64) (lower, upper float64) {
	switch law {
	case Linear:
		return 1 - t, t
	default:
		angle := t * math.Pi / 2
		return math.Cos(angle), math.Sin(angle)
	}
}

// MonoToStereo returns left and right gains on a two-channel array.
// location: 0 = hard left, 0.5 = centre, 1 = hard right.
func MonoToStereo(location float64, law Law) (left, right float64) {
	return law.crossfade(clamp01(location))
}

// PowerSum returns the sum of squared gains.
func PowerSum(gains []float64) float64 {
	sum := 0.0
	for _, g := range gains {
		sum += g * g
	}
	return sum
}
