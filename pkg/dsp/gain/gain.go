// Package gain converts and steps unit amplitude gains in decibels.
package gain

import (
	"fmt"
	"math"
)

const (
	// MinDB is reported for silence.
	MinDB = -200.0

	// FloorDB is the quietest level Step lands on before silence.
	FloorDB = -60.0
)

// LinearToDb converts a linear amplitude to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts decibels to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// Step moves a unit gain by deltaDB and clamps the result to [0, 1].
// Stepping down past FloorDB gives silence; stepping up from silence
// lands on FloorDB.
func Step(linear, deltaDB float64) float64 {
	if linear <= 0 {
		if deltaDB <= 0 {
			return 0
		}
		return DbToLinear(FloorDB)
	}
	db := LinearToDb(linear) + deltaDB
	if db < FloorDB {
		return 0
	}
	return math.Min(1, DbToLinear(db))
}

// Format renders a linear gain as decibels, "-inf dB" for silence.
func Format(linear float64) string {
	if linear <= 0 {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", LinearToDb(linear))
}
