package gain

import (
	"math"
	"testing"
)

func TestDbConversion(t *testing.T) {
	tests := []struct {
		name    string
		linear  float64
		db      float64
		epsilon float64
	}{
		{"Unity gain", 1.0, 0.0, 0.001},
		{"Half amplitude", 0.5, -6.02, 0.01},
		{"Quarter amplitude", 0.25, -12.04, 0.01},
		{"Zero amplitude", 0.0, MinDB, 0.001},
		{"Negative amplitude", -1.0, MinDB, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToDb(tt.linear); math.Abs(got-tt.db) > tt.epsilon {
				t.Errorf("LinearToDb(%f) = %f, want %f", tt.linear, got, tt.db)
			}
			if tt.db == MinDB {
				return
			}
			if got := DbToLinear(tt.db); math.Abs(got-tt.linear) > tt.epsilon {
				t.Errorf("DbToLinear(%f) = %f, want %f", tt.db, got, tt.linear)
			}
		})
	}

	if DbToLinear(MinDB) != 0 {
		t.Error("DbToLinear(MinDB) should be silent")
	}
}

func TestStep(t *testing.T) {
	floor := DbToLinear(FloorDB)

	tests := []struct {
		name   string
		linear float64
		delta  float64
		want   float64
	}{
		{"down from unity", 1, -6, DbToLinear(-6)},
		{"up clamps at unity", DbToLinear(-1), 3, 1},
		{"up from silence", 0, 3, floor},
		{"down from silence", 0, -3, 0},
		{"below floor is silence", floor, -3, 0},
		{"zero delta", 0.5, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Step(tt.linear, tt.delta); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Step(%f, %f) = %f, want %f", tt.linear, tt.delta, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		linear float64
		want   string
	}{
		{1, "0.0 dB"},
		{0.5, "-6.0 dB"},
		{0, "-inf dB"},
	}
	for _, tt := range tests {
		if got := Format(tt.linear); got != tt.want {
			t.Errorf("Format(%f) = %q, want %q", tt.linear, got, tt.want)
		}
	}
}
