package pan

import (
	"math"
	"testing"
)

func mustConfigure(t testing.TB, channels int) *Layout {
	t.Helper()
	layout, err := Configure(channels, 48000)
	if err != nil {
		t.Fatalf("Configure(%d) failed: %v", channels, err)
	}
	return layout
}

func TestGainsRangeAndLength(t *testing.T) {
	for _, channels := range []int{1, 2, 3, 4, 6, 8} {
		layout := mustConfigure(t, channels)
		for i := 0; i <= 1000; i++ {
			location := float64(i) / 1000
			gains := ComputeGains(location, layout, nil)
			if len(gains) != channels {
				t.Fatalf("%d channels: expected %d gains, got %d", channels, channels, len(gains))
			}
			for c, g := range gains {
				if g < 0 || g > 1 {
					t.Fatalf("%d channels, location %f: gain[%d]=%f out of range", channels, location, c, g)
				}
			}
		}
	}
}

func TestPowerPreservation(t *testing.T) {
	for _, channels := range []int{1, 2, 4, 8} {
		layout := mustConfigure(t, channels)
		gains := make([]float64, channels)
		for i := 0; i <= 1000; i++ {
			location := float64(i) / 1000
			ComputeGains(location, layout, gains)
			if power := PowerSum(gains); math.Abs(power-1) > PowerTolerance {
				t.Errorf("%d channels, location %f: power %f outside tolerance", channels, location, power)
			}
		}
	}
}

func TestLinearLawDipsInPower(t *testing.T) {
	layout := mustConfigure(t, 2)
	gains := Linear.Gains(0.5, layout, nil)
	if math.Abs(gains[0]-0.5) > 1e-12 || math.Abs(gains[1]-0.5) > 1e-12 {
		t.Errorf("Expected 0.5/0.5 at centre, got %v", gains)
	}
	if Linear.PowerPreserving() {
		t.Error("Linear law should not report power preservation")
	}
	if !EqualPower.PowerPreserving() {
		t.Error("Equal power law should report power preservation")
	}
}

func TestEdgeBehavior(t *testing.T) {
	layout := mustConfigure(t, 4)

	t.Run("Left", func(t *testing.T) {
		gains := ComputeGains(0, layout, nil)
		if gains[0] != 1 {
			t.Errorf("Expected full gain at channel 0, got %v", gains)
		}
		for c := 1; c < 4; c++ {
			if gains[c] > gains[0] {
				t.Errorf("Channel %d louder than channel 0", c)
			}
		}
		if gains[3] != minOf(gains) {
			t.Errorf("Expected minimum at channel 3, got %v", gains)
		}
	})

	t.Run("Right", func(t *testing.T) {
		gains := ComputeGains(1, layout, nil)
		if gains[3] != 1 {
			t.Errorf("Expected full gain at channel 3, got %v", gains)
		}
		if gains[0] != minOf(gains) {
			t.Errorf("Expected minimum at channel 0, got %v", gains)
		}
	})

	t.Run("Clamped", func(t *testing.T) {
		below := ComputeGains(-3, layout, nil)
		above := ComputeGains(7, layout, nil)
		if below[0] != 1 || above[3] != 1 {
			t.Errorf("Out of range locations should clamp: below=%v above=%v", below, above)
		}
		nan := ComputeGains(math.NaN(), layout, nil)
		if nan[0] != 1 {
			t.Errorf("NaN location should clamp to 0, got %v", nan)
		}
	})
}

func TestLocality(t *testing.T) {
	for _, channels := range []int{2, 4, 6, 8} {
		layout := mustConfigure(t, channels)
		for i := 0; i <= 997; i++ {
			location := float64(i) / 997
			gains := ComputeGains(location, layout, nil)
			nearest := layout.Nearest(location)

			for c, g := range gains {
				if c == nearest {
					continue
				}
				tied := math.Abs(math.Abs(location-layout.Position(c))-math.Abs(location-layout.Position(nearest))) < 1e-12
				if tied {
					if math.Abs(g-gains[nearest]) > 1e-9 {
						t.Errorf("%d channels, location %f: tied channels %d/%d differ: %f vs %f",
							channels, location, c, nearest, g, gains[nearest])
					}
					continue
				}
				if g >= gains[nearest] {
					t.Errorf("%d channels, location %f: channel %d (%f) not below nearest %d (%f)",
						channels, location, c, g, nearest, gains[nearest])
				}
			}
		}
	}
}

func TestMonotonicFalloff(t *testing.T) {
	layout := mustConfigure(t, 8)
	for i := 0; i <= 500; i++ {
		location := float64(i) / 500
		gains := ComputeGains(location, layout, nil)
		for a := 0; a < 8; a++ {
			for b := 0; b < 8; b++ {
				da := math.Abs(location - layout.Position(a))
				db := math.Abs(location - layout.Position(b))
				if da < db && gains[a] < gains[b] {
					t.Errorf("location %f: closer channel %d quieter than %d", location, a, b)
				}
			}
		}
	}
}

func TestContinuity(t *testing.T) {
	const eps = 1e-6
	for _, channels := range []int{2, 3, 4, 8} {
		layout := mustConfigure(t, channels)
		// Largest slope of the cosine crossfade is pi/2 per segment width.
		bound := eps * math.Pi / 2 * float64(channels-1) * 1.01
		a := make([]float64, channels)
		b := make([]float64, channels)
		for i := 0; i < 10000; i++ {
			location := float64(i) / 10000
			ComputeGains(location, layout, a)
			ComputeGains(location+eps, layout, b)
			for c := range a {
				if d := math.Abs(a[c] - b[c]); d > bound {
					t.Fatalf("%d channels, location %f: gain[%d] jumped by %g (bound %g)", channels, location, c, d, bound)
				}
			}
		}
	}
}

func TestCustomLayout(t *testing.T) {
	layout, err := NewLayout([]float64{0.1, 0.4, 0.9}, 48000)
	if err != nil {
		t.Fatal(err)
	}

	gains := ComputeGains(0.05, layout, nil)
	if gains[0] != 1 {
		t.Errorf("Location left of the first channel should go fully to it, got %v", gains)
	}

	gains = ComputeGains(0.65, layout, nil)
	if math.Abs(gains[1]-gains[2]) > 1e-12 {
		t.Errorf("Midpoint between channels 1 and 2 should be balanced, got %v", gains)
	}
	if math.Abs(PowerSum(gains)-1) > 1e-12 {
		t.Errorf("Expected unit power, got %f", PowerSum(gains))
	}
}

func TestGainsReusesDestination(t *testing.T) {
	layout := mustConfigure(t, 6)
	dst := make([]float64, 6)
	allocs := testing.AllocsPerRun(100, func() {
		ComputeGains(0.37, layout, dst)
	})
	if allocs != 0 {
		t.Errorf("Expected zero allocations, got %f", allocs)
	}
}

func TestMonoToStereo(t *testing.T) {
	left, right := MonoToStereo(0.5, EqualPower)
	if math.Abs(left-right) > 1e-12 {
		t.Errorf("Centre not balanced: left=%f, right=%f", left, right)
	}
	if math.Abs(left*left+right*right-1) > 1e-12 {
		t.Errorf("Constant power violation at centre")
	}

	left, right = MonoToStereo(0, EqualPower)
	if left != 1 || right > 1e-12 {
		t.Errorf("Hard left incorrect: left=%f, right=%f", left, right)
	}
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func BenchmarkComputeGains(b *testing.B) {
	layout, _ := Configure(8, 48000)
	dst := make([]float64, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeGains(float64(i%1000)/1000, layout, dst)
	}
}

func TestParseLaw(t *testing.T) {
	for _, law := range []Law{EqualPower, Linear} {
		got, err := ParseLaw(law.String())
		if err != nil || got != law {
			t.Errorf("ParseLaw(%q) = %v, %v", law.String(), got, err)
		}
	}
	if _, err := ParseLaw("logarithmic"); err == nil {
		t.Error("Expected an error for an unknown law")
	}
}
