// Package display maps window placement on the installation's screen bank
// to pan locations and channel layouts. Screen geometry comes from the
// window coordination service; this package only does the arithmetic.
package display

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jabt/multipan/pkg/dsp/pan"
)

// Error codes for arrangement problems
type Error int

const (
	// ErrNoScreens is returned when no screen can carry a speaker.
	ErrNoScreens Error = iota + 1
	// ErrDegenerateArrangement is returned when the speaker screens span
	// no horizontal distance.
	ErrDegenerateArrangement
	// ErrInvalidScreen is returned for unparsable or empty screen frames.
	ErrInvalidScreen
)

func (e Error) Error() string {
	switch e {
	case ErrNoScreens:
		return "no speaker screens"
	case ErrDegenerateArrangement:
		return "speaker screens have zero width"
	case ErrInvalidScreen:
		return "invalid screen frame"
	default:
		return "unknown error"
	}
}

// Rect is a frame in the global desktop coordinate space.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// MinX returns the left edge
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MidX returns the horizontal centre
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// Contains reports whether x falls within the frame's horizontal span.
func (r Rect) Contains(x float64) bool {
	return x >= r.MinX() && x < r.MaxX()
}

// Arrangement is the bank of screens. With SkipPrimary the first screen
// is the control screen: it carries no speaker and does not move the
// left edge of the pan range, though it still counts for the right edge.
type Arrangement struct {
	Screens     []Rect
	SkipPrimary bool
}

// SpeakerScreens returns the screens that carry a speaker, ordered left
// to right.
func (a Arrangement) SpeakerScreens() []Rect {
	screens := a.Screens
	if a.SkipPrimary && len(screens) > 0 {
		screens = screens[1:]
	}
	out := make([]Rect, len(screens))
	copy(out, screens)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinX() < out[j].MinX() })
	return out
}

// Bounds returns the horizontal extent that maps to locations 0 and 1.
func (a Arrangement) Bounds() (minX, maxX float64, err error) {
	speakers := a.Screens
	if a.SkipPrimary && len(speakers) > 0 {
		speakers = speakers[1:]
	}
	if len(speakers) == 0 {
		return 0, 0, ErrNoScreens
	}

	minX = speakers[0].MinX()
	for _, s := range speakers[1:] {
		if s.MinX() < minX {
			minX = s.MinX()
		}
	}
	maxX = a.Screens[0].MaxX()
	for _, s := range a.Screens[1:] {
		if s.MaxX() > maxX {
			maxX = s.MaxX()
		}
	}
	if !(maxX > minX) {
		return 0, 0, ErrDegenerateArrangement
	}
	return minX, maxX, nil
}

// HorizontalPosition returns where the centre of window sits across the
// speaker screens, from 0 at the left edge to 1 at the right, clamped.
func (a Arrangement) HorizontalPosition(window Rect) (float64, error) {
	minX, maxX, err := a.Bounds()
	if err != nil {
		return 0, err
	}
	loc := (window.MidX() - minX) / (maxX - minX)
	switch {
	case loc < 0:
		return 0, nil
	case loc > 1:
		return 1, nil
	}
	return loc, nil
}

// Layout places one channel at the centre of each speaker screen.
func (a Arrangement) Layout(sampleRate float64) (*pan.Layout, error) {
	minX, maxX, err := a.Bounds()
	if err != nil {
		return nil, err
	}
	speakers := a.SpeakerScreens()
	positions := make([]float64, len(speakers))
	for i, s := range speakers {
		p := (s.MidX() - minX) / (maxX - minX)
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		positions[i] = p
	}
	return pan.NewLayout(positions, sampleRate)
}

// ScreenIndex returns the left-to-right index of the speaker screen
// containing x, or -1.
func (a Arrangement) ScreenIndex(x float64) int {
	for i, s := range a.SpeakerScreens() {
		if s.Contains(x) {
			return i
		}
	}
	return -1
}

// ParseScreens parses "x,y,w,h;x,y,w,h;..." into screen frames.
func ParseScreens(s string) ([]Rect, error) {
	var screens []Rect
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("screen %q: want x,y,w,h: %w", part, ErrInvalidScreen)
		}
		var v [4]float64
		for i, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("screen %q: %w", part, ErrInvalidScreen)
			}
			v[i] = n
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, fmt.Errorf("screen %q: non-positive size: %w", part, ErrInvalidScreen)
		}
		screens = append(screens, Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]})
	}
	if len(screens) == 0 {
		return nil, ErrNoScreens
	}
	return screens, nil
}

// Row builds count screens of the given size side by side starting at 0.
func Row(count int, width, height float64) []Rect {
	screens := make([]Rect, count)
	for i := range screens {
		screens[i] = Rect{X: float64(i) * width, Width: width, Height: height}
	}
	return screens
}
