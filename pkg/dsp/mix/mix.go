// Package mix folds multi-channel output down for monitoring.
package mix

import (
	"fmt"

	"github.com/jabt/multipan/pkg/dsp/pan"
)

// Downmix folds the channels of a layout onto a stereo pair. Each channel
// is placed at its layout position with a stereo pan law, so a source
// moving across the array moves across the stereo image.
type Downmix struct {
	left  []float32
	right []float32
}

// NewDownmix builds the fold-down gains for layout.
func NewDownmix(layout *pan.Layout, law pan.Law) *Downmix {
	n := layout.Len()
	d := &Downmix{
		left:  make([]float32, n),
		right: make([]float32, n),
	}
	for i := 0; i < n; i++ {
		l, r := pan.MonoToStereo(layout.Position(i), law)
		d.left[i] = float32(l)
		d.right[i] = float32(r)
	}
	return d
}

// Channels returns the number of channels the downmix folds.
func (d *Downmix) Channels() int {
	return len(d.left)
}

// Gains returns the left and right gain of channel ch.
func (d *Downmix) Gains(ch int) (left, right float32) {
	return d.left[ch], d.right[ch]
}

// Process folds channels into left and right. frames samples are written;
// every channel must hold at least that many.
func (d *Downmix) Process(channels [][]float32, frames int, left, right []float32) error {
	if len(channels) != len(d.left) {
		return fmt.Errorf("downmix: %d channels, want %d", len(channels), len(d.left))
	}
	if len(left) < frames || len(right) < frames {
		return fmt.Errorf("downmix: output holds %d/%d frames, want %d", len(left), len(right), frames)
	}
	clear(left[:frames])
	clear(right[:frames])
	for ch, buf := range channels {
		if len(buf) < frames {
			return fmt.Errorf("downmix: channel %d holds %d frames, want %d", ch, len(buf), frames)
		}
		gl, gr := d.left[ch], d.right[ch]
		if gl == 0 && gr == 0 {
			continue
		}
		for i := 0; i < frames; i++ {
			s := buf[i]
			left[i] += s * gl
			right[i] += s * gr
		}
	}
	return nil
}

// Interleave writes left and right as interleaved stereo frames into dst
// and returns the number of frames written.
func Interleave(left, right, dst []float32) int {
	n := min(len(left), len(right), len(dst)/2)
	for i := 0; i < n; i++ {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}
	return n
}
