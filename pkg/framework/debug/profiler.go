package debug

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// RenderProfiler tracks how long render blocks take relative to the audio
// time they produce. Begin and End are lock-free and allocation-free so the
// render thread can call them; Snapshot may be read from any goroutine.
type RenderProfiler struct {
	sampleRate atomic.Uint64 // float64 bits
	enabled    atomic.Bool

	blocks     atomic.Uint64
	frames     atomic.Uint64
	totalNanos atomic.Int64
	maxNanos   atomic.Int64
	lastLoad   atomic.Uint64 // float64 bits
}

// ProfileStats is a point-in-time copy of the profiler counters.
type ProfileStats struct {
	Blocks   uint64
	Frames   uint64
	Total    time.Duration
	Max      time.Duration
	LastLoad float64 // fraction of the block's real-time budget
}

// NewRenderProfiler creates an enabled profiler for the given sample rate.
func NewRenderProfiler(sampleRate float64) *RenderProfiler {
	p := &RenderProfiler{}
	p.SetSampleRate(sampleRate)
	p.enabled.Store(true)
	return p
}

// SetSampleRate updates the rate used to compute the real-time budget.
func (p *RenderProfiler) SetSampleRate(sampleRate float64) {
	p.sampleRate.Store(math.Float64bits(sampleRate))
}

// SetEnabled enables or disables profiling.
func (p *RenderProfiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Begin marks the start of a render block.
func (p *RenderProfiler) Begin() time.Time {
	if p == nil || !p.enabled.Load() {
		return time.Time{}
	}
	return time.Now()
}

// End records a block that started at start and produced frames samples.
func (p *RenderProfiler) End(start time.Time, frames int) {
	if p == nil || start.IsZero() {
		return
	}
	p.record(time.Since(start), frames)
}

func (p *RenderProfiler) record(elapsed time.Duration, frames int) {
	nanos := int64(elapsed)
	p.blocks.Add(1)
	p.frames.Add(uint64(frames))
	p.totalNanos.Add(nanos)

	for {
		cur := p.maxNanos.Load()
		if nanos <= cur || p.maxNanos.CompareAndSwap(cur, nanos) {
			break
		}
	}

	sr := math.Float64frombits(p.sampleRate.Load())
	if sr > 0 && frames > 0 {
		budget := float64(frames) / sr * float64(time.Second)
		p.lastLoad.Store(math.Float64bits(float64(nanos) / budget))
	}
}

// Snapshot returns the current counters.
func (p *RenderProfiler) Snapshot() ProfileStats {
	return ProfileStats{
		Blocks:   p.blocks.Load(),
		Frames:   p.frames.Load(),
		Total:    time.Duration(p.totalNanos.Load()),
		Max:      time.Duration(p.maxNanos.Load()),
		LastLoad: math.Float64frombits(p.lastLoad.Load()),
	}
}

// Reset clears all counters.
func (p *RenderProfiler) Reset() {
	p.blocks.Store(0)
	p.frames.Store(0)
	p.totalNanos.Store(0)
	p.maxNanos.Store(0)
	p.lastLoad.Store(0)
}

// Average returns the mean block time.
func (s ProfileStats) Average() time.Duration {
	if s.Blocks == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Blocks)
}

// AverageLoad returns total render time over the audio time produced.
func (s ProfileStats) AverageLoad(sampleRate float64) float64 {
	if s.Frames == 0 || sampleRate <= 0 {
		return 0
	}
	audio := float64(s.Frames) / sampleRate * float64(time.Second)
	return float64(s.Total) / audio
}

// String formats the stats for a status line.
func (s ProfileStats) String() string {
	return fmt.Sprintf("blocks=%d avg=%v max=%v load=%.2f%%",
		s.Blocks, s.Average(), s.Max, s.LastLoad*100)
}
