package debug

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRenderProfiler(t *testing.T) {
	p := NewRenderProfiler(48000)

	// 480 frames at 48kHz is a 10ms budget.
	p.record(5*time.Millisecond, 480)
	p.record(1*time.Millisecond, 480)

	s := p.Snapshot()
	if s.Blocks != 2 || s.Frames != 960 {
		t.Errorf("Unexpected counts %+v", s)
	}
	if s.Max != 5*time.Millisecond {
		t.Errorf("Expected max 5ms, got %v", s.Max)
	}
	if s.Average() != 3*time.Millisecond {
		t.Errorf("Expected average 3ms, got %v", s.Average())
	}
	if math.Abs(s.LastLoad-0.1) > 1e-9 {
		t.Errorf("Expected last load 0.1, got %f", s.LastLoad)
	}
	if math.Abs(s.AverageLoad(48000)-0.3) > 1e-9 {
		t.Errorf("Expected average load 0.3, got %f", s.AverageLoad(48000))
	}
	if !strings.Contains(s.String(), "blocks=2") {
		t.Errorf("Unexpected string %q", s.String())
	}

	p.Reset()
	if p.Snapshot() != (ProfileStats{}) {
		t.Error("Reset should clear all counters")
	}
}

func TestRenderProfilerDisabled(t *testing.T) {
	p := NewRenderProfiler(48000)
	p.SetEnabled(false)

	p.End(p.Begin(), 128)
	if p.Snapshot().Blocks != 0 {
		t.Error("Disabled profiler should not record")
	}

	var nilProfiler *RenderProfiler
	nilProfiler.End(nilProfiler.Begin(), 128)
}

func TestRenderProfilerConcurrentReaders(t *testing.T) {
	p := NewRenderProfiler(44100)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			p.End(p.Begin(), 64)
		}
	}()
	for i := 0; i < 100; i++ {
		_ = p.Snapshot()
	}
	wg.Wait()

	if p.Snapshot().Blocks != 1000 {
		t.Errorf("Expected 1000 blocks, got %d", p.Snapshot().Blocks)
	}
}

func TestRenderProfilerNoAllocs(t *testing.T) {
	p := NewRenderProfiler(48000)
	allocs := testing.AllocsPerRun(100, func() {
		p.End(p.Begin(), 256)
	})
	if allocs != 0 {
		t.Errorf("Expected zero allocations, got %f", allocs)
	}
}

func BenchmarkRenderProfiler(b *testing.B) {
	p := NewRenderProfiler(48000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.End(p.Begin(), 256)
	}
}
