package process

import (
	"testing"

	"github.com/jabt/multipan/pkg/framework/param"
)

func TestContextParameterChanges(t *testing.T) {
	registry := param.NewRegistry()
	ctx := NewContext(512, 2, registry)

	if !ctx.AddParameterChange(ParameterChange{ParamID: 1, Value: 0.2, SampleOffset: 10}) {
		t.Fatal("Expected first change to be queued")
	}
	if !ctx.AddParameterChange(ParameterChange{ParamID: 0, Value: 0.8, SampleOffset: 100}) {
		t.Fatal("Expected second change to be queued")
	}
	if ctx.AddParameterChange(ParameterChange{ParamID: 1, Value: 0.4}) {
		t.Error("Expected the full queue to reject a third change")
	}

	changes := ctx.ParameterChanges()
	if len(changes) != 2 || changes[0].ParamID != 1 || changes[1].SampleOffset != 100 {
		t.Errorf("Unexpected changes %+v", changes)
	}

	ctx.ClearParameterChanges()
	if len(ctx.ParameterChanges()) != 0 {
		t.Error("Expected no changes after clear")
	}

	allocs := testing.AllocsPerRun(100, func() {
		ctx.AddParameterChange(ParameterChange{ParamID: 1, Value: 0.5})
		ctx.ClearParameterChanges()
	})
	if allocs != 0 {
		t.Errorf("Expected zero allocations, got %f", allocs)
	}
}

func TestContextNumSamples(t *testing.T) {
	ctx := NewContext(64, 0, param.NewRegistry())

	if ctx.NumSamples() != 0 {
		t.Error("Expected 0 samples without buffers")
	}

	ctx.Input = [][]float32{make([]float32, 32)}
	ctx.Output = [][]float32{make([]float32, 32), make([]float32, 32)}
	if ctx.NumSamples() != 32 {
		t.Errorf("Expected 32 samples, got %d", ctx.NumSamples())
	}

	ctx.Frames = 16
	if ctx.NumSamples() != 16 {
		t.Errorf("Expected explicit frame count 16, got %d", ctx.NumSamples())
	}
	if len(ctx.WorkBuffer()) != 16 {
		t.Error("Work buffer should match the block size")
	}

	ctx.Frames = 128
	if ctx.WorkBuffer() != nil {
		t.Error("Work buffer should be nil for oversized blocks")
	}
}

func TestContextParamAccess(t *testing.T) {
	registry := param.NewRegistry()
	registry.Add(param.LocationParameter(1, "location").Build())
	ctx := NewContext(16, 0, registry)

	if ctx.Param(1) != 0.5 || ctx.ParamPlain(1) != 0.5 {
		t.Errorf("Expected location 0.5, got %f", ctx.Param(1))
	}
	if ctx.Param(9) != 0 {
		t.Error("Unknown parameter should read 0")
	}

	ctx.Output = [][]float32{{1, 2}, {3, 4}}
	ctx.Clear()
	for ch := range ctx.Output {
		for _, v := range ctx.Output[ch] {
			if v != 0 {
				t.Fatal("Clear should zero all outputs")
			}
		}
	}
}
