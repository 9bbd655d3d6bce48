package multipan

import (
	"bytes"
	"context"
	"testing"

	"github.com/jabt/multipan/pkg/display"
	"github.com/jabt/multipan/pkg/ipc"
	"github.com/jabt/multipan/pkg/plugin"
)

var _ ipc.ParameterSink = (*plugin.Instance)(nil)

// A window placement message from the window process moves the panner.
func TestWindowMessagesDriveLocation(t *testing.T) {
	inst := newTestInstance(t, WithRampTime(0))
	inst.SetupProcessing(48000, 64)

	arrangement := display.Arrangement{Screens: display.Row(4, 1000, 500), SkipPrimary: true}
	layout, err := arrangement.Layout(48000)
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if err := inst.Processor().(*Processor).SetLayout(layout); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}
	inst.SetActive(true)

	reg := ipc.NewRegistry()
	windows := reg.Register(ipc.LocationListener{Arrangement: arrangement, Sink: inst, ParamID: ParamLocation})
	params := reg.Register(ipc.ParameterListener{Sink: inst})

	var stream bytes.Buffer
	// Window centred on the last speaker screen, then half gain.
	ipc.WriteFrame(&stream, windows, ipc.EncodeWindowMessage(nil, display.Rect{X: 3400, Width: 200, Height: 100}))
	ipc.WriteFrame(&stream, params, ipc.EncodeParameterMessage(nil, ParamGain, 0.5))
	if err := reg.Serve(context.Background(), &stream, nil); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	outputs := makeOutputs(3, 16, 0)
	data := &plugin.ProcessData{Inputs: [][]float32{constant(16, 1)}, Outputs: outputs, Frames: 16}
	if res := inst.Process(data); res != plugin.ResultOK {
		t.Fatalf("Process = %v", res)
	}
	if outputs[2][15] != 0.5 || outputs[0][15] != 0 || outputs[1][15] != 0 {
		t.Errorf("Expected half gain on the last screen's channel, got %v", outputs)
	}
}
