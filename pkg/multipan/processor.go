package multipan

import (
	"fmt"
	"sync/atomic"

	"github.com/jabt/multipan/pkg/dsp/pan"
	"github.com/jabt/multipan/pkg/framework/bus"
	"github.com/jabt/multipan/pkg/framework/debug"
	frameworkplugin "github.com/jabt/multipan/pkg/framework/plugin"
	"github.com/jabt/multipan/pkg/framework/process"
	"github.com/jabt/multipan/pkg/plugin"
)

// Processor adapts an Engine to the host wrapper: format negotiation
// configures the layout, host automation becomes engine targets, and
// process calls render the first input channel.
type Processor struct {
	*frameworkplugin.BaseProcessor

	engine   *Engine
	logger   *debug.Logger
	profiler *debug.RenderProfiler
	silence  []float32

	renderFailures atomic.Uint64
}

var (
	_ plugin.Processor        = (*Processor)(nil)
	_ plugin.FormatNegotiator = (*Processor)(nil)
)

// NewProcessor creates a processor with DefaultChannelCount outputs.
func NewProcessor(opts ...Option) (*Processor, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		BaseProcessor: frameworkplugin.NewBaseProcessor(
			bus.NewMultiChannelConfiguration(DefaultChannelCount),
			engine.Parameters(),
		),
		engine:   engine,
		logger:   engine.cfg.Logger.With("processor"),
		profiler: debug.NewRenderProfiler(0),
		silence:  make([]float32, engine.MaxBlockSize()),
	}
	p.OnInitialize(p.initialize)
	p.OnReset(engine.Reset)
	return p, nil
}

func (p *Processor) initialize(sampleRate float64, maxBlockSize int32) error {
	if err := p.engine.SetMaxBlockSize(int(maxBlockSize)); err != nil {
		return err
	}
	if len(p.silence) < int(maxBlockSize) {
		p.silence = make([]float32, maxBlockSize)
	}
	if err := p.engine.Configure(p.GetBuses().OutputChannelCount(), sampleRate); err != nil {
		return err
	}
	p.profiler.SetSampleRate(sampleRate)
	return nil
}

// Engine returns the wrapped engine.
func (p *Processor) Engine() *Engine {
	return p.engine
}

// SetOutputChannels follows a host format change. Before the first
// Initialize only the bus description changes.
func (p *Processor) SetOutputChannels(channels int32) error {
	if channels < 1 {
		return fmt.Errorf("%d output channels: %w", channels, ErrInvalidFormat)
	}
	if sr := p.SampleRate(); sr > 0 {
		if err := p.engine.Configure(int(channels), sr); err != nil {
			return err
		}
	}
	return p.GetBuses().SetOutputChannelCount(channels)
}

// SetLayout installs a custom channel layout, such as one derived from
// the display arrangement, and resizes the output bus to match.
func (p *Processor) SetLayout(layout *pan.Layout) error {
	if err := p.GetBuses().SetOutputChannelCount(int32(layout.Len())); err != nil {
		return err
	}
	p.engine.SetLayout(layout)
	p.profiler.SetSampleRate(layout.SampleRate())
	return nil
}

// ProcessAudio applies the block's automation points, then renders. All
// changes in a block take effect at its start and are smoothed from
// there. A missing input bus renders silence.
func (p *Processor) ProcessAudio(ctx *process.Context) error {
	for _, c := range ctx.ParameterChanges() {
		p.engine.SetNormalizedTarget(c.ParamID, c.Value)
	}

	input := p.silence
	if len(ctx.Input) > 0 {
		input = ctx.Input[0]
	}

	n := ctx.NumSamples()
	start := p.profiler.Begin()
	err := p.engine.Render(input, n, ctx.Output)
	p.profiler.End(start, n)
	if err != nil {
		p.renderFailures.Add(1)
		return err
	}
	return nil
}

// RenderFailures returns how many blocks were rejected by the engine.
func (p *Processor) RenderFailures() uint64 {
	return p.renderFailures.Load()
}

// Stats returns render timing collected so far.
func (p *Processor) Stats() debug.ProfileStats {
	return p.profiler.Snapshot()
}

// Plugin describes the panner to the host wrapper.
type Plugin struct {
	Options []Option
}

// GetInfo returns the plugin metadata.
func (Plugin) GetInfo() frameworkplugin.Info {
	return frameworkplugin.Info{
		ID:       "com.jabt.multipan",
		Name:     "MultiPan",
		Version:  "1.0.0",
		Vendor:   "jabt",
		Category: "Fx|Spatial",
	}
}

// CreateProcessor creates a new processor with the plugin's options.
func (pl Plugin) CreateProcessor() (plugin.Processor, error) {
	return NewProcessor(pl.Options...)
}
