// Package multipan renders a mono source across a linear array of output
// channels. An Engine owns one layout, one parameter set and the
// render-side smoothing state; create one per plugin instance.
package multipan

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/jabt/multipan/pkg/dsp/pan"
	"github.com/jabt/multipan/pkg/framework/debug"
	"github.com/jabt/multipan/pkg/framework/param"
)

// Parameter IDs
const (
	ParamGain uint32 = iota
	ParamLocation
)

// DefaultChannelCount is the output format used when the host does not
// negotiate one.
const DefaultChannelCount = 6

// Engine is the real-time panner.
//
// Configure and SetMaxBlockSize run on the control thread while rendering
// is stopped. SetTarget may be called from the control thread at any time.
// Render runs on the render thread and never allocates, blocks or logs.
type Engine struct {
	cfg    Config
	logger *debug.Logger

	params    *param.Registry
	automator *param.Automator

	layout      atomic.Pointer[pan.Layout]
	rampSamples int

	// Render thread state
	gains          []float64 // channel gains for cachedLocation
	cachedLocation float64
	cacheValid     bool

	in       []float64 // input converted to float64
	envelope []float64 // smoothed gain per frame
	signal   []float64 // input * envelope
	work     []float64 // one channel of output
}

// NewEngine creates an unconfigured engine. Call Configure before Render.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		logger:      cfg.Logger.With("engine"),
		params:      param.NewRegistry(),
		rampSamples: 1,
	}

	err = e.params.Add(
		param.UnitGainParameter(ParamGain, "gain").
			ShortName("Gain").
			Default(cfg.DefaultGain).
			Build(),
		param.LocationParameter(ParamLocation, "location").
			ShortName("Loc").
			Default(cfg.DefaultLocation).
			Build(),
	)
	if err != nil {
		return nil, err
	}

	e.automator = param.NewAutomatorWith(e.params, cfg.Smoothing, e.rampSamples)
	e.allocScratch(cfg.MaxBlockSize)
	return e, nil
}

func (e *Engine) allocScratch(maxBlockSize int) {
	e.in = make([]float64, maxBlockSize)
	e.envelope = make([]float64, maxBlockSize)
	e.signal = make([]float64, maxBlockSize)
	e.work = make([]float64, maxBlockSize)
}

// Parameters returns the gain and location parameters.
func (e *Engine) Parameters() *param.Registry {
	return e.params
}

// Configure builds an evenly spaced layout for channelCount outputs at
// sampleRate and publishes it. It fails with ErrInvalidFormat for a channel
// count below one or a non-positive sample rate, leaving the previous
// layout in place.
func (e *Engine) Configure(channelCount int, sampleRate float64) error {
	layout, err := pan.Configure(channelCount, sampleRate)
	if err != nil {
		e.logger.Warn("rejected format %d channels at %g Hz: %v", channelCount, sampleRate, err)
		return err
	}
	e.SetLayout(layout)
	return nil
}

// SetLayout publishes an explicit layout, e.g. one derived from the display
// arrangement. Control thread only, rendering stopped.
func (e *Engine) SetLayout(layout *pan.Layout) {
	if cap(e.gains) < layout.Len() {
		e.gains = make([]float64, layout.Len())
	}
	e.gains = e.gains[:layout.Len()]
	e.cacheValid = false

	e.rampSamples = param.RampSamples(layout.SampleRate(), e.cfg.RampTime)
	e.automator.SetRampSamples(e.rampSamples)
	e.automator.Snap()

	e.layout.Store(layout)
	e.logger.Info("configured %d channels at %g Hz, ramp %d samples, %s law",
		layout.Len(), layout.SampleRate(), e.rampSamples, e.cfg.Law)
}

// SetMaxBlockSize resizes the scratch buffers. Control thread only,
// rendering stopped.
func (e *Engine) SetMaxBlockSize(n int) error {
	if n < 1 {
		return fmt.Errorf("max block size %d: %w", n, ErrInvalidOption)
	}
	if n != e.cfg.MaxBlockSize {
		e.cfg.MaxBlockSize = n
		e.allocScratch(n)
	}
	return nil
}

// Reset jumps the smoothed values to their targets and drops the cached
// gains. Control thread only, rendering stopped.
func (e *Engine) Reset() {
	e.automator.Snap()
	e.cacheValid = false
}

// MaxBlockSize returns the largest frame count Render accepts.
func (e *Engine) MaxBlockSize() int {
	return e.cfg.MaxBlockSize
}

// Layout returns the current layout, or nil before Configure.
func (e *Engine) Layout() *pan.Layout {
	return e.layout.Load()
}

// Law returns the configured pan law.
func (e *Engine) Law() pan.Law {
	return e.cfg.Law
}

// RampSamples returns the smoothing length for the current sample rate.
func (e *Engine) RampSamples() int {
	return e.rampSamples
}

// SetTarget publishes a new plain value for a parameter. Values are
// clamped to [0, 1]; unknown IDs are ignored. Never blocks.
func (e *Engine) SetTarget(id uint32, value float64) {
	e.automator.SetTarget(id, value)
}

// SetNormalizedTarget publishes a normalized (0-1) value, as delivered by
// host automation. It takes no lock, so the render thread may call it.
func (e *Engine) SetNormalizedTarget(id uint32, value float64) {
	e.automator.SetNormalizedTarget(id, value)
}

// Target returns the last published value of a parameter.
func (e *Engine) Target(id uint32) float64 {
	return e.automator.Target(id)
}

// Render pans input into outputs for frameCount frames:
//
//	outputs[c][i] = input[i] * gain(i) * channelGain(location(i))[c]
//
// gain and location are smoothed once per output sample. A new target set
// during a block is picked up by its first smoothed sample when location
// is ramping and by the next block otherwise. Geometry is checked before
// anything is written.
func (e *Engine) Render(input []float32, frameCount int, outputs [][]float32) error {
	layout := e.layout.Load()
	if layout == nil {
		return ErrNotConfigured
	}
	if err := e.checkGeometry(layout, input, frameCount, outputs); err != nil {
		return err
	}
	if frameCount == 0 {
		return nil
	}

	n := frameCount
	in := e.in[:n]
	for i, s := range input[:n] {
		in[i] = float64(s)
	}

	env := e.envelope[:n]
	for i := range env {
		env[i] = e.automator.SampleSmoothed(ParamGain)
	}
	signal := e.signal[:n]
	vecmath.MulBlock(signal, in, env)

	if e.automator.Steady(ParamLocation) {
		e.renderSteady(layout, signal, outputs)
	} else {
		e.renderRamp(layout, signal, outputs)
	}
	return nil
}

func (e *Engine) checkGeometry(layout *pan.Layout, input []float32, frameCount int, outputs [][]float32) error {
	if len(outputs) != layout.Len() {
		return ErrBufferGeometryMismatch
	}
	if frameCount < 0 || frameCount > e.cfg.MaxBlockSize || len(input) < frameCount {
		return ErrBufferGeometryMismatch
	}
	for _, out := range outputs {
		if len(out) < frameCount {
			return ErrBufferGeometryMismatch
		}
	}
	return nil
}

// renderSteady applies one cached gain vector to the whole block.
func (e *Engine) renderSteady(layout *pan.Layout, signal []float64, outputs [][]float32) {
	loc := e.automator.Current(ParamLocation)
	if !e.cacheValid || loc != e.cachedLocation {
		e.gains = e.cfg.Law.Gains(loc, layout, e.gains)
		e.cachedLocation = loc
		e.cacheValid = true
	}

	work := e.work[:len(signal)]
	for c, out := range outputs {
		g := e.gains[c]
		out = out[:len(signal)]
		if g == 0 {
			for i := range out {
				out[i] = 0
			}
			continue
		}
		vecmath.ScaleBlock(work, signal, g)
		for i, v := range work {
			out[i] = float32(v)
		}
	}
}

// renderRamp recomputes the gain vector for every frame while location
// moves.
func (e *Engine) renderRamp(layout *pan.Layout, signal []float64, outputs [][]float32) {
	for i, s := range signal {
		loc := e.automator.SampleSmoothed(ParamLocation)
		if !e.cacheValid || loc != e.cachedLocation {
			e.gains = e.cfg.Law.Gains(loc, layout, e.gains)
			e.cachedLocation = loc
			e.cacheValid = true
		}
		for c, out := range outputs {
			out[i] = float32(s * e.gains[c])
		}
	}
}

// ChannelGains writes the gain vector for the latest location target into
// dst. Safe from the control thread, e.g. for meters; during a ramp the
// render thread is still moving towards these gains.
func (e *Engine) ChannelGains(dst []float64) []float64 {
	layout := e.layout.Load()
	if layout == nil {
		return dst[:0]
	}
	return e.cfg.Law.Gains(e.automator.Target(ParamLocation), layout, dst)
}
