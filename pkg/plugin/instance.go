package plugin

import (
	"sync"
	"sync/atomic"

	"github.com/jabt/multipan/pkg/framework/debug"
	"github.com/jabt/multipan/pkg/framework/param"
	"github.com/jabt/multipan/pkg/framework/plugin"
	"github.com/jabt/multipan/pkg/framework/process"
)

// MaxParameterChanges bounds the host automation points queued per block.
const MaxParameterChanges = 64

// ParameterInfo describes a parameter to the host.
type ParameterInfo struct {
	ID                     uint32
	Title                  string
	ShortTitle             string
	Units                  string
	StepCount              int32
	DefaultNormalizedValue float64
	Flags                  uint32
}

// ProcessData is one host process call.
type ProcessData struct {
	Inputs  [][]float32
	Outputs [][]float32
	Frames  int // 0 takes the length of the first buffer
	Changes []process.ParameterChange
}

// Instance is one plugin instantiation as seen by a host. Setup, bus
// arrangement and activation come from the control thread and are
// serialized; Process comes from the render thread and takes no lock.
// Parameter get/set may be called from any thread.
type Instance struct {
	info      plugin.Info
	processor Processor
	logger    *debug.Logger

	mu         sync.Mutex
	active     bool
	sampleRate float64

	ctx    *process.Context
	ready  atomic.Bool
	panics atomic.Uint64
	failed atomic.Uint64
}

// NewInstance creates the processor for p and wraps it.
func NewInstance(p Plugin, logger *debug.Logger) (*Instance, error) {
	proc, err := p.CreateProcessor()
	if err != nil {
		return nil, err
	}
	info := p.GetInfo()
	return &Instance{
		info:      info,
		processor: proc,
		logger:    logger.With(info.Name),
	}, nil
}

// Info returns the plugin metadata.
func (i *Instance) Info() plugin.Info {
	return i.info
}

// Processor returns the wrapped processor.
func (i *Instance) Processor() Processor {
	return i.processor
}

// SetupProcessing announces the sample rate and largest block size.
func (i *Instance) SetupProcessing(sampleRate float64, maxBlockSize int32) (res Result) {
	defer i.recoverPanic("SetupProcessing", &res)

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active {
		return ResultFalse
	}
	if maxBlockSize < 1 {
		return ResultInvalidArgument
	}

	if err := i.processor.Initialize(sampleRate, maxBlockSize); err != nil {
		i.logger.Warn("setup %g Hz / %d frames rejected: %v", sampleRate, maxBlockSize, err)
		return ResultInvalidArgument
	}
	i.sampleRate = sampleRate
	i.ctx = process.NewContext(int(maxBlockSize), MaxParameterChanges, i.processor.GetParameters())
	i.ctx.SampleRate = sampleRate
	i.ready.Store(true)
	return ResultOK
}

// SetBusArrangement negotiates the output channel count. Processors that
// do not implement FormatNegotiator only accept their current count.
func (i *Instance) SetBusArrangement(outputChannels int32) (res Result) {
	defer i.recoverPanic("SetBusArrangement", &res)

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.active {
		return ResultFalse
	}

	n, ok := i.processor.(FormatNegotiator)
	if !ok {
		if int(outputChannels) == i.processor.GetBuses().OutputChannelCount() {
			return ResultOK
		}
		return ResultFalse
	}
	if err := n.SetOutputChannels(outputChannels); err != nil {
		i.logger.Warn("bus arrangement %d channels rejected: %v", outputChannels, err)
		return ResultInvalidArgument
	}
	return ResultOK
}

// SetActive starts or stops processing.
func (i *Instance) SetActive(active bool) (res Result) {
	defer i.recoverPanic("SetActive", &res)

	i.mu.Lock()
	defer i.mu.Unlock()
	if active && !i.ready.Load() {
		return ResultNotInitialized
	}
	if err := i.processor.SetActive(active); err != nil {
		i.logger.Warn("SetActive(%v) failed: %v", active, err)
		return ResultFalse
	}
	i.active = active
	return ResultOK
}

// IsActive reports whether processing is running.
func (i *Instance) IsActive() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}

// Process renders one block.
func (i *Instance) Process(data *ProcessData) (res Result) {
	defer i.recoverPanic("", &res)

	if !i.ready.Load() {
		return ResultNotInitialized
	}
	if data == nil {
		return ResultInvalidArgument
	}

	ctx := i.ctx
	ctx.Input = data.Inputs
	ctx.Output = data.Outputs
	ctx.Frames = data.Frames
	ctx.ClearParameterChanges()
	for _, c := range data.Changes {
		ctx.AddParameterChange(c)
	}

	if err := i.processor.ProcessAudio(ctx); err != nil {
		i.failed.Add(1)
		return ResultFalse
	}
	return ResultOK
}

// Failures returns the number of process calls that returned an error.
func (i *Instance) Failures() uint64 {
	return i.failed.Load()
}

// Panics returns the number of recovered panics.
func (i *Instance) Panics() uint64 {
	return i.panics.Load()
}

// recoverPanic keeps a processor panic from unwinding into the host.
// Control thread operations are logged; the render thread only counts.
func (i *Instance) recoverPanic(operation string, res *Result) {
	if r := recover(); r != nil {
		i.panics.Add(1)
		if operation != "" {
			i.logger.Error("panic in %s: %v", operation, r)
		}
		*res = ResultFalse
	}
}

// ParameterCount returns the number of parameters.
func (i *Instance) ParameterCount() int32 {
	return i.processor.GetParameters().Count()
}

// ParameterInfo describes the parameter at index.
func (i *Instance) ParameterInfo(index int32) (ParameterInfo, Result) {
	p := i.processor.GetParameters().GetByIndex(index)
	if p == nil {
		return ParameterInfo{}, ResultInvalidArgument
	}
	return ParameterInfo{
		ID:                     p.ID,
		Title:                  p.Name,
		ShortTitle:             p.ShortName,
		Units:                  p.Unit,
		StepCount:              p.StepCount,
		DefaultNormalizedValue: p.DefaultValue,
		Flags:                  p.Flags,
	}, ResultOK
}

func (i *Instance) param(id uint32) *param.Parameter {
	return i.processor.GetParameters().Get(id)
}

// GetParamNormalized returns the current target of a parameter.
func (i *Instance) GetParamNormalized(id uint32) float64 {
	if p := i.param(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// SetParamNormalized publishes a new target. Out of range values are
// clamped. Safe from any thread; the render thread ramps to the value.
func (i *Instance) SetParamNormalized(id uint32, value float64) Result {
	p := i.param(id)
	if p == nil {
		return ResultInvalidArgument
	}
	p.SetValue(value)
	return ResultOK
}

// SetParameter publishes a plain value, for control sources such as the
// location message channel.
func (i *Instance) SetParameter(id uint32, plain float64) error {
	p := i.param(id)
	if p == nil {
		return ErrUnknownParameter
	}
	p.SetPlainValue(plain)
	return nil
}

// ParamStringByValue formats a normalized value for display.
func (i *Instance) ParamStringByValue(id uint32, normalized float64) (string, Result) {
	p := i.param(id)
	if p == nil {
		return "", ResultInvalidArgument
	}
	return p.FormatValue(normalized), ResultOK
}

// ParamValueByString parses a display string to a normalized value.
func (i *Instance) ParamValueByString(id uint32, s string) (float64, Result) {
	p := i.param(id)
	if p == nil {
		return 0, ResultInvalidArgument
	}
	v, err := p.ParseValue(s)
	if err != nil {
		return 0, ResultFalse
	}
	return v, ResultOK
}
