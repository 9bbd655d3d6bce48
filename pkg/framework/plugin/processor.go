// Package plugin provides plugin metadata and a base processor that takes
// care of the bookkeeping every processor repeats.
package plugin

import (
	"github.com/jabt/multipan/pkg/framework/bus"
	"github.com/jabt/multipan/pkg/framework/param"
)

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	params       *param.Registry
	buses        *bus.Configuration
	sampleRate   float64
	maxBlockSize int32
	active       bool

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
	onReset      func()
}

// NewBaseProcessor creates a base processor exposing params on buses. A nil
// bus configuration defaults to mono in, stereo out; nil params to an
// empty registry.
func NewBaseProcessor(buses *bus.Configuration, params *param.Registry) *BaseProcessor {
	if buses == nil {
		buses = bus.NewMultiChannelConfiguration(2)
	}
	if params == nil {
		params = param.NewRegistry()
	}

	return &BaseProcessor{
		params: params,
		buses:  buses,
	}
}

// Initialize records the processing setup and runs the OnInitialize callback
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if b.onInitialize != nil {
		if err := b.onInitialize(sampleRate, maxBlockSize); err != nil {
			return err
		}
	}

	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize
	return nil
}

// GetParameters returns the parameter registry
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// GetBuses returns the bus configuration
func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// SetActive is called when processing starts or stops. Deactivation runs the
// OnReset callback first.
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.onReset != nil {
		b.onReset()
	}

	if b.onSetActive != nil {
		if err := b.onSetActive(active); err != nil {
			return err
		}
	}

	b.active = active
	return nil
}

// IsActive reports whether the host has activated processing
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// GetLatencySamples returns 0; panning adds no latency
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns 0
func (b *BaseProcessor) GetTailSamples() int32 {
	return 0
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the largest block the host announced
func (b *BaseProcessor) MaxBlockSize() int32 {
	return b.maxBlockSize
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}
