// Package plugin is the host-facing wrapper: it turns host calls (setup,
// format negotiation, parameter edits, process) into calls on a Processor
// and reports the outcome as a result code.
package plugin

import (
	"github.com/jabt/multipan/pkg/framework/bus"
	"github.com/jabt/multipan/pkg/framework/param"
	"github.com/jabt/multipan/pkg/framework/plugin"
	"github.com/jabt/multipan/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new, exclusively owned processor
	CreateProcessor() (Processor, error)
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called when the host announces its processing setup
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes one block. It must not allocate, block or
	// log; failures are returned and reported to the host as a result code.
	ProcessAudio(ctx *process.Context) error

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// FormatNegotiator is implemented by processors whose output channel
// count follows the host's speaker arrangement.
type FormatNegotiator interface {
	SetOutputChannels(channels int32) error
}
