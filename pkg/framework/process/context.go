// Package process provides the per-block processing context handed to a
// processor by the host wrapper.
package process

import (
	"github.com/jabt/multipan/pkg/framework/param"
)

// ParameterChange is a host automation point inside the current block.
type ParameterChange struct {
	ParamID      uint32
	Value        float64 // normalized
	SampleOffset int
}

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Input      [][]float32
	Output     [][]float32
	Frames     int // frames to process; 0 derives the count from the buffers
	SampleRate float64

	// Pre-allocated work buffer
	workBuffer []float32

	changes []ParameterChange

	params *param.Registry
}

// NewContext creates a new process context with pre-allocated buffers.
// maxChanges bounds the parameter changes queued per block.
func NewContext(maxBlockSize, maxChanges int, params *param.Registry) *Context {
	return &Context{
		workBuffer: make([]float32, maxBlockSize),
		changes:    make([]ParameterChange, 0, maxChanges),
		params:     params,
	}
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if c.Frames > 0 {
		return c.Frames
	}
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns a zeroed slice of the pre-allocated work buffer sized
// to the current block, or nil when the block exceeds its capacity.
func (c *Context) WorkBuffer() []float32 {
	n := c.NumSamples()
	if n > len(c.workBuffer) {
		return nil
	}
	buf := c.workBuffer[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		for i := range c.Output[ch] {
			c.Output[ch][i] = 0
		}
	}
}

// AddParameterChange queues a host automation point for this block. It
// reports false, dropping the change, when the queue is full.
func (c *Context) AddParameterChange(change ParameterChange) bool {
	if len(c.changes) == cap(c.changes) {
		return false
	}
	c.changes = append(c.changes, change)
	return true
}

// ParameterChanges returns the queued changes in arrival order. The slice
// is only valid until ClearParameterChanges.
func (c *Context) ParameterChanges() []ParameterChange {
	return c.changes
}

// ClearParameterChanges empties the queue, keeping its capacity.
func (c *Context) ClearParameterChanges() {
	c.changes = c.changes[:0]
}
