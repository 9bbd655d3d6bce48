// Package bus describes the audio buses a processor exposes to the host.
package bus

import "fmt"

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Info contains bus configuration
type Info struct {
	Direction    Direction
	ChannelCount int32
	Name         string
	IsActive     bool
}

// Configuration lists the main audio buses of a processor.
type Configuration struct {
	audioBuses []Info
}

// NewMultiChannelConfiguration creates a mono input feeding one output bus
// with outputs channels, one per speaker of the array.
func NewMultiChannelConfiguration(outputs int32) *Configuration {
	return &Configuration{
		audioBuses: []Info{
			{
				Direction:    DirectionInput,
				ChannelCount: 1,
				Name:         "Mono In",
				IsActive:     true,
			},
			{
				Direction:    DirectionOutput,
				ChannelCount: outputs,
				Name:         outputName(outputs),
				IsActive:     true,
			},
		},
	}
}

func outputName(channels int32) string {
	switch channels {
	case 1:
		return "Mono Out"
	case 2:
		return "Stereo Out"
	default:
		return fmt.Sprintf("%d-Channel Out", channels)
	}
}

// GetBusCount returns the number of buses in a direction
func (c *Configuration) GetBusCount(direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(direction Direction, index int32) *Info {
	busIndex := int32(0)
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction {
			if busIndex == index {
				return &c.audioBuses[i]
			}
			busIndex++
		}
	}
	return nil
}

// InputChannelCount returns the channel count of the main input bus.
func (c *Configuration) InputChannelCount() int {
	if b := c.GetBusInfo(DirectionInput, 0); b != nil {
		return int(b.ChannelCount)
	}
	return 0
}

// OutputChannelCount returns the channel count of the main output bus.
func (c *Configuration) OutputChannelCount() int {
	if b := c.GetBusInfo(DirectionOutput, 0); b != nil {
		return int(b.ChannelCount)
	}
	return 0
}

// SetOutputChannelCount records a renegotiated output channel count.
func (c *Configuration) SetOutputChannelCount(channels int32) error {
	if channels < 1 {
		return fmt.Errorf("output channel count %d must be at least 1", channels)
	}
	b := c.GetBusInfo(DirectionOutput, 0)
	if b == nil {
		return fmt.Errorf("no output bus")
	}
	b.ChannelCount = channels
	b.Name = outputName(channels)
	return nil
}
