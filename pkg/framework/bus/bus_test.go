package bus

import (
	"testing"
)

func TestNewMultiChannelConfiguration(t *testing.T) {
	config := NewMultiChannelConfiguration(6)

	if got := config.GetBusCount(DirectionInput); got != 1 {
		t.Errorf("Expected 1 input bus, got %d", got)
	}
	if got := config.GetBusCount(DirectionOutput); got != 1 {
		t.Errorf("Expected 1 output bus, got %d", got)
	}

	inBus := config.GetBusInfo(DirectionInput, 0)
	if inBus == nil {
		t.Fatal("Expected input bus to exist")
	}
	if inBus.ChannelCount != 1 || inBus.Name != "Mono In" {
		t.Errorf("Unexpected input bus %+v", *inBus)
	}

	outBus := config.GetBusInfo(DirectionOutput, 0)
	if outBus == nil {
		t.Fatal("Expected output bus to exist")
	}
	if outBus.ChannelCount != 6 || outBus.Name != "6-Channel Out" {
		t.Errorf("Unexpected output bus %+v", *outBus)
	}

	if config.GetBusInfo(DirectionOutput, 1) != nil {
		t.Error("Expected no second output bus")
	}
}

func TestSetOutputChannelCount(t *testing.T) {
	config := NewMultiChannelConfiguration(6)

	if err := config.SetOutputChannelCount(2); err != nil {
		t.Fatalf("SetOutputChannelCount failed: %v", err)
	}
	if config.OutputChannelCount() != 2 {
		t.Errorf("Expected 2 output channels, got %d", config.OutputChannelCount())
	}
	if name := config.GetBusInfo(DirectionOutput, 0).Name; name != "Stereo Out" {
		t.Errorf("Expected Stereo Out, got %s", name)
	}
	if config.InputChannelCount() != 1 {
		t.Errorf("Input should stay mono, got %d", config.InputChannelCount())
	}

	if err := config.SetOutputChannelCount(0); err == nil {
		t.Error("Expected error for zero channels")
	}
	if config.OutputChannelCount() != 2 {
		t.Error("Rejected renegotiation must not change the bus")
	}
}
