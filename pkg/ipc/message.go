package ipc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/jabt/multipan/pkg/display"
)

// ParameterMessageSize is the encoded size of a parameter message:
// a little-endian uint32 parameter ID followed by a float64 value.
const ParameterMessageSize = 12

// WindowMessageSize is the encoded size of a window frame message: four
// little-endian float64 values x, y, width, height.
const WindowMessageSize = 32

// ParameterSink accepts plain parameter values, e.g. a plugin instance.
type ParameterSink interface {
	SetParameter(id uint32, value float64) error
}

// EncodeParameterMessage appends a parameter message to dst.
func EncodeParameterMessage(dst []byte, id uint32, value float64) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, id)
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(value))
}

// DecodeParameterMessage parses a parameter message.
func DecodeParameterMessage(b []byte) (id uint32, value float64, err error) {
	if len(b) < ParameterMessageSize {
		return 0, 0, fmt.Errorf("parameter message of %d bytes: %w", len(b), ErrShortMessage)
	}
	id = binary.LittleEndian.Uint32(b)
	value = math.Float64frombits(binary.LittleEndian.Uint64(b[4:]))
	return id, value, nil
}

// EncodeWindowMessage appends a window frame message to dst.
func EncodeWindowMessage(dst []byte, frame display.Rect) []byte {
	for _, v := range [4]float64{frame.X, frame.Y, frame.Width, frame.Height} {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}

// DecodeWindowMessage parses a window frame message.
func DecodeWindowMessage(b []byte) (display.Rect, error) {
	if len(b) < WindowMessageSize {
		return display.Rect{}, fmt.Errorf("window message of %d bytes: %w", len(b), ErrShortMessage)
	}
	f := func(i int) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return display.Rect{X: f(0), Y: f(1), Width: f(2), Height: f(3)}, nil
}

// ParameterListener forwards parameter messages to Sink.
type ParameterListener struct {
	Sink ParameterSink
}

// Receive decodes payload and sets the parameter.
func (l ParameterListener) Receive(payload []byte) error {
	id, value, err := DecodeParameterMessage(payload)
	if err != nil {
		return err
	}
	return l.Sink.SetParameter(id, value)
}

// LocationListener turns window frame messages into location updates:
// the window's horizontal position across Arrangement becomes the value
// of parameter ParamID.
type LocationListener struct {
	Arrangement display.Arrangement
	Sink        ParameterSink
	ParamID     uint32
}

// Receive decodes payload and moves the location parameter.
func (l LocationListener) Receive(payload []byte) error {
	frame, err := DecodeWindowMessage(payload)
	if err != nil {
		return err
	}
	loc, err := l.Arrangement.HorizontalPosition(frame)
	if err != nil {
		return err
	}
	return l.Sink.SetParameter(l.ParamID, loc)
}
