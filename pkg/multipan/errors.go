package multipan

import "github.com/jabt/multipan/pkg/dsp/pan"

// Error codes returned by the engine. They are plain integers so the
// render path can return them without allocating.
type Error int

const (
	// ErrBufferGeometryMismatch is returned by Render when the number of
	// output buffers differs from the layout, or a buffer is shorter than
	// frameCount. Nothing is written.
	ErrBufferGeometryMismatch Error = iota + 1
	// ErrNotConfigured is returned by Render before the first Configure.
	ErrNotConfigured
	// ErrInvalidOption is returned by NewEngine for an unusable option.
	ErrInvalidOption
)

// ErrInvalidFormat is returned by Configure for a channel count below one
// or a non-positive sample rate.
const ErrInvalidFormat = pan.ErrInvalidFormat

func (e Error) Error() string {
	switch e {
	case ErrBufferGeometryMismatch:
		return "buffer geometry mismatch"
	case ErrNotConfigured:
		return "engine not configured"
	case ErrInvalidOption:
		return "invalid option"
	default:
		return "unknown error"
	}
}
