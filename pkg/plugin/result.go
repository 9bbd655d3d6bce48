package plugin

import "fmt"

// Result is the status code returned to the host.
type Result int32

// Result codes, numbered like VST3 tresult values.
const (
	ResultOK              Result = 0
	ResultFalse           Result = 1
	ResultInvalidArgument Result = 2
	ResultNotInitialized  Result = 3
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultFalse:
		return "false"
	case ResultInvalidArgument:
		return "invalid argument"
	case ResultNotInitialized:
		return "not initialized"
	default:
		return fmt.Sprintf("result(%d)", int32(r))
	}
}

// Error codes for wrapper level failures
type Error int

const (
	ErrInvalidFourCC Error = iota + 1
	ErrUnknownParameter
)

func (e Error) Error() string {
	switch e {
	case ErrInvalidFourCC:
		return "four character code must be exactly 4 bytes"
	case ErrUnknownParameter:
		return "unknown parameter"
	default:
		return "unknown error"
	}
}

// FourCC packs a four character code such as a component subtype into a
// big-endian uint32.
func FourCC(code string) (uint32, error) {
	if len(code) != 4 {
		return 0, fmt.Errorf("%q: %w", code, ErrInvalidFourCC)
	}
	return uint32(code[0])<<24 | uint32(code[1])<<16 | uint32(code[2])<<8 | uint32(code[3]), nil
}
