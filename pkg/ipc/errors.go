package ipc

import "errors"

// ErrorCode is the last error posted by the control core.
type ErrorCode uint32

// Error codes.
const (
	NoError ErrorCode = iota
	InvalidOperatingMode
	InvalidModule
	CommandQueueFull
	InvalidWaveform
)

var (
	// ErrInvalidOperatingMode indicates the command requires another operating mode.
	ErrInvalidOperatingMode = errors.New("invalid operating mode")
	// ErrInvalidModule indicates a bad digital processing module configuration.
	ErrInvalidModule = errors.New("invalid dp module")
	// ErrCommandQueueFull indicates an unrecognized or overlapping command pattern.
	ErrCommandQueueFull = errors.New("command queue full")
	// ErrInvalidWaveform indicates a waveform payload that doesn't fit a curve block.
	ErrInvalidWaveform = errors.New("invalid waveform payload")
	// ErrUnknownErrorCode indicates an error code not defined.
	ErrUnknownErrorCode = errors.New("unknown error code")
)

// Err maps the code to an error, nil for NoError.
func (c ErrorCode) Err() error {
	switch c {
	case NoError:
		return nil
	case InvalidOperatingMode:
		return ErrInvalidOperatingMode
	case InvalidModule:
		return ErrInvalidModule
	case CommandQueueFull:
		return ErrCommandQueueFull
	case InvalidWaveform:
		return ErrInvalidWaveform
	}
	return ErrUnknownErrorCode
}

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NoError"
	case InvalidOperatingMode:
		return "InvalidOperatingMode"
	case InvalidModule:
		return "InvalidModule"
	case CommandQueueFull:
		return "CommandQueueFull"
	case InvalidWaveform:
		return "InvalidWaveform"
	}
	return "ErrorCode(?)"
}
