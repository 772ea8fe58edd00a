package machinevision

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a device error.
type Kind int

// Error kinds.
const (
	KindDevice                 Kind = iota // Translated vendor runtime failure
	KindDeviceOpen                         // Device could not be resolved or initialized
	KindFrameTimeout                       // No frame within the acquisition timeout
	KindIncompleteFrame                    // Hardware flagged the frame as partial
	KindUnsupportedPixelFormat             // Native pixel format has no canonical encoding
	KindParameterBind                      // A single parameter could not be registered
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDevice:
		return "device"
	case KindDeviceOpen:
		return "device_open"
	case KindFrameTimeout:
		return "frame_timeout"
	case KindIncompleteFrame:
		return "incomplete_frame"
	case KindUnsupportedPixelFormat:
		return "unsupported_pixel_format"
	case KindParameterBind:
		return "parameter_bind"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type returned across the device boundary.
// Op names the operation or vendor function that failed.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrDevice                 = &Error{Kind: KindDevice}
	ErrDeviceOpen             = &Error{Kind: KindDeviceOpen}
	ErrFrameTimeout           = &Error{Kind: KindFrameTimeout}
	ErrIncompleteFrame        = &Error{Kind: KindIncompleteFrame}
	ErrUnsupportedPixelFormat = &Error{Kind: KindUnsupportedPixelFormat}
	ErrParameterBind          = &Error{Kind: KindParameterBind}
)

// NewError creates a new device error.
func NewError(kind Kind, op, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s : %s", e.Kind, e.Op, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or KindDevice and false if err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindDevice, false
}
