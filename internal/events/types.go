package events

import "time"

// Event type constants for kelindar/event.
const (
	TypeDeviceOpened uint32 = iota + 1
	TypeDeviceClosed
	TypeCaptureStateChanged
	TypeFrameError
	TypeParameterChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// DeviceOpenedEvent is published after a camera was opened and configured.
type DeviceOpenedEvent struct {
	SessionID    string   `json:"session_id"`
	Serial       string   `json:"serial"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Parameters   []string `json:"parameters"` // Names of the parameters that could be bound
}

// Type returns the event type identifier for DeviceOpenedEvent.
func (e DeviceOpenedEvent) Type() uint32 { return TypeDeviceOpened }

// DeviceClosedEvent is published after a camera was released.
type DeviceClosedEvent struct {
	SessionID string `json:"session_id"`
	Serial    string `json:"serial"`
	Error     string `json:"error,omitempty"` // Empty unless releasing the camera failed
}

// Type returns the event type identifier for DeviceClosedEvent.
func (e DeviceClosedEvent) Type() uint32 { return TypeDeviceClosed }

// CaptureStateChangedEvent is published when acquisition starts or stops.
type CaptureStateChangedEvent struct {
	SessionID string `json:"session_id"`
	Serial    string `json:"serial"`
	Capturing bool   `json:"capturing"`
}

// Type returns the event type identifier for CaptureStateChangedEvent.
func (e CaptureStateChangedEvent) Type() uint32 { return TypeCaptureStateChanged }

// FrameErrorEvent is published when GetFrame fails.
type FrameErrorEvent struct {
	SessionID string    `json:"session_id"`
	Serial    string    `json:"serial"`
	Kind      string    `json:"kind"` // machinevision error kind, e.g. "frame_timeout"
	Error     string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}

// Type returns the event type identifier for FrameErrorEvent.
func (e FrameErrorEvent) Type() uint32 { return TypeFrameError }

// ParameterChangedEvent is published when a parameter was written.
type ParameterChangedEvent struct {
	SessionID string `json:"session_id"`
	Serial    string `json:"serial"`
	Name      string `json:"name"`
	Value     any    `json:"value"`
}

// Type returns the event type identifier for ParameterChangedEvent.
func (e ParameterChangedEvent) Type() uint32 { return TypeParameterChanged }
