package machinevision

// Device is implemented by vendor adapters.
type Device interface {
	// TypeName returns a fixed human-readable adapter identifier.
	TypeName() string

	// ListDevices returns the hardware currently visible to the vendor runtime.
	// It never fails: enumeration errors are logged and a partial list returned.
	ListDevices() []ListedDevice

	// DefaultSettings returns settings that open the first device by index.
	DefaultSettings() *Settings

	// Open connects to a device and registers its parameters.
	Open(settings *Settings) (Specification, error)

	// Close releases the device connection.
	Close() error

	// StartCapture begins acquisition. A false return is recoverable.
	StartCapture() bool

	// StopCapture ends acquisition. On error the device keeps capturing.
	StopCapture() error

	// GetFrame blocks until the next frame arrives or the acquisition timeout elapses.
	GetFrame() (*Frame, error)

	// Parameters returns the ordered parameter collection registered by Open.
	Parameters() []Parameter
}

// CaptureMode describes how a device delivers frames.
type CaptureMode string

// CaptureContinuous is a free-running stream.
const CaptureContinuous CaptureMode = "continuous"

// Settings selects which device Open connects to.
type Settings struct {
	DeviceID        int    `toml:"index"`
	UseSerialNumber bool   `toml:"use_serial_number"`
	SerialNumber    string `toml:"serial"`
}

// ListedDevice is a device discovered during enumeration, before it is opened.
type ListedDevice struct {
	Settings     *Settings
	Manufacturer string
	Model        string
}

// Specification describes the fixed capabilities of an opened device.
type Specification struct {
	CaptureMode  CaptureMode
	Width        int
	Height       int
	Manufacturer string
	Model        string
	Serial       string
}
