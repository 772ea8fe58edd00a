package devices

import (
	"time"

	"github.com/smazurov/spincam/pkg/spinnaker"
)

// The adapter talks to the vendor runtime only through these interfaces.
// sdk_spinnaker.go implements them on top of pkg/spinnaker.

// System enumerates cameras.
type System interface {
	Cameras() (CameraList, error)
}

// CameraList is an enumeration snapshot. Close releases it.
type CameraList interface {
	Len() (int, error)
	Get(index int) (Camera, error)
	BySerial(serial string) (Camera, error)
	Close() error
}

// CameraInfo identifies a camera.
type CameraInfo struct {
	Vendor string
	Model  string
	Serial string
}

// Camera is a single vendor camera handle.
type Camera interface {
	// Info reads identification from the transport layer. It works before Init.
	Info() (CameraInfo, error)

	Init() error
	DeInit() error
	Release() error

	// Size reads the Width and Height nodes.
	Size() (width, height int, err error)

	FloatNode(name string) (FloatNode, error)
	BoolNode(name string) (BoolNode, error)
	EnumNode(name string) (EnumNode, error)
	StreamEnumNode(name string) (EnumNode, error)

	BeginAcquisition() error
	EndAcquisition() error
	NextImage(timeout time.Duration) (Image, error)
}

// FloatNode is a numeric vendor control.
type FloatNode interface {
	Name() string
	Value() (float64, error)
	SetValue(v float64) error
	Min() (float64, error)
	Max() (float64, error)
	Unit() (string, error)
}

// BoolNode is a boolean vendor control.
type BoolNode interface {
	Name() string
	Value() (bool, error)
	SetValue(v bool) error
}

// EnumNode is an enumeration vendor control addressed by symbolic entry names.
type EnumNode interface {
	Name() string
	Symbolic() (string, error)
	SetSymbolic(symbolic string) error
}

// Image is an acquired or converted vendor image.
type Image interface {
	Incomplete() (bool, error)
	Status() (int32, error)
	PixelFormat() (spinnaker.PixelFormat, error)
	Width() (int, error)
	Height() (int, error)
	Data() ([]byte, error)
	Timestamp() (time.Duration, error)
	FrameID() (uint64, error)
	Convert(format spinnaker.PixelFormat, alg spinnaker.ColorProcessing) (Image, error)
	Release() error
}
