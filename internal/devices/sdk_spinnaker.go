package devices

import (
	"errors"
	"sync"
	"time"

	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

var logLoaded sync.Once

// SpinnakerSystem returns the process-wide Spinnaker runtime as a System.
// The library is loaded on first use.
func SpinnakerSystem() (System, error) {
	sys, err := spinnaker.GetSystem()
	if err != nil {
		return nil, err
	}
	logLoaded.Do(func() {
		logging.GetLogger("spinnaker").Info("Spinnaker runtime loaded", "library", spinnaker.LibraryName())
	})
	return spinSystem{sys: sys}, nil
}

type spinSystem struct {
	sys *spinnaker.System
}

func (s spinSystem) Cameras() (CameraList, error) {
	l, err := s.sys.Cameras()
	if err != nil {
		return nil, err
	}
	return spinCameraList{list: l}, nil
}

type spinCameraList struct {
	list *spinnaker.CameraList
}

func (l spinCameraList) Len() (int, error) { return l.list.Len() }

func (l spinCameraList) Get(index int) (Camera, error) {
	c, err := l.list.Get(index)
	if err != nil {
		return nil, err
	}
	return &spinCamera{cam: c}, nil
}

func (l spinCameraList) BySerial(serial string) (Camera, error) {
	c, err := l.list.BySerial(serial)
	if err != nil {
		return nil, err
	}
	return &spinCamera{cam: c}, nil
}

func (l spinCameraList) Close() error { return l.list.Close() }

type spinCamera struct {
	cam *spinnaker.Camera
}

func (c *spinCamera) Info() (CameraInfo, error) {
	tl, err := c.cam.TLDeviceNodeMap()
	if err != nil {
		return CameraInfo{}, err
	}
	vendor, vendorErr := tl.String("DeviceVendorName")
	model, modelErr := tl.String("DeviceModelName")
	serial, serialErr := tl.String("DeviceSerialNumber")
	return CameraInfo{Vendor: vendor, Model: model, Serial: serial}, errors.Join(vendorErr, modelErr, serialErr)
}

func (c *spinCamera) Init() error    { return c.cam.Init() }
func (c *spinCamera) DeInit() error  { return c.cam.DeInit() }
func (c *spinCamera) Release() error { return c.cam.Release() }

func (c *spinCamera) Size() (int, int, error) {
	nm, err := c.cam.NodeMap()
	if err != nil {
		return 0, 0, err
	}
	w, err := nm.Integer("Width")
	if err != nil {
		return 0, 0, err
	}
	h, err := nm.Integer("Height")
	if err != nil {
		return 0, 0, err
	}
	return int(w), int(h), nil
}

func (c *spinCamera) FloatNode(name string) (FloatNode, error) {
	nm, err := c.cam.NodeMap()
	if err != nil {
		return nil, err
	}
	n, err := nm.Float(name)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *spinCamera) BoolNode(name string) (BoolNode, error) {
	nm, err := c.cam.NodeMap()
	if err != nil {
		return nil, err
	}
	n, err := nm.Bool(name)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *spinCamera) EnumNode(name string) (EnumNode, error) {
	nm, err := c.cam.NodeMap()
	if err != nil {
		return nil, err
	}
	n, err := nm.Enum(name)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *spinCamera) StreamEnumNode(name string) (EnumNode, error) {
	nm, err := c.cam.TLStreamNodeMap()
	if err != nil {
		return nil, err
	}
	n, err := nm.Enum(name)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *spinCamera) BeginAcquisition() error { return c.cam.BeginAcquisition() }
func (c *spinCamera) EndAcquisition() error   { return c.cam.EndAcquisition() }

func (c *spinCamera) NextImage(timeout time.Duration) (Image, error) {
	img, err := c.cam.NextImage(timeout)
	if err != nil {
		return nil, err
	}
	return spinImage{img}, nil
}

type spinImage struct {
	*spinnaker.Image
}

func (i spinImage) Convert(format spinnaker.PixelFormat, alg spinnaker.ColorProcessing) (Image, error) {
	out, err := i.Image.Convert(format, alg)
	if err != nil {
		return nil, err
	}
	return spinImage{out}, nil
}
