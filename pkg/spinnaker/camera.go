package spinnaker

import "time"

// Camera is a reference to a physical camera obtained from a CameraList.
type Camera struct {
	h uintptr
}

// Init opens the camera and makes its GenICam node map available.
func (c *Camera) Init() error {
	return check("spinCameraInit", fnCameraInit(c.h))
}

// DeInit closes the camera. The reference stays valid until Release.
func (c *Camera) DeInit() error {
	return check("spinCameraDeInit", fnCameraDeInit(c.h))
}

// Release drops the reference. Calling it more than once is a no-op.
func (c *Camera) Release() error {
	if c.h == 0 {
		return nil
	}
	err := check("spinCameraRelease", fnCameraRelease(c.h))
	c.h = 0
	return err
}

// NodeMap returns the GenICam node map. The camera must be initialized.
func (c *Camera) NodeMap() (*NodeMap, error) {
	var h uintptr
	if err := check("spinCameraGetNodeMap", fnCameraGetNodeMap(c.h, &h)); err != nil {
		return nil, err
	}
	return &NodeMap{h: h}, nil
}

// TLDeviceNodeMap returns the transport layer device node map, which holds
// identification such as DeviceSerialNumber. It is readable before Init.
func (c *Camera) TLDeviceNodeMap() (*NodeMap, error) {
	var h uintptr
	if err := check("spinCameraGetTLDeviceNodeMap", fnCameraGetTLDeviceNodeMap(c.h, &h)); err != nil {
		return nil, err
	}
	return &NodeMap{h: h}, nil
}

// TLStreamNodeMap returns the transport layer stream node map, which holds
// buffer handling settings.
func (c *Camera) TLStreamNodeMap() (*NodeMap, error) {
	var h uintptr
	if err := check("spinCameraGetTLStreamNodeMap", fnCameraGetTLStreamNodeMap(c.h, &h)); err != nil {
		return nil, err
	}
	return &NodeMap{h: h}, nil
}

// BeginAcquisition starts streaming.
func (c *Camera) BeginAcquisition() error {
	return check("spinCameraBeginAcquisition", fnCameraBeginAcquisition(c.h))
}

// EndAcquisition stops streaming.
func (c *Camera) EndAcquisition() error {
	return check("spinCameraEndAcquisition", fnCameraEndAcquisition(c.h))
}

// NextImage waits up to timeout for the next image. Timeouts are reported as
// an *Error for which IsTimeout is true. The returned image must be released.
func (c *Camera) NextImage(timeout time.Duration) (*Image, error) {
	var h uintptr
	ms := uint64(timeout / time.Millisecond)
	if err := check("spinCameraGetNextImageEx", fnCameraGetNextImageEx(c.h, ms, &h)); err != nil {
		return nil, err
	}
	return &Image{h: h}, nil
}
