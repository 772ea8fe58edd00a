package devices

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

func notAvailable(name string) error {
	return &spinnaker.Error{Func: "spinNodeMapGetNode", Code: spinnaker.ErrCodeNotAvailable, Message: fmt.Sprintf("node %s not found", name)}
}

type fakeSystem struct {
	cameras []*fakeCamera
	err     error
	lists   []*fakeList
}

func (s *fakeSystem) Cameras() (CameraList, error) {
	if s.err != nil {
		return nil, s.err
	}
	l := &fakeList{cameras: s.cameras}
	s.lists = append(s.lists, l)
	return l, nil
}

type fakeList struct {
	cameras []*fakeCamera
	closed  int
}

func (l *fakeList) Len() (int, error) { return len(l.cameras), nil }

func (l *fakeList) Get(index int) (Camera, error) {
	if index < 0 || index >= len(l.cameras) {
		return nil, &spinnaker.Error{Func: "spinCameraListGet", Code: spinnaker.ErrCodeInvalidParameter}
	}
	return l.cameras[index], nil
}

func (l *fakeList) BySerial(serial string) (Camera, error) {
	for _, c := range l.cameras {
		if c.info.Serial == serial {
			return c, nil
		}
	}
	return nil, &spinnaker.Error{Func: "spinCameraListGetBySerial", Code: spinnaker.ErrCodeInvalidHandle, Message: "no camera"}
}

func (l *fakeList) Close() error {
	l.closed++
	return nil
}

type nextImage struct {
	img *fakeImage
	err error
}

type fakeCamera struct {
	info          CameraInfo
	infoErr       error
	width, height int

	floats      map[string]*fakeFloat
	bools       map[string]*fakeBool
	enums       map[string]*fakeEnum
	streamEnums map[string]*fakeEnum

	initErr  error
	beginErr error
	endErr   error
	images   []nextImage

	inits, deinits, releases int
	begins, ends             int
}

func newFakeCamera(serial string) *fakeCamera {
	return &fakeCamera{
		info:   CameraInfo{Vendor: "FLIR", Model: "Blackfly S BFS-U3-04S2C", Serial: serial},
		width:  720,
		height: 540,
		floats: map[string]*fakeFloat{
			"AcquisitionFrameRate": {name: "AcquisitionFrameRate", value: 30, min: 1, max: 522, unit: "Hz"},
			"ExposureTime":         {name: "ExposureTime", value: 5000, min: 6, max: 30000000, unit: "us"},
			"Gain":                 {name: "Gain", value: 0, min: 0, max: 47.99, unit: "dB"},
			"Gamma":                {name: "Gamma", value: 0.8, min: 0.25, max: 4},
			"TriggerDelay":         {name: "TriggerDelay", value: 9, min: 9, max: 65520, unit: "us"},
		},
		bools: map[string]*fakeBool{
			"ReverseX": {name: "ReverseX"},
		},
		enums: map[string]*fakeEnum{
			"ExposureAuto":    {name: "ExposureAuto", value: "Continuous"},
			"GainAuto":        {name: "GainAuto", value: "Continuous"},
			"TriggerMode":     {name: "TriggerMode", value: "Off"},
			"AcquisitionMode": {name: "AcquisitionMode", value: "SingleFrame"},
		},
		streamEnums: map[string]*fakeEnum{
			"StreamBufferHandlingMode": {name: "StreamBufferHandlingMode", value: "OldestFirst"},
		},
	}
}

func (c *fakeCamera) Info() (CameraInfo, error) { return c.info, c.infoErr }

func (c *fakeCamera) Init() error {
	c.inits++
	return c.initErr
}

func (c *fakeCamera) DeInit() error {
	c.deinits++
	return nil
}

func (c *fakeCamera) Release() error {
	c.releases++
	return nil
}

func (c *fakeCamera) Size() (int, int, error) { return c.width, c.height, nil }

func (c *fakeCamera) FloatNode(name string) (FloatNode, error) {
	if n, ok := c.floats[name]; ok {
		return n, nil
	}
	return nil, notAvailable(name)
}

func (c *fakeCamera) BoolNode(name string) (BoolNode, error) {
	if n, ok := c.bools[name]; ok {
		return n, nil
	}
	return nil, notAvailable(name)
}

func (c *fakeCamera) EnumNode(name string) (EnumNode, error) {
	if n, ok := c.enums[name]; ok {
		return n, nil
	}
	return nil, notAvailable(name)
}

func (c *fakeCamera) StreamEnumNode(name string) (EnumNode, error) {
	if n, ok := c.streamEnums[name]; ok {
		return n, nil
	}
	return nil, notAvailable(name)
}

func (c *fakeCamera) BeginAcquisition() error {
	c.begins++
	return c.beginErr
}

func (c *fakeCamera) EndAcquisition() error {
	c.ends++
	return c.endErr
}

func (c *fakeCamera) NextImage(time.Duration) (Image, error) {
	if len(c.images) == 0 {
		return nil, &spinnaker.Error{Func: "spinCameraGetNextImageEx", Code: spinnaker.ErrCodeTimeout}
	}
	next := c.images[0]
	c.images = c.images[1:]
	if next.err != nil {
		return nil, next.err
	}
	return next.img, nil
}

type fakeFloat struct {
	name     string
	value    float64
	min, max float64
	unit     string
	unitErr  error
	setErr   error
	writes   []float64
}

func (n *fakeFloat) Name() string            { return n.name }
func (n *fakeFloat) Value() (float64, error) { return n.value, nil }
func (n *fakeFloat) Min() (float64, error)   { return n.min, nil }
func (n *fakeFloat) Max() (float64, error)   { return n.max, nil }
func (n *fakeFloat) Unit() (string, error)   { return n.unit, n.unitErr }

func (n *fakeFloat) SetValue(v float64) error {
	if n.setErr != nil {
		return n.setErr
	}
	n.writes = append(n.writes, v)
	n.value = v
	return nil
}

type fakeBool struct {
	name  string
	value bool
}

func (n *fakeBool) Name() string         { return n.name }
func (n *fakeBool) Value() (bool, error) { return n.value, nil }

func (n *fakeBool) SetValue(v bool) error {
	n.value = v
	return nil
}

type fakeEnum struct {
	name   string
	value  string
	setErr error
}

func (n *fakeEnum) Name() string              { return n.name }
func (n *fakeEnum) Symbolic() (string, error) { return n.value, nil }

func (n *fakeEnum) SetSymbolic(symbolic string) error {
	if n.setErr != nil {
		return n.setErr
	}
	n.value = symbolic
	return nil
}

type fakeImage struct {
	format        spinnaker.PixelFormat
	width, height int
	data          []byte
	incomplete    bool
	status        int32
	timestamp     time.Duration
	frameID       uint64

	dataErr    error
	releaseErr error
	releases   int

	converted    *fakeImage
	convertErr   error
	convertedTo  spinnaker.PixelFormat
	convertedAlg spinnaker.ColorProcessing
}

func (i *fakeImage) Incomplete() (bool, error)                   { return i.incomplete, nil }
func (i *fakeImage) Status() (int32, error)                      { return i.status, nil }
func (i *fakeImage) PixelFormat() (spinnaker.PixelFormat, error) { return i.format, nil }
func (i *fakeImage) Width() (int, error)                         { return i.width, nil }
func (i *fakeImage) Height() (int, error)                        { return i.height, nil }
func (i *fakeImage) Data() ([]byte, error)                       { return i.data, i.dataErr }
func (i *fakeImage) Timestamp() (time.Duration, error)           { return i.timestamp, nil }
func (i *fakeImage) FrameID() (uint64, error)                    { return i.frameID, nil }

func (i *fakeImage) Convert(format spinnaker.PixelFormat, alg spinnaker.ColorProcessing) (Image, error) {
	i.convertedTo = format
	i.convertedAlg = alg
	if i.convertErr != nil {
		return nil, i.convertErr
	}
	return i.converted, nil
}

func (i *fakeImage) Release() error {
	i.releases++
	return i.releaseErr
}

type fixture struct {
	sys  *fakeSystem
	cam  *fakeCamera
	pool *machinevision.Pool
	bus  *events.Bus
	dev  *Spinnaker
}

func newFixture(opts ...func(*Options)) *fixture {
	cam := newFakeCamera("20123456")
	sys := &fakeSystem{cameras: []*fakeCamera{cam}}
	pool := machinevision.NewPool()
	bus := events.New()

	o := &Options{
		System: func() (System, error) { return sys, nil },
		Pool:   pool,
		Bus:    bus,
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(o)
	}
	return &fixture{sys: sys, cam: cam, pool: pool, bus: bus, dev: New(o)}
}

// capturing opens the fake camera and starts acquisition.
func (f *fixture) capturing() error {
	if _, err := f.dev.Open(nil); err != nil {
		return err
	}
	if !f.dev.StartCapture() {
		return fmt.Errorf("StartCapture failed")
	}
	return nil
}
