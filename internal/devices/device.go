package devices

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/internal/metrics"
	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

// DefaultFrameTimeout is how long GetFrame waits for the SDK to deliver an image.
const DefaultFrameTimeout = 1000 * time.Millisecond

// State is the lifecycle state of a Spinnaker device.
type State int32

// Lifecycle states.
const (
	StateClosed State = iota
	StateConfigured
	StateCapturing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConfigured:
		return "configured"
	case StateCapturing:
		return "capturing"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Options configures a Spinnaker device. The zero value uses the real SDK.
type Options struct {
	// System returns the vendor runtime. Defaults to SpinnakerSystem.
	System func() (System, error)

	// Pool receives copied frames. Defaults to a new machinevision.Pool.
	Pool machinevision.FramePool

	// Bus receives device events. Optional.
	Bus *events.Bus

	// Logger defaults to the "devices" module logger.
	Logger *slog.Logger

	// FrameTimeout defaults to DefaultFrameTimeout.
	FrameTimeout time.Duration

	// ExtraBoolParameters names boolean vendor nodes registered after the
	// standard parameters, e.g. "ReverseX".
	ExtraBoolParameters []string
}

type session struct {
	id     string
	serial string
}

// Spinnaker is a machinevision.Device backed by the FLIR Spinnaker SDK.
type Spinnaker struct {
	system              func() (System, error)
	pool                machinevision.FramePool
	bus                 *events.Bus
	logger              *slog.Logger
	frameTimeout        time.Duration
	extraBoolParameters []string

	// mu serializes lifecycle calls and GetFrame.
	mu     sync.Mutex
	state  atomic.Int32
	camera Camera
	spec   machinevision.Specification

	current atomic.Pointer[session]

	paramsMu sync.RWMutex
	params   []machinevision.Parameter

	flip atomic.Bool
}

var _ machinevision.Device = (*Spinnaker)(nil)

// New creates a closed Spinnaker device.
func New(opts *Options) *Spinnaker {
	if opts == nil {
		opts = &Options{}
	}
	s := &Spinnaker{
		system:              opts.System,
		pool:                opts.Pool,
		bus:                 opts.Bus,
		logger:              opts.Logger,
		frameTimeout:        opts.FrameTimeout,
		extraBoolParameters: opts.ExtraBoolParameters,
	}
	if s.system == nil {
		s.system = SpinnakerSystem
	}
	if s.pool == nil {
		s.pool = machinevision.NewPool()
	}
	if s.logger == nil {
		s.logger = logging.GetLogger("devices")
	}
	if s.frameTimeout <= 0 {
		s.frameTimeout = DefaultFrameTimeout
	}
	return s
}

// TypeName implements machinevision.Device.
func (s *Spinnaker) TypeName() string {
	return spinnaker.TypeName
}

// State returns the current lifecycle state.
func (s *Spinnaker) State() State {
	return State(s.state.Load())
}

// DefaultSettings implements machinevision.Device.
func (s *Spinnaker) DefaultSettings() *machinevision.Settings {
	return &machinevision.Settings{}
}

// ListDevices implements machinevision.Device. Enumeration errors are logged
// and the cameras read so far are returned.
func (s *Spinnaker) ListDevices() []machinevision.ListedDevice {
	devices := []machinevision.ListedDevice{}

	sys, err := s.system()
	if err != nil {
		s.logger.Error("Failed to get Spinnaker system", "error", err)
		return devices
	}
	list, err := sys.Cameras()
	if err != nil {
		s.logger.Error("Failed to enumerate cameras", "error", err)
		return devices
	}
	defer func() {
		if err := list.Close(); err != nil {
			s.logger.Warn("Failed to release camera list", "error", err)
		}
	}()

	n, err := list.Len()
	if err != nil {
		s.logger.Error("Failed to read camera count", "error", err)
		return devices
	}

	for i := range n {
		cam, err := list.Get(i)
		if err != nil {
			s.logger.Error("Failed to get camera", "index", i, "error", err)
			return devices
		}
		info, err := cam.Info()
		if relErr := cam.Release(); relErr != nil {
			s.logger.Warn("Failed to release camera", "index", i, "error", relErr)
		}
		if err != nil {
			s.logger.Error("Failed to read camera identification", "index", i, "error", err)
			return devices
		}

		settings := s.DefaultSettings()
		settings.SerialNumber = info.Serial
		settings.UseSerialNumber = true
		devices = append(devices, machinevision.ListedDevice{
			Settings:     settings,
			Manufacturer: info.Vendor,
			Model:        info.Model,
		})
	}

	return devices
}

// Open implements machinevision.Device.
func (s *Spinnaker) Open(settings *machinevision.Settings) (machinevision.Specification, error) {
	if settings == nil {
		settings = s.DefaultSettings()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.State(); st != StateClosed {
		return machinevision.Specification{}, machinevision.NewError(machinevision.KindDevice, "Open", fmt.Sprintf("device is %s", st), nil)
	}

	cam, err := s.resolve(settings)
	if err != nil {
		return machinevision.Specification{}, deviceError(machinevision.KindDeviceOpen, "Open", err)
	}

	if err := cam.Init(); err != nil {
		s.abandon(cam, false)
		return machinevision.Specification{}, deviceError(machinevision.KindDeviceOpen, "Init", err)
	}

	spec, err := readSpecification(cam)
	if err != nil {
		s.abandon(cam, true)
		return machinevision.Specification{}, deviceError(machinevision.KindDeviceOpen, "Open", err)
	}

	for _, name := range []string{"ExposureAuto", "GainAuto"} {
		node, err := cam.EnumNode(name)
		if err == nil {
			err = node.SetSymbolic("Off")
		}
		if err != nil {
			s.abandon(cam, true)
			return machinevision.Specification{}, deviceError(machinevision.KindDeviceOpen, name, err)
		}
	}

	sess := &session{id: uuid.NewString(), serial: spec.Serial}
	s.flip.Store(false)

	params, err := s.registerParameters(cam, spec.Serial)
	if err != nil {
		s.abandon(cam, true)
		return machinevision.Specification{}, deviceError(machinevision.KindDeviceOpen, "StreamBufferHandlingMode", err)
	}

	s.camera = cam
	s.spec = spec
	s.current.Store(sess)
	s.paramsMu.Lock()
	s.params = params
	s.paramsMu.Unlock()
	s.state.Store(int32(StateConfigured))

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name()
	}
	s.logger.Info("Camera opened",
		"session", sess.id,
		"serial", spec.Serial,
		"model", spec.Model,
		"width", spec.Width,
		"height", spec.Height,
		"parameters", len(params))
	s.bus.Publish(events.DeviceOpenedEvent{
		SessionID:    sess.id,
		Serial:       spec.Serial,
		Manufacturer: spec.Manufacturer,
		Model:        spec.Model,
		Width:        spec.Width,
		Height:       spec.Height,
		Parameters:   names,
	})

	return spec, nil
}

func (s *Spinnaker) resolve(settings *machinevision.Settings) (Camera, error) {
	sys, err := s.system()
	if err != nil {
		return nil, err
	}
	list, err := sys.Cameras()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := list.Close(); err != nil {
			s.logger.Warn("Failed to release camera list", "error", err)
		}
	}()

	if settings.UseSerialNumber {
		cam, err := list.BySerial(settings.SerialNumber)
		if err != nil {
			return nil, fmt.Errorf("camera with serial %q: %w", settings.SerialNumber, err)
		}
		return cam, nil
	}

	n, err := list.Len()
	if err != nil {
		return nil, err
	}
	if settings.DeviceID < 0 || settings.DeviceID >= n {
		return nil, fmt.Errorf("no camera at index %d (%d found)", settings.DeviceID, n)
	}
	cam, err := list.Get(settings.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("camera at index %d: %w", settings.DeviceID, err)
	}
	return cam, nil
}

func readSpecification(cam Camera) (machinevision.Specification, error) {
	width, height, err := cam.Size()
	if err != nil {
		return machinevision.Specification{}, err
	}
	info, err := cam.Info()
	if err != nil {
		return machinevision.Specification{}, err
	}
	return machinevision.Specification{
		CaptureMode:  machinevision.CaptureContinuous,
		Width:        width,
		Height:       height,
		Manufacturer: info.Vendor,
		Model:        info.Model,
		Serial:       info.Serial,
	}, nil
}

// abandon releases a camera whose open failed.
func (s *Spinnaker) abandon(cam Camera, initialized bool) {
	if initialized {
		if err := cam.DeInit(); err != nil {
			s.logger.Warn("Failed to de-initialize camera", "error", err)
		}
	}
	if err := cam.Release(); err != nil {
		s.logger.Warn("Failed to release camera", "error", err)
	}
}

// Close implements machinevision.Device. Closing a closed device is a no-op.
func (s *Spinnaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.State()
	if st == StateClosed {
		return nil
	}
	sess := s.session()

	var errs []error
	if st == StateCapturing {
		if err := s.camera.EndAcquisition(); err != nil {
			s.logger.Warn("Failed to end acquisition", "session", sess.id, "error", err)
		}
		metrics.SetCapturing(sess.serial, false)
	}
	errs = append(errs, s.camera.DeInit(), s.camera.Release())

	s.camera = nil
	s.spec = machinevision.Specification{}
	s.paramsMu.Lock()
	s.params = nil
	s.paramsMu.Unlock()
	s.current.Store(nil)
	s.state.Store(int32(StateClosed))

	err := errors.Join(errs...)
	ev := events.DeviceClosedEvent{SessionID: sess.id, Serial: sess.serial}
	if err != nil {
		ev.Error = err.Error()
		s.logger.Error("Camera closed with errors", "session", sess.id, "serial", sess.serial, "error", err)
	} else {
		s.logger.Info("Camera closed", "session", sess.id, "serial", sess.serial)
	}
	s.bus.Publish(ev)

	return deviceError(machinevision.KindDevice, "Close", err)
}

// StartCapture implements machinevision.Device.
func (s *Spinnaker) StartCapture() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session()
	if st := s.State(); st != StateConfigured {
		s.logger.Warn("Cannot start capture", "state", st.String())
		return false
	}

	mode, err := s.camera.EnumNode("AcquisitionMode")
	if err == nil {
		err = mode.SetSymbolic("Continuous")
	}
	if err == nil {
		err = s.camera.BeginAcquisition()
	}
	if err != nil {
		s.logger.Error("Failed to start capture", "session", sess.id, "error", deviceError(machinevision.KindDevice, "StartCapture", err))
		return false
	}

	s.state.Store(int32(StateCapturing))
	metrics.SetCapturing(sess.serial, true)
	s.bus.Publish(events.CaptureStateChangedEvent{SessionID: sess.id, Serial: sess.serial, Capturing: true})
	s.logger.Info("Capture started", "session", sess.id)
	return true
}

// StopCapture implements machinevision.Device. It is a no-op unless
// capturing. When the camera refuses to end acquisition the device stays in
// the capturing state and the vendor error is returned.
func (s *Spinnaker) StopCapture() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session()
	if st := s.State(); st != StateCapturing {
		s.logger.Debug("Capture not running", "state", st.String())
		return nil
	}

	if err := s.camera.EndAcquisition(); err != nil {
		return deviceError(machinevision.KindDevice, "EndAcquisition", err)
	}

	s.state.Store(int32(StateConfigured))
	metrics.SetCapturing(sess.serial, false)
	s.bus.Publish(events.CaptureStateChangedEvent{SessionID: sess.id, Serial: sess.serial, Capturing: false})
	s.logger.Info("Capture stopped", "session", sess.id)
	return nil
}

// Specification returns the specification of the open device.
func (s *Spinnaker) Specification() (machinevision.Specification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec, s.State() != StateClosed
}

// SessionID returns the id assigned by the last successful Open, or "" when closed.
func (s *Spinnaker) SessionID() string {
	return s.session().id
}

func (s *Spinnaker) session() session {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return session{}
}
