package devices

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

func TestTypeName(t *testing.T) {
	if got := New(nil).TypeName(); got != "Spinnaker (FLIR)" {
		t.Errorf("TypeName() = %q", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	got := New(nil).DefaultSettings()
	want := &machinevision.Settings{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DefaultSettings() mismatch (-want +got):\n%s", diff)
	}
}

func TestListDevices(t *testing.T) {
	f := newFixture()
	second := newFakeCamera("20999999")
	second.info.Model = "Grasshopper3 GS3-U3-23S6M"
	f.sys.cameras = append(f.sys.cameras, second)

	got := f.dev.ListDevices()
	want := []machinevision.ListedDevice{
		{
			Settings:     &machinevision.Settings{UseSerialNumber: true, SerialNumber: "20123456"},
			Manufacturer: "FLIR",
			Model:        "Blackfly S BFS-U3-04S2C",
		},
		{
			Settings:     &machinevision.Settings{UseSerialNumber: true, SerialNumber: "20999999"},
			Manufacturer: "FLIR",
			Model:        "Grasshopper3 GS3-U3-23S6M",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListDevices() mismatch (-want +got):\n%s", diff)
	}

	if len(f.sys.lists) != 1 || f.sys.lists[0].closed != 1 {
		t.Errorf("camera list not closed exactly once")
	}
	for _, c := range f.sys.cameras {
		if c.releases != 1 {
			t.Errorf("camera %s released %d times, want 1", c.info.Serial, c.releases)
		}
		if c.inits != 0 {
			t.Errorf("camera %s initialized during enumeration", c.info.Serial)
		}
	}
}

func TestListDevices_NoCameras(t *testing.T) {
	f := newFixture()
	f.sys.cameras = nil

	got := f.dev.ListDevices()
	if got == nil || len(got) != 0 {
		t.Errorf("ListDevices() = %#v, want empty non-nil slice", got)
	}
}

func TestListDevices_Errors(t *testing.T) {
	t.Run("system unavailable", func(t *testing.T) {
		f := newFixture(func(o *Options) {
			o.System = func() (System, error) { return nil, spinnaker.ErrLibraryUnavailable }
		})
		if got := f.dev.ListDevices(); got == nil || len(got) != 0 {
			t.Errorf("ListDevices() = %#v, want empty", got)
		}
	})

	t.Run("enumeration fails", func(t *testing.T) {
		f := newFixture()
		f.sys.err = &spinnaker.Error{Func: "spinSystemGetCameras", Code: spinnaker.ErrCodeIO}
		if got := f.dev.ListDevices(); got == nil || len(got) != 0 {
			t.Errorf("ListDevices() = %#v, want empty", got)
		}
	})

	t.Run("partial list", func(t *testing.T) {
		f := newFixture()
		broken := newFakeCamera("")
		broken.infoErr = &spinnaker.Error{Func: "spinStringGetValue", Code: spinnaker.ErrCodeAccessDenied}
		f.sys.cameras = append(f.sys.cameras, broken)

		got := f.dev.ListDevices()
		if len(got) != 1 || got[0].Settings.SerialNumber != "20123456" {
			t.Errorf("ListDevices() = %#v, want the first camera only", got)
		}
		if broken.releases != 1 {
			t.Errorf("broken camera released %d times, want 1", broken.releases)
		}
	})
}

func TestOpen(t *testing.T) {
	f := newFixture()

	spec, err := f.dev.Open(nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := machinevision.Specification{
		CaptureMode:  machinevision.CaptureContinuous,
		Width:        720,
		Height:       540,
		Manufacturer: "FLIR",
		Model:        "Blackfly S BFS-U3-04S2C",
		Serial:       "20123456",
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("Open() spec mismatch (-want +got):\n%s", diff)
	}

	if f.cam.inits != 1 {
		t.Errorf("Init called %d times, want 1", f.cam.inits)
	}
	if got := f.cam.enums["ExposureAuto"].value; got != "Off" {
		t.Errorf("ExposureAuto = %q, want Off", got)
	}
	if got := f.cam.enums["GainAuto"].value; got != "Off" {
		t.Errorf("GainAuto = %q, want Off", got)
	}
	if got := f.cam.streamEnums["StreamBufferHandlingMode"].value; got != "NewestFirstOverwrite" {
		t.Errorf("StreamBufferHandlingMode = %q, want NewestFirstOverwrite", got)
	}
	if f.dev.State() != StateConfigured {
		t.Errorf("State() = %s, want configured", f.dev.State())
	}
	if f.dev.SessionID() == "" {
		t.Error("SessionID() is empty after Open")
	}
	if f.sys.lists[0].closed != 1 {
		t.Error("camera list not closed after Open")
	}

	wantNames := []string{"AcquisitionFrameRate", "ExposureTime", "Gain", "Gamma", "TriggerMode", "TriggerDelay", FlipParameterName}
	if diff := cmp.Diff(wantNames, parameterNames(f.dev.Parameters())); diff != "" {
		t.Errorf("Parameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_Selection(t *testing.T) {
	tests := []struct {
		name     string
		settings *machinevision.Settings
		want     string
		wantErr  bool
	}{
		{"by index", &machinevision.Settings{DeviceID: 1}, "B", false},
		{"by serial", &machinevision.Settings{UseSerialNumber: true, SerialNumber: "C"}, "C", false},
		{"serial wins over index", &machinevision.Settings{DeviceID: 0, UseSerialNumber: true, SerialNumber: "B"}, "B", false},
		{"index out of range", &machinevision.Settings{DeviceID: 3}, "", true},
		{"negative index", &machinevision.Settings{DeviceID: -1}, "", true},
		{"unknown serial", &machinevision.Settings{UseSerialNumber: true, SerialNumber: "Z"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.sys.cameras = []*fakeCamera{newFakeCamera("A"), newFakeCamera("B"), newFakeCamera("C")}

			spec, err := f.dev.Open(tt.settings)
			if tt.wantErr {
				if !errors.Is(err, machinevision.ErrDeviceOpen) {
					t.Fatalf("Open() error = %v, want device open error", err)
				}
				if f.dev.State() != StateClosed {
					t.Errorf("State() = %s after failed open", f.dev.State())
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if spec.Serial != tt.want {
				t.Errorf("opened serial %q, want %q", spec.Serial, tt.want)
			}
		})
	}
}

func TestOpen_Failures(t *testing.T) {
	vendorErr := &spinnaker.Error{Func: "spinEnumerationSetIntValue", Code: spinnaker.ErrCodeAccessDenied, Message: "node is not writable"}

	tests := []struct {
		name        string
		setup       func(*fakeCamera)
		wantDeinits int
	}{
		{"init fails", func(c *fakeCamera) {
			c.initErr = &spinnaker.Error{Func: "spinCameraInit", Code: spinnaker.ErrCodeResourceInUse}
		}, 0},
		{"exposure auto rejected", func(c *fakeCamera) { c.enums["ExposureAuto"].setErr = vendorErr }, 1},
		{"gain auto missing", func(c *fakeCamera) { delete(c.enums, "GainAuto") }, 1},
		{"stream mode rejected", func(c *fakeCamera) { c.streamEnums["StreamBufferHandlingMode"].setErr = vendorErr }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f.cam)

			_, err := f.dev.Open(nil)
			if !errors.Is(err, machinevision.ErrDeviceOpen) {
				t.Fatalf("Open() error = %v, want device open error", err)
			}
			if f.cam.deinits != tt.wantDeinits {
				t.Errorf("DeInit called %d times, want %d", f.cam.deinits, tt.wantDeinits)
			}
			if f.cam.releases != 1 {
				t.Errorf("Release called %d times, want 1", f.cam.releases)
			}
			if f.dev.State() != StateClosed || len(f.dev.Parameters()) != 0 {
				t.Error("device not left closed after failed open")
			}
		})
	}
}

func TestOpen_VendorErrorDetail(t *testing.T) {
	f := newFixture()
	f.cam.enums["ExposureAuto"].setErr = &spinnaker.Error{Func: "spinEnumerationSetIntValue", Code: spinnaker.ErrCodeAccessDenied, Message: "node is not writable"}

	_, err := f.dev.Open(nil)
	var mvErr *machinevision.Error
	if !errors.As(err, &mvErr) {
		t.Fatalf("Open() error %T, want *machinevision.Error", err)
	}
	if mvErr.Op != "spinEnumerationSetIntValue" || mvErr.Message != "node is not writable" {
		t.Errorf("error = %+v, want vendor function and message", mvErr)
	}
}

func TestOpen_AlreadyOpen(t *testing.T) {
	f := newFixture()
	if _, err := f.dev.Open(nil); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_, err := f.dev.Open(nil)
	if kind, _ := machinevision.KindOf(err); err == nil || kind != machinevision.KindDevice {
		t.Errorf("second Open() error = %v, want device error", err)
	}
	if f.cam.inits != 1 {
		t.Errorf("Init called %d times, want 1", f.cam.inits)
	}
}

func TestOpen_PublishesEvent(t *testing.T) {
	f := newFixture()
	opened := make(chan events.DeviceOpenedEvent, 1)
	unsub := f.bus.Subscribe(func(e events.DeviceOpenedEvent) { opened <- e })
	defer unsub()

	if _, err := f.dev.Open(nil); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	select {
	case e := <-opened:
		if e.Serial != "20123456" || e.SessionID != f.dev.SessionID() {
			t.Errorf("event = %+v", e)
		}
		if len(e.Parameters) != 7 {
			t.Errorf("event lists %d parameters, want 7", len(e.Parameters))
		}
	case <-time.After(time.Second):
		t.Fatal("DeviceOpenedEvent not published")
	}
}

func TestClose(t *testing.T) {
	f := newFixture()
	if err := f.capturing(); err != nil {
		t.Fatal(err)
	}

	if err := f.dev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if f.cam.ends != 1 {
		t.Errorf("EndAcquisition called %d times, want 1", f.cam.ends)
	}
	if f.cam.deinits != 1 || f.cam.releases != 1 {
		t.Errorf("DeInit/Release = %d/%d, want 1/1", f.cam.deinits, f.cam.releases)
	}
	if f.dev.State() != StateClosed {
		t.Errorf("State() = %s, want closed", f.dev.State())
	}
	if len(f.dev.Parameters()) != 0 {
		t.Error("parameters kept after Close")
	}
	if f.dev.SessionID() != "" {
		t.Error("session kept after Close")
	}

	if err := f.dev.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if f.cam.releases != 1 {
		t.Errorf("second Close released camera again")
	}
}

func TestReopenAfterClose(t *testing.T) {
	f := newFixture()
	if _, err := f.dev.Open(nil); err != nil {
		t.Fatal(err)
	}
	first := f.dev.SessionID()
	if err := f.dev.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.dev.Open(nil); err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if f.dev.SessionID() == first {
		t.Error("reopen reused session id")
	}
}

func TestStartStopCapture(t *testing.T) {
	f := newFixture()

	if f.dev.StartCapture() {
		t.Fatal("StartCapture() = true on closed device")
	}

	if _, err := f.dev.Open(nil); err != nil {
		t.Fatal(err)
	}

	states := make(chan events.CaptureStateChangedEvent, 2)
	unsub := f.bus.Subscribe(func(e events.CaptureStateChangedEvent) { states <- e })
	defer unsub()

	if !f.dev.StartCapture() {
		t.Fatal("StartCapture() = false")
	}
	if got := f.cam.enums["AcquisitionMode"].value; got != "Continuous" {
		t.Errorf("AcquisitionMode = %q, want Continuous", got)
	}
	if f.dev.State() != StateCapturing {
		t.Errorf("State() = %s, want capturing", f.dev.State())
	}
	if f.dev.StartCapture() {
		t.Error("StartCapture() = true while already capturing")
	}
	if f.cam.begins != 1 {
		t.Errorf("BeginAcquisition called %d times, want 1", f.cam.begins)
	}

	if err := f.dev.StopCapture(); err != nil {
		t.Fatalf("StopCapture() error = %v", err)
	}
	if err := f.dev.StopCapture(); err != nil {
		t.Errorf("second StopCapture() error = %v, want nil", err)
	}
	if f.cam.ends != 1 {
		t.Errorf("EndAcquisition called %d times, want 1", f.cam.ends)
	}
	if f.dev.State() != StateConfigured {
		t.Errorf("State() = %s, want configured", f.dev.State())
	}

	for _, want := range []bool{true, false} {
		select {
		case e := <-states:
			if e.Capturing != want {
				t.Errorf("Capturing = %v, want %v", e.Capturing, want)
			}
		case <-time.After(time.Second):
			t.Fatal("CaptureStateChangedEvent not published")
		}
	}
}

func TestStartCapture_VendorFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeCamera)
	}{
		{"acquisition mode rejected", func(c *fakeCamera) {
			c.enums["AcquisitionMode"].setErr = &spinnaker.Error{Func: "spinEnumerationSetIntValue", Code: spinnaker.ErrCodeAccessDenied}
		}},
		{"begin fails", func(c *fakeCamera) {
			c.beginErr = &spinnaker.Error{Func: "spinCameraBeginAcquisition", Code: spinnaker.ErrCodeIO}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if _, err := f.dev.Open(nil); err != nil {
				t.Fatal(err)
			}
			tt.setup(f.cam)

			if f.dev.StartCapture() {
				t.Fatal("StartCapture() = true")
			}
			if f.dev.State() != StateConfigured {
				t.Errorf("State() = %s, want configured", f.dev.State())
			}
		})
	}
}

func TestStopCapture_VendorFailure(t *testing.T) {
	f := newFixture()
	if err := f.capturing(); err != nil {
		t.Fatal(err)
	}

	states := make(chan events.CaptureStateChangedEvent, 2)
	unsub := f.bus.Subscribe(func(e events.CaptureStateChangedEvent) { states <- e })
	defer unsub()

	f.cam.endErr = &spinnaker.Error{Func: "spinCameraEndAcquisition", Code: spinnaker.ErrCodeIO}
	err := f.dev.StopCapture()
	if !errors.Is(err, machinevision.ErrDevice) {
		t.Fatalf("StopCapture() error = %v, want device error", err)
	}
	var spinErr *spinnaker.Error
	if !errors.As(err, &spinErr) || spinErr.Code != spinnaker.ErrCodeIO {
		t.Errorf("StopCapture() error = %v, want wrapped vendor error", err)
	}
	if f.dev.State() != StateCapturing {
		t.Errorf("State() = %s, want capturing after failed stop", f.dev.State())
	}

	select {
	case e := <-states:
		t.Errorf("unexpected CaptureStateChangedEvent %+v", e)
	case <-time.After(50 * time.Millisecond):
	}

	f.cam.endErr = nil
	if err := f.dev.StopCapture(); err != nil {
		t.Fatalf("retried StopCapture() error = %v", err)
	}
	if f.dev.State() != StateConfigured || f.cam.ends != 2 {
		t.Errorf("State() = %s after %d EndAcquisition calls", f.dev.State(), f.cam.ends)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateClosed:     "closed",
		StateConfigured: "configured",
		StateCapturing:  "capturing",
		State(9):        "state(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int32(s), got, want)
		}
	}
}

func parameterNames(params []machinevision.Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name()
	}
	return names
}
