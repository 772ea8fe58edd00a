package machinevision

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cause := errors.New("spinCameraGetNextImageEx: timeout")
	err := fmt.Errorf("grab: %w", NewError(KindFrameTimeout, "GetNextImage", "no frame within 1s", cause))

	if !errors.Is(err, ErrFrameTimeout) {
		t.Error("errors.Is(err, ErrFrameTimeout) = false")
	}
	if errors.Is(err, ErrIncompleteFrame) {
		t.Error("errors.Is(err, ErrIncompleteFrame) = true")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrapped: %w", NewError(KindIncompleteFrame, "", "partial", nil)))
	if !ok || kind != KindIncompleteFrame {
		t.Errorf("KindOf() = %s, %v", kind, ok)
	}

	kind, ok = KindOf(errors.New("plain"))
	if ok || kind != KindDevice {
		t.Errorf("KindOf(plain) = %s, %v; want device, false", kind, ok)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{NewError(KindDevice, "spinImageGetData", "no image data", nil), "device: spinImageGetData : no image data"},
		{NewError(KindUnsupportedPixelFormat, "", "Pixel format not supported : YUV422_8", nil), "unsupported_pixel_format: Pixel format not supported : YUV422_8"},
		{NewError(KindDeviceOpen, "Init", "", errors.New("busy")), "device_open: Init : busy"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindDevice:                 "device",
		KindDeviceOpen:             "device_open",
		KindFrameTimeout:           "frame_timeout",
		KindIncompleteFrame:        "incomplete_frame",
		KindUnsupportedPixelFormat: "unsupported_pixel_format",
		KindParameterBind:          "parameter_bind",
		Kind(42):                   "kind(42)",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
