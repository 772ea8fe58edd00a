// Package metrics provides Prometheus metrics for camera acquisition.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame results.
const (
	ResultOK                = "ok"
	ResultTimeout           = "frame_timeout"
	ResultIncomplete        = "incomplete_frame"
	ResultUnsupportedFormat = "unsupported_pixel_format"
	ResultError             = "device"
)

var (
	framesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spincam",
		Subsystem: "acquisition",
		Name:      "frames_total",
		Help:      "Frame requests by result",
	}, []string{"serial", "result"})

	frameDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spincam",
		Subsystem: "acquisition",
		Name:      "frame_duration_seconds",
		Help:      "Time spent in GetFrame including the SDK wait",
		Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"serial"})

	capturing = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "spincam",
		Subsystem: "acquisition",
		Name:      "capturing",
		Help:      "1 while the camera is acquiring",
	}, []string{"serial"})

	lastFrameIndex = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "spincam",
		Subsystem: "acquisition",
		Name:      "last_frame_index",
		Help:      "Device frame counter of the last delivered frame",
	}, []string{"serial"})

	parameterBindFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spincam",
		Subsystem: "device",
		Name:      "parameter_bind_failures_total",
		Help:      "Parameters that could not be bound on open",
	}, []string{"serial", "parameter"})
)

// ObserveFrame records the outcome and duration of one GetFrame call.
func ObserveFrame(serial, result string, d time.Duration) {
	framesTotal.WithLabelValues(serial, result).Inc()
	frameDuration.WithLabelValues(serial).Observe(d.Seconds())
}

// SetLastFrameIndex records the device frame counter of a delivered frame.
func SetLastFrameIndex(serial string, index uint64) {
	lastFrameIndex.WithLabelValues(serial).Set(float64(index))
}

// SetCapturing records whether serial is acquiring.
func SetCapturing(serial string, on bool) {
	v := 0.0
	if on {
		v = 1
	}
	capturing.WithLabelValues(serial).Set(v)
}

// ParameterBindFailed counts a parameter skipped while opening serial.
func ParameterBindFailed(serial, parameter string) {
	parameterBindFailures.WithLabelValues(serial, parameter).Inc()
}

// DeleteDeviceMetrics removes all series of serial.
func DeleteDeviceMetrics(serial string) {
	labels := prometheus.Labels{"serial": serial}
	framesTotal.DeletePartialMatch(labels)
	frameDuration.DeletePartialMatch(labels)
	capturing.DeletePartialMatch(labels)
	lastFrameIndex.DeletePartialMatch(labels)
	parameterBindFailures.DeletePartialMatch(labels)
}
