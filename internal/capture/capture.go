// Package capture runs the frame grabbing loop against a machinevision.Device
// and hands each frame to a Sink.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/pkg/machinevision"
)

// Sink consumes frames. The frame is released by the loop after Write returns,
// so implementations must not keep references to its pixels.
type Sink interface {
	Write(frame *machinevision.Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(frame *machinevision.Frame) error

// Write implements Sink.
func (f SinkFunc) Write(frame *machinevision.Frame) error { return f(frame) }

// Options controls Run.
type Options struct {
	// Frames stops the loop after this many delivered frames. Zero runs until
	// the context is cancelled.
	Frames int

	// MaxRetries stops the loop after this many consecutive timeouts or
	// incomplete frames. Zero retries forever.
	MaxRetries int

	// OnFrame is called after each delivered frame with the running count.
	OnFrame func(delivered int)

	Logger *slog.Logger
}

// Stats summarizes a Run. Skipped counts delivered frames the sink could not
// convert to an image.
type Stats struct {
	Delivered  int
	Timeouts   int
	Incomplete int
	Skipped    int
}

// ErrStartCapture is returned when the device refuses to start acquisition.
var ErrStartCapture = errors.New("device did not start capturing")

// Run starts capture on dev, which must already be open, and pulls frames
// until opts.Frames have been delivered, ctx is cancelled, or a frame error
// other than a timeout or incomplete frame occurs. Frames the sink cannot
// convert to an image are counted as skipped and do not stop the loop. Capture is stopped before
// Run returns. Cancellation is not an error.
func Run(ctx context.Context, dev machinevision.Device, sink Sink, opts Options) (stats Stats, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger("capture")
	}

	if !dev.StartCapture() {
		return stats, ErrStartCapture
	}
	defer func() {
		if stopErr := dev.StopCapture(); stopErr != nil {
			logger.Error("Failed to stop capture", "error", stopErr)
			if err == nil {
				err = fmt.Errorf("stop capture: %w", stopErr)
			}
		}
	}()

	retries := 0
	for opts.Frames <= 0 || stats.Delivered < opts.Frames {
		if ctx.Err() != nil {
			logger.Info("Capture cancelled", "delivered", stats.Delivered)
			return stats, nil
		}

		frame, frameErr := dev.GetFrame()
		switch {
		case errors.Is(frameErr, machinevision.ErrFrameTimeout):
			stats.Timeouts++
		case errors.Is(frameErr, machinevision.ErrIncompleteFrame):
			stats.Incomplete++
		case frameErr != nil:
			return stats, fmt.Errorf("frame %d: %w", stats.Delivered, frameErr)
		}
		if frameErr != nil {
			retries++
			if opts.MaxRetries > 0 && retries >= opts.MaxRetries {
				return stats, fmt.Errorf("giving up after %d consecutive failures: %w", retries, frameErr)
			}
			continue
		}
		retries = 0

		writeErr := sink.Write(frame)
		frame.Release()
		switch {
		case errors.Is(writeErr, machinevision.ErrNoImageConversion):
			if stats.Skipped == 0 {
				logger.Warn("Skipping frames without image conversion", "error", writeErr)
			}
			stats.Skipped++
		case writeErr != nil:
			return stats, fmt.Errorf("write frame %d: %w", stats.Delivered, writeErr)
		}

		stats.Delivered++
		if opts.OnFrame != nil {
			opts.OnFrame(stats.Delivered)
		}
	}

	logger.Info("Capture complete", "delivered", stats.Delivered, "timeouts", stats.Timeouts, "incomplete", stats.Incomplete, "skipped", stats.Skipped)
	return stats, nil
}
