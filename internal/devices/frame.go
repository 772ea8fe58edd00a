package devices

import (
	"fmt"
	"time"

	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/internal/metrics"
	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

// GetFrame implements machinevision.Device. It waits up to the frame timeout
// for the next image, demosaics 8-bit Bayer data, copies the pixels into a
// pooled frame and applies the flip flag. The acquired image is released on
// every path once it has been received.
func (s *Spinnaker) GetFrame() (*machinevision.Frame, error) {
	start := time.Now()

	s.mu.Lock()
	frame, err := s.getFrame()
	s.mu.Unlock()

	s.recordFrame(time.Since(start), frame, err)
	return frame, err
}

func (s *Spinnaker) getFrame() (frame *machinevision.Frame, err error) {
	if st := s.State(); st != StateCapturing {
		return nil, machinevision.NewError(machinevision.KindDevice, "GetFrame", fmt.Sprintf("device is %s", st), nil)
	}

	acquired, err := s.camera.NextImage(s.frameTimeout)
	if err != nil {
		if spinnaker.IsTimeout(err) {
			return nil, machinevision.NewError(machinevision.KindFrameTimeout, "GetNextImage",
				fmt.Sprintf("no frame within %s", s.frameTimeout), err)
		}
		return nil, deviceError(machinevision.KindDevice, "GetNextImage", err)
	}
	defer func() {
		relErr := acquired.Release()
		if relErr == nil || err != nil {
			return
		}
		frame.Release()
		frame = nil
		err = deviceError(machinevision.KindDevice, "ReleaseImage", relErr)
	}()

	incomplete, err := acquired.Incomplete()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "IsIncomplete", err)
	}
	if incomplete {
		msg := "Incomplete image"
		if status, statusErr := acquired.Status(); statusErr == nil {
			msg = fmt.Sprintf("Incomplete image (status %d)", status)
		}
		return nil, machinevision.NewError(machinevision.KindIncompleteFrame, "GetNextImage", msg, nil)
	}

	format, err := acquired.PixelFormat()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "GetPixelFormat", err)
	}

	image := acquired
	if needsDemosaic(format) {
		converted, convErr := acquired.Convert(spinnaker.RGB8, spinnaker.ColorProcessingNearestNeighbor)
		if convErr != nil {
			return nil, deviceError(machinevision.KindDevice, "Convert", convErr)
		}
		defer func() {
			if relErr := converted.Release(); relErr != nil {
				s.logger.Warn("Failed to destroy converted image", "error", relErr)
			}
		}()
		image = converted

		format, err = converted.PixelFormat()
		if err != nil {
			return nil, deviceError(machinevision.KindDevice, "GetPixelFormat", err)
		}
	}

	encoding := ToEncoding(format)
	if encoding == machinevision.EncodingUnknown {
		return nil, machinevision.NewError(machinevision.KindUnsupportedPixelFormat, "GetFrame",
			fmt.Sprintf("Pixel format not supported : %s", format), nil)
	}

	width, err := image.Width()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "GetWidth", err)
	}
	height, err := image.Height()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "GetHeight", err)
	}
	data, err := image.Data()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "GetData", err)
	}

	// Stamp from the acquired image; converted images carry no device metadata.
	timestamp, err := acquired.Timestamp()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "GetTimeStamp", err)
	}
	index, err := acquired.FrameID()
	if err != nil {
		return nil, deviceError(machinevision.KindDevice, "GetFrameID", err)
	}

	frame = s.pool.GetFilledWith(data, width, height, encoding)
	if s.flip.Load() {
		if rotErr := frame.Rotate180(); rotErr != nil {
			frame.Release()
			return nil, machinevision.NewError(machinevision.KindUnsupportedPixelFormat, "Rotate180",
				fmt.Sprintf("cannot flip %s: %v", format, rotErr), rotErr)
		}
	}
	frame.BitDepth = significantBits(format)
	frame.Timestamp = timestamp
	frame.Index = index

	return frame, nil
}

func (s *Spinnaker) recordFrame(d time.Duration, frame *machinevision.Frame, err error) {
	sess := s.session()
	if err == nil {
		metrics.ObserveFrame(sess.serial, metrics.ResultOK, d)
		metrics.SetLastFrameIndex(sess.serial, frame.Index)
		return
	}

	kind, _ := machinevision.KindOf(err)
	metrics.ObserveFrame(sess.serial, frameResult(kind), d)

	switch kind {
	case machinevision.KindFrameTimeout, machinevision.KindIncompleteFrame:
		s.logger.Debug("Frame dropped", "session", sess.id, "error", err)
	default:
		s.logger.Warn("Failed to get frame", "session", sess.id, "error", err)
	}
	s.bus.Publish(events.FrameErrorEvent{
		SessionID: sess.id,
		Serial:    sess.serial,
		Kind:      kind.String(),
		Error:     err.Error(),
		Time:      time.Now(),
	})
}

// frameResult maps a frame error kind to its metric label.
func frameResult(kind machinevision.Kind) string {
	switch kind {
	case machinevision.KindFrameTimeout:
		return metrics.ResultTimeout
	case machinevision.KindIncompleteFrame:
		return metrics.ResultIncomplete
	case machinevision.KindUnsupportedPixelFormat:
		return metrics.ResultUnsupportedFormat
	default:
		return metrics.ResultError
	}
}
