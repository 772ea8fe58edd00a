package capture

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/smazurov/spincam/pkg/machinevision"
)

// ErrNoSnapshot is returned by Snapshot.PNG before the first frame.
var ErrNoSnapshot = errors.New("no frame captured yet")

// Snapshot is a Sink that keeps only the most recent frame, converted to an
// image, for on-demand encoding by readers on other goroutines.
type Snapshot struct {
	mu    sync.RWMutex
	img   image.Image
	index uint64
	at    time.Time
}

// Write implements Sink.
func (s *Snapshot) Write(frame *machinevision.Frame) error {
	img, err := frame.Image()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.img, s.index, s.at = img, frame.Index, time.Now()
	s.mu.Unlock()
	return nil
}

// PNG encodes the latest frame and returns it with its device frame index and
// the time it was stored.
func (s *Snapshot) PNG() ([]byte, uint64, time.Time, error) {
	s.mu.RLock()
	img, index, at := s.img, s.index, s.at
	s.mu.RUnlock()

	if img == nil {
		return nil, 0, time.Time{}, ErrNoSnapshot
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, time.Time{}, err
	}
	return buf.Bytes(), index, at, nil
}

// Tee writes each frame to every sink in order and stops at the first error.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(frame *machinevision.Frame) error {
		for _, s := range sinks {
			if err := s.Write(frame); err != nil {
				return err
			}
		}
		return nil
	})
}
