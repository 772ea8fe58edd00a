package capture

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/smazurov/spincam/pkg/machinevision"
)

// PNGSink writes each frame to Dir as <Prefix>_<index>.png, named after the
// device frame counter. Files appear atomically.
type PNGSink struct {
	Dir    string
	Prefix string
}

// NewPNGSink creates dir if needed.
func NewPNGSink(dir, prefix string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	if prefix == "" {
		prefix = "frame"
	}
	return &PNGSink{Dir: dir, Prefix: prefix}, nil
}

// Path returns the file name used for frame.
func (s *PNGSink) Path(frame *machinevision.Frame) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%08d.png", s.Prefix, frame.Index))
}

// Write implements Sink.
func (s *PNGSink) Write(frame *machinevision.Frame) error {
	img, err := frame.Image()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, ".frame-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(frame))
}
