package machinevision

import (
	"sync"
	"sync/atomic"
)

// FramePool provides reusable frames.
type FramePool interface {
	// GetFilledWith returns an available frame holding a copy of data.
	GetFilledWith(data []byte, width, height int, encoding PixelEncoding) *Frame

	// Put returns a frame to the pool.
	Put(frame *Frame)
}

// Pool is a FramePool backed by sync.Pool. Pixel buffers are reused when
// their capacity is large enough for the next frame.
type Pool struct {
	frames    sync.Pool
	allocated atomic.Int64
	inUse     atomic.Int64
}

// NewPool creates an empty frame pool.
func NewPool() *Pool {
	p := &Pool{}
	p.frames.New = func() any {
		p.allocated.Add(1)
		return &Frame{}
	}
	return p
}

// GetFilledWith implements FramePool.
func (p *Pool) GetFilledWith(data []byte, width, height int, encoding PixelEncoding) *Frame {
	f, _ := p.frames.Get().(*Frame)
	if f == nil {
		f = &Frame{}
	}
	p.inUse.Add(1)

	f.Pixels = append(f.Pixels[:0], data...)
	f.Width = width
	f.Height = height
	f.Encoding = encoding
	f.BytesPerPixel = bytesPerPixel(len(data), width, height)
	f.BitDepth = 0
	f.Timestamp = 0
	f.Index = 0
	f.pool = p
	return f
}

// Put implements FramePool.
func (p *Pool) Put(frame *Frame) {
	if frame == nil {
		return
	}
	frame.pool = nil
	p.inUse.Add(-1)
	p.frames.Put(frame)
}

// InUse returns the number of frames currently borrowed.
func (p *Pool) InUse() int64 {
	return p.inUse.Load()
}

// Allocated returns the number of frames the pool has created.
func (p *Pool) Allocated() int64 {
	return p.allocated.Load()
}

// bytesPerPixel returns the whole-byte pixel size, or 0 for packed layouts.
func bytesPerPixel(size, width, height int) int {
	n := width * height
	if n <= 0 || size%n != 0 {
		return 0
	}
	return size / n
}
