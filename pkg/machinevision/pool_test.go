package machinevision

import (
	"bytes"
	"testing"
)

func TestPool_GetFilledWith(t *testing.T) {
	p := NewPool()
	data := []byte{1, 2, 3, 4, 5, 6}

	f := p.GetFilledWith(data, 2, 1, EncodingRGB)
	if !bytes.Equal(f.Pixels, data) {
		t.Errorf("Pixels = %v, want %v", f.Pixels, data)
	}
	if f.BytesPerPixel != 3 || f.Width != 2 || f.Height != 1 || f.Encoding != EncodingRGB {
		t.Errorf("frame = %+v", f)
	}

	data[0] = 99
	if f.Pixels[0] != 1 {
		t.Error("frame aliases source buffer")
	}

	if p.InUse() != 1 {
		t.Errorf("InUse() = %d, want 1", p.InUse())
	}
	f.Release()
	if p.InUse() != 0 {
		t.Errorf("InUse() after Release = %d, want 0", p.InUse())
	}

	// Double release must not underflow.
	f.Release()
	if p.InUse() != 0 {
		t.Errorf("InUse() after second Release = %d, want 0", p.InUse())
	}
}

func TestPool_ResetsMetadata(t *testing.T) {
	p := NewPool()
	f := p.GetFilledWith([]byte{1, 2, 3, 4}, 2, 2, EncodingGray)
	f.Timestamp = 5
	f.Index = 9
	f.BitDepth = 12
	f.Release()

	g := p.GetFilledWith([]byte{1, 2}, 1, 1, EncodingGray)
	defer g.Release()
	if g.Timestamp != 0 || g.Index != 0 {
		t.Errorf("reused frame kept stamp %v/%d", g.Timestamp, g.Index)
	}
	if g.BitDepth != 0 {
		t.Errorf("reused frame kept bit depth %d", g.BitDepth)
	}
	if g.BytesPerPixel != 2 || len(g.Pixels) != 2 {
		t.Errorf("frame = %d bytes, bpp %d", len(g.Pixels), g.BytesPerPixel)
	}
}

func TestBytesPerPixel(t *testing.T) {
	tests := []struct {
		size, width, height, want int
	}{
		{640 * 480, 640, 480, 1},
		{640 * 480 * 3, 640, 480, 3},
		{640 * 480 * 3 / 2, 640, 480, 0},
		{10, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := bytesPerPixel(tt.size, tt.width, tt.height); got != tt.want {
			t.Errorf("bytesPerPixel(%d, %d, %d) = %d, want %d", tt.size, tt.width, tt.height, got, tt.want)
		}
	}
}
