package machinevision

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"time"
)

// PixelEncoding is the canonical pixel layout of a Frame.
type PixelEncoding int

// Canonical encodings.
const (
	EncodingUnknown PixelEncoding = iota
	EncodingGray
	EncodingRGB
	EncodingRGBA
	EncodingBGR
	EncodingBGRA
)

// String returns the encoding name.
func (e PixelEncoding) String() string {
	switch e {
	case EncodingGray:
		return "gray"
	case EncodingRGB:
		return "rgb"
	case EncodingRGBA:
		return "rgba"
	case EncodingBGR:
		return "bgr"
	case EncodingBGRA:
		return "bgra"
	default:
		return "unknown"
	}
}

// Channels returns the number of color channels, or 0 for EncodingUnknown.
func (e PixelEncoding) Channels() int {
	switch e {
	case EncodingGray:
		return 1
	case EncodingRGB, EncodingBGR:
		return 3
	case EncodingRGBA, EncodingBGRA:
		return 4
	default:
		return 0
	}
}

// Frame is a pixel buffer borrowed from a FramePool.
//
// Pixels are tightly packed rows. BytesPerPixel is zero when the source used
// a packed sub-byte layout (for example Mono12p) that has no whole-byte pixel size.
// BitDepth is the number of significant low bits in each 16-bit sample
// (10 for Mono10); zero means the samples use the whole container.
type Frame struct {
	Pixels        []byte
	Width         int
	Height        int
	Encoding      PixelEncoding
	BytesPerPixel int
	BitDepth      int
	Timestamp     time.Duration // Device capture time
	Index         uint64        // Device frame counter, may have gaps

	pool FramePool
}

// Release returns the frame to the pool it was borrowed from.
func (f *Frame) Release() {
	if f == nil || f.pool == nil {
		return
	}
	pool := f.pool
	f.pool = nil
	pool.Put(f)
}

// Rotate180 rotates the pixel buffer by 180 degrees in place.
// Applying it twice restores the original arrangement.
func (f *Frame) Rotate180() error {
	bpp := f.BytesPerPixel
	if bpp <= 0 {
		return fmt.Errorf("cannot rotate %dx%d frame with packed pixel layout", f.Width, f.Height)
	}

	n := f.Width * f.Height
	if len(f.Pixels) < n*bpp {
		return fmt.Errorf("pixel buffer too small: have %d bytes, need %d", len(f.Pixels), n*bpp)
	}

	p := f.Pixels
	if bpp == 1 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			p[i], p[j] = p[j], p[i]
		}
		return nil
	}

	tmp := make([]byte, bpp)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a := p[i*bpp : (i+1)*bpp]
		b := p[j*bpp : (j+1)*bpp]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
	return nil
}

// ErrNoImageConversion is returned by Image for layouts that cannot be
// expressed as an image.Image, such as packed sub-byte formats.
var ErrNoImageConversion = errors.New("no image conversion")

// Image converts the frame to an image.Image for encoding.
//
// Supported layouts are 8 and 16-bit gray, 8 and 16-bit RGB(A) and BGR(A),
// and 5-6-5 RGB/BGR. Samples with fewer significant bits than their
// container are scaled to the full 16-bit range.
func (f *Frame) Image() (image.Image, error) {
	rect := image.Rect(0, 0, f.Width, f.Height)
	n := f.Width * f.Height
	ch := f.Encoding.Channels()

	if ch == 0 || f.BytesPerPixel <= 0 {
		return nil, f.conversionError()
	}
	if len(f.Pixels) < n*f.BytesPerPixel {
		return nil, fmt.Errorf("pixel buffer too small: have %d bytes, need %d", len(f.Pixels), n*f.BytesPerPixel)
	}

	switch {
	case f.Encoding == EncodingGray && f.BytesPerPixel == 1:
		img := image.NewGray(rect)
		copy(img.Pix, f.Pixels[:n])
		return img, nil

	case f.Encoding == EncodingGray && f.BytesPerPixel == 2:
		// Sensor data is little endian; image.Gray16 stores big endian.
		img := image.NewGray16(rect)
		for i := 0; i < n; i++ {
			v := f.sample16(f.Pixels[i*2:])
			binary.BigEndian.PutUint16(img.Pix[i*2:], v)
		}
		return img, nil

	case f.BytesPerPixel == ch:
		img := image.NewNRGBA(rect)
		r, b := f.redBlue()
		for i := 0; i < n; i++ {
			src := f.Pixels[i*ch : i*ch+ch]
			dst := img.Pix[i*4 : i*4+4]
			dst[0] = src[r]
			dst[1] = src[1]
			dst[2] = src[b]
			if ch == 4 {
				dst[3] = src[3]
			} else {
				dst[3] = 0xff
			}
		}
		return img, nil

	case f.BytesPerPixel == 2*ch:
		img := image.NewNRGBA64(rect)
		r, b := f.redBlue()
		for i := 0; i < n; i++ {
			src := f.Pixels[i*2*ch : (i+1)*2*ch]
			dst := img.Pix[i*8 : i*8+8]
			binary.BigEndian.PutUint16(dst[0:], f.sample16(src[r*2:]))
			binary.BigEndian.PutUint16(dst[2:], f.sample16(src[2:]))
			binary.BigEndian.PutUint16(dst[4:], f.sample16(src[b*2:]))
			if ch == 4 {
				binary.BigEndian.PutUint16(dst[6:], f.sample16(src[6:]))
			} else {
				binary.BigEndian.PutUint16(dst[6:], 0xffff)
			}
		}
		return img, nil

	case ch == 3 && f.BytesPerPixel == 2:
		// 5-6-5 packed into a little endian word, first channel in the low bits.
		img := image.NewNRGBA(rect)
		r, b := f.redBlue()
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(f.Pixels[i*2:])
			var c [3]uint8
			c[0] = scaleTo8(v&0x1f, 5)
			c[1] = scaleTo8(v>>5&0x3f, 6)
			c[2] = scaleTo8(v>>11, 5)
			dst := img.Pix[i*4 : i*4+4]
			dst[0] = c[r]
			dst[1] = c[1]
			dst[2] = c[b]
			dst[3] = 0xff
		}
		return img, nil

	default:
		return nil, f.conversionError()
	}
}

func (f *Frame) conversionError() error {
	return fmt.Errorf("%w for %s frame with %d bytes per pixel", ErrNoImageConversion, f.Encoding, f.BytesPerPixel)
}

// redBlue returns the source channel offsets of red and blue.
func (f *Frame) redBlue() (r, b int) {
	if f.Encoding == EncodingBGR || f.Encoding == EncodingBGRA {
		return 2, 0
	}
	return 0, 2
}

// sample16 reads a little endian sample and scales it to 16 bits.
func (f *Frame) sample16(p []byte) uint16 {
	v := binary.LittleEndian.Uint16(p)
	if f.BitDepth <= 0 || f.BitDepth >= 16 {
		return v
	}
	full := uint32(1)<<f.BitDepth - 1
	if uint32(v) > full {
		return 0xffff
	}
	return uint16(uint32(v) * 0xffff / full)
}

func scaleTo8(v uint16, bits uint) uint8 {
	full := uint32(1)<<bits - 1
	return uint8(uint32(v) * 0xff / full)
}
