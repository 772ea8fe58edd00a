package spinnaker

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"
)

// Image is either an acquired image borrowed from the camera's buffer pool or
// an image created by Convert. Acquired images go back to the pool on
// Release; created images are destroyed.
type Image struct {
	h       uintptr
	created bool
}

// Release gives the image back. Calling it more than once is a no-op.
func (i *Image) Release() error {
	if i.h == 0 {
		return nil
	}
	var err error
	if i.created {
		err = check("spinImageDestroy", fnImageDestroy(i.h))
	} else {
		err = check("spinImageRelease", fnImageRelease(i.h))
	}
	i.h = 0
	return err
}

// Incomplete reports whether the transfer of this image was cut short.
func (i *Image) Incomplete() (bool, error) {
	var v uint8
	if err := check("spinImageIsIncomplete", fnImageIsIncomplete(i.h, &v)); err != nil {
		return false, err
	}
	return bool8(v), nil
}

// Status returns the raw spinImageStatus value.
func (i *Image) Status() (int32, error) {
	var v int32
	if err := check("spinImageGetStatus", fnImageGetStatus(i.h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

// PixelFormat returns the PFNC name of the image's pixel format.
func (i *Image) PixelFormat() (PixelFormat, error) {
	name, err := readString("spinImageGetPixelFormatName", func(buf *byte, n *uintptr) int32 {
		return fnImageGetPixelFormatName(i.h, buf, n)
	})
	return PixelFormat(name), err
}

// Width returns the image width in pixels.
func (i *Image) Width() (int, error) {
	var v uintptr
	if err := check("spinImageGetWidth", fnImageGetWidth(i.h, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// Height returns the image height in pixels.
func (i *Image) Height() (int, error) {
	var v uintptr
	if err := check("spinImageGetHeight", fnImageGetHeight(i.h, &v)); err != nil {
		return 0, err
	}
	return int(v), nil
}

// Data returns the image payload without copying. The slice aliases SDK
// memory and is valid only until Release.
func (i *Image) Data() ([]byte, error) {
	var p unsafe.Pointer
	if err := check("spinImageGetData", fnImageGetData(i.h, &p)); err != nil {
		return nil, err
	}
	var size uintptr
	if err := check("spinImageGetImageSize", fnImageGetImageSize(i.h, &size)); err != nil {
		return nil, err
	}
	if p == nil || size == 0 {
		return nil, nil
	}
	return unsafe.Slice((*byte)(p), size), nil
}

// Timestamp returns the device timestamp of the image.
func (i *Image) Timestamp() (time.Duration, error) {
	var v uint64
	if err := check("spinImageGetTimeStamp", fnImageGetTimeStamp(i.h, &v)); err != nil {
		return 0, err
	}
	return time.Duration(v), nil
}

// FrameID returns the device frame counter of the image.
func (i *Image) FrameID() (uint64, error) {
	var v uint64
	if err := check("spinImageGetFrameID", fnImageGetFrameID(i.h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

var (
	processorMu sync.Mutex
	processor   uintptr
)

// Convert returns a new image in format, demosaiced with alg when the source
// is a Bayer format. The caller must Release both images.
func (i *Image) Convert(format PixelFormat, alg ColorProcessing) (*Image, error) {
	value, err := pixelFormatValue(format)
	if err != nil {
		return nil, err
	}

	processorMu.Lock()
	defer processorMu.Unlock()

	if processor == 0 {
		var h uintptr
		if err := check("spinImageProcessorCreate", fnImageProcessorCreate(&h)); err != nil {
			return nil, err
		}
		processor = h
	}
	if err := check("spinImageProcessorSetColorProcessing", fnImageProcessorSetColorProcessing(processor, int32(alg))); err != nil {
		return nil, err
	}

	var dst uintptr
	if err := check("spinImageCreateEmpty", fnImageCreateEmpty(&dst)); err != nil {
		return nil, err
	}
	if err := check("spinImageProcessorConvert", fnImageProcessorConvert(processor, i.h, dst, value)); err != nil {
		_ = fnImageDestroy(dst)
		return nil, err
	}
	return &Image{h: dst, created: true}, nil
}

// The numbering of spinPixelFormatEnums differs between SDK releases, so
// conversion targets are resolved by name against the loaded library.
const pixelFormatScanLimit = 1024

var (
	formatsOnce sync.Once
	formats     map[PixelFormat]int32
)

func pixelFormatValue(format PixelFormat) (int32, error) {
	formatsOnce.Do(scanPixelFormats)
	v, ok := formats[format]
	if !ok {
		return 0, &Error{Func: "spinImageCreateEx", Code: ErrCodeInvalidParameter, Message: fmt.Sprintf("pixel format %s not supported by library", format)}
	}
	return v, nil
}

func scanPixelFormats() {
	formats = make(map[PixelFormat]int32)
	scratch := make([]byte, 64)
	for v := int32(0); v < pixelFormatScanLimit; v++ {
		var h uintptr
		if fnImageCreateEx(&h, 1, 1, 0, 0, v, unsafe.Pointer(&scratch[0])) != int32(ErrCodeSuccess) {
			continue
		}
		img := Image{h: h, created: true}
		name, err := img.PixelFormat()
		_ = img.Release()
		if err == nil && name != "" {
			if _, seen := formats[name]; !seen {
				formats[name] = v
			}
		}
	}
	runtime.KeepAlive(scratch)
}
