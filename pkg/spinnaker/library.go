package spinnaker

import (
	"bytes"
	"unsafe"
)

// C entry points. They are bound by load and stay nil until it succeeds.
var (
	fnErrorGetLastMessage func(buf *byte, n *uintptr) int32

	fnSystemGetInstance     func(sys *uintptr) int32
	fnSystemGetCameras      func(sys, list uintptr) int32
	fnCameraListCreateEmpty func(list *uintptr) int32
	fnCameraListDestroy     func(list uintptr) int32
	fnCameraListClear       func(list uintptr) int32
	fnCameraListGetSize     func(list uintptr, n *uintptr) int32
	fnCameraListGet         func(list, index uintptr, cam *uintptr) int32
	fnCameraListGetBySerial func(list uintptr, serial string, cam *uintptr) int32

	fnCameraRelease            func(cam uintptr) int32
	fnCameraInit               func(cam uintptr) int32
	fnCameraDeInit             func(cam uintptr) int32
	fnCameraGetNodeMap         func(cam uintptr, nm *uintptr) int32
	fnCameraGetTLDeviceNodeMap func(cam uintptr, nm *uintptr) int32
	fnCameraGetTLStreamNodeMap func(cam uintptr, nm *uintptr) int32
	fnCameraBeginAcquisition   func(cam uintptr) int32
	fnCameraEndAcquisition     func(cam uintptr) int32
	fnCameraGetNextImageEx     func(cam uintptr, timeoutMs uint64, img *uintptr) int32

	fnNodeMapGetNode  func(nm uintptr, name string, node *uintptr) int32
	fnNodeIsAvailable func(node uintptr, ok *uint8) int32
	fnNodeIsReadable  func(node uintptr, ok *uint8) int32

	fnFloatGetValue func(node uintptr, v *float64) int32
	fnFloatSetValue func(node uintptr, v float64) int32
	fnFloatGetMin   func(node uintptr, v *float64) int32
	fnFloatGetMax   func(node uintptr, v *float64) int32
	fnFloatGetUnit  func(node uintptr, buf *byte, n *uintptr) int32

	fnIntegerGetValue func(node uintptr, v *int64) int32
	fnBooleanGetValue func(node uintptr, v *uint8) int32
	fnBooleanSetValue func(node uintptr, v uint8) int32
	fnStringGetValue  func(node uintptr, buf *byte, n *uintptr) int32

	fnEnumerationGetEntryByName   func(node uintptr, name string, entry *uintptr) int32
	fnEnumerationGetCurrentEntry  func(node uintptr, entry *uintptr) int32
	fnEnumerationSetIntValue      func(node uintptr, v int64) int32
	fnEnumerationEntryGetIntValue func(entry uintptr, v *int64) int32
	fnEnumerationEntryGetSymbolic func(entry uintptr, buf *byte, n *uintptr) int32

	fnImageCreateEmpty        func(img *uintptr) int32
	fnImageCreateEx           func(img *uintptr, width, height, offX, offY uintptr, format int32, data unsafe.Pointer) int32
	fnImageDestroy            func(img uintptr) int32
	fnImageRelease            func(img uintptr) int32
	fnImageIsIncomplete       func(img uintptr, v *uint8) int32
	fnImageGetStatus          func(img uintptr, v *int32) int32
	fnImageGetPixelFormatName func(img uintptr, buf *byte, n *uintptr) int32
	fnImageGetWidth           func(img uintptr, v *uintptr) int32
	fnImageGetHeight          func(img uintptr, v *uintptr) int32
	fnImageGetData            func(img uintptr, data *unsafe.Pointer) int32
	fnImageGetImageSize       func(img uintptr, v *uintptr) int32
	fnImageGetTimeStamp       func(img uintptr, v *uint64) int32
	fnImageGetFrameID         func(img uintptr, v *uint64) int32

	fnImageProcessorCreate             func(proc *uintptr) int32
	fnImageProcessorSetColorProcessing func(proc uintptr, alg int32) int32
	fnImageProcessorConvert            func(proc, src, dst uintptr, format int32) int32
)

// symbols maps function variables to their exported C names.
var symbols = []struct {
	fptr any
	name string
}{
	{&fnErrorGetLastMessage, "spinErrorGetLastMessage"},

	{&fnSystemGetInstance, "spinSystemGetInstance"},
	{&fnSystemGetCameras, "spinSystemGetCameras"},
	{&fnCameraListCreateEmpty, "spinCameraListCreateEmpty"},
	{&fnCameraListDestroy, "spinCameraListDestroy"},
	{&fnCameraListClear, "spinCameraListClear"},
	{&fnCameraListGetSize, "spinCameraListGetSize"},
	{&fnCameraListGet, "spinCameraListGet"},
	{&fnCameraListGetBySerial, "spinCameraListGetBySerial"},

	{&fnCameraRelease, "spinCameraRelease"},
	{&fnCameraInit, "spinCameraInit"},
	{&fnCameraDeInit, "spinCameraDeInit"},
	{&fnCameraGetNodeMap, "spinCameraGetNodeMap"},
	{&fnCameraGetTLDeviceNodeMap, "spinCameraGetTLDeviceNodeMap"},
	{&fnCameraGetTLStreamNodeMap, "spinCameraGetTLStreamNodeMap"},
	{&fnCameraBeginAcquisition, "spinCameraBeginAcquisition"},
	{&fnCameraEndAcquisition, "spinCameraEndAcquisition"},
	{&fnCameraGetNextImageEx, "spinCameraGetNextImageEx"},

	{&fnNodeMapGetNode, "spinNodeMapGetNode"},
	{&fnNodeIsAvailable, "spinNodeIsAvailable"},
	{&fnNodeIsReadable, "spinNodeIsReadable"},

	{&fnFloatGetValue, "spinFloatGetValue"},
	{&fnFloatSetValue, "spinFloatSetValue"},
	{&fnFloatGetMin, "spinFloatGetMin"},
	{&fnFloatGetMax, "spinFloatGetMax"},
	{&fnFloatGetUnit, "spinFloatGetUnit"},

	{&fnIntegerGetValue, "spinIntegerGetValue"},
	{&fnBooleanGetValue, "spinBooleanGetValue"},
	{&fnBooleanSetValue, "spinBooleanSetValue"},
	{&fnStringGetValue, "spinStringGetValue"},

	{&fnEnumerationGetEntryByName, "spinEnumerationGetEntryByName"},
	{&fnEnumerationGetCurrentEntry, "spinEnumerationGetCurrentEntry"},
	{&fnEnumerationSetIntValue, "spinEnumerationSetIntValue"},
	{&fnEnumerationEntryGetIntValue, "spinEnumerationEntryGetIntValue"},
	{&fnEnumerationEntryGetSymbolic, "spinEnumerationEntryGetSymbolic"},

	{&fnImageCreateEmpty, "spinImageCreateEmpty"},
	{&fnImageCreateEx, "spinImageCreateEx"},
	{&fnImageDestroy, "spinImageDestroy"},
	{&fnImageRelease, "spinImageRelease"},
	{&fnImageIsIncomplete, "spinImageIsIncomplete"},
	{&fnImageGetStatus, "spinImageGetStatus"},
	{&fnImageGetPixelFormatName, "spinImageGetPixelFormatName"},
	{&fnImageGetWidth, "spinImageGetWidth"},
	{&fnImageGetHeight, "spinImageGetHeight"},
	{&fnImageGetData, "spinImageGetData"},
	{&fnImageGetImageSize, "spinImageGetImageSize"},
	{&fnImageGetTimeStamp, "spinImageGetTimeStamp"},
	{&fnImageGetFrameID, "spinImageGetFrameID"},

	{&fnImageProcessorCreate, "spinImageProcessorCreate"},
	{&fnImageProcessorSetColorProcessing, "spinImageProcessorSetColorProcessing"},
	{&fnImageProcessorConvert, "spinImageProcessorConvert"},
}

const stringBufferSize = 256

// readString calls a C getter that fills a caller-provided buffer. The call
// is repeated once with a larger buffer if the library reports the required
// length.
func readString(fn string, get func(buf *byte, n *uintptr) int32) (string, error) {
	buf := make([]byte, stringBufferSize)
	n := uintptr(len(buf))
	code := get(&buf[0], &n)
	if code == int32(ErrCodeBufferTooSmall) && int(n) > len(buf) {
		buf = make([]byte, n)
		code = get(&buf[0], &n)
	}
	if err := check(fn, code); err != nil {
		return "", err
	}
	return cString(buf[:min(int(n), len(buf))]), nil
}

// lastErrorMessage fetches the thread's last error text without going through
// check, so it never recurses.
func lastErrorMessage() string {
	if fnErrorGetLastMessage == nil {
		return ""
	}
	buf := make([]byte, stringBufferSize)
	n := uintptr(len(buf))
	if fnErrorGetLastMessage(&buf[0], &n) != int32(ErrCodeSuccess) {
		return ""
	}
	return cString(buf[:min(int(n), len(buf))])
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func bool8(v uint8) bool { return v != 0 }
