// Package spinnaker provides pure Go bindings to the FLIR Spinnaker C API
// (libSpinnaker_C) for camera enumeration, GenICam node access and image
// acquisition.
//
// This package does not use cgo. The shared library is loaded at runtime
// with purego the first time GetSystem is called; the library handle and the
// Spinnaker system instance then live for the rest of the process.
//
// # Enumeration
//
//	sys, err := spinnaker.GetSystem()
//	list, err := sys.Cameras()
//	defer list.Close()
//	n, _ := list.Len()
//	for i := 0; i < n; i++ {
//	    cam, _ := list.Get(i)
//	    tl, _ := cam.TLDeviceNodeMap()
//	    serial, _ := tl.String("DeviceSerialNumber")
//	    cam.Release()
//	}
//
// # Acquisition
//
//	cam.Init()
//	cam.BeginAcquisition()
//	img, err := cam.NextImage(time.Second)
//	if spinnaker.IsTimeout(err) {
//	    // nothing arrived
//	}
//	defer img.Release()
//
// # Library location
//
// The loader tries the path given to SetLibraryPath, then SPINNAKER_C_LIBRARY,
// then the sonames installed by the Spinnaker SDK packages.
package spinnaker

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// TypeName is the adapter identifier reported to device tooling.
const TypeName = "Spinnaker (FLIR)"

// ErrLibraryUnavailable is returned when libSpinnaker_C cannot be loaded.
var ErrLibraryUnavailable = errors.New("spinnaker: library unavailable")

var (
	libraryPath   string
	loadedLibrary string

	systemOnce sync.Once
	system     *System
	systemErr  error
)

// System is the process-wide Spinnaker runtime instance.
type System struct {
	h uintptr
}

// GetSystem loads libSpinnaker_C and acquires the system instance on first
// call. Later calls return the same instance. The instance is never released.
func GetSystem() (*System, error) {
	systemOnce.Do(func() {
		if err := load(); err != nil {
			systemErr = err
			return
		}
		var h uintptr
		if err := check("spinSystemGetInstance", fnSystemGetInstance(&h)); err != nil {
			systemErr = err
			return
		}
		system = &System{h: h}
	})
	return system, systemErr
}

// Cameras returns the cameras currently visible to the system. The list must
// be closed by the caller.
func (s *System) Cameras() (*CameraList, error) {
	var l uintptr
	if err := check("spinCameraListCreateEmpty", fnCameraListCreateEmpty(&l)); err != nil {
		return nil, err
	}
	if err := check("spinSystemGetCameras", fnSystemGetCameras(s.h, l)); err != nil {
		_ = fnCameraListDestroy(l)
		return nil, err
	}
	return &CameraList{h: l}, nil
}

// CameraList is an enumeration snapshot.
type CameraList struct {
	h uintptr
}

// Len returns the number of cameras in the list.
func (l *CameraList) Len() (int, error) {
	var n uintptr
	if err := check("spinCameraListGetSize", fnCameraListGetSize(l.h, &n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Get returns the camera at index. The camera must be released by the caller.
func (l *CameraList) Get(index int) (*Camera, error) {
	if index < 0 {
		return nil, &Error{Func: "spinCameraListGet", Code: ErrCodeInvalidParameter, Message: fmt.Sprintf("invalid camera index %d", index)}
	}
	var c uintptr
	if err := check("spinCameraListGet", fnCameraListGet(l.h, uintptr(index), &c)); err != nil {
		return nil, err
	}
	return &Camera{h: c}, nil
}

// BySerial returns the camera with the given serial number. The camera must
// be released by the caller.
func (l *CameraList) BySerial(serial string) (*Camera, error) {
	var c uintptr
	if err := check("spinCameraListGetBySerial", fnCameraListGetBySerial(l.h, serial, &c)); err != nil {
		return nil, err
	}
	if c == 0 {
		return nil, &Error{Func: "spinCameraListGetBySerial", Code: ErrCodeInvalidHandle, Message: fmt.Sprintf("no camera with serial number %q", serial)}
	}
	return &Camera{h: c}, nil
}

// Close clears and destroys the list.
func (l *CameraList) Close() error {
	if l.h == 0 {
		return nil
	}
	clearErr := check("spinCameraListClear", fnCameraListClear(l.h))
	destroyErr := check("spinCameraListDestroy", fnCameraListDestroy(l.h))
	l.h = 0
	return errors.Join(clearErr, destroyErr)
}

// SetLibraryPath makes the loader try path before any other candidate. It
// has no effect once GetSystem has been called.
func SetLibraryPath(path string) {
	libraryPath = path
}

// LibraryName returns the name the SDK library was loaded from, or "" before
// a successful GetSystem.
func LibraryName() string {
	return loadedLibrary
}

// libraryCandidates returns the shared library names to try, in order.
func libraryCandidates() []string {
	var names []string
	if libraryPath != "" {
		names = append(names, libraryPath)
	}
	if path := os.Getenv("SPINNAKER_C_LIBRARY"); path != "" {
		names = append(names, path)
	}
	return append(names, defaultLibraryNames...)
}
