//go:build !linux

package spinnaker

import (
	"fmt"
	"runtime"
)

var defaultLibraryNames []string

func load() error {
	return fmt.Errorf("%w: not supported on %s", ErrLibraryUnavailable, runtime.GOOS)
}
