//go:build linux

package spinnaker

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"
)

var defaultLibraryNames = []string{
	"libSpinnaker_C.so",
	"libSpinnaker_C.so.4",
	"libSpinnaker_C.so.3",
	"libSpinnaker_C.so.2",
}

// load opens libSpinnaker_C and binds every entry point in symbols.
// Missing symbols are reported as errors rather than panics.
func load() error {
	var lib uintptr
	var errs []error
	for _, name := range libraryCandidates() {
		h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			lib, loadedLibrary = h, name
			break
		}
		errs = append(errs, err)
	}
	if lib == 0 {
		return fmt.Errorf("%w: %w", ErrLibraryUnavailable, errors.Join(errs...))
	}

	for _, s := range symbols {
		sym, err := purego.Dlsym(lib, s.name)
		if err != nil {
			_ = purego.Dlclose(lib)
			return fmt.Errorf("%w: missing symbol %s: %w", ErrLibraryUnavailable, s.name, err)
		}
		purego.RegisterFunc(s.fptr, sym)
	}
	return nil
}
