package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/smazurov/spincam/pkg/machinevision"
)

// Presets maps parameter names to the values they should be set to. Values
// are TOML-decoded: float64, int64 or bool.
type Presets map[string]any

// ParameterSetter is the part of a device that presets are applied to.
type ParameterSetter interface {
	Parameters() []machinevision.Parameter
	SetParameter(name string, v any) error
}

// LoadParameterPresets reads the [parameters] table of a TOML file.
//
//	[parameters]
//	ExposureTime = 5000.0
//	Gain = 3
//	"Flip image" = true
func LoadParameterPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Parameters map[string]any `toml:"parameters"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML presets %s: %w", path, err)
	}

	presets := make(Presets, len(raw.Parameters))
	for name, v := range raw.Parameters {
		switch v.(type) {
		case float64, int64, bool:
			presets[name] = v
		default:
			return nil, fmt.Errorf("preset %q: unsupported value type %T", name, v)
		}
	}
	return presets, nil
}

// ApplyParameterPresets writes presets in the device's parameter order, so
// that frame rate is set before the exposure time it bounds. Every preset is
// attempted; failures and names the device does not expose are joined into
// the returned error.
func ApplyParameterPresets(dev ParameterSetter, presets Presets) error {
	var errs []error
	applied := make(map[string]bool, len(presets))

	for _, p := range dev.Parameters() {
		v, ok := presets[p.Name()]
		if !ok {
			continue
		}
		applied[p.Name()] = true
		if err := dev.SetParameter(p.Name(), v); err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", p.Name(), err))
		}
	}

	var unknown []string
	for name := range presets {
		if !applied[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, fmt.Errorf("preset %q: no such parameter", name))
	}

	return errors.Join(errs...)
}
