package machinevision

import (
	"fmt"
	"sync"
)

// ParameterType distinguishes numeric and boolean parameters.
type ParameterType string

// Parameter types.
const (
	ParameterFloat ParameterType = "float"
	ParameterBool  ParameterType = "bool"
)

// Parameter is a named device tunable that generic tooling can enumerate
// and manipulate without vendor knowledge.
type Parameter interface {
	Name() string
	Unit() string
	Type() ParameterType

	// Value reads the current value from the device (float64 or bool).
	Value() (any, error)

	// SetValue writes v to the device. Numeric parameters accept any Go
	// integer or float type; boolean parameters accept bool.
	SetValue(v any) error
}

// FloatBinding connects a numeric parameter to a device control.
type FloatBinding interface {
	Value() (float64, error)
	Range() (minimum, maximum float64, err error)
	SetValue(v float64) error
}

// BoolBinding connects a boolean parameter to a device control or flag.
type BoolBinding interface {
	Value() (bool, error)
	SetValue(v bool) error
}

// FloatParameter is a numeric parameter with a device-reported range.
type FloatParameter struct {
	name    string
	unit    string
	binding FloatBinding

	mu    sync.Mutex
	value float64
	min   float64
	max   float64
}

// NewFloatParameter reads the initial value and range through the binding.
func NewFloatParameter(name, unit string, binding FloatBinding) (*FloatParameter, error) {
	value, err := binding.Value()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	minimum, maximum, err := binding.Range()
	if err != nil {
		return nil, fmt.Errorf("read range of %s: %w", name, err)
	}
	return &FloatParameter{
		name:    name,
		unit:    unit,
		binding: binding,
		value:   value,
		min:     minimum,
		max:     maximum,
	}, nil
}

// Name implements Parameter.
func (p *FloatParameter) Name() string { return p.name }

// Unit implements Parameter.
func (p *FloatParameter) Unit() string { return p.unit }

// Type implements Parameter.
func (p *FloatParameter) Type() ParameterType { return ParameterFloat }

// Get reads the current value from the device.
func (p *FloatParameter) Get() (float64, error) {
	v, err := p.binding.Value()
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
	return v, nil
}

// Range reads the current range from the device. Ranges of some controls
// depend on others (exposure time on frame rate, for example).
func (p *FloatParameter) Range() (minimum, maximum float64, err error) {
	minimum, maximum, err = p.binding.Range()
	if err != nil {
		return 0, 0, err
	}
	p.mu.Lock()
	p.min, p.max = minimum, maximum
	p.mu.Unlock()
	return minimum, maximum, nil
}

// Set writes v to the device.
func (p *FloatParameter) Set(v float64) error {
	if err := p.binding.SetValue(v); err != nil {
		return err
	}
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
	return nil
}

// Cached returns the last value and range seen by this parameter.
func (p *FloatParameter) Cached() (value, minimum, maximum float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.min, p.max
}

// Value implements Parameter.
func (p *FloatParameter) Value() (any, error) {
	return p.Get()
}

// SetValue implements Parameter.
func (p *FloatParameter) SetValue(v any) error {
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("parameter %s: expected number, got %T", p.name, v)
	}
	return p.Set(f)
}

// BoolParameter is an on/off parameter.
type BoolParameter struct {
	name    string
	unit    string
	binding BoolBinding

	mu    sync.Mutex
	value bool
}

// NewBoolParameter reads the initial value through the binding.
func NewBoolParameter(name, unit string, binding BoolBinding) (*BoolParameter, error) {
	value, err := binding.Value()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &BoolParameter{
		name:    name,
		unit:    unit,
		binding: binding,
		value:   value,
	}, nil
}

// Name implements Parameter.
func (p *BoolParameter) Name() string { return p.name }

// Unit implements Parameter.
func (p *BoolParameter) Unit() string { return p.unit }

// Type implements Parameter.
func (p *BoolParameter) Type() ParameterType { return ParameterBool }

// Get reads the current value from the device.
func (p *BoolParameter) Get() (bool, error) {
	v, err := p.binding.Value()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
	return v, nil
}

// Set writes v to the device.
func (p *BoolParameter) Set(v bool) error {
	if err := p.binding.SetValue(v); err != nil {
		return err
	}
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
	return nil
}

// Cached returns the last value seen by this parameter.
func (p *BoolParameter) Cached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Value implements Parameter.
func (p *BoolParameter) Value() (any, error) {
	return p.Get()
}

// SetValue implements Parameter.
func (p *BoolParameter) SetValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("parameter %s: expected bool, got %T", p.name, v)
	}
	return p.Set(b)
}

// FindParameter returns the parameter with the given name.
func FindParameter(params []Parameter, name string) (Parameter, bool) {
	for _, p := range params {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
