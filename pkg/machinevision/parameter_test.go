package machinevision

import (
	"errors"
	"sync/atomic"
	"testing"
)

type stubFloat struct {
	value, min, max float64
	err             error
}

func (s *stubFloat) Value() (float64, error) { return s.value, s.err }

func (s *stubFloat) Range() (float64, float64, error) { return s.min, s.max, s.err }

func (s *stubFloat) SetValue(v float64) error {
	if s.err != nil {
		return s.err
	}
	s.value = v
	return nil
}

func TestFloatParameter(t *testing.T) {
	b := &stubFloat{value: 10, min: 0, max: 100}
	p, err := NewFloatParameter("Gain", "dB", b)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "Gain" || p.Unit() != "dB" || p.Type() != ParameterFloat {
		t.Errorf("parameter = %s/%s/%s", p.Name(), p.Unit(), p.Type())
	}

	for _, v := range []any{float64(1.5), float32(2), int(3), int32(4), int64(5), uint32(6), uint64(7)} {
		if err := p.SetValue(v); err != nil {
			t.Errorf("SetValue(%T) error = %v", v, err)
		}
	}
	if b.value != 7 {
		t.Errorf("binding value = %v, want 7", b.value)
	}
	if err := p.SetValue("7"); err == nil {
		t.Error("SetValue(string) succeeded")
	}

	b.value = 42
	if v, err := p.Get(); err != nil || v != 42 {
		t.Errorf("Get() = %v, %v", v, err)
	}
	if value, _, _ := p.Cached(); value != 42 {
		t.Errorf("Cached() value = %v, want 42", value)
	}
}

func TestFloatParameter_ReadFails(t *testing.T) {
	if _, err := NewFloatParameter("Gamma", "", &stubFloat{err: errors.New("not readable")}); err == nil {
		t.Error("NewFloatParameter() succeeded with unreadable binding")
	}
}

func TestBoolParameter_Flag(t *testing.T) {
	var flag atomic.Bool
	p, err := NewBoolParameter("Flip image", "", NewFlagBinding(&flag))
	if err != nil {
		t.Fatal(err)
	}
	if p.Type() != ParameterBool {
		t.Errorf("Type() = %s", p.Type())
	}

	if err := p.SetValue(true); err != nil {
		t.Fatal(err)
	}
	if !flag.Load() || !p.Cached() {
		t.Error("flag not set")
	}

	flag.Store(false)
	if v, _ := p.Value(); v != false {
		t.Errorf("Value() = %v, want false", v)
	}
	if err := p.SetValue(1); err == nil {
		t.Error("SetValue(int) on bool parameter succeeded")
	}
}

func TestFindParameter(t *testing.T) {
	var flag atomic.Bool
	flip, _ := NewBoolParameter("Flip image", "", NewFlagBinding(&flag))
	gain, _ := NewFloatParameter("Gain", "dB", &stubFloat{})
	params := []Parameter{gain, flip}

	if p, ok := FindParameter(params, "Flip image"); !ok || p != flip {
		t.Error("FindParameter(Flip image) failed")
	}
	if _, ok := FindParameter(params, "Gamma"); ok {
		t.Error("FindParameter(Gamma) found a parameter")
	}
}
