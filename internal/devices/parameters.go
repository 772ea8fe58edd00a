package devices

import (
	"fmt"

	"github.com/smazurov/spincam/internal/events"
	"github.com/smazurov/spincam/internal/metrics"
	"github.com/smazurov/spincam/pkg/machinevision"
)

// FlipParameterName is the synthetic parameter that rotates frames by 180°.
const FlipParameterName = "Flip image"

// Vendor float controls registered on open, in order.
var floatParameters = []string{"AcquisitionFrameRate", "ExposureTime", "Gain", "Gamma"}

type floatNodeBinding struct {
	node FloatNode
}

func (b floatNodeBinding) Value() (float64, error) {
	v, err := b.node.Value()
	return v, deviceError(machinevision.KindDevice, b.node.Name(), err)
}

func (b floatNodeBinding) Range() (float64, float64, error) {
	minimum, err := b.node.Min()
	if err != nil {
		return 0, 0, deviceError(machinevision.KindDevice, b.node.Name(), err)
	}
	maximum, err := b.node.Max()
	if err != nil {
		return 0, 0, deviceError(machinevision.KindDevice, b.node.Name(), err)
	}
	return minimum, maximum, nil
}

func (b floatNodeBinding) SetValue(v float64) error {
	return deviceError(machinevision.KindDevice, b.node.Name(), b.node.SetValue(v))
}

type boolNodeBinding struct {
	node BoolNode
}

func (b boolNodeBinding) Value() (bool, error) {
	v, err := b.node.Value()
	return v, deviceError(machinevision.KindDevice, b.node.Name(), err)
}

func (b boolNodeBinding) SetValue(v bool) error {
	return deviceError(machinevision.KindDevice, b.node.Name(), b.node.SetValue(v))
}

// enumSwitchBinding exposes a two-state enumeration as a boolean.
type enumSwitchBinding struct {
	node    EnumNode
	on, off string
}

func (b enumSwitchBinding) Value() (bool, error) {
	sym, err := b.node.Symbolic()
	if err != nil {
		return false, deviceError(machinevision.KindDevice, b.node.Name(), err)
	}
	return sym == b.on, nil
}

func (b enumSwitchBinding) SetValue(v bool) error {
	sym := b.off
	if v {
		sym = b.on
	}
	return deviceError(machinevision.KindDevice, b.node.Name(), b.node.SetSymbolic(sym))
}

func bindFloat(cam Camera, name string) (*machinevision.FloatParameter, error) {
	node, err := cam.FloatNode(name)
	if err != nil {
		return nil, err
	}
	unit, err := node.Unit()
	if err != nil {
		return nil, err
	}
	return machinevision.NewFloatParameter(node.Name(), unit, floatNodeBinding{node: node})
}

func bindBool(cam Camera, name string) (*machinevision.BoolParameter, error) {
	node, err := cam.BoolNode(name)
	if err != nil {
		return nil, err
	}
	return machinevision.NewBoolParameter(node.Name(), "", boolNodeBinding{node: node})
}

func bindEnumSwitch(cam Camera, name, on, off string) (*machinevision.BoolParameter, error) {
	node, err := cam.EnumNode(name)
	if err != nil {
		return nil, err
	}
	return machinevision.NewBoolParameter(node.Name(), "", enumSwitchBinding{node: node, on: on, off: off})
}

// registerParameters builds the parameter collection for an opened camera.
// A control that cannot be bound is logged and skipped; only failing to
// select the newest-first stream mode aborts the open.
func (s *Spinnaker) registerParameters(cam Camera, serial string) ([]machinevision.Parameter, error) {
	var params []machinevision.Parameter

	for _, name := range floatParameters {
		p, err := bindFloat(cam, name)
		if err != nil {
			s.bindFailed(serial, name, err)
			continue
		}
		params = append(params, p)
	}

	mode, err := cam.StreamEnumNode("StreamBufferHandlingMode")
	if err == nil {
		err = mode.SetSymbolic("NewestFirstOverwrite")
	}
	if err != nil {
		return nil, err
	}

	if p, err := bindEnumSwitch(cam, "TriggerMode", "On", "Off"); err != nil {
		s.bindFailed(serial, "TriggerMode", err)
	} else {
		params = append(params, p)
	}

	if p, err := bindFloat(cam, "TriggerDelay"); err != nil {
		s.bindFailed(serial, "TriggerDelay", err)
	} else {
		params = append(params, p)
	}

	flip, err := machinevision.NewBoolParameter(FlipParameterName, "", machinevision.NewFlagBinding(&s.flip))
	if err != nil {
		return nil, err
	}
	params = append(params, flip)

	for _, name := range s.extraBoolParameters {
		p, err := bindBool(cam, name)
		if err != nil {
			s.bindFailed(serial, name, err)
			continue
		}
		params = append(params, p)
	}

	return params, nil
}

func (s *Spinnaker) bindFailed(serial, name string, err error) {
	bindErr := machinevision.NewError(machinevision.KindParameterBind, name, fmt.Sprintf("cannot add parameter %s", name), err)
	s.logger.Warn("Skipping parameter", "parameter", name, "serial", serial, "error", bindErr)
	metrics.ParameterBindFailed(serial, name)
}

// Parameters returns the parameters registered by Open, in registration order.
func (s *Spinnaker) Parameters() []machinevision.Parameter {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	out := make([]machinevision.Parameter, len(s.params))
	copy(out, s.params)
	return out
}

// Parameter returns the parameter with the given name.
func (s *Spinnaker) Parameter(name string) (machinevision.Parameter, bool) {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	return machinevision.FindParameter(s.params, name)
}

// SetParameter writes v to the named parameter and publishes the change.
func (s *Spinnaker) SetParameter(name string, v any) error {
	p, ok := s.Parameter(name)
	if !ok {
		return machinevision.NewError(machinevision.KindDevice, "SetParameter", fmt.Sprintf("unknown parameter %q", name), nil)
	}
	if err := p.SetValue(v); err != nil {
		return deviceError(machinevision.KindDevice, name, err)
	}

	info := s.session()
	s.bus.Publish(events.ParameterChangedEvent{
		SessionID: info.id,
		Serial:    info.serial,
		Name:      name,
		Value:     v,
	})
	s.logger.Debug("Parameter set", "parameter", name, "value", v, "session", info.id)
	return nil
}
