package spinnaker

import "fmt"

// NodeMap is a GenICam node map owned by a camera.
type NodeMap struct {
	h uintptr
}

// node looks up name and fails unless the node is available and readable.
func (m *NodeMap) node(name string) (uintptr, error) {
	var n uintptr
	if err := check("spinNodeMapGetNode", fnNodeMapGetNode(m.h, name, &n)); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, &Error{Func: "spinNodeMapGetNode", Code: ErrCodeNotAvailable, Message: fmt.Sprintf("node %s not found", name)}
	}

	var ok uint8
	if err := check("spinNodeIsAvailable", fnNodeIsAvailable(n, &ok)); err != nil {
		return 0, err
	}
	if !bool8(ok) {
		return 0, &Error{Func: "spinNodeIsAvailable", Code: ErrCodeNotAvailable, Message: fmt.Sprintf("node %s is not available", name)}
	}
	if err := check("spinNodeIsReadable", fnNodeIsReadable(n, &ok)); err != nil {
		return 0, err
	}
	if !bool8(ok) {
		return 0, &Error{Func: "spinNodeIsReadable", Code: ErrCodeAccessDenied, Message: fmt.Sprintf("node %s is not readable", name)}
	}
	return n, nil
}

// Float returns the float node with the given name.
func (m *NodeMap) Float(name string) (*FloatNode, error) {
	h, err := m.node(name)
	if err != nil {
		return nil, err
	}
	return &FloatNode{node{h: h, name: name}}, nil
}

// Enum returns the enumeration node with the given name.
func (m *NodeMap) Enum(name string) (*EnumNode, error) {
	h, err := m.node(name)
	if err != nil {
		return nil, err
	}
	return &EnumNode{node{h: h, name: name}}, nil
}

// Bool returns the boolean node with the given name.
func (m *NodeMap) Bool(name string) (*BoolNode, error) {
	h, err := m.node(name)
	if err != nil {
		return nil, err
	}
	return &BoolNode{node{h: h, name: name}}, nil
}

// String reads a string node.
func (m *NodeMap) String(name string) (string, error) {
	h, err := m.node(name)
	if err != nil {
		return "", err
	}
	return readString("spinStringGetValue", func(buf *byte, n *uintptr) int32 {
		return fnStringGetValue(h, buf, n)
	})
}

// Integer reads an integer node.
func (m *NodeMap) Integer(name string) (int64, error) {
	h, err := m.node(name)
	if err != nil {
		return 0, err
	}
	var v int64
	if err := check("spinIntegerGetValue", fnIntegerGetValue(h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

type node struct {
	h    uintptr
	name string
}

// Name returns the GenICam node name.
func (n node) Name() string { return n.name }

// FloatNode is an IFloat node.
type FloatNode struct{ node }

// Value reads the current value.
func (n *FloatNode) Value() (float64, error) {
	var v float64
	if err := check("spinFloatGetValue", fnFloatGetValue(n.h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

// SetValue writes v. Out of range values are rejected by the device.
func (n *FloatNode) SetValue(v float64) error {
	return check("spinFloatSetValue", fnFloatSetValue(n.h, v))
}

// Min reads the current minimum.
func (n *FloatNode) Min() (float64, error) {
	var v float64
	if err := check("spinFloatGetMin", fnFloatGetMin(n.h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

// Max reads the current maximum.
func (n *FloatNode) Max() (float64, error) {
	var v float64
	if err := check("spinFloatGetMax", fnFloatGetMax(n.h, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

// Unit reads the unit string, which may be empty.
func (n *FloatNode) Unit() (string, error) {
	return readString("spinFloatGetUnit", func(buf *byte, sz *uintptr) int32 {
		return fnFloatGetUnit(n.h, buf, sz)
	})
}

// EnumNode is an IEnumeration node.
type EnumNode struct{ node }

// Symbolic returns the symbolic name of the current entry.
func (n *EnumNode) Symbolic() (string, error) {
	var entry uintptr
	if err := check("spinEnumerationGetCurrentEntry", fnEnumerationGetCurrentEntry(n.h, &entry)); err != nil {
		return "", err
	}
	return readString("spinEnumerationEntryGetSymbolic", func(buf *byte, sz *uintptr) int32 {
		return fnEnumerationEntryGetSymbolic(entry, buf, sz)
	})
}

// SetSymbolic selects the entry with the given symbolic name.
func (n *EnumNode) SetSymbolic(symbolic string) error {
	var entry uintptr
	if err := check("spinEnumerationGetEntryByName", fnEnumerationGetEntryByName(n.h, symbolic, &entry)); err != nil {
		return err
	}
	if entry == 0 {
		return &Error{Func: "spinEnumerationGetEntryByName", Code: ErrCodeInvalidParameter, Message: fmt.Sprintf("%s has no entry %s", n.name, symbolic)}
	}
	var v int64
	if err := check("spinEnumerationEntryGetIntValue", fnEnumerationEntryGetIntValue(entry, &v)); err != nil {
		return err
	}
	return check("spinEnumerationSetIntValue", fnEnumerationSetIntValue(n.h, v))
}

// BoolNode is an IBoolean node.
type BoolNode struct{ node }

// Value reads the current value.
func (n *BoolNode) Value() (bool, error) {
	var v uint8
	if err := check("spinBooleanGetValue", fnBooleanGetValue(n.h, &v)); err != nil {
		return false, err
	}
	return bool8(v), nil
}

// SetValue writes v.
func (n *BoolNode) SetValue(v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return check("spinBooleanSetValue", fnBooleanSetValue(n.h, b))
}
