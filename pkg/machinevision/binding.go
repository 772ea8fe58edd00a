package machinevision

import "sync/atomic"

// FlagBinding binds a boolean parameter to a software flag instead of hardware.
// The flag is safe to toggle from one goroutine while another reads it.
type FlagBinding struct {
	flag *atomic.Bool
}

// NewFlagBinding binds to flag.
func NewFlagBinding(flag *atomic.Bool) *FlagBinding {
	return &FlagBinding{flag: flag}
}

// Value implements BoolBinding.
func (b *FlagBinding) Value() (bool, error) {
	return b.flag.Load(), nil
}

// SetValue implements BoolBinding.
func (b *FlagBinding) SetValue(v bool) error {
	b.flag.Store(v)
	return nil
}
