// Package translate converts native captures into virtual events.
package translate

import "inputhook/event"

// Kind is the class of a native capture
type Kind uint8

const (
	KeyDown Kind = iota + 1
	KeyUp
	ButtonDown
	ButtonUp
	Motion
	Wheel
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case ButtonDown:
		return "ButtonDown"
	case ButtonUp:
		return "ButtonUp"
	case Motion:
		return "Motion"
	case Wheel:
		return "Wheel"
	}
	return "Kind(?)"
}

// Native is one capture from a platform backend, already decoded from the
// platform's record format but still in native codes.
type Native struct {
	Kind Kind
	Time uint64 // milliseconds
	Code uint16 // key or button code

	X, Y int16

	// Mask is the platform modifier state when HasMask is set. Without it
	// the translator tracks modifiers from key and button transitions.
	Mask    uint32
	HasMask bool

	WheelType      event.WheelType
	WheelAmount    uint16
	WheelRotation  int16
	WheelDirection event.WheelDirection
}
