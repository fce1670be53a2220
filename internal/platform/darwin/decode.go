package darwin

import (
	"math"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/translate"
)

// rawEvent holds the fields read from a CGEvent.
type rawEvent struct {
	Time       uint64
	Flags      uint64
	X, Y       float64
	Keycode    int64
	Button     int64
	Wheel1     int64 // vertical, positive away from the user
	Wheel2     int64 // horizontal, positive to the left
	Continuous bool
}

const (
	kVKCapsLock = 0x39

	lineWheelAmount  = 3
	pixelWheelAmount = 1
)

// Side flag carried by each modifier key's FlagsChanged event.
var modifierFlags = map[uint16]uint32{
	0x38: keymap.CGFlagLeftShift,
	0x3C: keymap.CGFlagRightShift,
	0x3B: keymap.CGFlagLeftControl,
	0x3E: keymap.CGFlagRightControl,
	0x3A: keymap.CGFlagLeftAlt,
	0x3D: keymap.CGFlagRightAlt,
	0x37: keymap.CGFlagLeftCommand,
	0x36: keymap.CGFlagRightCommand,
}

func coord(v float64) int16 {
	return int16(max(math.MinInt16, min(math.MaxInt16, math.Round(v))))
}

func clampRotation(v int64) int16 {
	return int16(max(math.MinInt16, min(math.MaxInt16, v)))
}

// decode converts one tapped event into native captures. Unknown event
// types produce nothing.
func decode(typ uint32, r rawEvent) []translate.Native {
	base := translate.Native{
		Time:    r.Time,
		X:       coord(r.X),
		Y:       coord(r.Y),
		Mask:    uint32(r.Flags),
		HasMask: true,
	}

	switch typ {
	case keymap.CGEventKeyDown, keymap.CGEventKeyUp:
		base.Kind = translate.KeyUp
		if typ == keymap.CGEventKeyDown {
			base.Kind = translate.KeyDown
		}
		base.Code = uint16(r.Keycode)
		return []translate.Native{base}

	case keymap.CGEventFlagsChanged:
		code := uint16(r.Keycode)
		if code == kVKCapsLock {
			// one event per toggle; the tracker flips the lock on press
			base.Code, base.HasMask = code, false
			down, up := base, base
			down.Kind, up.Kind = translate.KeyDown, translate.KeyUp
			return []translate.Native{down, up}
		}
		flag, ok := modifierFlags[code]
		if !ok {
			return nil
		}
		base.Code = code
		base.Kind = translate.KeyUp
		if uint32(r.Flags)&flag != 0 {
			base.Kind = translate.KeyDown
		}
		return []translate.Native{base}

	case keymap.CGEventLeftMouseDown, keymap.CGEventRightMouseDown, keymap.CGEventOtherMouseDown:
		base.Kind, base.Code = translate.ButtonDown, uint16(r.Button)
		return []translate.Native{base}

	case keymap.CGEventLeftMouseUp, keymap.CGEventRightMouseUp, keymap.CGEventOtherMouseUp:
		base.Kind, base.Code = translate.ButtonUp, uint16(r.Button)
		return []translate.Native{base}

	case keymap.CGEventMouseMoved, keymap.CGEventLeftMouseDrag,
		keymap.CGEventRightMouseDrag, keymap.CGEventOtherMouseDrag:
		base.Kind = translate.Motion
		return []translate.Native{base}

	case keymap.CGEventScrollWheel:
		base.Kind = translate.Wheel
		base.WheelType = event.WheelUnitScroll
		base.WheelAmount = lineWheelAmount
		if r.Continuous {
			base.WheelAmount = pixelWheelAmount
		}
		var out []translate.Native
		if r.Wheel1 != 0 {
			n := base
			n.WheelRotation = clampRotation(-r.Wheel1)
			n.WheelDirection = event.WheelVertical
			out = append(out, n)
		}
		if r.Wheel2 != 0 {
			n := base
			n.WheelRotation = clampRotation(-r.Wheel2)
			n.WheelDirection = event.WheelHorizontal
			out = append(out, n)
		}
		return out
	}
	return nil
}
