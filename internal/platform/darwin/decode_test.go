package darwin

import (
	"testing"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/translate"
)

func TestDecodeKey(t *testing.T) {
	flags := uint64(keymap.CGFlagShift | keymap.CGFlagLeftShift)
	got := decode(keymap.CGEventKeyDown, rawEvent{Time: 42, Flags: flags, Keycode: 0x00})
	if len(got) != 1 {
		t.Fatalf("decode returned %d captures", len(got))
	}
	n := got[0]
	if n.Kind != translate.KeyDown || n.Code != 0x00 || n.Time != 42 {
		t.Errorf("decode = %+v", n)
	}
	if !n.HasMask || keymap.Darwin.ToVirtualMask(n.Mask) != event.MaskShiftL {
		t.Errorf("mask = %#x (has %v)", n.Mask, n.HasMask)
	}
}

func TestDecodeFlagsChanged(t *testing.T) {
	down := decode(keymap.CGEventFlagsChanged, rawEvent{
		Keycode: 0x3C,
		Flags:   uint64(keymap.CGFlagShift | keymap.CGFlagRightShift),
	})
	if len(down) != 1 || down[0].Kind != translate.KeyDown || down[0].Code != 0x3C {
		t.Fatalf("right shift press = %+v", down)
	}

	up := decode(keymap.CGEventFlagsChanged, rawEvent{
		Keycode: 0x3C,
		Flags:   uint64(keymap.CGFlagShift | keymap.CGFlagLeftShift),
	})
	if len(up) != 1 || up[0].Kind != translate.KeyUp {
		t.Fatalf("right shift release with left still held = %+v", up)
	}

	caps := decode(keymap.CGEventFlagsChanged, rawEvent{Keycode: kVKCapsLock, Flags: uint64(keymap.CGFlagAlphaShift)})
	if len(caps) != 2 || caps[0].Kind != translate.KeyDown || caps[1].Kind != translate.KeyUp {
		t.Fatalf("caps lock = %+v", caps)
	}
	if caps[0].HasMask {
		t.Error("caps lock capture carries a mask")
	}

	if got := decode(keymap.CGEventFlagsChanged, rawEvent{Keycode: 0x3F}); got != nil {
		t.Errorf("fn key = %+v, want nothing", got)
	}
}

func TestDecodeMouse(t *testing.T) {
	got := decode(keymap.CGEventOtherMouseDown, rawEvent{Button: 2, X: 10.6, Y: -3.2})
	if len(got) != 1 || got[0].Kind != translate.ButtonDown || got[0].Code != 2 {
		t.Fatalf("middle press = %+v", got)
	}
	if got[0].X != 11 || got[0].Y != -3 {
		t.Errorf("position = (%d, %d), want (11, -3)", got[0].X, got[0].Y)
	}
	if b := keymap.Darwin.ToVirtualButton(got[0].Code); b != event.Button3 {
		t.Errorf("button = %v, want %v", b, event.Button3)
	}

	drag := decode(keymap.CGEventLeftMouseDrag, rawEvent{X: 1e6, Y: 5})
	if len(drag) != 1 || drag[0].Kind != translate.Motion || drag[0].X != 32767 {
		t.Errorf("drag = %+v", drag)
	}
}

func TestDecodeWheel(t *testing.T) {
	got := decode(keymap.CGEventScrollWheel, rawEvent{Wheel1: 2, Wheel2: -1})
	if len(got) != 2 {
		t.Fatalf("decode returned %d captures, want 2", len(got))
	}
	if got[0].WheelDirection != event.WheelVertical || got[0].WheelRotation != -2 || got[0].WheelAmount != lineWheelAmount {
		t.Errorf("vertical = %+v", got[0])
	}
	if got[1].WheelDirection != event.WheelHorizontal || got[1].WheelRotation != 1 {
		t.Errorf("horizontal = %+v", got[1])
	}

	pixel := decode(keymap.CGEventScrollWheel, rawEvent{Wheel1: -7, Continuous: true})
	if len(pixel) != 1 || pixel[0].WheelAmount != pixelWheelAmount || pixel[0].WheelRotation != 7 {
		t.Errorf("continuous = %+v", pixel)
	}

	if got := decode(keymap.CGEventScrollWheel, rawEvent{}); len(got) != 0 {
		t.Errorf("empty scroll = %+v", got)
	}
}
