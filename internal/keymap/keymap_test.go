package keymap

import (
	"testing"

	"inputhook/event"
)

var tables = []struct {
	table   Table
	keys    []keyPair
	aliases []keyPair
	events  [][2]uint32
	buttons []buttonPair
}{
	{Evdev, evdevKeys, evdevAliases, evdevButtonEvents[:], evdevButtons},
	{Darwin, darwinKeys, nil, darwinButtonEvents[:], darwinButtons},
	{Windows, windowsKeys, windowsAliases, windowsButtonEvents[:], windowsButtons},
}

func TestKeyRoundTrip(t *testing.T) {
	for _, tt := range tables {
		for _, p := range tt.keys {
			v := tt.table.ToVirtualKey(p.native)
			if v != p.virtual {
				t.Errorf("%s: ToVirtualKey(0x%X) = %s, want %s", tt.table.Name(), p.native, v, p.virtual)
			}
			n, ok := tt.table.ToNativeKey(v)
			if !ok || n != p.native {
				t.Errorf("%s: ToNativeKey(%s) = 0x%X, %v; want 0x%X", tt.table.Name(), v, n, ok, p.native)
			}
			if v == event.KeyUndefined {
				t.Errorf("%s: native 0x%X maps to KeyUndefined", tt.table.Name(), p.native)
			}
		}
	}
}

func TestAliasesResolveToPrimaryNative(t *testing.T) {
	for _, tt := range tables {
		for _, p := range tt.aliases {
			v := tt.table.ToVirtualKey(p.native)
			if v != p.virtual {
				t.Errorf("%s: alias 0x%X = %s, want %s", tt.table.Name(), p.native, v, p.virtual)
			}
			if _, ok := tt.table.ToNativeKey(v); !ok {
				t.Errorf("%s: alias target %s has no primary native code", tt.table.Name(), v)
			}
		}
	}
}

func TestUnknownCodes(t *testing.T) {
	for _, tt := range tables {
		if got := tt.table.ToVirtualKey(0xFFF0); got != event.KeyUndefined {
			t.Errorf("%s: unknown native key = %s", tt.table.Name(), got)
		}
		if n, ok := tt.table.ToNativeKey(event.Keycode(0x7777)); ok || n != 0 {
			t.Errorf("%s: unknown virtual key = 0x%X, %v", tt.table.Name(), n, ok)
		}
		if got := tt.table.ToVirtualButton(0xFFF0); got != event.NoButton {
			t.Errorf("%s: unknown native button = %s", tt.table.Name(), got)
		}
		if n, ok := tt.table.ToNativeButton(event.NoButton); ok || n != 0 {
			t.Errorf("%s: NoButton maps to 0x%X", tt.table.Name(), n)
		}
		if got := tt.table.ButtonEvent(event.Button(42), true); got != 0 {
			t.Errorf("%s: out of range button event = %d", tt.table.Name(), got)
		}
	}
}

func TestButtonEventTables(t *testing.T) {
	for _, tt := range tables {
		if len(tt.events) != int(event.Button5)+1 {
			t.Fatalf("%s: button event table has %d rows, want %d", tt.table.Name(), len(tt.events), event.Button5+1)
		}
		if tt.events[event.NoButton] != [2]uint32{} {
			t.Errorf("%s: NoButton row = %v, want zeros", tt.table.Name(), tt.events[event.NoButton])
		}
		for b := event.Button1; b <= event.Button5; b++ {
			down, up := tt.table.ButtonEvent(b, true), tt.table.ButtonEvent(b, false)
			if down == 0 || up == 0 {
				t.Errorf("%s: %s has empty row (%d, %d)", tt.table.Name(), b, down, up)
			}
			if down == up {
				t.Errorf("%s: %s press and release share event %d", tt.table.Name(), b, down)
			}
		}
		for _, p := range tt.buttons {
			if got := tt.table.ToVirtualButton(p.native); got != p.virtual {
				t.Errorf("%s: ToVirtualButton(%d) = %s, want %s", tt.table.Name(), p.native, got, p.virtual)
			}
			if n, ok := tt.table.ToNativeButton(p.virtual); !ok || n != p.native {
				t.Errorf("%s: ToNativeButton(%s) = %d, %v", tt.table.Name(), p.virtual, n, ok)
			}
		}
	}
}

func TestButtonEventRows(t *testing.T) {
	tests := []struct {
		table      Table
		button     event.Button
		down, up   uint32
		nativeName string
	}{
		{Darwin, event.Button1, CGEventLeftMouseDown, CGEventLeftMouseUp, "left"},
		{Darwin, event.Button2, CGEventRightMouseDown, CGEventRightMouseUp, "right"},
		{Darwin, event.Button3, CGEventOtherMouseDown, CGEventOtherMouseUp, "center"},
		{Windows, event.Button1, MouseEventLeftDown, MouseEventLeftUp, "left"},
		{Windows, event.Button2, MouseEventRightDown, MouseEventRightUp, "right"},
		{Windows, event.Button3, MouseEventMiddleDown, MouseEventMiddleUp, "middle"},
		{Windows, event.Button5, MouseEventXDown, MouseEventXUp, "x2"},
	}
	for _, tt := range tests {
		if got := tt.table.ButtonEvent(tt.button, true); got != tt.down {
			t.Errorf("%s %s down = %d, want %d", tt.table.Name(), tt.nativeName, got, tt.down)
		}
		if got := tt.table.ButtonEvent(tt.button, false); got != tt.up {
			t.Errorf("%s %s up = %d, want %d", tt.table.Name(), tt.nativeName, got, tt.up)
		}
	}

	code, value := EvdevButtonValue(Evdev.ButtonEvent(event.Button3, true))
	if code != BtnMiddle || value != 1 {
		t.Errorf("evdev middle down = 0x%X/%d", code, value)
	}
	code, value = EvdevButtonValue(Evdev.ButtonEvent(event.Button3, false))
	if code != BtnMiddle || value != 0 {
		t.Errorf("evdev middle up = 0x%X/%d", code, value)
	}
}

func TestMaskRoundTripBitPairs(t *testing.T) {
	for _, tt := range []struct {
		table Table
		pairs []maskPair
	}{
		{Evdev, evdevMasks},
		{Windows, windowsMasks},
	} {
		var all uint32
		for _, p := range tt.pairs {
			all |= p.native
			v := tt.table.ToVirtualMask(p.native)
			if v != p.primary {
				t.Errorf("%s: ToVirtualMask(0x%X) = %s, want %s", tt.table.Name(), p.native, v, p.primary)
			}
			if got := tt.table.ToNativeMask(v); got&p.native != p.native {
				t.Errorf("%s: native bit 0x%X lost in round trip (got 0x%X)", tt.table.Name(), p.native, got)
			}
		}
		if got := tt.table.ToNativeMask(tt.table.ToVirtualMask(all)); got != all {
			t.Errorf("%s: full mask round trip = 0x%X, want 0x%X", tt.table.Name(), got, all)
		}
	}
}

func TestEvdevMaskButtonOrder(t *testing.T) {
	// X Button2 is the middle button.
	if got := Evdev.ToVirtualMask(XButton2Mask); got != event.MaskButton3 {
		t.Errorf("XButton2Mask = %s, want Button3", got)
	}
	if got := Evdev.ToNativeMask(event.MaskShiftR | event.MaskAltL); got != XShiftMask|XMod1Mask {
		t.Errorf("ToNativeMask = 0x%X", got)
	}
	if got := Evdev.ToVirtualMask(XMod3Mask | XButton4Mask); got != 0 {
		t.Errorf("bits without virtual counterpart = %s, want 0", got)
	}
}

func TestDarwinMask(t *testing.T) {
	tests := []struct {
		flags uint32
		want  event.Mask
	}{
		{CGFlagShift, event.MaskShiftL},
		{CGFlagShift | CGFlagRightShift, event.MaskShiftR},
		{CGFlagShift | CGFlagLeftShift | CGFlagRightShift, event.MaskShift},
		{CGFlagControl | CGFlagRightControl, event.MaskCtrlR},
		{CGFlagAlternate | CGFlagLeftAlt, event.MaskAltL},
		{CGFlagCommand | CGFlagRightCommand, event.MaskMetaR},
		{CGFlagAlphaShift, event.MaskCapsLock},
		{CGFlagRightShift, 0},
		{CGFlagNumericPad, 0},
	}
	for _, tt := range tests {
		got := Darwin.ToVirtualMask(tt.flags)
		if got != tt.want {
			t.Errorf("ToVirtualMask(0x%X) = %s, want %s", tt.flags, got, tt.want)
			continue
		}
		// every generic and side bit with a virtual counterpart survives
		back := Darwin.ToNativeMask(got)
		keep := tt.flags &^ CGFlagNumericPad
		if got == 0 {
			keep = 0
		}
		if back&keep != keep {
			t.Errorf("round trip of 0x%X = 0x%X", tt.flags, back)
		}
	}
}
