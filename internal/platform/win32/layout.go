//go:build windows

package win32

import (
	"unicode/utf16"
	"unsafe"

	"inputhook/event"
	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
)

const (
	mapvkVKToVSC = 0
	// ToUnicodeEx flag leaving the kernel keyboard state, including any
	// pending dead key of the focused application, untouched.
	toUnicodeNoStateChange = 0x4
)

type layout struct {
	hkl uintptr
}

func (l layout) ID() uint64 { return uint64(l.hkl) }

func (l layout) Release() {}

// toUnicode translates one key press. dead reports a dead key, in which
// case the result holds its spacing glyph.
func (l layout) toUnicode(code uint16, mask event.Mask) (out []rune, dead bool) {
	vk, _ := keymap.WindowsSplitKey(code)
	scan, _, _ := procMapVirtualKeyExW.Call(uintptr(vk), mapvkVKToVSC, l.hkl)

	var state [256]byte
	if mask&event.MaskShift != 0 {
		state[keymap.VKShift] = 0x80
		state[keymap.VKLShift] = 0x80
	}
	if mask&event.MaskCapsLock != 0 {
		state[keymap.VKCapital] = 0x01
	}
	if mask&event.MaskNumLock != 0 {
		state[keymap.VKNumLock] = 0x01
	}

	var buf [8]uint16
	r, _, _ := procToUnicodeEx.Call(uintptr(vk), scan,
		uintptr(unsafe.Pointer(&state[0])), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
		toUnicodeNoStateChange, l.hkl)
	n := int32(r)
	if n < 0 {
		return utf16.Decode(buf[:1]), true
	}
	return utf16.Decode(buf[:n]), false
}

// Translate keeps the pending dead key's spacing glyph in state since the
// kernel state is never changed.
func (l layout) Translate(code uint16, mask event.Mask, state *uint32) ([]rune, error) {
	out, dead := l.toUnicode(code, mask)
	pending := rune(*state)

	if dead {
		*state = uint32(out[0])
		if pending == 0 {
			return nil, nil
		}
		if pending == out[0] {
			*state = 0
		}
		return []rune{pending}, nil
	}
	if pending == 0 || len(out) == 0 {
		return out, nil
	}
	*state = 0
	return append(deadkey.ComposeSpacing(pending, out[0]), out[1:]...), nil
}

func (l layout) Lookup(code uint16, mask event.Mask) []rune {
	out, _ := l.toUnicode(code, mask)
	return out
}

type layoutSource struct{}

// Current returns the layout of the thread owning the foreground window.
func (layoutSource) Current() (deadkey.Layout, error) {
	fg, _, _ := procGetForegroundWindow.Call()
	var tid uintptr
	if fg != 0 {
		tid, _, _ = procGetWindowThreadProcessId.Call(fg, 0)
	}
	hkl, _, _ := procGetKeyboardLayout.Call(tid)
	return layout{hkl: hkl}, nil
}
