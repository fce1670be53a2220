package event

import (
	"strconv"
	"strings"
)

// Mask is the modifier and button state attached to every event
type Mask uint16

const (
	MaskShiftL Mask = 1 << iota
	MaskCtrlL
	MaskMetaL
	MaskAltL
	MaskShiftR
	MaskCtrlR
	MaskMetaR
	MaskAltR
	MaskButton1
	MaskButton2
	MaskButton3
	MaskButton4
	MaskButton5
	MaskNumLock
	MaskCapsLock
	MaskScrollLock
)

const (
	MaskShift = MaskShiftL | MaskShiftR
	MaskCtrl  = MaskCtrlL | MaskCtrlR
	MaskMeta  = MaskMetaL | MaskMetaR
	MaskAlt   = MaskAltL | MaskAltR

	MaskModifiers = MaskShift | MaskCtrl | MaskMeta | MaskAlt
	MaskButtons   = MaskButton1 | MaskButton2 | MaskButton3 | MaskButton4 | MaskButton5
	MaskLocks     = MaskNumLock | MaskCapsLock | MaskScrollLock
)

var maskNames = []struct {
	bit  Mask
	name string
}{
	{MaskShiftL, "ShiftL"},
	{MaskCtrlL, "CtrlL"},
	{MaskMetaL, "MetaL"},
	{MaskAltL, "AltL"},
	{MaskShiftR, "ShiftR"},
	{MaskCtrlR, "CtrlR"},
	{MaskMetaR, "MetaR"},
	{MaskAltR, "AltR"},
	{MaskButton1, "Button1"},
	{MaskButton2, "Button2"},
	{MaskButton3, "Button3"},
	{MaskButton4, "Button4"},
	{MaskButton5, "Button5"},
	{MaskNumLock, "NumLock"},
	{MaskCapsLock, "CapsLock"},
	{MaskScrollLock, "ScrollLock"},
}

// Has reports whether any bit of other is set in m.
func (m Mask) Has(other Mask) bool { return m&other != 0 }

func (m Mask) String() string {
	if m == 0 {
		return "0"
	}
	var parts []string
	for _, n := range maskNames {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ButtonMask returns the held-button bit for b, or 0 for NoButton and
// out-of-range values.
func ButtonMask(b Button) Mask {
	if b < Button1 || b > Button5 {
		return 0
	}
	return MaskButton1 << (b - Button1)
}

// Button identifies a mouse button
type Button uint16

const (
	NoButton Button = iota
	Button1         // left
	Button2         // right
	Button3         // middle
	Button4         // X1 / back
	Button5         // X2 / forward
)

func (b Button) String() string {
	switch b {
	case NoButton:
		return "None"
	case Button1:
		return "Left"
	case Button2:
		return "Right"
	case Button3:
		return "Middle"
	case Button4:
		return "X1"
	case Button5:
		return "X2"
	}
	return "Button(" + strconv.Itoa(int(b)) + ")"
}
