package win32

import (
	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/translate"
)

// Window messages delivered to the low-level hooks
const (
	wmKeyDown       = 0x0100
	wmKeyUp         = 0x0101
	wmSysKeyDown    = 0x0104
	wmSysKeyUp      = 0x0105
	wmMouseMove     = 0x0200
	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmMButtonDown   = 0x0207
	wmMButtonUp     = 0x0208
	wmMouseWheel    = 0x020A
	wmXButtonDown   = 0x020B
	wmXButtonUp     = 0x020C
	wmMouseHWheel   = 0x020E
	llkhfExtended   = 0x01
	wheelDelta      = 120
	xButton1        = 0x0001
	xButton2        = 0x0002
	wheelPageScroll = 0xFFFFFFFF
)

// kbdHook mirrors KBDLLHOOKSTRUCT
type kbdHook struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// mouseHook mirrors MSLLHOOKSTRUCT
type mouseHook struct {
	X, Y      int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// extendTime widens a 32-bit tick count to the 64-bit clock now is read
// from, assuming the event happened shortly before now.
func extendTime(now uint64, t uint32) uint64 {
	return now - uint64(uint32(now)-t)
}

func clamp16(v int32) int16 {
	return int16(min(max(v, -1<<15), 1<<15-1))
}

// decoder turns hook messages into native captures. It is owned by the
// hook thread.
type decoder struct {
	now func() uint64

	wheelLines uint32
	wheelRest  [2]int32 // partial notches from high resolution wheels

	seed    uint32
	hasSeed bool
}

func (d *decoder) base(t uint32) translate.Native {
	n := translate.Native{Time: extendTime(d.now(), t)}
	if d.hasSeed {
		n.Mask, n.HasMask = d.seed, true
		d.hasSeed = false
	}
	return n
}

func (d *decoder) keyboard(msg uintptr, k *kbdHook) (translate.Native, bool) {
	n := d.base(k.Time)
	switch msg {
	case wmKeyDown, wmSysKeyDown:
		n.Kind = translate.KeyDown
	case wmKeyUp, wmSysKeyUp:
		n.Kind = translate.KeyUp
	default:
		return n, false
	}
	n.Code = keymap.WindowsNativeKey(k.VkCode, k.Flags&llkhfExtended != 0)
	return n, true
}

func (d *decoder) mouse(msg uintptr, m *mouseHook) (translate.Native, bool) {
	n := d.base(m.Time)
	n.X, n.Y = clamp16(m.X), clamp16(m.Y)

	switch msg {
	case wmMouseMove:
		n.Kind = translate.Motion
	case wmLButtonDown, wmRButtonDown, wmMButtonDown, wmXButtonDown:
		n.Kind = translate.ButtonDown
		n.Code = buttonCode(msg, m.MouseData)
	case wmLButtonUp, wmRButtonUp, wmMButtonUp, wmXButtonUp:
		n.Kind = translate.ButtonUp
		n.Code = buttonCode(msg, m.MouseData)
	case wmMouseWheel, wmMouseHWheel:
		return d.wheel(n, msg, int16(m.MouseData>>16))
	default:
		return n, false
	}
	return n, true
}

func buttonCode(msg uintptr, data uint32) uint16 {
	switch msg {
	case wmLButtonDown, wmLButtonUp:
		return keymap.VKLButton
	case wmRButtonDown, wmRButtonUp:
		return keymap.VKRButton
	case wmMButtonDown, wmMButtonUp:
		return keymap.VKMButton
	}
	if data>>16 == xButton2 {
		return keymap.VKXButton2
	}
	return keymap.VKXButton1
}

func (d *decoder) wheel(n translate.Native, msg uintptr, delta int16) (translate.Native, bool) {
	axis, dir := 0, event.WheelVertical
	if msg == wmMouseHWheel {
		axis, dir = 1, event.WheelHorizontal
	}
	total := d.wheelRest[axis] + int32(delta)
	notches := total / wheelDelta
	d.wheelRest[axis] = total % wheelDelta
	if notches == 0 {
		return n, false
	}
	// vertical deltas count away from the user as positive
	if dir == event.WheelVertical {
		notches = -notches
	}

	n.Kind = translate.Wheel
	n.WheelDirection = dir
	n.WheelRotation = clamp16(notches)
	n.WheelType = event.WheelUnitScroll
	n.WheelAmount = uint16(min(d.wheelLines, 0xFFFF))
	if d.wheelLines == wheelPageScroll {
		n.WheelType, n.WheelAmount = event.WheelBlockScroll, 1
	}
	return n, true
}
