//go:build linux

package evdev

import (
	"math"
	"time"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/translate"
)

// Lines scrolled per wheel detent, matching the X server default
const wheelAmount = 3

type rect struct {
	minX, minY, maxX, maxY int32
}

// decoder folds the raw input_event stream of all devices into native
// captures. Relative motion is accumulated until SYN_REPORT and applied to
// a pointer position clamped to the desktop.
type decoder struct {
	x, y   int32
	bounds *rect

	dx, dy        int32
	wheel, hwheel int32

	// seed is the X modifier state attached to the first capture
	seed    uint32
	hasSeed bool
}

func msec(tv inputEvent) uint64 {
	return uint64(tv.Time.Nano() / int64(time.Millisecond))
}

func clamp16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func (d *decoder) emit(n translate.Native, out func(translate.Native)) {
	if d.hasSeed {
		n.Mask, n.HasMask = d.seed, true
		d.hasSeed = false
	}
	out(n)
}

func (d *decoder) feed(ev inputEvent, out func(translate.Native)) {
	switch ev.Type {
	case evKey:
		d.key(ev, out)
	case evRel:
		switch ev.Code {
		case relX:
			d.dx += ev.Value
		case relY:
			d.dy += ev.Value
		case relWheel:
			d.wheel += ev.Value
		case relHWheel:
			d.hwheel += ev.Value
		}
	case evSyn:
		switch ev.Code {
		case synReport:
			d.flush(ev, out)
		case synDropped:
			d.dx, d.dy, d.wheel, d.hwheel = 0, 0, 0, 0
		}
	}
}

func (d *decoder) key(ev inputEvent, out func(translate.Native)) {
	code := ev.Code
	n := translate.Native{Time: msec(ev), Code: code, X: clamp16(d.x), Y: clamp16(d.y)}
	switch {
	case code >= keymap.BtnLeft && code <= keymap.BtnExtra:
		if ev.Value == keyRepeat {
			return
		}
		n.Kind = translate.ButtonUp
		if ev.Value != 0 {
			n.Kind = translate.ButtonDown
		}
	case code < btnMisc || code >= keyOK:
		n.Kind = translate.KeyUp
		if ev.Value != 0 {
			n.Kind = translate.KeyDown
		}
	default:
		return // joystick, digitizer and other buttons
	}
	d.emit(n, out)
}

func (d *decoder) flush(ev inputEvent, out func(translate.Native)) {
	at := msec(ev)
	if d.dx != 0 || d.dy != 0 {
		d.x += d.dx
		d.y += d.dy
		if b := d.bounds; b != nil {
			d.x = min(max(d.x, b.minX), b.maxX)
			d.y = min(max(d.y, b.minY), b.maxY)
		}
		d.dx, d.dy = 0, 0
		d.emit(translate.Native{Kind: translate.Motion, Time: at, X: clamp16(d.x), Y: clamp16(d.y)}, out)
	}
	if d.wheel != 0 {
		// evdev counts away from the user as positive
		d.emit(d.wheelNative(at, -d.wheel, event.WheelVertical), out)
		d.wheel = 0
	}
	if d.hwheel != 0 {
		d.emit(d.wheelNative(at, d.hwheel, event.WheelHorizontal), out)
		d.hwheel = 0
	}
}

func (d *decoder) wheelNative(at uint64, rotation int32, dir event.WheelDirection) translate.Native {
	return translate.Native{
		Kind:           translate.Wheel,
		Time:           at,
		X:              clamp16(d.x),
		Y:              clamp16(d.y),
		WheelType:      event.WheelUnitScroll,
		WheelAmount:    wheelAmount,
		WheelRotation:  clamp16(rotation),
		WheelDirection: dir,
	}
}
