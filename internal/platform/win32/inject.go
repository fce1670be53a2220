//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/synth"
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyEventExtended = 0x0001
	keyEventUp       = 0x0002

	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79
)

type mouseInput struct {
	Dx, Dy    int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type keyboardInput struct {
	Vk, Scan  uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// input mirrors INPUT; the union is sized by its largest member,
// MOUSEINPUT.
type input struct {
	Type  uint32
	Mouse mouseInput
}

type injector struct{}

func send(inputs ...input) error {
	r, _, err := procSendInput.Call(uintptr(len(inputs)), uintptr(unsafe.Pointer(&inputs[0])), unsafe.Sizeof(inputs[0]))
	if int(r) != len(inputs) {
		return fmt.Errorf("SendInput: %w", err)
	}
	return nil
}

func metric(index uintptr) int32 {
	r, _, _ := procGetSystemMetrics.Call(index)
	return int32(r)
}

// absolute maps a desktop position to SendInput's 0..65535 range over the
// virtual screen.
func absolute(x, y int16) (int32, int32) {
	vx, vy := metric(smXVirtualScreen), metric(smYVirtualScreen)
	vw, vh := max(metric(smCXVirtualScreen), 2), max(metric(smCYVirtualScreen), 2)
	return normalize(int32(x)-vx, vw), normalize(int32(y)-vy, vh)
}

func normalize(v, size int32) int32 {
	v = min(max(v, 0), size-1)
	return int32(int64(v) * 65535 / int64(size-1))
}

func (*injector) Key(native uint16, down bool, _ uint32) error {
	vk, extended := keymap.WindowsSplitKey(native)
	scan, _, _ := procMapVirtualKeyExW.Call(uintptr(vk), mapvkVKToVSC, 0)
	in := input{Type: inputKeyboard}
	k := (*keyboardInput)(unsafe.Pointer(&in.Mouse))
	k.Vk, k.Scan = vk, uint16(scan)
	if extended {
		k.Flags |= keyEventExtended
	}
	if !down {
		k.Flags |= keyEventUp
	}
	return send(in)
}

func (*injector) Button(kind uint32, native uint16, x, y int16) error {
	in := input{Type: inputMouse}
	in.Mouse.Dx, in.Mouse.Dy = absolute(x, y)
	in.Mouse.Flags = kind | keymap.MouseEventMove | keymap.MouseEventAbsolute | keymap.MouseEventVirtualDsk
	switch native {
	case keymap.VKXButton1:
		in.Mouse.MouseData = xButton1
	case keymap.VKXButton2:
		in.Mouse.MouseData = xButton2
	}
	return send(in)
}

// Move also serves drags; held buttons stay down in the system state.
func (*injector) Move(x, y int16, _ bool) error {
	in := input{Type: inputMouse}
	in.Mouse.Dx, in.Mouse.Dy = absolute(x, y)
	in.Mouse.Flags = keymap.MouseEventMove | keymap.MouseEventAbsolute | keymap.MouseEventVirtualDsk
	return send(in)
}

func (*injector) Wheel(w event.WheelData) error {
	in := input{Type: inputMouse}
	if w.Direction == event.WheelHorizontal {
		in.Mouse.Flags = keymap.MouseEventHWheel
		in.Mouse.MouseData = uint32(int32(w.Rotation) * wheelDelta)
	} else {
		in.Mouse.Flags = keymap.MouseEventWheel
		in.Mouse.MouseData = uint32(-int32(w.Rotation) * wheelDelta)
	}
	return send(in)
}

func (*injector) Capabilities() synth.Capabilities {
	return synth.Capabilities{Drag: true, Wheel: true}
}
