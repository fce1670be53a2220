package win32

import (
	"testing"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/translate"
)

func newTestDecoder(now uint64) *decoder {
	return &decoder{now: func() uint64 { return now }, wheelLines: 3}
}

func TestExtendTime(t *testing.T) {
	tests := []struct {
		now  uint64
		t    uint32
		want uint64
	}{
		{1000, 990, 990},
		{1 << 32, 0xFFFFFFF0, 1<<32 - 16},
		{1<<32 + 5, 2, 1<<32 + 2},
	}
	for _, tt := range tests {
		if got := extendTime(tt.now, tt.t); got != tt.want {
			t.Errorf("extendTime(%d, %d) = %d, want %d", tt.now, tt.t, got, tt.want)
		}
	}
}

func TestDecodeKeyboard(t *testing.T) {
	d := newTestDecoder(500)
	d.seed, d.hasSeed = 1<<13, true

	n, ok := d.keyboard(wmKeyDown, &kbdHook{VkCode: 0x0D, Flags: llkhfExtended, Time: 480})
	if !ok || n.Kind != translate.KeyDown || n.Time != 480 {
		t.Fatalf("keyboard = %+v, %v", n, ok)
	}
	if k := keymap.Windows.ToVirtualKey(n.Code); k != event.KeyKPEnter {
		t.Errorf("extended return = %v, want %v", k, event.KeyKPEnter)
	}
	if !n.HasMask || keymap.Windows.ToVirtualMask(n.Mask) != event.MaskCapsLock {
		t.Errorf("first capture mask = %#x (has %v), want caps lock seed", n.Mask, n.HasMask)
	}

	n, ok = d.keyboard(wmSysKeyUp, &kbdHook{VkCode: 0x41, Time: 490})
	if !ok || n.Kind != translate.KeyUp || n.HasMask {
		t.Errorf("second capture = %+v, %v", n, ok)
	}
	if k := keymap.Windows.ToVirtualKey(n.Code); k != event.KeyA {
		t.Errorf("key = %v, want %v", k, event.KeyA)
	}

	if _, ok := d.keyboard(0x0102, &kbdHook{}); ok {
		t.Error("WM_CHAR decoded")
	}
}

func TestDecodeMouseButtons(t *testing.T) {
	d := newTestDecoder(100)
	tests := []struct {
		msg  uintptr
		data uint32
		kind translate.Kind
		want event.Button
	}{
		{wmLButtonDown, 0, translate.ButtonDown, event.Button1},
		{wmRButtonUp, 0, translate.ButtonUp, event.Button2},
		{wmMButtonDown, 0, translate.ButtonDown, event.Button3},
		{wmXButtonDown, xButton1 << 16, translate.ButtonDown, event.Button4},
		{wmXButtonUp, xButton2 << 16, translate.ButtonUp, event.Button5},
	}
	for _, tt := range tests {
		n, ok := d.mouse(tt.msg, &mouseHook{X: -20, Y: 40000, MouseData: tt.data, Time: 99})
		if !ok || n.Kind != tt.kind {
			t.Errorf("mouse(0x%X) = %+v, %v", tt.msg, n, ok)
			continue
		}
		if b := keymap.Windows.ToVirtualButton(n.Code); b != tt.want {
			t.Errorf("mouse(0x%X) button = %v, want %v", tt.msg, b, tt.want)
		}
		if n.X != -20 || n.Y != 32767 {
			t.Errorf("mouse(0x%X) position = (%d, %d)", tt.msg, n.X, n.Y)
		}
	}
}

func TestDecodeWheel(t *testing.T) {
	d := newTestDecoder(0)

	n, ok := d.mouse(wmMouseWheel, &mouseHook{MouseData: uint32(uint16(240)) << 16})
	if !ok || n.Kind != translate.Wheel || n.WheelRotation != -2 || n.WheelDirection != event.WheelVertical {
		t.Fatalf("wheel up = %+v, %v", n, ok)
	}
	if n.WheelType != event.WheelUnitScroll || n.WheelAmount != 3 {
		t.Errorf("wheel type/amount = %v/%d", n.WheelType, n.WheelAmount)
	}

	down := int16(-60)
	if _, ok := d.mouse(wmMouseWheel, &mouseHook{MouseData: uint32(uint16(down)) << 16}); ok {
		t.Fatal("half notch produced a wheel event")
	}
	n, ok = d.mouse(wmMouseWheel, &mouseHook{MouseData: uint32(uint16(down)) << 16})
	if !ok || n.WheelRotation != 1 {
		t.Fatalf("accumulated notch = %+v, %v", n, ok)
	}

	n, ok = d.mouse(wmMouseHWheel, &mouseHook{MouseData: uint32(uint16(120)) << 16})
	if !ok || n.WheelDirection != event.WheelHorizontal || n.WheelRotation != 1 {
		t.Errorf("horizontal = %+v, %v", n, ok)
	}

	d.wheelLines = wheelPageScroll
	n, _ = d.mouse(wmMouseWheel, &mouseHook{MouseData: uint32(uint16(120)) << 16})
	if n.WheelType != event.WheelBlockScroll || n.WheelAmount != 1 {
		t.Errorf("page scroll = %+v", n)
	}
}

func TestTickCount(t *testing.T) {
	if got := tickCount(1234, 0); got != 1234 {
		t.Errorf("tickCount(1234, 0) = %d", got)
	}
}
