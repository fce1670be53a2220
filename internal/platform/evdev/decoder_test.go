//go:build linux

package evdev

import (
	"testing"

	"golang.org/x/sys/unix"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/translate"
)

func ev(ms int64, typ, code uint16, value int32) inputEvent {
	return inputEvent{Time: unix.NsecToTimeval(ms * 1e6), Type: typ, Code: code, Value: value}
}

func decodeAll(d *decoder, events ...inputEvent) []translate.Native {
	var out []translate.Native
	for _, e := range events {
		d.feed(e, func(n translate.Native) { out = append(out, n) })
	}
	return out
}

func TestDecodeKeys(t *testing.T) {
	d := &decoder{}
	got := decodeAll(d,
		ev(10, evKey, keyA, 1),
		ev(10, evSyn, synReport, 0),
		ev(20, evKey, keyA, keyRepeat),
		ev(30, evKey, keyA, 0),
		ev(30, evKey, 0x130, 1), // BTN_A on a gamepad
	)
	want := []translate.Kind{translate.KeyDown, translate.KeyDown, translate.KeyUp}
	if len(got) != len(want) {
		t.Fatalf("got %d captures, want %d: %+v", len(got), len(want), got)
	}
	for i, n := range got {
		if n.Kind != want[i] || n.Code != keyA {
			t.Errorf("capture %d = %s/%d", i, n.Kind, n.Code)
		}
	}
	if got[0].Time != 10 || got[2].Time != 30 {
		t.Errorf("times = %d, %d", got[0].Time, got[2].Time)
	}
}

func TestDecodeMotionClampsToDesktop(t *testing.T) {
	d := &decoder{x: 100, y: 100, bounds: &rect{0, 0, 1919, 1079}}
	got := decodeAll(d,
		ev(1, evRel, relX, 5),
		ev(1, evRel, relY, -3),
		ev(1, evSyn, synReport, 0),
		ev(2, evRel, relX, -500),
		ev(2, evSyn, synReport, 0),
		ev(3, evKey, keymap.BtnLeft, 1),
	)
	if len(got) != 3 {
		t.Fatalf("captures = %+v", got)
	}
	if got[0].Kind != translate.Motion || got[0].X != 105 || got[0].Y != 97 {
		t.Errorf("first motion = %+v", got[0])
	}
	if got[1].X != 0 || got[1].Y != 97 {
		t.Errorf("clamped motion = %+v", got[1])
	}
	if got[2].Kind != translate.ButtonDown || got[2].Code != keymap.BtnLeft || got[2].X != 0 {
		t.Errorf("button = %+v", got[2])
	}
}

func TestDecodeWheel(t *testing.T) {
	d := &decoder{}
	got := decodeAll(d,
		ev(1, evRel, relWheel, 1),
		ev(1, evRel, relHWheel, -2),
		ev(1, evSyn, synReport, 0),
	)
	if len(got) != 2 {
		t.Fatalf("captures = %+v", got)
	}
	if got[0].WheelDirection != event.WheelVertical || got[0].WheelRotation != -1 || got[0].WheelAmount != wheelAmount {
		t.Errorf("vertical = %+v", got[0])
	}
	if got[1].WheelDirection != event.WheelHorizontal || got[1].WheelRotation != -2 {
		t.Errorf("horizontal = %+v", got[1])
	}
}

func TestDecodeDroppedAndSeed(t *testing.T) {
	d := &decoder{seed: keymap.XShiftMask, hasSeed: true}
	got := decodeAll(d,
		ev(1, evRel, relX, 5),
		ev(1, evSyn, synDropped, 0),
		ev(2, evSyn, synReport, 0),
		ev(3, evKey, keyA, 1),
		ev(4, evKey, keyA, 0),
	)
	if len(got) != 2 {
		t.Fatalf("captures = %+v", got)
	}
	if !got[0].HasMask || got[0].Mask != keymap.XShiftMask {
		t.Errorf("first capture not seeded: %+v", got[0])
	}
	if got[1].HasMask {
		t.Error("seed applied twice")
	}
}
