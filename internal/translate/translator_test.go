package translate

import (
	"testing"
	"time"

	"inputhook/event"
	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) emit(ev *event.Event) { r.events = append(r.events, *ev) }

func (r *recorder) types() []event.Type {
	out := make([]event.Type, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func newTranslator(t *testing.T) *Translator {
	t.Setenv("LC_ALL", "C")
	res := deadkey.NewResolver(deadkey.StaticSource{Layout: deadkey.USLayout()}, nil)
	res.Load()
	t.Cleanup(res.Unload)
	return New(keymap.Evdev, res, ClickConfig{})
}

func equalTypes(a, b []event.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestKeyPressEmitsPressedThenTyped(t *testing.T) {
	tr := newTranslator(t)
	var rec recorder

	tr.Translate(Native{Kind: KeyDown, Time: 10, Code: 30}, rec.emit)
	want := []event.Type{event.KeyPressed, event.KeyTyped}
	if !equalTypes(rec.types(), want) {
		t.Fatalf("events = %v, want %v", rec.types(), want)
	}
	if rec.events[0].Keyboard.Keycode != event.KeyA || rec.events[0].Keyboard.RawCode != 30 {
		t.Errorf("pressed payload = %+v", rec.events[0].Keyboard)
	}
	if rec.events[1].Keyboard.Char != 'a' || rec.events[1].Keyboard.Keycode != event.KeyUndefined {
		t.Errorf("typed payload = %+v", rec.events[1].Keyboard)
	}
	if rec.events[1].Time != 10 {
		t.Errorf("typed time = %d", rec.events[1].Time)
	}

	rec.reset()
	tr.Translate(Native{Kind: KeyUp, Time: 20, Code: 30}, rec.emit)
	if !equalTypes(rec.types(), []event.Type{event.KeyReleased}) {
		t.Errorf("release events = %v", rec.types())
	}
}

func TestModifierTracking(t *testing.T) {
	tr := newTranslator(t)
	var rec recorder

	tr.Translate(Native{Kind: KeyDown, Code: 42}, rec.emit) // left shift
	if !equalTypes(rec.types(), []event.Type{event.KeyPressed}) {
		t.Fatalf("shift events = %v", rec.types())
	}
	rec.reset()
	tr.Translate(Native{Kind: KeyDown, Code: 30}, rec.emit)
	if len(rec.events) != 2 || rec.events[1].Keyboard.Char != 'A' {
		t.Fatalf("shift+a = %+v", rec.events)
	}
	if rec.events[0].Mask != event.MaskShiftL {
		t.Errorf("mask = %s", rec.events[0].Mask)
	}
	tr.Translate(Native{Kind: KeyUp, Code: 42}, rec.emit)
	if tr.Modifiers().Mask() != 0 {
		t.Errorf("mask after release = %s", tr.Modifiers().Mask())
	}

	tr.Translate(Native{Kind: KeyDown, Code: 58}, rec.emit) // caps lock
	tr.Translate(Native{Kind: KeyUp, Code: 58}, rec.emit)
	if tr.Modifiers().Mask() != event.MaskCapsLock {
		t.Errorf("caps toggle = %s", tr.Modifiers().Mask())
	}
	tr.Translate(Native{Kind: KeyDown, Code: 58}, rec.emit)
	if tr.Modifiers().Mask() != 0 {
		t.Errorf("caps second toggle = %s", tr.Modifiers().Mask())
	}
}

func TestNativeMaskSync(t *testing.T) {
	tr := New(keymap.Darwin, nil, ClickConfig{})
	var rec recorder
	tr.Translate(Native{Kind: KeyDown, Code: 0x00, Mask: keymap.CGFlagShift | keymap.CGFlagRightShift, HasMask: true}, rec.emit)
	if len(rec.events) != 1 {
		t.Fatalf("events = %v", rec.types())
	}
	if rec.events[0].Mask != event.MaskShiftR || rec.events[0].Keyboard.Keycode != event.KeyA {
		t.Errorf("event = %+v", rec.events[0])
	}
}

func click(tr *Translator, rec *recorder, at uint64, x, y int16) {
	tr.Translate(Native{Kind: ButtonDown, Code: keymap.BtnLeft, Time: at, X: x, Y: y}, rec.emit)
	tr.Translate(Native{Kind: ButtonUp, Code: keymap.BtnLeft, Time: at + 20, X: x, Y: y}, rec.emit)
}

func clickedCounts(rec *recorder) []uint16 {
	var out []uint16
	for _, ev := range rec.events {
		if ev.Type == event.MouseClicked {
			out = append(out, ev.Mouse.Clicks)
		}
	}
	return out
}

func TestClickCounting(t *testing.T) {
	tr := New(keymap.Evdev, nil, ClickConfig{Interval: 500 * time.Millisecond, Tolerance: 4})
	var rec recorder

	click(tr, &rec, 0, 10, 10)
	click(tr, &rec, 100, 11, 10)
	click(tr, &rec, 200, 10, 12)
	click(tr, &rec, 300, 50, 50) // too far away
	click(tr, &rec, 2000, 50, 50)

	got := clickedCounts(&rec)
	want := []uint16{1, 2, 3, 1, 1}
	if len(got) != len(want) {
		t.Fatalf("clicked counts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("click %d count = %d, want %d", i, got[i], want[i])
		}
	}

	first := rec.events[:3]
	wantTypes := []event.Type{event.MousePressed, event.MouseReleased, event.MouseClicked}
	for i, ev := range first {
		if ev.Type != wantTypes[i] {
			t.Errorf("event %d = %s, want %s", i, ev.Type, wantTypes[i])
		}
	}
	if first[0].Mask != event.MaskButton1 || first[1].Mask != 0 {
		t.Errorf("button masks = %s, %s", first[0].Mask, first[1].Mask)
	}
}

func TestClickCountDifferentButtonResets(t *testing.T) {
	tr := New(keymap.Evdev, nil, ClickConfig{})
	var rec recorder
	click(tr, &rec, 0, 0, 0)
	tr.Translate(Native{Kind: ButtonDown, Code: keymap.BtnRight, Time: 50}, rec.emit)
	last := rec.events[len(rec.events)-1]
	if last.Mouse.Button != event.Button2 || last.Mouse.Clicks != 1 {
		t.Errorf("right press = %+v", last.Mouse)
	}
}

func TestDragSuppressesClick(t *testing.T) {
	tr := New(keymap.Evdev, nil, ClickConfig{})
	var rec recorder

	tr.Translate(Native{Kind: ButtonDown, Code: keymap.BtnLeft, Time: 0, X: 10, Y: 10}, rec.emit)
	tr.Translate(Native{Kind: Motion, Time: 5, X: 40, Y: 40}, rec.emit)
	tr.Translate(Native{Kind: ButtonUp, Code: keymap.BtnLeft, Time: 10, X: 40, Y: 40}, rec.emit)
	tr.Translate(Native{Kind: Motion, Time: 15, X: 41, Y: 40}, rec.emit)

	want := []event.Type{event.MousePressed, event.MouseDragged, event.MouseReleased, event.MouseMoved}
	if !equalTypes(rec.types(), want) {
		t.Fatalf("events = %v, want %v", rec.types(), want)
	}
	if rec.events[2].Mouse.Clicks != 1 {
		t.Errorf("released clicks = %d", rec.events[2].Mouse.Clicks)
	}

	rec.reset()
	click(tr, &rec, 100, 40, 40)
	if got := clickedCounts(&rec); len(got) != 1 || got[0] != 1 {
		t.Errorf("click after drag = %v, want [1]", got)
	}
}

func TestWheelAndReserved(t *testing.T) {
	tr := New(keymap.Windows, nil, ClickConfig{})
	var rec recorder
	tr.Translate(Native{
		Kind: Wheel, Time: 7, X: 3, Y: 4,
		WheelType: event.WheelUnitScroll, WheelAmount: 3, WheelRotation: -1, WheelDirection: event.WheelVertical,
	}, rec.emit)
	if len(rec.events) != 1 || rec.events[0].Type != event.MouseWheel {
		t.Fatalf("events = %v", rec.types())
	}
	w := rec.events[0].Wheel
	if w.Rotation != -1 || w.Amount != 3 || w.X != 3 || w.Direction != event.WheelVertical {
		t.Errorf("wheel = %+v", w)
	}

	reserved := tr.Translate(Native{Kind: KeyDown, Code: 0x41}, func(ev *event.Event) {
		ev.Reserved = true
	})
	if !reserved {
		t.Error("Reserved flag not reported")
	}
	if tr.Translate(Native{Kind: KeyUp, Code: 0x41}, func(*event.Event) {}) {
		t.Error("untouched event reported as reserved")
	}
}
