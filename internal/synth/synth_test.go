package synth

import (
	"errors"
	"testing"

	"inputhook/event"
	"inputhook/internal/keymap"
)

type call struct {
	op     string
	native uint16
	kind   uint32
	down   bool
	mask   uint32
	x, y   int16
}

type fakeInjector struct {
	caps  Capabilities
	calls []call
}

func (f *fakeInjector) Key(native uint16, down bool, mask uint32) error {
	f.calls = append(f.calls, call{op: "key", native: native, down: down, mask: mask})
	return nil
}

func (f *fakeInjector) Button(kind uint32, native uint16, x, y int16) error {
	f.calls = append(f.calls, call{op: "button", kind: kind, native: native, x: x, y: y})
	return nil
}

func (f *fakeInjector) Move(x, y int16, drag bool) error {
	f.calls = append(f.calls, call{op: "move", x: x, y: y, down: drag})
	return nil
}

func (f *fakeInjector) Wheel(event.WheelData) error {
	f.calls = append(f.calls, call{op: "wheel"})
	return nil
}

func (f *fakeInjector) Capabilities() Capabilities { return f.caps }

func TestPostKeyPressRelease(t *testing.T) {
	inj := &fakeInjector{}
	s := New(keymap.Evdev, inj)

	press := &event.Event{Type: event.KeyPressed, Mask: event.MaskShiftL}
	press.Keyboard.Keycode = event.KeyA
	release := &event.Event{Type: event.KeyReleased}
	release.Keyboard.Keycode = event.KeyA

	if err := s.Post(press); err != nil {
		t.Fatalf("Post(press) error = %v", err)
	}
	if err := s.Post(release); err != nil {
		t.Fatalf("Post(release) error = %v", err)
	}
	if len(inj.calls) != 2 {
		t.Fatalf("calls = %+v, want one down and one up", inj.calls)
	}
	if c := inj.calls[0]; c.op != "key" || c.native != 30 || !c.down || c.mask != keymap.XShiftMask {
		t.Errorf("down = %+v", c)
	}
	if c := inj.calls[1]; c.op != "key" || c.native != 30 || c.down {
		t.Errorf("up = %+v", c)
	}
}

func TestPostButtonUsesTable(t *testing.T) {
	inj := &fakeInjector{}
	s := New(keymap.Windows, inj)
	ev := &event.Event{Type: event.MousePressed}
	ev.Mouse = event.MouseData{Button: event.Button3, X: 5, Y: 6}
	if err := s.Post(ev); err != nil {
		t.Fatal(err)
	}
	ev.Type = event.MouseReleased
	if err := s.Post(ev); err != nil {
		t.Fatal(err)
	}
	if len(inj.calls) != 2 {
		t.Fatalf("calls = %+v", inj.calls)
	}
	if inj.calls[0].kind != keymap.MouseEventMiddleDown || inj.calls[1].kind != keymap.MouseEventMiddleUp {
		t.Errorf("kinds = %d, %d", inj.calls[0].kind, inj.calls[1].kind)
	}
	if inj.calls[0].native != keymap.VKMButton || inj.calls[0].x != 5 || inj.calls[0].y != 6 {
		t.Errorf("button call = %+v", inj.calls[0])
	}
}

func TestDerivedEventsAreNoops(t *testing.T) {
	inj := &fakeInjector{}
	s := New(keymap.Darwin, inj)
	for _, typ := range []event.Type{event.KeyTyped, event.MouseClicked} {
		if err := s.Post(&event.Event{Type: typ}); err != nil {
			t.Errorf("Post(%s) error = %v", typ, err)
		}
	}
	if len(inj.calls) != 0 {
		t.Errorf("calls = %+v", inj.calls)
	}
}

func TestCapabilities(t *testing.T) {
	drag := &event.Event{Type: event.MouseDragged}
	wheel := &event.Event{Type: event.MouseWheel}

	none := &fakeInjector{}
	s := New(keymap.Darwin, none)
	if err := s.Post(drag); err != nil {
		t.Errorf("unsupported drag error = %v", err)
	}
	if err := s.Post(wheel); err != nil {
		t.Errorf("unsupported wheel error = %v", err)
	}
	if len(none.calls) != 0 {
		t.Errorf("calls without capability = %+v", none.calls)
	}

	all := &fakeInjector{caps: Capabilities{Drag: true, Wheel: true}}
	s = New(keymap.Evdev, all)
	s.Post(drag)
	s.Post(wheel)
	if len(all.calls) != 2 || all.calls[0].op != "move" || !all.calls[0].down || all.calls[1].op != "wheel" {
		t.Errorf("calls with capability = %+v", all.calls)
	}
}

func TestPostErrors(t *testing.T) {
	s := New(keymap.Evdev, &fakeInjector{})
	if err := s.Post(&event.Event{Type: event.HookEnabled}); !errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("lifecycle event error = %v", err)
	}
	if err := s.Post(nil); !errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("nil event error = %v", err)
	}
	ev := &event.Event{Type: event.KeyPressed}
	ev.Keyboard.Keycode = event.Keycode(0x7777)
	if err := s.Post(ev); !errors.Is(err, ErrUnmapped) {
		t.Errorf("unmapped key error = %v", err)
	}
}
