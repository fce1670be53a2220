package hotkey

import (
	"testing"
	"time"

	"inputhook/event"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in      string
		want    Chord
		wantErr bool
	}{
		{in: "Ctrl+Alt+Shift+Escape", want: Chord{Modifiers: event.MaskCtrl | event.MaskAlt | event.MaskShift, Key: event.KeyEscape}},
		{in: "cmd + q", want: Chord{Modifiers: event.MaskMeta, Key: event.KeyQ}},
		{in: "Shift+Mouse4", want: Chord{Modifiers: event.MaskShift, Button: event.Button4}},
		{in: "F12", want: Chord{Key: event.KeyF12}},
		{in: "Ctrl+Alt", wantErr: true},
		{in: "A+B", wantErr: true},
		{in: "Ctrl++A", wantErr: true},
		{in: "Ctrl+Bogus", wantErr: true},
		{in: "Mouse9", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChord(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFeed(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 4)
	if _, err := m.Register("Ctrl+Shift+Escape", func() { fired <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Register("", nil); err != nil {
		t.Fatal(err)
	}

	press := func(mask event.Mask) *event.Event {
		return &event.Event{Type: event.KeyPressed, Mask: mask,
			Keyboard: event.KeyboardData{Keycode: event.KeyEscape}}
	}

	if ev := press(event.MaskCtrlL); m.Feed(ev) || ev.Reserved {
		t.Error("matched without shift")
	}
	release := &event.Event{Type: event.KeyReleased, Mask: event.MaskCtrlR | event.MaskShiftL,
		Keyboard: event.KeyboardData{Keycode: event.KeyEscape}}
	if m.Feed(release) {
		t.Error("matched a release")
	}

	ev := press(event.MaskCtrlR | event.MaskShiftL | event.MaskAltL)
	if !m.Feed(ev) {
		t.Fatal("chord with either side and an extra modifier did not match")
	}
	if !ev.Reserved {
		t.Error("matched event not reserved")
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback not run")
	}

	m.Clear()
	if m.Feed(press(event.MaskCtrlL | event.MaskShiftL)) {
		t.Error("matched after Clear")
	}
}

func TestFeedMouse(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 1)
	m.Register("Mouse4", func() { fired <- struct{}{} })

	if m.Feed(&event.Event{Type: event.MousePressed, Mouse: event.MouseData{Button: event.Button5}}) {
		t.Error("wrong button matched")
	}
	if !m.Feed(&event.Event{Type: event.MousePressed, Mouse: event.MouseData{Button: event.Button4}}) {
		t.Fatal("button chord did not match")
	}
	<-fired
}

func TestFeedInline(t *testing.T) {
	m := NewManager()
	ran := false
	if _, err := m.RegisterInline("Ctrl+Q", func() { ran = true }); err != nil {
		t.Fatal(err)
	}
	ev := &event.Event{Type: event.KeyPressed, Mask: event.MaskCtrlL,
		Keyboard: event.KeyboardData{Keycode: event.KeyQ}}
	if !m.Feed(ev) {
		t.Fatal("inline chord did not match")
	}
	if !ran {
		t.Error("inline callback had not run when Feed returned")
	}
	if !ev.Reserved {
		t.Error("matched event not reserved")
	}
}
