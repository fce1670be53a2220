// Package synth rebuilds native input from virtual events and injects it.
package synth

import (
	"errors"
	"fmt"
	"sync"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/logger"
)

var (
	// ErrUnsupportedEvent is returned for event types that cannot be posted.
	ErrUnsupportedEvent = errors.New("synth: unsupported event type")
	// ErrUnmapped is returned when a key or button has no native code.
	ErrUnmapped = errors.New("synth: no native code")
)

// Capabilities lists the optional injections a backend performs
type Capabilities struct {
	Drag  bool
	Wheel bool
}

// Injector performs native injection for one platform.
type Injector interface {
	// Key injects a key transition; mask is the native modifier mask.
	Key(native uint16, down bool, mask uint32) error
	// Button injects a button transition. kind comes from the code
	// table's button event lookup.
	Button(kind uint32, native uint16, x, y int16) error
	Move(x, y int16, drag bool) error
	Wheel(w event.WheelData) error
	Capabilities() Capabilities
}

// Synthesizer is safe for concurrent use when its Injector is.
type Synthesizer struct {
	table    keymap.Table
	injector Injector

	once sync.Map // event.Type -> struct{}; debug notes logged once
}

func New(table keymap.Table, injector Injector) *Synthesizer {
	return &Synthesizer{table: table, injector: injector}
}

// Post injects ev. Derived events (KeyTyped, MouseClicked) are ignored, as
// are drag and wheel events on backends lacking the capability.
func (s *Synthesizer) Post(ev *event.Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrUnsupportedEvent)
	}
	switch ev.Type {
	case event.KeyPressed:
		return s.postKey(ev, true)
	case event.KeyReleased:
		return s.postKey(ev, false)
	case event.MousePressed:
		return s.postButton(ev, true)
	case event.MouseReleased:
		return s.postButton(ev, false)
	case event.MouseMoved:
		return s.injector.Move(ev.Mouse.X, ev.Mouse.Y, false)
	case event.MouseDragged:
		if !s.injector.Capabilities().Drag {
			s.skip(ev.Type, "drag injection not supported, posting nothing")
			return nil
		}
		return s.injector.Move(ev.Mouse.X, ev.Mouse.Y, true)
	case event.MouseWheel:
		if !s.injector.Capabilities().Wheel {
			s.skip(ev.Type, "wheel injection not supported, posting nothing")
			return nil
		}
		return s.injector.Wheel(ev.Wheel)
	case event.KeyTyped, event.MouseClicked:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedEvent, ev.Type)
}

func (s *Synthesizer) skip(t event.Type, msg string) {
	if _, seen := s.once.LoadOrStore(t, struct{}{}); !seen {
		logger.Debugf("[SYNTH] %s: %s", t, msg)
	}
}

func (s *Synthesizer) postKey(ev *event.Event, down bool) error {
	native, ok := s.table.ToNativeKey(ev.Keyboard.Keycode)
	if !ok {
		return fmt.Errorf("%w: key %s", ErrUnmapped, ev.Keyboard.Keycode)
	}
	return s.injector.Key(native, down, s.table.ToNativeMask(ev.Mask))
}

func (s *Synthesizer) postButton(ev *event.Event, down bool) error {
	native, ok := s.table.ToNativeButton(ev.Mouse.Button)
	if !ok {
		return fmt.Errorf("%w: button %s", ErrUnmapped, ev.Mouse.Button)
	}
	kind := s.table.ButtonEvent(ev.Mouse.Button, down)
	return s.injector.Button(kind, native, ev.Mouse.X, ev.Mouse.Y)
}
