package translate

import (
	"inputhook/event"
	"inputhook/internal/keymap"
)

// CharResolver produces the characters typed by a key press.
type CharResolver interface {
	Resolve(code uint16, mask event.Mask) []rune
}

// Translator turns native captures into virtual events. It is owned by the
// listener goroutine.
type Translator struct {
	table    keymap.Table
	resolver CharResolver
	clicks   *ClickTracker
	mods     Modifiers
}

// New creates a translator. resolver may be nil, in which case no
// KeyTyped events are produced.
func New(table keymap.Table, resolver CharResolver, clicks ClickConfig) *Translator {
	return &Translator{
		table:    table,
		resolver: resolver,
		clicks:   NewClickTracker(clicks),
	}
}

// Modifiers exposes the tracked state
func (t *Translator) Modifiers() *Modifiers { return &t.mods }

// Translate emits the virtual events for n in order and reports whether
// any callback marked its event Reserved. The event passed to emit is only
// valid during the call.
func (t *Translator) Translate(n Native, emit func(*event.Event)) (reserved bool) {
	if n.HasMask {
		t.mods.Sync(t.table.ToVirtualMask(n.Mask))
	}

	send := func(ev *event.Event) {
		emit(ev)
		reserved = reserved || ev.Reserved
	}

	switch n.Kind {
	case KeyDown:
		t.keyDown(n, send)
	case KeyUp:
		k := t.table.ToVirtualKey(n.Code)
		t.mods.Key(k, false)
		ev := event.Event{Type: event.KeyReleased, Time: n.Time, Mask: t.mods.Mask()}
		ev.Keyboard = event.KeyboardData{Keycode: k, RawCode: n.Code}
		send(&ev)
	case ButtonDown:
		b := t.table.ToVirtualButton(n.Code)
		t.mods.Button(b, true)
		ev := event.Event{Type: event.MousePressed, Time: n.Time, Mask: t.mods.Mask()}
		ev.Mouse = event.MouseData{Button: b, Clicks: t.clicks.Press(b, n.Time, n.X, n.Y), X: n.X, Y: n.Y}
		send(&ev)
	case ButtonUp:
		t.buttonUp(n, send)
	case Motion:
		held := t.mods.Mask()&event.MaskButtons != 0
		t.clicks.Move(n.X, n.Y, held)
		typ := event.MouseMoved
		if held {
			typ = event.MouseDragged
		}
		ev := event.Event{Type: typ, Time: n.Time, Mask: t.mods.Mask()}
		ev.Mouse = event.MouseData{X: n.X, Y: n.Y}
		send(&ev)
	case Wheel:
		ev := event.Event{Type: event.MouseWheel, Time: n.Time, Mask: t.mods.Mask()}
		ev.Wheel = event.WheelData{
			Clicks:    1,
			X:         n.X,
			Y:         n.Y,
			Type:      n.WheelType,
			Amount:    n.WheelAmount,
			Rotation:  n.WheelRotation,
			Direction: n.WheelDirection,
		}
		send(&ev)
	}
	return reserved
}

func (t *Translator) keyDown(n Native, send func(*event.Event)) {
	k := t.table.ToVirtualKey(n.Code)
	t.mods.Key(k, true)
	mask := t.mods.Mask()

	ev := event.Event{Type: event.KeyPressed, Time: n.Time, Mask: mask}
	ev.Keyboard = event.KeyboardData{Keycode: k, RawCode: n.Code}
	send(&ev)

	if t.resolver == nil {
		return
	}
	for _, c := range t.resolver.Resolve(n.Code, mask) {
		typed := event.Event{Type: event.KeyTyped, Time: n.Time, Mask: mask}
		typed.Keyboard = event.KeyboardData{Keycode: event.KeyUndefined, RawCode: n.Code, Char: c}
		send(&typed)
	}
}

func (t *Translator) buttonUp(n Native, send func(*event.Event)) {
	b := t.table.ToVirtualButton(n.Code)
	t.mods.Button(b, false)
	count, clicked := t.clicks.Release(b, n.X, n.Y)

	ev := event.Event{Type: event.MouseReleased, Time: n.Time, Mask: t.mods.Mask()}
	ev.Mouse = event.MouseData{Button: b, Clicks: count, X: n.X, Y: n.Y}
	send(&ev)

	if clicked {
		click := event.Event{Type: event.MouseClicked, Time: n.Time, Mask: t.mods.Mask()}
		click.Mouse = event.MouseData{Button: b, Clicks: count, X: n.X, Y: n.Y}
		send(&click)
	}
}
