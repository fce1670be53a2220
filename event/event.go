// Package event defines the platform independent input event model shared by
// the hook engine, the translator and the synthesizer.
package event

import "fmt"

// Type identifies the kind of an Event
type Type uint8

const (
	HookEnabled Type = iota + 1
	HookDisabled
	KeyTyped
	KeyPressed
	KeyReleased
	MouseClicked
	MousePressed
	MouseReleased
	MouseMoved
	MouseDragged
	MouseWheel
)

var typeNames = map[Type]string{
	HookEnabled:   "HOOK_ENABLED",
	HookDisabled:  "HOOK_DISABLED",
	KeyTyped:      "KEY_TYPED",
	KeyPressed:    "KEY_PRESSED",
	KeyReleased:   "KEY_RELEASED",
	MouseClicked:  "MOUSE_CLICKED",
	MousePressed:  "MOUSE_PRESSED",
	MouseReleased: "MOUSE_RELEASED",
	MouseMoved:    "MOUSE_MOVED",
	MouseDragged:  "MOUSE_DRAGGED",
	MouseWheel:    "MOUSE_WHEEL",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// IsKeyboard reports whether the type carries a KeyboardData payload.
func (t Type) IsKeyboard() bool {
	return t == KeyTyped || t == KeyPressed || t == KeyReleased
}

// IsMouse reports whether the type carries a MouseData payload.
func (t Type) IsMouse() bool {
	return t >= MouseClicked && t <= MouseDragged
}

// KeyboardData is the payload of key events.
// Char is only meaningful for KeyTyped; Keycode is VC_UNDEFINED there.
type KeyboardData struct {
	Keycode Keycode `json:"keycode"`
	RawCode uint16  `json:"rawcode"`
	Char    rune    `json:"keychar,omitempty"`
}

// MouseData is the payload of button and motion events
type MouseData struct {
	Button Button `json:"button"`
	Clicks uint16 `json:"clicks"`
	X      int16  `json:"x"`
	Y      int16  `json:"y"`
}

// WheelType distinguishes unit scrolling from block (page) scrolling
type WheelType uint8

const (
	WheelUnitScroll  WheelType = 1
	WheelBlockScroll WheelType = 2
)

// WheelDirection is the scroll axis
type WheelDirection uint8

const (
	WheelVertical   WheelDirection = 3
	WheelHorizontal WheelDirection = 4
)

// WheelData is the payload of MouseWheel.
// Rotation is positive when scrolling down or right.
type WheelData struct {
	Clicks    uint16         `json:"clicks"`
	X         int16          `json:"x"`
	Y         int16          `json:"y"`
	Type      WheelType      `json:"type"`
	Amount    uint16         `json:"amount"`
	Rotation  int16          `json:"rotation"`
	Direction WheelDirection `json:"direction"`
}

// Event is a single virtual input event.
//
// The dispatcher hands callbacks a pointer that is only valid for the
// duration of the call. Setting Reserved asks backends that can swallow
// native input to do so.
type Event struct {
	Type     Type         `json:"type"`
	Time     uint64       `json:"time"` // milliseconds
	Mask     Mask         `json:"mask"`
	Reserved bool         `json:"reserved,omitempty"`
	Keyboard KeyboardData `json:"keyboard"`
	Mouse    MouseData    `json:"mouse"`
	Wheel    WheelData    `json:"wheel"`
}

func (e *Event) String() string {
	switch {
	case e.Type.IsKeyboard():
		if e.Type == KeyTyped {
			return fmt.Sprintf("%s char=%q raw=0x%X mask=%s", e.Type, e.Keyboard.Char, e.Keyboard.RawCode, e.Mask)
		}
		return fmt.Sprintf("%s key=%s raw=0x%X mask=%s", e.Type, e.Keyboard.Keycode, e.Keyboard.RawCode, e.Mask)
	case e.Type.IsMouse():
		return fmt.Sprintf("%s button=%s clicks=%d x=%d y=%d mask=%s", e.Type, e.Mouse.Button, e.Mouse.Clicks, e.Mouse.X, e.Mouse.Y, e.Mask)
	case e.Type == MouseWheel:
		return fmt.Sprintf("%s rotation=%d amount=%d dir=%d x=%d y=%d", e.Type, e.Wheel.Rotation, e.Wheel.Amount, e.Wheel.Direction, e.Wheel.X, e.Wheel.Y)
	}
	return e.Type.String()
}
