package translate

import "inputhook/event"

var modifierKeys = map[event.Keycode]event.Mask{
	event.KeyShiftL:   event.MaskShiftL,
	event.KeyShiftR:   event.MaskShiftR,
	event.KeyControlL: event.MaskCtrlL,
	event.KeyControlR: event.MaskCtrlR,
	event.KeyAltL:     event.MaskAltL,
	event.KeyAltR:     event.MaskAltR,
	event.KeyMetaL:    event.MaskMetaL,
	event.KeyMetaR:    event.MaskMetaR,
}

var lockKeys = map[event.Keycode]event.Mask{
	event.KeyCapsLock:   event.MaskCapsLock,
	event.KeyNumLock:    event.MaskNumLock,
	event.KeyScrollLock: event.MaskScrollLock,
}

// Modifiers tracks the virtual mask
type Modifiers struct {
	mask event.Mask
}

// Mask returns the current state.
func (m *Modifiers) Mask() event.Mask { return m.mask }

// Reset replaces the whole state, e.g. with a value queried from the
// platform when the hook starts.
func (m *Modifiers) Reset(mask event.Mask) { m.mask = mask }

// Key records a key transition. Lock keys toggle on press.
func (m *Modifiers) Key(k event.Keycode, down bool) {
	if bit, ok := modifierKeys[k]; ok {
		if down {
			m.mask |= bit
		} else {
			m.mask &^= bit
		}
		return
	}
	if bit, ok := lockKeys[k]; ok && down {
		m.mask ^= bit
	}
}

// Button records a button transition.
func (m *Modifiers) Button(b event.Button, down bool) {
	bit := event.ButtonMask(b)
	if down {
		m.mask |= bit
	} else {
		m.mask &^= bit
	}
}

// Sync replaces the keyboard part of the state with a native report.
// Button bits stay tracked locally.
func (m *Modifiers) Sync(keys event.Mask) {
	m.mask = m.mask&event.MaskButtons | keys&^event.MaskButtons
}
