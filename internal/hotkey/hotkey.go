// Package hotkey matches key and mouse-button chords against the virtual
// event stream.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	"inputhook/event"
	"inputhook/internal/logger"
)

// Manager handles hotkey registration and matching. Feed is meant to be
// called from the DispatchProc.
type Manager struct {
	mu      sync.RWMutex
	hotkeys []*registeredHotkey
}

// Chord is a parsed hotkey: every modifier group in Modifiers must be held
// when Key (or Button) is pressed.
type Chord struct {
	Modifiers event.Mask
	Key       event.Keycode
	Button    event.Button
}

type registeredHotkey struct {
	chord    Chord
	original string
	callback func()
	inline   bool
}

var modifierNames = map[string]event.Mask{
	"CTRL":    event.MaskCtrl,
	"CONTROL": event.MaskCtrl,
	"ALT":     event.MaskAlt,
	"OPTION":  event.MaskAlt,
	"SHIFT":   event.MaskShift,
	"META":    event.MaskMeta,
	"SUPER":   event.MaskMeta,
	"WIN":     event.MaskMeta,
	"CMD":     event.MaskMeta,
	"COMMAND": event.MaskMeta,
}

var modifierGroups = []event.Mask{event.MaskShift, event.MaskCtrl, event.MaskMeta, event.MaskAlt}

// ParseChord parses strings like "Ctrl+Alt+Shift+Escape" or "Ctrl+Mouse4".
// Exactly one part must be a non-modifier key or a MouseN button.
func ParseChord(s string) (Chord, error) {
	var c Chord
	triggers := 0
	for _, part := range strings.Split(s, "+") {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" {
			return c, fmt.Errorf("hotkey: empty part in %q", s)
		}
		if m, ok := modifierNames[name]; ok {
			c.Modifiers |= m
			continue
		}
		triggers++
		if n, ok := strings.CutPrefix(name, "MOUSE"); ok && len(n) == 1 && n[0] >= '1' && n[0] <= '5' {
			c.Button = event.Button(n[0] - '0')
			continue
		}
		k, ok := event.KeycodeByName(name)
		if !ok {
			return c, fmt.Errorf("hotkey: unknown key %q in %q", strings.TrimSpace(part), s)
		}
		c.Key = k
	}
	if triggers != 1 {
		return c, fmt.Errorf("hotkey: %q needs exactly one non-modifier key", s)
	}
	return c, nil
}

func (c Chord) matches(ev *event.Event) bool {
	switch ev.Type {
	case event.KeyPressed:
		if c.Key == event.KeyUndefined || ev.Keyboard.Keycode != c.Key {
			return false
		}
	case event.MousePressed:
		if c.Button == event.NoButton || ev.Mouse.Button != c.Button {
			return false
		}
	default:
		return false
	}
	for _, group := range modifierGroups {
		if c.Modifiers&group != 0 && ev.Mask&group == 0 {
			return false
		}
	}
	return true
}

// NewManager creates a new hotkey manager
func NewManager() *Manager {
	return &Manager{}
}

// Register registers a hotkey string (e.g. "Ctrl+Alt+1", "Shift+Mouse3")
// and a callback. An empty string registers nothing.
func (m *Manager) Register(hotkeyStr string, callback func()) (int, error) {
	return m.add(hotkeyStr, callback, false)
}

// RegisterInline is Register for callbacks that must run before Feed
// returns, on the goroutine that called it. From a DispatchProc that is the
// hook's listener thread, so the callback may call hook.Disable but must not
// block or touch the Manager.
func (m *Manager) RegisterInline(hotkeyStr string, callback func()) (int, error) {
	return m.add(hotkeyStr, callback, true)
}

func (m *Manager) add(hotkeyStr string, callback func(), inline bool) (int, error) {
	if hotkeyStr == "" {
		return -1, nil
	}
	chord, err := ParseChord(hotkeyStr)
	if err != nil {
		return -1, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = append(m.hotkeys, &registeredHotkey{
		chord:    chord,
		original: hotkeyStr,
		callback: callback,
		inline:   inline,
	})
	return len(m.hotkeys) - 1, nil
}

// Clear removes all registered hotkeys
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = nil
}

// Feed checks ev against the registered chords. A matching press is marked
// Reserved. Callbacks run on their own goroutines unless registered inline.
func (m *Manager) Feed(ev *event.Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := false
	for _, hk := range m.hotkeys {
		if !hk.chord.matches(ev) {
			continue
		}
		matched = true
		logger.Infof("[HOTKEY] Triggered: %s", hk.original)
		if hk.inline {
			hk.callback()
		} else {
			go hk.callback()
		}
	}
	if matched {
		ev.Reserved = true
	}
	return matched
}
