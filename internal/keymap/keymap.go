// Package keymap holds the static conversion tables between native key,
// button and modifier codes and the virtual codes of package event.
//
// Tables are pure data built once at init; every lookup is O(1) and safe for
// concurrent use. Unknown native codes map to KeyUndefined / NoButton and
// unknown virtual codes map to 0 with ok == false.
package keymap

import (
	"fmt"

	"inputhook/event"
)

// Table converts between one platform's native codes and virtual codes
type Table interface {
	Name() string
	ToVirtualKey(native uint16) event.Keycode
	ToNativeKey(k event.Keycode) (uint16, bool)
	ToVirtualButton(native uint16) event.Button
	ToNativeButton(b event.Button) (uint16, bool)
	ToVirtualMask(native uint32) event.Mask
	ToNativeMask(m event.Mask) uint32
	// ButtonEvent returns the native event kind used to synthesize a
	// press (down) or release of b, or 0 when b has no native counterpart.
	ButtonEvent(b event.Button, down bool) uint32
}

// Column indices of the button event tables
const (
	dirDown = 0
	dirUp   = 1
)

type keyPair struct {
	native  uint16
	virtual event.Keycode
}

type buttonPair struct {
	native  uint16
	virtual event.Button
}

// maskPair maps native bits to a primary virtual bit and any of a set of
// virtual bits back to the native bits.
type maskPair struct {
	native  uint32
	primary event.Mask
	virtual event.Mask
}

type table struct {
	name string

	keysToVirtual map[uint16]event.Keycode
	keysToNative  map[event.Keycode]uint16

	buttonsToVirtual map[uint16]event.Button
	buttonsToNative  map[event.Button]uint16
	buttonEvents     [][2]uint32

	toVirtualMask func(uint32) event.Mask
	toNativeMask  func(event.Mask) uint32
}

// newTable indexes keys in both directions. Aliases only add native to
// virtual entries. A duplicated native or virtual code in keys is a
// programming error and panics at init.
func newTable(name string, keys, aliases []keyPair, buttons []buttonPair, buttonEvents [][2]uint32) *table {
	t := &table{
		name:             name,
		keysToVirtual:    make(map[uint16]event.Keycode, len(keys)+len(aliases)),
		keysToNative:     make(map[event.Keycode]uint16, len(keys)),
		buttonsToVirtual: make(map[uint16]event.Button, len(buttons)),
		buttonsToNative:  make(map[event.Button]uint16, len(buttons)),
		buttonEvents:     buttonEvents,
	}
	for _, p := range keys {
		if _, dup := t.keysToVirtual[p.native]; dup {
			panic(fmt.Sprintf("keymap: %s: duplicate native key 0x%X", name, p.native))
		}
		if _, dup := t.keysToNative[p.virtual]; dup {
			panic(fmt.Sprintf("keymap: %s: duplicate virtual key %s", name, p.virtual))
		}
		t.keysToVirtual[p.native] = p.virtual
		t.keysToNative[p.virtual] = p.native
	}
	for _, p := range aliases {
		if _, dup := t.keysToVirtual[p.native]; dup {
			panic(fmt.Sprintf("keymap: %s: alias shadows native key 0x%X", name, p.native))
		}
		t.keysToVirtual[p.native] = p.virtual
	}
	for _, p := range buttons {
		t.buttonsToVirtual[p.native] = p.virtual
		t.buttonsToNative[p.virtual] = p.native
	}
	return t
}

func (t *table) withMasks(pairs []maskPair) *table {
	t.toVirtualMask = func(native uint32) event.Mask {
		var m event.Mask
		for _, p := range pairs {
			if native&p.native != 0 {
				m |= p.primary
			}
		}
		return m
	}
	t.toNativeMask = func(m event.Mask) uint32 {
		var native uint32
		for _, p := range pairs {
			if m&p.virtual != 0 {
				native |= p.native
			}
		}
		return native
	}
	return t
}

func (t *table) Name() string { return t.name }

func (t *table) ToVirtualKey(native uint16) event.Keycode {
	return t.keysToVirtual[native]
}

func (t *table) ToNativeKey(k event.Keycode) (uint16, bool) {
	native, ok := t.keysToNative[k]
	return native, ok
}

func (t *table) ToVirtualButton(native uint16) event.Button {
	return t.buttonsToVirtual[native]
}

func (t *table) ToNativeButton(b event.Button) (uint16, bool) {
	native, ok := t.buttonsToNative[b]
	return native, ok
}

func (t *table) ToVirtualMask(native uint32) event.Mask { return t.toVirtualMask(native) }

func (t *table) ToNativeMask(m event.Mask) uint32 { return t.toNativeMask(m) }

func (t *table) ButtonEvent(b event.Button, down bool) uint32 {
	if int(b) >= len(t.buttonEvents) {
		return 0
	}
	if down {
		return t.buttonEvents[b][dirDown]
	}
	return t.buttonEvents[b][dirUp]
}
