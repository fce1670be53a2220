// Package deadkey turns key presses into the characters they type, carrying
// dead-key state from one press to the next.
package deadkey

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"inputhook/event"
	"inputhook/internal/logger"
)

// ErrUnsupported is returned by Layout.Translate when the platform offers no
// stateful translation primitive.
var ErrUnsupported = errors.New("deadkey: stateful translation unsupported")

// Layout is one keyboard layout handle.
type Layout interface {
	// ID identifies the layout; a different ID means the layout changed.
	ID() uint64
	// Translate is the stateful primitive. state carries the pending dead
	// key between calls and is zero when nothing is pending.
	Translate(code uint16, mask event.Mask, state *uint32) ([]rune, error)
	// Lookup is a stateless fallback translation.
	Lookup(code uint16, mask event.Mask) []rune
	Release()
}

// LayoutSource reports the layout currently active for the focused input.
type LayoutSource interface {
	Current() (Layout, error)
}

// Resolver is owned by the listener goroutine and is not safe for
// concurrent use.
type Resolver struct {
	source   LayoutSource
	suppress func(code uint16) bool

	layout Layout
	state  uint32
	caser  cases.Caser
	loaded bool
}

// NewResolver creates a resolver. suppress may be nil; when set it names
// native codes whose characters are never reported.
func NewResolver(source LayoutSource, suppress func(code uint16) bool) *Resolver {
	return &Resolver{source: source, suppress: suppress}
}

// Load prepares the resolver for a hook run. Calling it twice is harmless.
func (r *Resolver) Load() {
	if r.loaded {
		return
	}
	r.caser = cases.Upper(processLocale())
	r.state = 0
	r.loaded = true
	r.refresh()
}

// Unload releases the cached layout. Calling it twice is harmless.
func (r *Resolver) Unload() {
	if r.layout != nil {
		r.layout.Release()
		r.layout = nil
	}
	r.state = 0
	r.loaded = false
}

// Pending reports whether a dead key is waiting for its base character.
func (r *Resolver) Pending() bool { return r.state != 0 }

func (r *Resolver) refresh() {
	if r.source == nil {
		return
	}
	l, err := r.source.Current()
	if err != nil {
		logger.Warnf("[DEADKEY] Failed to query keyboard layout: %v", err)
		return
	}
	if l == nil {
		return
	}
	if r.layout != nil && r.layout.ID() == l.ID() {
		if l != r.layout {
			l.Release()
		}
		return
	}
	if r.layout != nil {
		logger.Debugf("[DEADKEY] Keyboard layout changed (0x%X -> 0x%X)", r.layout.ID(), l.ID())
		r.layout.Release()
	}
	r.layout = l
	r.state = 0
}

// Resolve returns the characters typed by pressing the key with native code
// under mask. It returns nil for non-printing keys, for a dead key that is
// now pending, and on any translation failure.
func (r *Resolver) Resolve(code uint16, mask event.Mask) []rune {
	if !r.loaded {
		r.Load()
	} else {
		r.refresh()
	}
	if r.layout == nil {
		return nil
	}

	caps := mask&event.MaskCapsLock != 0
	mask &^= event.MaskCtrl | event.MaskAlt | event.MaskMeta | event.MaskCapsLock

	pendingBefore := r.state != 0
	out, err := r.layout.Translate(code, mask, &r.state)
	switch {
	case errors.Is(err, ErrUnsupported):
		out = r.layout.Lookup(code, mask)
	case err != nil:
		logger.Warnf("[DEADKEY] Translate 0x%X failed: %v", code, err)
		r.state = 0
		return nil
	case len(out) == 0 && r.state == 0 && !pendingBefore:
		out = r.layout.Lookup(code, mask)
	}

	if r.suppress != nil && r.suppress(code) {
		return nil
	}
	out = dropFunctionKeyRunes(out)
	if len(out) == 0 {
		return nil
	}
	if caps {
		out = []rune(r.caser.String(string(out)))
	}
	return out
}

// dropFunctionKeyRunes removes code points in the block some platforms use
// for function keys.
func dropFunctionKeyRunes(in []rune) []rune {
	out := in[:0]
	for _, c := range in {
		if c >= 0xF700 && c <= 0xF8FF {
			continue
		}
		out = append(out, c)
	}
	return out
}

// processLocale reads the POSIX locale environment, e.g. "tr_TR.UTF-8".
func processLocale() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" {
			return language.Und
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err == nil {
			return tag
		}
	}
	return language.Und
}
