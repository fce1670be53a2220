package deadkey

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"inputhook/event"
)

// Keysym is an X11 keysym value
type Keysym uint32

// NoSymbol is the empty keysym
const NoSymbol Keysym = 0

type deadKey struct {
	combining rune // combining mark appended to the base character
	spacing   rune // standalone glyph when the dead key does not combine
}

// X11 dead_* keysyms
var deadKeys = map[Keysym]deadKey{
	0xfe50: {'\u0300', '`'},      // dead_grave
	0xfe51: {'\u0301', '\''},     // dead_acute
	0xfe52: {'\u0302', '^'},      // dead_circumflex
	0xfe53: {'\u0303', '~'},      // dead_tilde
	0xfe54: {'\u0304', '\u00af'}, // dead_macron
	0xfe55: {'\u0306', '\u02d8'}, // dead_breve
	0xfe56: {'\u0307', '\u02d9'}, // dead_abovedot
	0xfe57: {'\u0308', '"'},      // dead_diaeresis
	0xfe58: {'\u030a', '\u00b0'}, // dead_abovering
	0xfe59: {'\u030b', '\u02dd'}, // dead_doubleacute
	0xfe5a: {'\u030c', '\u02c7'}, // dead_caron
	0xfe5b: {'\u0327', '\u00b8'}, // dead_cedilla
	0xfe5c: {'\u0328', '\u02db'}, // dead_ogonek
}

// IsDead reports whether ks is a dead keysym this package can compose.
func IsDead(ks Keysym) bool {
	_, ok := deadKeys[ks]
	return ok
}

// Function and keypad keysyms that produce characters
var specialKeysyms = map[Keysym]rune{
	0xff08: '\b',   // BackSpace
	0xff09: '\t',   // Tab
	0xff0d: '\r',   // Return
	0xff1b: '\x1b', // Escape
	0xffff: '\x7f', // Delete
	0xff80: ' ',    // KP_Space
	0xff89: '\t',   // KP_Tab
	0xff8d: '\r',   // KP_Enter
	0xffaa: '*',
	0xffab: '+',
	0xffac: ',',
	0xffad: '-',
	0xffae: '.',
	0xffaf: '/',
	0xffbd: '=',
	0x20ac: '\u20ac', // EuroSign
}

// KeysymRune returns the character ks produces, or 0 for keysyms that do
// not produce one.
func KeysymRune(ks Keysym) rune {
	switch {
	case ks >= 0x20 && ks <= 0x7e, ks >= 0xa0 && ks <= 0xff:
		return rune(ks)
	case ks >= 0xffb0 && ks <= 0xffb9: // KP_0..KP_9
		return rune('0' + ks - 0xffb0)
	case ks&0xff000000 == 0x01000000:
		r := rune(ks & 0x00ffffff)
		if utf8.ValidRune(r) {
			return r
		}
		return 0
	}
	return specialKeysyms[ks]
}

func isKeypad(ks Keysym) bool { return ks >= 0xff80 && ks <= 0xffbd }

// KeysymLayout is a keyboard map from native key code to keysyms per shift
// level, with X11 dead-key composition. It has no native handle and Release
// is a no-op.
type KeysymLayout struct {
	id   uint64
	rows map[uint16][]Keysym
}

// NewKeysymLayout wraps rows, which map a native key code to its keysyms
// for the unshifted and shifted levels.
func NewKeysymLayout(id uint64, rows map[uint16][]Keysym) *KeysymLayout {
	return &KeysymLayout{id: id, rows: rows}
}

func (l *KeysymLayout) ID() uint64 { return l.id }

func (l *KeysymLayout) Release() {}

// Keysym selects the keysym for code under the shift and num lock state
// in mask, following the core protocol rules for the first group.
func (l *KeysymLayout) Keysym(code uint16, mask event.Mask) Keysym {
	row := l.rows[code]
	if len(row) == 0 {
		return NoSymbol
	}
	lower := row[0]
	upper := NoSymbol
	if len(row) > 1 {
		upper = row[1]
	}
	if upper == NoSymbol {
		upper = upperKeysym(lower)
	}

	shift := mask&event.MaskShift != 0
	if mask&event.MaskNumLock != 0 && isKeypad(upper) {
		shift = !shift
	}
	if shift {
		return upper
	}
	return lower
}

func upperKeysym(ks Keysym) Keysym {
	r := KeysymRune(ks)
	if r == 0 || ks > 0xff {
		return ks
	}
	if u := unicode.ToUpper(r); u != r && u <= 0xff {
		return Keysym(u)
	}
	return ks
}

// Translate implements Layout. A dead keysym is stored in state and yields
// nothing; the next printing key is composed with it.
func (l *KeysymLayout) Translate(code uint16, mask event.Mask, state *uint32) ([]rune, error) {
	ks := l.Keysym(code, mask)
	if ks == NoSymbol {
		return nil, nil
	}

	if dead, ok := deadKeys[ks]; ok {
		pending := Keysym(*state)
		if pending == NoSymbol {
			*state = uint32(ks)
			return nil, nil
		}
		*state = 0
		if pending == ks {
			return []rune{dead.spacing}, nil
		}
		// a different dead key flushes the first one and waits itself
		*state = uint32(ks)
		return []rune{deadKeys[pending].spacing}, nil
	}

	r := KeysymRune(ks)
	if r == 0 {
		// modifiers and other silent keys leave a pending dead key alone
		return nil, nil
	}
	pending := Keysym(*state)
	if pending == NoSymbol {
		return []rune{r}, nil
	}
	*state = 0
	return compose(deadKeys[pending], r), nil
}

// Lookup implements Layout without dead-key state.
func (l *KeysymLayout) Lookup(code uint16, mask event.Mask) []rune {
	if r := KeysymRune(l.Keysym(code, mask)); r != 0 {
		return []rune{r}
	}
	return nil
}

func compose(dead deadKey, base rune) []rune {
	if base == ' ' {
		return []rune{dead.spacing}
	}
	composed := norm.NFC.String(string(base) + string(dead.combining))
	if utf8.RuneCountInString(composed) == 1 {
		r, _ := utf8.DecodeRuneInString(composed)
		return []rune{r}
	}
	return []rune{dead.spacing, base}
}

// Combining marks for the spacing glyphs platforms report for dead keys.
var spacingMarks = map[rune]rune{
	'`':      '\u0300',
	'\u00b4': '\u0301',
	'\'':     '\u0301',
	'^':      '\u0302',
	'~':      '\u0303',
	'\u00af': '\u0304',
	'\u02d8': '\u0306',
	'\u02d9': '\u0307',
	'\u00a8': '\u0308',
	'"':      '\u0308',
	'\u02da': '\u030a',
	'\u02dd': '\u030b',
	'\u02c7': '\u030c',
	'\u00b8': '\u0327',
	'\u02db': '\u0328',
}

// ComposeSpacing applies a pending dead key, given by its spacing glyph, to
// base. Glyphs that do not combine are returned followed by base.
func ComposeSpacing(spacing, base rune) []rune {
	mark, ok := spacingMarks[spacing]
	if !ok {
		if base == ' ' {
			return []rune{spacing}
		}
		return []rune{spacing, base}
	}
	return compose(deadKey{combining: mark, spacing: spacing}, base)
}
