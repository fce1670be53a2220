package deadkey

// Built-in layouts keyed by Linux input-event codes. Letters carry only the
// lower case keysym; the shifted level is derived.

const (
	USLayoutID              uint64 = 0x7573
	USInternationalLayoutID uint64 = 0x757369
)

func usRows() map[uint16][]Keysym {
	rows := map[uint16][]Keysym{
		1:  {0xff1b},
		2:  {'1', '!'},
		3:  {'2', '@'},
		4:  {'3', '#'},
		5:  {'4', '$'},
		6:  {'5', '%'},
		7:  {'6', '^'},
		8:  {'7', '&'},
		9:  {'8', '*'},
		10: {'9', '('},
		11: {'0', ')'},
		12: {'-', '_'},
		13: {'=', '+'},
		14: {0xff08},
		15: {0xff09},
		26: {'[', '{'},
		27: {']', '}'},
		28: {0xff0d},
		39: {';', ':'},
		40: {'\'', '"'},
		41: {'`', '~'},
		43: {'\\', '|'},
		51: {',', '<'},
		52: {'.', '>'},
		53: {'/', '?'},
		57: {' '},
		55: {0xffaa, 0xffaa},
		74: {0xffad, 0xffad},
		78: {0xffab, 0xffab},
		96: {0xff8d, 0xff8d},
		98: {0xffaf, 0xffaf},
		// keypad: navigation unshifted, digits with num lock
		71:  {0xff95, 0xffb7},
		72:  {0xff97, 0xffb8},
		73:  {0xff9a, 0xffb9},
		75:  {0xff96, 0xffb4},
		76:  {0xff9d, 0xffb5},
		77:  {0xff98, 0xffb6},
		79:  {0xff9c, 0xffb1},
		80:  {0xff99, 0xffb2},
		81:  {0xff9b, 0xffb3},
		82:  {0xff9e, 0xffb0},
		83:  {0xff9f, 0xffae},
		111: {0xffff},
	}
	letters := map[uint16]rune{
		16: 'q', 17: 'w', 18: 'e', 19: 'r', 20: 't', 21: 'y', 22: 'u', 23: 'i', 24: 'o', 25: 'p',
		30: 'a', 31: 's', 32: 'd', 33: 'f', 34: 'g', 35: 'h', 36: 'j', 37: 'k', 38: 'l',
		44: 'z', 45: 'x', 46: 'c', 47: 'v', 48: 'b', 49: 'n', 50: 'm',
	}
	for code, r := range letters {
		rows[code] = []Keysym{Keysym(r)}
	}
	return rows
}

// USLayout returns the US English layout.
func USLayout() *KeysymLayout {
	return NewKeysymLayout(USLayoutID, usRows())
}

// USInternationalLayout returns the US layout with dead keys on the
// apostrophe, grave and 6 keys.
func USInternationalLayout() *KeysymLayout {
	rows := usRows()
	rows[40] = []Keysym{0xfe51, 0xfe57} // dead_acute, dead_diaeresis
	rows[41] = []Keysym{0xfe50, 0xfe53} // dead_grave, dead_tilde
	rows[7] = []Keysym{'6', 0xfe52}     // dead_circumflex
	return NewKeysymLayout(USInternationalLayoutID, rows)
}

// StaticSource always reports the same layout.
type StaticSource struct {
	Layout Layout
}

func (s StaticSource) Current() (Layout, error) { return s.Layout, nil }
