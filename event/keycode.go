package event

import (
	"fmt"
	"strings"
)

// Keycode is a virtual key code. Values follow scan code set 1, with the
// 0x0E00 and 0xE000 ranges used for extended keys.
type Keycode uint16

const (
	KeyUndefined        Keycode = 0x0000
	KeyEscape           Keycode = 0x0001
	KeyF1               Keycode = 0x003B
	KeyF2               Keycode = 0x003C
	KeyF3               Keycode = 0x003D
	KeyF4               Keycode = 0x003E
	KeyF5               Keycode = 0x003F
	KeyF6               Keycode = 0x0040
	KeyF7               Keycode = 0x0041
	KeyF8               Keycode = 0x0042
	KeyF9               Keycode = 0x0043
	KeyF10              Keycode = 0x0044
	KeyF11              Keycode = 0x0057
	KeyF12              Keycode = 0x0058
	KeyF13              Keycode = 0x005B
	KeyF14              Keycode = 0x005C
	KeyF15              Keycode = 0x005D
	KeyF16              Keycode = 0x0063
	KeyF17              Keycode = 0x0064
	KeyF18              Keycode = 0x0065
	KeyF19              Keycode = 0x0066
	KeyF20              Keycode = 0x0067
	KeyF21              Keycode = 0x0068
	KeyF22              Keycode = 0x0069
	KeyF23              Keycode = 0x006A
	KeyF24              Keycode = 0x006B
	KeyBackquote        Keycode = 0x0029
	Key1                Keycode = 0x0002
	Key2                Keycode = 0x0003
	Key3                Keycode = 0x0004
	Key4                Keycode = 0x0005
	Key5                Keycode = 0x0006
	Key6                Keycode = 0x0007
	Key7                Keycode = 0x0008
	Key8                Keycode = 0x0009
	Key9                Keycode = 0x000A
	Key0                Keycode = 0x000B
	KeyMinus            Keycode = 0x000C
	KeyEquals           Keycode = 0x000D
	KeyBackspace        Keycode = 0x000E
	KeyTab              Keycode = 0x000F
	KeyCapsLock         Keycode = 0x003A
	KeyA                Keycode = 0x001E
	KeyB                Keycode = 0x0030
	KeyC                Keycode = 0x002E
	KeyD                Keycode = 0x0020
	KeyE                Keycode = 0x0012
	KeyF                Keycode = 0x0021
	KeyG                Keycode = 0x0022
	KeyH                Keycode = 0x0023
	KeyI                Keycode = 0x0017
	KeyJ                Keycode = 0x0024
	KeyK                Keycode = 0x0025
	KeyL                Keycode = 0x0026
	KeyM                Keycode = 0x0032
	KeyN                Keycode = 0x0031
	KeyO                Keycode = 0x0018
	KeyP                Keycode = 0x0019
	KeyQ                Keycode = 0x0010
	KeyR                Keycode = 0x0013
	KeyS                Keycode = 0x001F
	KeyT                Keycode = 0x0014
	KeyU                Keycode = 0x0016
	KeyV                Keycode = 0x002F
	KeyW                Keycode = 0x0011
	KeyX                Keycode = 0x002D
	KeyY                Keycode = 0x0015
	KeyZ                Keycode = 0x002C
	KeyOpenBracket      Keycode = 0x001A
	KeyCloseBracket     Keycode = 0x001B
	KeyBackSlash        Keycode = 0x002B
	KeySemicolon        Keycode = 0x0027
	KeyQuote            Keycode = 0x0028
	KeyEnter            Keycode = 0x001C
	KeyComma            Keycode = 0x0033
	KeyPeriod           Keycode = 0x0034
	KeySlash            Keycode = 0x0035
	KeySpace            Keycode = 0x0039
	KeyLesserGreater    Keycode = 0x0056
	KeyPrintScreen      Keycode = 0x0E37
	KeyScrollLock       Keycode = 0x0046
	KeyPause            Keycode = 0x0E45
	KeyInsert           Keycode = 0x0E52
	KeyDelete           Keycode = 0x0E53
	KeyHome             Keycode = 0x0E47
	KeyEnd              Keycode = 0x0E4F
	KeyPageUp           Keycode = 0x0E49
	KeyPageDown         Keycode = 0x0E51
	KeyUp               Keycode = 0xE048
	KeyLeft             Keycode = 0xE04B
	KeyClear            Keycode = 0xE04C
	KeyRight            Keycode = 0xE04D
	KeyDown             Keycode = 0xE050
	KeyNumLock          Keycode = 0x0045
	KeyKPDivide         Keycode = 0x0E35
	KeyKPMultiply       Keycode = 0x0037
	KeyKPSubtract       Keycode = 0x004A
	KeyKPEquals         Keycode = 0x0E0D
	KeyKPAdd            Keycode = 0x004E
	KeyKPEnter          Keycode = 0x0E1C
	KeyKPSeparator      Keycode = 0x0053
	KeyKP1              Keycode = 0x004F
	KeyKP2              Keycode = 0x0050
	KeyKP3              Keycode = 0x0051
	KeyKP4              Keycode = 0x004B
	KeyKP5              Keycode = 0x004C
	KeyKP6              Keycode = 0x004D
	KeyKP7              Keycode = 0x0047
	KeyKP8              Keycode = 0x0048
	KeyKP9              Keycode = 0x0049
	KeyKP0              Keycode = 0x0052
	KeyShiftL           Keycode = 0x002A
	KeyShiftR           Keycode = 0x0036
	KeyControlL         Keycode = 0x001D
	KeyControlR         Keycode = 0x0E1D
	KeyAltL             Keycode = 0x0038
	KeyAltR             Keycode = 0x0E38
	KeyMetaL            Keycode = 0x0E5B
	KeyMetaR            Keycode = 0x0E5C
	KeyContextMenu      Keycode = 0x0E5D
	KeyPower            Keycode = 0xE05E
	KeySleep            Keycode = 0xE05F
	KeyWake             Keycode = 0xE063
	KeyMediaPlay        Keycode = 0xE022
	KeyMediaStop        Keycode = 0xE024
	KeyMediaPrevious    Keycode = 0xE010
	KeyMediaNext        Keycode = 0xE019
	KeyMediaSelect      Keycode = 0xE06D
	KeyMediaEject       Keycode = 0xE02C
	KeyVolumeMute       Keycode = 0xE020
	KeyVolumeUp         Keycode = 0xE030
	KeyVolumeDown       Keycode = 0xE02E
	KeyAppMail          Keycode = 0xE06C
	KeyAppCalculator    Keycode = 0xE021
	KeyAppMusic         Keycode = 0xE03C
	KeyAppPictures      Keycode = 0xE064
	KeyBrowserSearch    Keycode = 0xE065
	KeyBrowserHome      Keycode = 0xE032
	KeyBrowserBack      Keycode = 0xE06A
	KeyBrowserForward   Keycode = 0xE069
	KeyBrowserStop      Keycode = 0xE068
	KeyBrowserRefresh   Keycode = 0xE067
	KeyBrowserFavorites Keycode = 0xE066
	KeyKatakana         Keycode = 0x0070
	KeyUnderscore       Keycode = 0x0073
	KeyFurigana         Keycode = 0x0077
	KeyKanji            Keycode = 0x0079
	KeyHiragana         Keycode = 0x007B
	KeyYen              Keycode = 0x007D
	KeyKPComma          Keycode = 0x007E
	KeyHelp             Keycode = 0xFF75
)

var keycodeNames = map[Keycode]string{
	KeyUndefined:        "Undefined",
	KeyEscape:           "Escape",
	KeyF1:               "F1",
	KeyF2:               "F2",
	KeyF3:               "F3",
	KeyF4:               "F4",
	KeyF5:               "F5",
	KeyF6:               "F6",
	KeyF7:               "F7",
	KeyF8:               "F8",
	KeyF9:               "F9",
	KeyF10:              "F10",
	KeyF11:              "F11",
	KeyF12:              "F12",
	KeyF13:              "F13",
	KeyF14:              "F14",
	KeyF15:              "F15",
	KeyF16:              "F16",
	KeyF17:              "F17",
	KeyF18:              "F18",
	KeyF19:              "F19",
	KeyF20:              "F20",
	KeyF21:              "F21",
	KeyF22:              "F22",
	KeyF23:              "F23",
	KeyF24:              "F24",
	KeyBackquote:        "Back Quote",
	Key1:                "1",
	Key2:                "2",
	Key3:                "3",
	Key4:                "4",
	Key5:                "5",
	Key6:                "6",
	Key7:                "7",
	Key8:                "8",
	Key9:                "9",
	Key0:                "0",
	KeyMinus:            "Minus",
	KeyEquals:           "Equals",
	KeyBackspace:        "Backspace",
	KeyTab:              "Tab",
	KeyCapsLock:         "Caps Lock",
	KeyA:                "A",
	KeyB:                "B",
	KeyC:                "C",
	KeyD:                "D",
	KeyE:                "E",
	KeyF:                "F",
	KeyG:                "G",
	KeyH:                "H",
	KeyI:                "I",
	KeyJ:                "J",
	KeyK:                "K",
	KeyL:                "L",
	KeyM:                "M",
	KeyN:                "N",
	KeyO:                "O",
	KeyP:                "P",
	KeyQ:                "Q",
	KeyR:                "R",
	KeyS:                "S",
	KeyT:                "T",
	KeyU:                "U",
	KeyV:                "V",
	KeyW:                "W",
	KeyX:                "X",
	KeyY:                "Y",
	KeyZ:                "Z",
	KeyOpenBracket:      "Open Bracket",
	KeyCloseBracket:     "Close Bracket",
	KeyBackSlash:        "Back Slash",
	KeySemicolon:        "Semicolon",
	KeyQuote:            "Quote",
	KeyEnter:            "Enter",
	KeyComma:            "Comma",
	KeyPeriod:           "Period",
	KeySlash:            "Slash",
	KeySpace:            "Space",
	KeyLesserGreater:    "Lesser Greater",
	KeyPrintScreen:      "Print Screen",
	KeyScrollLock:       "Scroll Lock",
	KeyPause:            "Pause",
	KeyInsert:           "Insert",
	KeyDelete:           "Delete",
	KeyHome:             "Home",
	KeyEnd:              "End",
	KeyPageUp:           "Page Up",
	KeyPageDown:         "Page Down",
	KeyUp:               "Up",
	KeyLeft:             "Left",
	KeyClear:            "Clear",
	KeyRight:            "Right",
	KeyDown:             "Down",
	KeyNumLock:          "Num Lock",
	KeyKPDivide:         "Keypad Divide",
	KeyKPMultiply:       "Keypad Multiply",
	KeyKPSubtract:       "Keypad Subtract",
	KeyKPEquals:         "Keypad Equals",
	KeyKPAdd:            "Keypad Add",
	KeyKPEnter:          "Keypad Enter",
	KeyKPSeparator:      "Keypad Separator",
	KeyKP1:              "Keypad 1",
	KeyKP2:              "Keypad 2",
	KeyKP3:              "Keypad 3",
	KeyKP4:              "Keypad 4",
	KeyKP5:              "Keypad 5",
	KeyKP6:              "Keypad 6",
	KeyKP7:              "Keypad 7",
	KeyKP8:              "Keypad 8",
	KeyKP9:              "Keypad 9",
	KeyKP0:              "Keypad 0",
	KeyShiftL:           "Left Shift",
	KeyShiftR:           "Right Shift",
	KeyControlL:         "Left Control",
	KeyControlR:         "Right Control",
	KeyAltL:             "Left Alt",
	KeyAltR:             "Right Alt",
	KeyMetaL:            "Left Meta",
	KeyMetaR:            "Right Meta",
	KeyContextMenu:      "Context Menu",
	KeyPower:            "Power",
	KeySleep:            "Sleep",
	KeyWake:             "Wake",
	KeyMediaPlay:        "Play",
	KeyMediaStop:        "Stop",
	KeyMediaPrevious:    "Previous",
	KeyMediaNext:        "Next",
	KeyMediaSelect:      "Select",
	KeyMediaEject:       "Eject",
	KeyVolumeMute:       "Mute",
	KeyVolumeUp:         "Volume Up",
	KeyVolumeDown:       "Volume Down",
	KeyAppMail:          "App Mail",
	KeyAppCalculator:    "App Calculator",
	KeyAppMusic:         "App Music",
	KeyAppPictures:      "App Pictures",
	KeyBrowserSearch:    "Browser Search",
	KeyBrowserHome:      "Browser Home",
	KeyBrowserBack:      "Browser Back",
	KeyBrowserForward:   "Browser Forward",
	KeyBrowserStop:      "Browser Stop",
	KeyBrowserRefresh:   "Browser Refresh",
	KeyBrowserFavorites: "Browser Favorites",
	KeyKatakana:         "Katakana",
	KeyUnderscore:       "Underscore",
	KeyFurigana:         "Furigana",
	KeyKanji:            "Kanji",
	KeyHiragana:         "Hiragana",
	KeyYen:              "Yen",
	KeyKPComma:          "Keypad Comma",
	KeyHelp:             "Help",
}

// keycodeAliases are extra spellings accepted by KeycodeByName.
var keycodeAliases = map[string]Keycode{
	"ESC":       KeyEscape,
	"RETURN":    KeyEnter,
	"CTRL":      KeyControlL,
	"CONTROL":   KeyControlL,
	"SHIFT":     KeyShiftL,
	"ALT":       KeyAltL,
	"OPTION":    KeyAltL,
	"META":      KeyMetaL,
	"SUPER":     KeyMetaL,
	"WIN":       KeyMetaL,
	"CMD":       KeyMetaL,
	"COMMAND":   KeyMetaL,
	"DEL":       KeyDelete,
	"INS":       KeyInsert,
	"PGUP":      KeyPageUp,
	"PGDN":      KeyPageDown,
	"GRAVE":     KeyBackquote,
	"BACKQUOTE": KeyBackquote,
	"MENU":      KeyContextMenu,
}

var keycodesByName map[string]Keycode

func init() {
	keycodesByName = make(map[string]Keycode, len(keycodeNames)+len(keycodeAliases))
	for code, name := range keycodeNames {
		keycodesByName[normalizeName(name)] = code
	}
	for name, code := range keycodeAliases {
		keycodesByName[name] = code
	}
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func (k Keycode) String() string {
	if s, ok := keycodeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(0x%04X)", uint16(k))
}

// KeycodeByName parses a key name as produced by Keycode.String, ignoring
// case and spaces. A few common aliases ("Esc", "Ctrl", "Cmd") are accepted.
func KeycodeByName(name string) (Keycode, bool) {
	k, ok := keycodesByName[normalizeName(name)]
	if !ok || k == KeyUndefined {
		return KeyUndefined, false
	}
	return k, true
}

// Keycodes returns every named keycode except KeyUndefined.
func Keycodes() []Keycode {
	out := make([]Keycode, 0, len(keycodeNames))
	for k := range keycodeNames {
		if k != KeyUndefined {
			out = append(out, k)
		}
	}
	return out
}
