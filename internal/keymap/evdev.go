package keymap

import "inputhook/event"

// X11KeycodeOffset is the distance between a Linux input-event key code and
// the X server keycode of the same key.
const X11KeycodeOffset = 8

// Linux input-event button codes
const (
	BtnLeft   uint16 = 0x110
	BtnRight  uint16 = 0x111
	BtnMiddle uint16 = 0x112
	BtnSide   uint16 = 0x113
	BtnExtra  uint16 = 0x114
)

// X11 core protocol state bits, used as the native mask on Linux
const (
	XShiftMask   uint32 = 1 << 0
	XLockMask    uint32 = 1 << 1
	XControlMask uint32 = 1 << 2
	XMod1Mask    uint32 = 1 << 3 // Alt
	XMod2Mask    uint32 = 1 << 4 // Num Lock
	XMod3Mask    uint32 = 1 << 5
	XMod4Mask    uint32 = 1 << 6 // Super
	XMod5Mask    uint32 = 1 << 7
	XButton1Mask uint32 = 1 << 8
	XButton2Mask uint32 = 1 << 9
	XButton3Mask uint32 = 1 << 10
	XButton4Mask uint32 = 1 << 11
	XButton5Mask uint32 = 1 << 12
)

// EvdevButtonValue splits the value returned by Evdev.ButtonEvent into the
// input-event code and value to write.
func EvdevButtonValue(kind uint32) (code uint16, value int32) {
	return uint16(kind & 0xFFFF), int32(kind >> 16)
}

func evdevButtonEvent(code uint16, down bool) uint32 {
	if down {
		return uint32(code) | 1<<16
	}
	return uint32(code)
}

var evdevButtonEvents = [...][2]uint32{
	event.NoButton: {},
	event.Button1:  {dirDown: evdevButtonEvent(BtnLeft, true), dirUp: evdevButtonEvent(BtnLeft, false)},
	event.Button2:  {dirDown: evdevButtonEvent(BtnRight, true), dirUp: evdevButtonEvent(BtnRight, false)},
	event.Button3:  {dirDown: evdevButtonEvent(BtnMiddle, true), dirUp: evdevButtonEvent(BtnMiddle, false)},
	event.Button4:  {dirDown: evdevButtonEvent(BtnSide, true), dirUp: evdevButtonEvent(BtnSide, false)},
	event.Button5:  {dirDown: evdevButtonEvent(BtnExtra, true), dirUp: evdevButtonEvent(BtnExtra, false)},
}

var evdevButtons = []buttonPair{
	{BtnLeft, event.Button1},
	{BtnRight, event.Button2},
	{BtnMiddle, event.Button3},
	{BtnSide, event.Button4},
	{BtnExtra, event.Button5},
}

// X names the middle button Button2 and the right button Button3.
var evdevMasks = []maskPair{
	{XShiftMask, event.MaskShiftL, event.MaskShift},
	{XControlMask, event.MaskCtrlL, event.MaskCtrl},
	{XMod1Mask, event.MaskAltL, event.MaskAlt},
	{XMod4Mask, event.MaskMetaL, event.MaskMeta},
	{XLockMask, event.MaskCapsLock, event.MaskCapsLock},
	{XMod2Mask, event.MaskNumLock, event.MaskNumLock},
	{XButton1Mask, event.MaskButton1, event.MaskButton1},
	{XButton2Mask, event.MaskButton3, event.MaskButton3},
	{XButton3Mask, event.MaskButton2, event.MaskButton2},
}

var evdevKeys = []keyPair{
	{1, event.KeyEscape},
	{2, event.Key1}, {3, event.Key2}, {4, event.Key3}, {5, event.Key4}, {6, event.Key5},
	{7, event.Key6}, {8, event.Key7}, {9, event.Key8}, {10, event.Key9}, {11, event.Key0},
	{12, event.KeyMinus},
	{13, event.KeyEquals},
	{14, event.KeyBackspace},
	{15, event.KeyTab},
	{16, event.KeyQ}, {17, event.KeyW}, {18, event.KeyE}, {19, event.KeyR}, {20, event.KeyT},
	{21, event.KeyY}, {22, event.KeyU}, {23, event.KeyI}, {24, event.KeyO}, {25, event.KeyP},
	{26, event.KeyOpenBracket},
	{27, event.KeyCloseBracket},
	{28, event.KeyEnter},
	{29, event.KeyControlL},
	{30, event.KeyA}, {31, event.KeyS}, {32, event.KeyD}, {33, event.KeyF}, {34, event.KeyG},
	{35, event.KeyH}, {36, event.KeyJ}, {37, event.KeyK}, {38, event.KeyL},
	{39, event.KeySemicolon},
	{40, event.KeyQuote},
	{41, event.KeyBackquote},
	{42, event.KeyShiftL},
	{43, event.KeyBackSlash},
	{44, event.KeyZ}, {45, event.KeyX}, {46, event.KeyC}, {47, event.KeyV}, {48, event.KeyB},
	{49, event.KeyN}, {50, event.KeyM},
	{51, event.KeyComma},
	{52, event.KeyPeriod},
	{53, event.KeySlash},
	{54, event.KeyShiftR},
	{55, event.KeyKPMultiply},
	{56, event.KeyAltL},
	{57, event.KeySpace},
	{58, event.KeyCapsLock},
	{59, event.KeyF1}, {60, event.KeyF2}, {61, event.KeyF3}, {62, event.KeyF4}, {63, event.KeyF5},
	{64, event.KeyF6}, {65, event.KeyF7}, {66, event.KeyF8}, {67, event.KeyF9}, {68, event.KeyF10},
	{69, event.KeyNumLock},
	{70, event.KeyScrollLock},
	{71, event.KeyKP7}, {72, event.KeyKP8}, {73, event.KeyKP9},
	{74, event.KeyKPSubtract},
	{75, event.KeyKP4}, {76, event.KeyKP5}, {77, event.KeyKP6},
	{78, event.KeyKPAdd},
	{79, event.KeyKP1}, {80, event.KeyKP2}, {81, event.KeyKP3}, {82, event.KeyKP0},
	{83, event.KeyKPSeparator},
	{86, event.KeyLesserGreater},
	{87, event.KeyF11},
	{88, event.KeyF12},
	{89, event.KeyUnderscore},
	{90, event.KeyKatakana},
	{91, event.KeyHiragana},
	{92, event.KeyKanji},
	{95, event.KeyKPComma},
	{96, event.KeyKPEnter},
	{97, event.KeyControlR},
	{98, event.KeyKPDivide},
	{99, event.KeyPrintScreen},
	{100, event.KeyAltR},
	{102, event.KeyHome},
	{103, event.KeyUp},
	{104, event.KeyPageUp},
	{105, event.KeyLeft},
	{106, event.KeyRight},
	{107, event.KeyEnd},
	{108, event.KeyDown},
	{109, event.KeyPageDown},
	{110, event.KeyInsert},
	{111, event.KeyDelete},
	{113, event.KeyVolumeMute},
	{114, event.KeyVolumeDown},
	{115, event.KeyVolumeUp},
	{116, event.KeyPower},
	{117, event.KeyKPEquals},
	{119, event.KeyPause},
	{124, event.KeyYen},
	{125, event.KeyMetaL},
	{126, event.KeyMetaR},
	{127, event.KeyContextMenu},
	{128, event.KeyBrowserStop},
	{138, event.KeyHelp},
	{140, event.KeyAppCalculator},
	{142, event.KeySleep},
	{143, event.KeyWake},
	{155, event.KeyAppMail},
	{156, event.KeyBrowserFavorites},
	{158, event.KeyBrowserBack},
	{159, event.KeyBrowserForward},
	{161, event.KeyMediaEject},
	{163, event.KeyMediaNext},
	{164, event.KeyMediaPlay},
	{165, event.KeyMediaPrevious},
	{166, event.KeyMediaStop},
	{172, event.KeyBrowserHome},
	{173, event.KeyBrowserRefresh},
	{183, event.KeyF13}, {184, event.KeyF14}, {185, event.KeyF15}, {186, event.KeyF16},
	{187, event.KeyF17}, {188, event.KeyF18}, {189, event.KeyF19}, {190, event.KeyF20},
	{191, event.KeyF21}, {192, event.KeyF22}, {193, event.KeyF23}, {194, event.KeyF24},
	{217, event.KeyBrowserSearch},
	{226, event.KeyMediaSelect},
	{0x188, event.KeyAppMusic},    // KEY_AUDIO
	{0x1ba, event.KeyAppPictures}, // KEY_IMAGES
}

var evdevAliases = []keyPair{
	{121, event.KeyKPComma},   // KEY_KPCOMMA
	{200, event.KeyMediaPlay}, // KEY_PLAYCD
	{171, event.KeyAppMusic},  // KEY_CONFIG
}

// Evdev is the Linux input-event table
var Evdev Table = newTable("evdev", evdevKeys, evdevAliases, evdevButtons, evdevButtonEvents[:]).withMasks(evdevMasks)
