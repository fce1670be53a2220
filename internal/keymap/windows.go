package keymap

import "inputhook/event"

// WindowsExtended marks the extended variant of a virtual-key code in the
// native codes of the Windows table. Only keys whose extended variant is a
// different physical key carry it.
const WindowsExtended uint16 = 0x100

// Virtual-key codes referenced outside the table
const (
	VKLButton  uint16 = 0x01
	VKRButton  uint16 = 0x02
	VKMButton  uint16 = 0x04
	VKXButton1 uint16 = 0x05
	VKXButton2 uint16 = 0x06
	VKReturn   uint16 = 0x0D
	VKShift    uint16 = 0x10
	VKControl  uint16 = 0x11
	VKMenu     uint16 = 0x12
	VKCapital  uint16 = 0x14
	VKNumLock  uint16 = 0x90
	VKScroll   uint16 = 0x91
	VKLShift   uint16 = 0xA0
	VKRShift   uint16 = 0xA1
	VKLControl uint16 = 0xA2
	VKRControl uint16 = 0xA3
	VKLMenu    uint16 = 0xA4
	VKRMenu    uint16 = 0xA5
	VKLWin     uint16 = 0x5B
	VKRWin     uint16 = 0x5C
)

// MOUSEEVENTF_* flags
const (
	MouseEventMove       uint32 = 0x0001
	MouseEventLeftDown   uint32 = 0x0002
	MouseEventLeftUp     uint32 = 0x0004
	MouseEventRightDown  uint32 = 0x0008
	MouseEventRightUp    uint32 = 0x0010
	MouseEventMiddleDown uint32 = 0x0020
	MouseEventMiddleUp   uint32 = 0x0040
	MouseEventXDown      uint32 = 0x0080
	MouseEventXUp        uint32 = 0x0100
	MouseEventWheel      uint32 = 0x0800
	MouseEventHWheel     uint32 = 0x1000
	MouseEventAbsolute   uint32 = 0x8000
	MouseEventVirtualDsk uint32 = 0x4000
)

var windowsButtonEvents = [...][2]uint32{
	event.NoButton: {},
	event.Button1:  {dirDown: MouseEventLeftDown, dirUp: MouseEventLeftUp},
	event.Button2:  {dirDown: MouseEventRightDown, dirUp: MouseEventRightUp},
	event.Button3:  {dirDown: MouseEventMiddleDown, dirUp: MouseEventMiddleUp},
	event.Button4:  {dirDown: MouseEventXDown, dirUp: MouseEventXUp},
	event.Button5:  {dirDown: MouseEventXDown, dirUp: MouseEventXUp},
}

var windowsButtons = []buttonPair{
	{VKLButton, event.Button1},
	{VKRButton, event.Button2},
	{VKMButton, event.Button3},
	{VKXButton1, event.Button4},
	{VKXButton2, event.Button5},
}

// WindowsMaskKeys lists, by bit position, the virtual-key whose state forms
// the packed native mask. Bits 13..15 are toggle states, the rest are
// pressed states.
var WindowsMaskKeys = [16]uint16{
	VKLShift, VKRShift, VKLControl, VKRControl, VKLMenu, VKRMenu, VKLWin, VKRWin,
	VKLButton, VKRButton, VKMButton, VKXButton1, VKXButton2,
	VKCapital, VKNumLock, VKScroll,
}

// WindowsToggleBits is the first bit of WindowsMaskKeys holding a toggle state
const WindowsToggleBits = 13

var windowsMasks = []maskPair{
	{1 << 0, event.MaskShiftL, event.MaskShiftL},
	{1 << 1, event.MaskShiftR, event.MaskShiftR},
	{1 << 2, event.MaskCtrlL, event.MaskCtrlL},
	{1 << 3, event.MaskCtrlR, event.MaskCtrlR},
	{1 << 4, event.MaskAltL, event.MaskAltL},
	{1 << 5, event.MaskAltR, event.MaskAltR},
	{1 << 6, event.MaskMetaL, event.MaskMetaL},
	{1 << 7, event.MaskMetaR, event.MaskMetaR},
	{1 << 8, event.MaskButton1, event.MaskButton1},
	{1 << 9, event.MaskButton2, event.MaskButton2},
	{1 << 10, event.MaskButton3, event.MaskButton3},
	{1 << 11, event.MaskButton4, event.MaskButton4},
	{1 << 12, event.MaskButton5, event.MaskButton5},
	{1 << 13, event.MaskCapsLock, event.MaskCapsLock},
	{1 << 14, event.MaskNumLock, event.MaskNumLock},
	{1 << 15, event.MaskScrollLock, event.MaskScrollLock},
}

var windowsKeys = []keyPair{
	{0x08, event.KeyBackspace},
	{0x09, event.KeyTab},
	{0x0C, event.KeyClear},
	{VKReturn, event.KeyEnter},
	{VKReturn | WindowsExtended, event.KeyKPEnter},
	{0x13, event.KeyPause},
	{VKCapital, event.KeyCapsLock},
	{0x15, event.KeyKatakana},
	{0x19, event.KeyKanji},
	{0x1B, event.KeyEscape},
	{0x20, event.KeySpace},
	{0x21, event.KeyPageUp},
	{0x22, event.KeyPageDown},
	{0x23, event.KeyEnd},
	{0x24, event.KeyHome},
	{0x25, event.KeyLeft},
	{0x26, event.KeyUp},
	{0x27, event.KeyRight},
	{0x28, event.KeyDown},
	{0x2C, event.KeyPrintScreen},
	{0x2D, event.KeyInsert},
	{0x2E, event.KeyDelete},
	{0x2F, event.KeyHelp},
	{0x30, event.Key0}, {0x31, event.Key1}, {0x32, event.Key2}, {0x33, event.Key3}, {0x34, event.Key4},
	{0x35, event.Key5}, {0x36, event.Key6}, {0x37, event.Key7}, {0x38, event.Key8}, {0x39, event.Key9},
	{0x41, event.KeyA}, {0x42, event.KeyB}, {0x43, event.KeyC}, {0x44, event.KeyD}, {0x45, event.KeyE},
	{0x46, event.KeyF}, {0x47, event.KeyG}, {0x48, event.KeyH}, {0x49, event.KeyI}, {0x4A, event.KeyJ},
	{0x4B, event.KeyK}, {0x4C, event.KeyL}, {0x4D, event.KeyM}, {0x4E, event.KeyN}, {0x4F, event.KeyO},
	{0x50, event.KeyP}, {0x51, event.KeyQ}, {0x52, event.KeyR}, {0x53, event.KeyS}, {0x54, event.KeyT},
	{0x55, event.KeyU}, {0x56, event.KeyV}, {0x57, event.KeyW}, {0x58, event.KeyX}, {0x59, event.KeyY},
	{0x5A, event.KeyZ},
	{VKLWin, event.KeyMetaL},
	{VKRWin, event.KeyMetaR},
	{0x5D, event.KeyContextMenu},
	{0x5F, event.KeySleep},
	{0x60, event.KeyKP0}, {0x61, event.KeyKP1}, {0x62, event.KeyKP2}, {0x63, event.KeyKP3}, {0x64, event.KeyKP4},
	{0x65, event.KeyKP5}, {0x66, event.KeyKP6}, {0x67, event.KeyKP7}, {0x68, event.KeyKP8}, {0x69, event.KeyKP9},
	{0x6A, event.KeyKPMultiply},
	{0x6B, event.KeyKPAdd},
	{0x6C, event.KeyKPComma},
	{0x6D, event.KeyKPSubtract},
	{0x6E, event.KeyKPSeparator},
	{0x6F, event.KeyKPDivide},
	{0x70, event.KeyF1}, {0x71, event.KeyF2}, {0x72, event.KeyF3}, {0x73, event.KeyF4},
	{0x74, event.KeyF5}, {0x75, event.KeyF6}, {0x76, event.KeyF7}, {0x77, event.KeyF8},
	{0x78, event.KeyF9}, {0x79, event.KeyF10}, {0x7A, event.KeyF11}, {0x7B, event.KeyF12},
	{0x7C, event.KeyF13}, {0x7D, event.KeyF14}, {0x7E, event.KeyF15}, {0x7F, event.KeyF16},
	{0x80, event.KeyF17}, {0x81, event.KeyF18}, {0x82, event.KeyF19}, {0x83, event.KeyF20},
	{0x84, event.KeyF21}, {0x85, event.KeyF22}, {0x86, event.KeyF23}, {0x87, event.KeyF24},
	{VKNumLock, event.KeyNumLock},
	{VKScroll, event.KeyScrollLock},
	{0x92, event.KeyKPEquals}, // VK_OEM_NEC_EQUAL
	{VKLShift, event.KeyShiftL},
	{VKRShift, event.KeyShiftR},
	{VKLControl, event.KeyControlL},
	{VKRControl, event.KeyControlR},
	{VKLMenu, event.KeyAltL},
	{VKRMenu, event.KeyAltR},
	{0xA6, event.KeyBrowserBack},
	{0xA7, event.KeyBrowserForward},
	{0xA8, event.KeyBrowserRefresh},
	{0xA9, event.KeyBrowserStop},
	{0xAA, event.KeyBrowserSearch},
	{0xAB, event.KeyBrowserFavorites},
	{0xAC, event.KeyBrowserHome},
	{0xAD, event.KeyVolumeMute},
	{0xAE, event.KeyVolumeDown},
	{0xAF, event.KeyVolumeUp},
	{0xB0, event.KeyMediaNext},
	{0xB1, event.KeyMediaPrevious},
	{0xB2, event.KeyMediaStop},
	{0xB3, event.KeyMediaPlay},
	{0xB4, event.KeyAppMail},
	{0xB5, event.KeyMediaSelect},
	{0xB6, event.KeyAppMusic},
	{0xB7, event.KeyAppCalculator},
	{0xBA, event.KeySemicolon},
	{0xBB, event.KeyEquals},
	{0xBC, event.KeyComma},
	{0xBD, event.KeyMinus},
	{0xBE, event.KeyPeriod},
	{0xBF, event.KeySlash},
	{0xC0, event.KeyBackquote},
	{0xC1, event.KeyUnderscore}, // VK_ABNT_C1
	{0xDB, event.KeyOpenBracket},
	{0xDC, event.KeyBackSlash},
	{0xDD, event.KeyCloseBracket},
	{0xDE, event.KeyQuote},
	{0xE2, event.KeyLesserGreater},
}

// Generic modifier codes arrive from some injectors instead of the sided ones.
var windowsAliases = []keyPair{
	{VKShift, event.KeyShiftL},
	{VKControl, event.KeyControlL},
	{VKMenu, event.KeyAltL},
}

// windowsExtendedKeys need KEYEVENTF_EXTENDEDKEY when injected
var windowsExtendedKeys = map[uint16]bool{
	0x21: true, 0x22: true, 0x23: true, 0x24: true,
	0x25: true, 0x26: true, 0x27: true, 0x28: true,
	0x2C: true, 0x2D: true, 0x2E: true,
	VKLWin: true, VKRWin: true, 0x5D: true,
	0x6F: true, VKNumLock: true,
	VKRControl: true, VKRMenu: true,
}

// WindowsNativeKey builds the table's native code from a hook's virtual-key
// code and LLKHF_EXTENDED flag.
func WindowsNativeKey(vk uint32, extended bool) uint16 {
	code := uint16(vk & 0xFF)
	if extended && code == VKReturn {
		code |= WindowsExtended
	}
	return code
}

// WindowsSplitKey returns the virtual-key code to inject for native and
// whether it needs the extended-key flag.
func WindowsSplitKey(native uint16) (vk uint16, extended bool) {
	vk = native &^ WindowsExtended
	return vk, native&WindowsExtended != 0 || windowsExtendedKeys[vk]
}

// Windows is the Win32 virtual-key table
var Windows Table = newTable("windows", windowsKeys, windowsAliases, windowsButtons, windowsButtonEvents[:]).withMasks(windowsMasks)
