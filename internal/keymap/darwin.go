package keymap

import "inputhook/event"

// CGEventFlags bits. The low bits are the device dependent side flags
// from IOKit's NX_DEVICE* constants.
const (
	CGFlagLeftControl  uint32 = 0x00000001
	CGFlagLeftShift    uint32 = 0x00000002
	CGFlagRightShift   uint32 = 0x00000004
	CGFlagLeftCommand  uint32 = 0x00000008
	CGFlagRightCommand uint32 = 0x00000010
	CGFlagLeftAlt      uint32 = 0x00000020
	CGFlagRightAlt     uint32 = 0x00000040
	CGFlagRightControl uint32 = 0x00002000

	CGFlagAlphaShift uint32 = 0x00010000
	CGFlagShift      uint32 = 0x00020000
	CGFlagControl    uint32 = 0x00040000
	CGFlagAlternate  uint32 = 0x00080000
	CGFlagCommand    uint32 = 0x00100000
	CGFlagNumericPad uint32 = 0x00200000
)

// CGEventType values used for mouse buttons
const (
	CGEventLeftMouseDown   uint32 = 1
	CGEventLeftMouseUp     uint32 = 2
	CGEventRightMouseDown  uint32 = 3
	CGEventRightMouseUp    uint32 = 4
	CGEventOtherMouseDown  uint32 = 25
	CGEventOtherMouseUp    uint32 = 26
	CGEventLeftMouseDrag   uint32 = 6
	CGEventRightMouseDrag  uint32 = 7
	CGEventOtherMouseDrag  uint32 = 27
	CGEventMouseMoved      uint32 = 5
	CGEventScrollWheel     uint32 = 22
	CGEventKeyDown         uint32 = 10
	CGEventKeyUp           uint32 = 11
	CGEventFlagsChanged    uint32 = 12
	CGEventTapDisabledByTO uint32 = 0xFFFFFFFE
	CGEventTapDisabledByUI uint32 = 0xFFFFFFFF
)

var darwinButtonEvents = [...][2]uint32{
	event.NoButton: {},
	event.Button1:  {dirDown: CGEventLeftMouseDown, dirUp: CGEventLeftMouseUp},
	event.Button2:  {dirDown: CGEventRightMouseDown, dirUp: CGEventRightMouseUp},
	event.Button3:  {dirDown: CGEventOtherMouseDown, dirUp: CGEventOtherMouseUp},
	event.Button4:  {dirDown: CGEventOtherMouseDown, dirUp: CGEventOtherMouseUp},
	event.Button5:  {dirDown: CGEventOtherMouseDown, dirUp: CGEventOtherMouseUp},
}

// CGMouseButton numbers
var darwinButtons = []buttonPair{
	{0, event.Button1},
	{1, event.Button2},
	{2, event.Button3},
	{3, event.Button4},
	{4, event.Button5},
}

type darwinSide struct {
	generic, left, right uint32
	l, r                 event.Mask
}

var darwinSides = []darwinSide{
	{CGFlagShift, CGFlagLeftShift, CGFlagRightShift, event.MaskShiftL, event.MaskShiftR},
	{CGFlagControl, CGFlagLeftControl, CGFlagRightControl, event.MaskCtrlL, event.MaskCtrlR},
	{CGFlagAlternate, CGFlagLeftAlt, CGFlagRightAlt, event.MaskAltL, event.MaskAltR},
	{CGFlagCommand, CGFlagLeftCommand, CGFlagRightCommand, event.MaskMetaL, event.MaskMetaR},
}

// A generic flag without either side flag counts as the left key.
func darwinToVirtualMask(flags uint32) event.Mask {
	var m event.Mask
	for _, s := range darwinSides {
		if flags&s.generic == 0 {
			continue
		}
		side := event.Mask(0)
		if flags&s.left != 0 {
			side |= s.l
		}
		if flags&s.right != 0 {
			side |= s.r
		}
		if side == 0 {
			side = s.l
		}
		m |= side
	}
	if flags&CGFlagAlphaShift != 0 {
		m |= event.MaskCapsLock
	}
	return m
}

func darwinToNativeMask(m event.Mask) uint32 {
	var flags uint32
	for _, s := range darwinSides {
		if m&s.l != 0 {
			flags |= s.generic | s.left
		}
		if m&s.r != 0 {
			flags |= s.generic | s.right
		}
	}
	if m&event.MaskCapsLock != 0 {
		flags |= CGFlagAlphaShift
	}
	return flags
}

// kVK_* virtual key codes from Carbon's Events.h
var darwinKeys = []keyPair{
	{0x00, event.KeyA}, {0x01, event.KeyS}, {0x02, event.KeyD}, {0x03, event.KeyF},
	{0x04, event.KeyH}, {0x05, event.KeyG}, {0x06, event.KeyZ}, {0x07, event.KeyX},
	{0x08, event.KeyC}, {0x09, event.KeyV}, {0x0A, event.KeyLesserGreater}, {0x0B, event.KeyB},
	{0x0C, event.KeyQ}, {0x0D, event.KeyW}, {0x0E, event.KeyE}, {0x0F, event.KeyR},
	{0x10, event.KeyY}, {0x11, event.KeyT},
	{0x12, event.Key1}, {0x13, event.Key2}, {0x14, event.Key3}, {0x15, event.Key4},
	{0x16, event.Key6}, {0x17, event.Key5},
	{0x18, event.KeyEquals},
	{0x19, event.Key9}, {0x1A, event.Key7},
	{0x1B, event.KeyMinus},
	{0x1C, event.Key8}, {0x1D, event.Key0},
	{0x1E, event.KeyCloseBracket},
	{0x1F, event.KeyO}, {0x20, event.KeyU},
	{0x21, event.KeyOpenBracket},
	{0x22, event.KeyI}, {0x23, event.KeyP},
	{0x24, event.KeyEnter},
	{0x25, event.KeyL}, {0x26, event.KeyJ},
	{0x27, event.KeyQuote},
	{0x28, event.KeyK},
	{0x29, event.KeySemicolon},
	{0x2A, event.KeyBackSlash},
	{0x2B, event.KeyComma},
	{0x2C, event.KeySlash},
	{0x2D, event.KeyN}, {0x2E, event.KeyM},
	{0x2F, event.KeyPeriod},
	{0x30, event.KeyTab},
	{0x31, event.KeySpace},
	{0x32, event.KeyBackquote},
	{0x33, event.KeyBackspace},
	{0x35, event.KeyEscape},
	{0x36, event.KeyMetaR},
	{0x37, event.KeyMetaL},
	{0x38, event.KeyShiftL},
	{0x39, event.KeyCapsLock},
	{0x3A, event.KeyAltL},
	{0x3B, event.KeyControlL},
	{0x3C, event.KeyShiftR},
	{0x3D, event.KeyAltR},
	{0x3E, event.KeyControlR},
	{0x40, event.KeyF17},
	{0x41, event.KeyKPSeparator},
	{0x43, event.KeyKPMultiply},
	{0x45, event.KeyKPAdd},
	{0x47, event.KeyNumLock},
	{0x48, event.KeyVolumeUp},
	{0x49, event.KeyVolumeDown},
	{0x4A, event.KeyVolumeMute},
	{0x4B, event.KeyKPDivide},
	{0x4C, event.KeyKPEnter},
	{0x4E, event.KeyKPSubtract},
	{0x4F, event.KeyF18},
	{0x50, event.KeyF19},
	{0x51, event.KeyKPEquals},
	{0x52, event.KeyKP0}, {0x53, event.KeyKP1}, {0x54, event.KeyKP2}, {0x55, event.KeyKP3},
	{0x56, event.KeyKP4}, {0x57, event.KeyKP5}, {0x58, event.KeyKP6}, {0x59, event.KeyKP7},
	{0x5A, event.KeyF20},
	{0x5B, event.KeyKP8}, {0x5C, event.KeyKP9},
	{0x5D, event.KeyYen},
	{0x5E, event.KeyUnderscore},
	{0x5F, event.KeyKPComma},
	{0x60, event.KeyF5}, {0x61, event.KeyF6}, {0x62, event.KeyF7}, {0x63, event.KeyF3},
	{0x64, event.KeyF8}, {0x65, event.KeyF9},
	{0x66, event.KeyKanji}, // kVK_JIS_Eisu
	{0x67, event.KeyF11},
	{0x68, event.KeyKatakana}, // kVK_JIS_Kana
	{0x69, event.KeyF13}, {0x6A, event.KeyF16}, {0x6B, event.KeyF14},
	{0x6D, event.KeyF10},
	{0x6E, event.KeyContextMenu},
	{0x6F, event.KeyF12},
	{0x71, event.KeyF15},
	{0x72, event.KeyInsert}, // kVK_Help sits where Insert does
	{0x73, event.KeyHome},
	{0x74, event.KeyPageUp},
	{0x75, event.KeyDelete},
	{0x76, event.KeyF4},
	{0x77, event.KeyEnd},
	{0x78, event.KeyF2},
	{0x79, event.KeyPageDown},
	{0x7A, event.KeyF1},
	{0x7B, event.KeyLeft},
	{0x7C, event.KeyRight},
	{0x7D, event.KeyDown},
	{0x7E, event.KeyUp},
}

// Darwin is the macOS table
var Darwin Table = darwinTable()

func darwinTable() *table {
	t := newTable("darwin", darwinKeys, nil, darwinButtons, darwinButtonEvents[:])
	t.toVirtualMask = darwinToVirtualMask
	t.toNativeMask = darwinToNativeMask
	return t
}
