//go:build windows

// Package win32 is the Windows backend built on low-level keyboard and
// mouse hooks.
package win32

import (
	"golang.org/x/sys/windows"

	"inputhook/event"
	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
	"inputhook/internal/synth"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWindowsHookExW        = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx      = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx           = user32.NewProc("CallNextHookEx")
	procGetMessageW              = user32.NewProc("GetMessageW")
	procPostThreadMessageW       = user32.NewProc("PostThreadMessageW")
	procGetKeyState              = user32.NewProc("GetKeyState")
	procGetAsyncKeyState         = user32.NewProc("GetAsyncKeyState")
	procGetKeyboardLayout        = user32.NewProc("GetKeyboardLayout")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procToUnicodeEx              = user32.NewProc("ToUnicodeEx")
	procMapVirtualKeyExW         = user32.NewProc("MapVirtualKeyExW")
	procSendInput                = user32.NewProc("SendInput")
	procGetSystemMetrics         = user32.NewProc("GetSystemMetrics")
	procSystemParametersInfoW    = user32.NewProc("SystemParametersInfoW")
	procGetDoubleClickTime       = user32.NewProc("GetDoubleClickTime")
	procEnumDisplayMonitors      = user32.NewProc("EnumDisplayMonitors")
	procGetModuleHandleW         = kernel32.NewProc("GetModuleHandleW")
	procGetTickCount64           = kernel32.NewProc("GetTickCount64")
)

// Keys whose ToUnicodeEx output is a control character.
var suppressedKeys = []event.Keycode{
	event.KeyEscape, event.KeyBackspace, event.KeyTab, event.KeyEnter, event.KeyKPEnter,
}

// Backend implements platform.Backend for Windows.
type Backend struct {
	suppress map[uint16]struct{}
	inj      injector
}

func New() *Backend {
	b := &Backend{suppress: make(map[uint16]struct{}, len(suppressedKeys))}
	for _, k := range suppressedKeys {
		if code, ok := keymap.Windows.ToNativeKey(k); ok {
			b.suppress[code] = struct{}{}
		}
	}
	return b
}

func (b *Backend) Name() string { return "win32" }

func (b *Backend) Table() keymap.Table { return keymap.Windows }

func (b *Backend) Layouts() deadkey.LayoutSource { return layoutSource{} }

func (b *Backend) Suppress(code uint16) bool {
	_, ok := b.suppress[code]
	return ok
}

// Now is GetTickCount64, which hook timestamps are taken from.
func (b *Backend) Now() uint64 {
	lo, hi, _ := procGetTickCount64.Call()
	return tickCount(lo, hi)
}

func (b *Backend) Injector() (synth.Injector, error) { return &b.inj, nil }

// currentMask packs the pressed and toggled keys the way the code table
// expects its native masks.
func currentMask() uint32 {
	var mask uint32
	for bit, vk := range keymap.WindowsMaskKeys {
		if bit >= keymap.WindowsToggleBits {
			r, _, _ := procGetKeyState.Call(uintptr(vk))
			if r&0x0001 != 0 {
				mask |= 1 << bit
			}
			continue
		}
		r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
		if r&0x8000 != 0 {
			mask |= 1 << bit
		}
	}
	return mask
}
