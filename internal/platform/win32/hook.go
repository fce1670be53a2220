//go:build windows

package win32

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputhook/internal/logger"
	"inputhook/internal/platform"
	"inputhook/internal/status"
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14
	hcAction     = 0
	wmQuit       = 0x0012

	spiGetWheelScrollLines = 0x0068
	defaultWheelLines      = 3
)

// Callbacks are created once; windows.NewCallback slots are never freed.
var (
	active    atomic.Pointer[capture]
	callbacks = sync.OnceValues(func() (uintptr, uintptr) {
		return windows.NewCallback(keyboardProc), windows.NewCallback(mouseProc)
	})
)

type msg struct {
	Hwnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type capture struct {
	tid      uint32
	keyboard uintptr
	mouse    uintptr
	stop     atomic.Bool
	dec      decoder
	handler  platform.Handler
}

// OpenCapture installs both hooks for the calling thread's message loop.
func (b *Backend) OpenCapture() (platform.Capture, error) {
	c := &capture{tid: windows.GetCurrentThreadId()}
	c.dec.now = b.Now
	c.dec.wheelLines = defaultWheelLines
	var lines uint32
	if r, _, _ := procSystemParametersInfoW.Call(spiGetWheelScrollLines, 0, uintptr(unsafe.Pointer(&lines)), 0); r != 0 {
		c.dec.wheelLines = lines
	}
	c.dec.seed, c.dec.hasSeed = currentMask(), true

	if !active.CompareAndSwap(nil, c) {
		return nil, status.Wrap(status.SetWindowsHook, errors.New("another capture is installed"))
	}

	mod, _, err := procGetModuleHandleW.Call(0)
	if mod == 0 {
		active.Store(nil)
		return nil, status.Wrap(status.GetModuleHandle, err)
	}
	kbd, mouse := callbacks()
	c.keyboard, _, err = procSetWindowsHookExW.Call(whKeyboardLL, kbd, mod, 0)
	if c.keyboard == 0 {
		active.Store(nil)
		return nil, status.Wrap(status.SetWindowsHook, fmt.Errorf("keyboard hook: %w", err))
	}
	c.mouse, _, err = procSetWindowsHookExW.Call(whMouseLL, mouse, mod, 0)
	if c.mouse == 0 {
		procUnhookWindowsHookEx.Call(c.keyboard)
		active.Store(nil)
		return nil, status.Wrap(status.SetWindowsHook, fmt.Errorf("mouse hook: %w", err))
	}
	logger.Debugf("[WIN32] Hooks installed on thread %d", c.tid)
	return c, nil
}

func (c *capture) Run(h platform.Handler) error {
	c.handler = h
	var m msg
	for !c.stop.Load() {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case 0:
			return nil
		case -1:
			return status.Wrap(status.Failure, fmt.Errorf("GetMessage: %w", err))
		}
	}
	return nil
}

func (c *capture) Interrupt() {
	c.stop.Store(true)
	procPostThreadMessageW.Call(uintptr(c.tid), wmQuit, 0, 0)
}

func (c *capture) Close() error {
	var errs []error
	if r, _, err := procUnhookWindowsHookEx.Call(c.mouse); r == 0 {
		errs = append(errs, fmt.Errorf("unhook mouse: %w", err))
	}
	if r, _, err := procUnhookWindowsHookEx.Call(c.keyboard); r == 0 {
		errs = append(errs, fmt.Errorf("unhook keyboard: %w", err))
	}
	active.CompareAndSwap(c, nil)
	logger.Debugf("[WIN32] Hooks removed")
	return errors.Join(errs...)
}

func next(code int, wParam, lParam uintptr) uintptr {
	r, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return r
}

func keyboardProc(code int, wParam, lParam uintptr) uintptr {
	c := active.Load()
	if code == hcAction && c != nil && c.handler != nil {
		k := (*kbdHook)(unsafe.Pointer(lParam))
		if n, ok := c.dec.keyboard(wParam, k); ok && c.handler(n) {
			return 1
		}
	}
	return next(code, wParam, lParam)
}

func mouseProc(code int, wParam, lParam uintptr) uintptr {
	c := active.Load()
	if code == hcAction && c != nil && c.handler != nil {
		m := (*mouseHook)(unsafe.Pointer(lParam))
		if n, ok := c.dec.mouse(wParam, m); ok && c.handler(n) {
			return 1
		}
	}
	return next(code, wParam, lParam)
}
