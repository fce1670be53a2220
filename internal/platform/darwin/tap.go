//go:build darwin

package darwin

/*
#include "bridge.h"
*/
import "C"

import (
	"errors"
	"runtime/cgo"
	"sync/atomic"
	"unsafe"

	"inputhook/internal/keymap"
	"inputhook/internal/logger"
	"inputhook/internal/platform"
	"inputhook/internal/status"
)

// how long one run loop pass blocks before the stop flag is checked again
const runLoopSlice = 1.0

type capture struct {
	handle  cgo.Handle
	tap     C.CFMachPortRef
	src     C.CFRunLoopSourceRef
	loop    C.CFRunLoopRef
	stop    atomic.Bool
	handler platform.Handler
}

// OpenCapture installs the event tap on the calling thread's run loop.
func (b *Backend) OpenCapture() (platform.Capture, error) {
	if !C.ihTrusted() {
		return nil, status.Wrap(status.AXAPIDisabled,
			errors.New("grant accessibility access in System Settings > Privacy & Security"))
	}

	c := &capture{}
	c.handle = cgo.NewHandle(c)
	c.tap = C.ihCreateTap(C.uintptr_t(c.handle))
	if c.tap == 0 {
		c.handle.Delete()
		return nil, status.Wrap(status.CreateEventPort, errors.New("CGEventTapCreate returned NULL"))
	}
	c.loop = C.ihCurrentRunLoop()
	if c.loop == 0 {
		C.ihDetachTap(c.tap, 0, 0)
		c.handle.Delete()
		return nil, status.Wrap(status.GetRunLoop, errors.New("CFRunLoopGetCurrent returned NULL"))
	}
	c.src = C.ihAttachTap(c.tap, c.loop)
	if c.src == 0 {
		C.ihDetachTap(c.tap, 0, c.loop)
		c.handle.Delete()
		return nil, status.Wrap(status.CreateRunLoopSource, errors.New("CFMachPortCreateRunLoopSource returned NULL"))
	}
	logger.Debugf("[QUARTZ] Event tap installed")
	return c, nil
}

func (c *capture) Run(h platform.Handler) error {
	c.handler = h
	for !c.stop.Load() {
		C.ihRunLoopOnce(runLoopSlice)
	}
	return nil
}

// Interrupt may run before Run; the flag keeps the request.
func (c *capture) Interrupt() {
	c.stop.Store(true)
	C.ihStopRunLoop(c.loop)
}

func (c *capture) Close() error {
	C.ihDetachTap(c.tap, c.src, c.loop)
	c.handle.Delete()
	logger.Debugf("[QUARTZ] Event tap removed")
	return nil
}

func (c *capture) dispatch(typ uint32, ev C.CGEventRef) (consume bool) {
	if typ == keymap.CGEventTapDisabledByTO || typ == keymap.CGEventTapDisabledByUI {
		logger.Warnf("[QUARTZ] Event tap disabled (type 0x%X), re-enabling", typ)
		C.ihEnableTap(c.tap)
		return false
	}
	if c.handler == nil {
		return false
	}

	var raw C.ihEvent
	C.ihReadEvent(ev, &raw)
	natives := decode(typ, rawEvent{
		Time:       uint64(raw.time),
		Flags:      uint64(raw.flags),
		X:          float64(raw.x),
		Y:          float64(raw.y),
		Keycode:    int64(raw.keycode),
		Button:     int64(raw.button),
		Wheel1:     int64(raw.wheel1),
		Wheel2:     int64(raw.wheel2),
		Continuous: bool(raw.continuous),
	})
	for _, n := range natives {
		if c.handler(n) {
			consume = true
		}
	}
	return consume
}

//export ihTapCallback
func ihTapCallback(_ C.CGEventTapProxy, typ C.CGEventType, ev C.CGEventRef, info unsafe.Pointer) C.CGEventRef {
	c, ok := cgo.Handle(uintptr(info)).Value().(*capture)
	if !ok {
		return ev
	}
	if c.dispatch(uint32(typ), ev) {
		return 0
	}
	return ev
}
