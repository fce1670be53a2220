//go:build darwin

package darwin

/*
#include "bridge.h"
*/
import "C"

import (
	"fmt"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/synth"
)

// injector posts events at the HID level. It keeps no state.
type injector struct{}

func (*injector) Key(native uint16, down bool, mask uint32) error {
	if C.ihPostKey(C.uint16_t(native), C.bool(down), C.uint64_t(mask)) != 0 {
		return fmt.Errorf("create keyboard event for key 0x%X", native)
	}
	return nil
}

func (*injector) Button(kind uint32, native uint16, x, y int16) error {
	if C.ihPostMouse(C.uint32_t(kind), C.uint32_t(native), C.double(x), C.double(y)) != 0 {
		return fmt.Errorf("create mouse event type %d", kind)
	}
	return nil
}

// Move posts plain motion. Drags are not posted, see Capabilities.
func (*injector) Move(x, y int16, _ bool) error {
	if C.ihPostMouse(C.uint32_t(keymap.CGEventMouseMoved), 0, C.double(x), C.double(y)) != 0 {
		return fmt.Errorf("create mouse moved event")
	}
	return nil
}

func (*injector) Wheel(w event.WheelData) error {
	var vertical, horizontal int32
	if w.Direction == event.WheelHorizontal {
		horizontal = -int32(w.Rotation)
	} else {
		vertical = -int32(w.Rotation)
	}
	if C.ihPostWheel(C.int32_t(vertical), C.int32_t(horizontal)) != 0 {
		return fmt.Errorf("create scroll wheel event")
	}
	return nil
}

func (*injector) Capabilities() synth.Capabilities {
	return synth.Capabilities{Drag: false, Wheel: true}
}
