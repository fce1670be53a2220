//go:build darwin

package darwin

/*
#include "bridge.h"
*/
import "C"

import (
	"errors"

	"inputhook/internal/platform"
)

const maxScreens = 32

func (b *Backend) Screens() ([]platform.Screen, error) {
	var buf [maxScreens]C.ihScreen
	n := int(C.ihScreens(&buf[0], C.int(len(buf))))
	if n < 0 {
		return nil, errors.New("CGGetActiveDisplayList failed")
	}
	screens := make([]platform.Screen, 0, n)
	for i, s := range buf[:n] {
		screens = append(screens, platform.Screen{
			Number: uint8(i + 1),
			X:      int16(s.x),
			Y:      int16(s.y),
			Width:  uint16(s.width),
			Height: uint16(s.height),
		})
	}
	return screens, nil
}

func preference(v C.double, name string) (int, error) {
	if v < 0 {
		return 0, errors.New(name + " is not set")
	}
	return int(v), nil
}

func (b *Backend) AutoRepeatRate() (int, error) {
	return preference(C.ihKeyRepeatInterval(), "KeyRepeat")
}

func (b *Backend) AutoRepeatDelay() (int, error) {
	return preference(C.ihKeyRepeatThreshold(), "InitialKeyRepeat")
}

// PointerAccelerationMultiplier reports the tracking speed scaled by ten.
func (b *Backend) PointerAccelerationMultiplier() (int, error) {
	var v C.double
	if C.ihPointerAcceleration(&v) != 0 {
		return 0, errors.New("com.apple.mouse.scaling is not set")
	}
	return int(float64(v) * 10), nil
}

func (b *Backend) PointerAccelerationThreshold() (int, error) {
	return 0, platform.ErrNotSupported
}

func (b *Backend) PointerSensitivity() (int, error) {
	return 0, platform.ErrNotSupported
}

func (b *Backend) MultiClickTime() (int, error) {
	return preference(C.ihDoubleClickInterval(), "com.apple.mouse.doubleClickThreshold")
}
