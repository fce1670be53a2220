//go:build windows

package win32

import (
	"errors"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputhook/internal/platform"
)

const (
	spiGetMouse         = 0x0003
	spiGetKeyboardSpeed = 0x000A
	spiGetKeyboardDelay = 0x0016
	spiGetMouseSpeed    = 0x0070
)

type rect struct {
	Left, Top, Right, Bottom int32
}

var monitorCallback = sync.OnceValue(func() uintptr {
	return windows.NewCallback(func(_, _ uintptr, r *rect, data uintptr) uintptr {
		screens := (*[]platform.Screen)(unsafe.Pointer(data))
		*screens = append(*screens, platform.Screen{
			Number: uint8(len(*screens) + 1),
			X:      int16(r.Left),
			Y:      int16(r.Top),
			Width:  uint16(r.Right - r.Left),
			Height: uint16(r.Bottom - r.Top),
		})
		return 1
	})
})

func (b *Backend) Screens() ([]platform.Screen, error) {
	var screens []platform.Screen
	r, _, err := procEnumDisplayMonitors.Call(0, 0, monitorCallback(), uintptr(unsafe.Pointer(&screens)))
	if r == 0 {
		return nil, err
	}
	return screens, nil
}

func systemParameter(action uintptr) (int, error) {
	var v uint32
	r, _, err := procSystemParametersInfoW.Call(action, 0, uintptr(unsafe.Pointer(&v)), 0)
	if r == 0 {
		return 0, err
	}
	return int(v), nil
}

// AutoRepeatRate is the SPI_GETKEYBOARDSPEED setting, 0 to 31.
func (b *Backend) AutoRepeatRate() (int, error) {
	return systemParameter(spiGetKeyboardSpeed)
}

// AutoRepeatDelay is the SPI_GETKEYBOARDDELAY setting, 0 to 3.
func (b *Backend) AutoRepeatDelay() (int, error) {
	return systemParameter(spiGetKeyboardDelay)
}

// mouseParams returns the two acceleration thresholds and the
// acceleration level.
func mouseParams() ([3]int32, error) {
	var p [3]int32
	r, _, err := procSystemParametersInfoW.Call(spiGetMouse, 0, uintptr(unsafe.Pointer(&p[0])), 0)
	if r == 0 {
		return p, err
	}
	return p, nil
}

func (b *Backend) PointerAccelerationMultiplier() (int, error) {
	p, err := mouseParams()
	return int(p[2]), err
}

func (b *Backend) PointerAccelerationThreshold() (int, error) {
	p, err := mouseParams()
	if err != nil {
		return 0, err
	}
	if p[0] == 0 && p[1] == 0 {
		return 0, errors.New("pointer acceleration disabled")
	}
	return int(p[0]), nil
}

func (b *Backend) PointerSensitivity() (int, error) {
	return systemParameter(spiGetMouseSpeed)
}

func (b *Backend) MultiClickTime() (int, error) {
	r, _, _ := procGetDoubleClickTime.Call()
	return int(r), nil
}
