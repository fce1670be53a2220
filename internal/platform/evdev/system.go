//go:build linux

package evdev

import (
	"errors"
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/jezek/xgb/xproto"
	"golang.org/x/sys/unix"

	"inputhook/internal/platform"
)

// X's default when no *multiClickTime resource is set.
const defaultMultiClickTime = 200

func (b *Backend) Screens() ([]platform.Screen, error) {
	if d, err := b.display(); err == nil {
		return d.screens(), nil
	}
	if w, h, ok := framebufferSize(); ok {
		return []platform.Screen{{Number: 1, Width: uint16(w), Height: uint16(h)}}, nil
	}
	return nil, errors.New("no X display or framebuffer to read the screen layout from")
}

// repeat reads [delay, period] from the first keyboard that reports them.
func (b *Backend) repeat() ([2]uint32, error) {
	var rep [2]uint32
	paths := b.opts.Devices
	if len(paths) == 0 {
		paths, _ = filepath.Glob("/dev/input/event*")
	}
	for _, path := range paths {
		dev, err := probe(path)
		if err != nil {
			continue
		}
		ok := dev.keyboard && ioctlPtr(dev.fd, eviocgrep, unsafe.Pointer(&rep[0])) == nil
		unix.Close(dev.fd)
		if ok {
			return rep, nil
		}
	}
	return rep, fmt.Errorf("no keyboard reports auto repeat settings")
}

// AutoRepeatRate is the repeat period in milliseconds.
func (b *Backend) AutoRepeatRate() (int, error) {
	rep, err := b.repeat()
	return int(rep[1]), err
}

func (b *Backend) AutoRepeatDelay() (int, error) {
	rep, err := b.repeat()
	return int(rep[0]), err
}

func (b *Backend) pointerControl() (*xproto.GetPointerControlReply, error) {
	d, err := b.display()
	if err != nil {
		return nil, err
	}
	return xproto.GetPointerControl(d.conn).Reply()
}

func (b *Backend) PointerAccelerationMultiplier() (int, error) {
	pc, err := b.pointerControl()
	if err != nil {
		return 0, err
	}
	if pc.AccelerationDenominator == 0 {
		return 0, errors.New("pointer acceleration denominator is zero")
	}
	return int(pc.AccelerationNumerator / pc.AccelerationDenominator), nil
}

func (b *Backend) PointerAccelerationThreshold() (int, error) {
	pc, err := b.pointerControl()
	if err != nil {
		return 0, err
	}
	return int(pc.Threshold), nil
}

func (b *Backend) PointerSensitivity() (int, error) {
	return 0, platform.ErrNotSupported
}

func (b *Backend) MultiClickTime() (int, error) {
	d, err := b.display()
	if err != nil {
		return 0, err
	}
	if v, ok := d.resourceInt("*multiClickTime"); ok && v > 0 {
		return v, nil
	}
	return defaultMultiClickTime, nil
}
