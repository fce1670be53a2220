//go:build linux

package evdev

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"inputhook/event"
	"inputhook/internal/keymap"
	"inputhook/internal/logger"
	"inputhook/internal/status"
	"inputhook/internal/synth"
)

// Devices we create carry this prefix so capture can skip them.
const uinputNamePrefix = "inputhook"

// udev and the display server need a moment to pick up a new device
const settleDelay = 200 * time.Millisecond

var uinputPaths = []string{"/dev/uinput", "/dev/input/uinput"}

// injector owns two uinput devices: a keyboard and an absolute pointer
// spanning the whole desktop, the way virtual machine tablets do.
type injector struct {
	mu     sync.Mutex
	kbd    int
	ptr    int
	origin [2]int32
	size   [2]int32
}

func newInjector(b *Backend) (*injector, error) {
	inj := &injector{kbd: -1, ptr: -1, size: [2]int32{0x8000, 0x8000}}
	if d, err := b.display(); err == nil {
		if r := desktopBounds(d.screens()); r != nil {
			inj.origin = [2]int32{r.minX, r.minY}
			inj.size = [2]int32{r.maxX - r.minX + 1, r.maxY - r.minY + 1}
		}
	} else if w, h, ok := framebufferSize(); ok {
		inj.size = [2]int32{w, h}
	}

	var err error
	inj.kbd, err = createDevice(uinputNamePrefix+" keyboard", func(fd int) error {
		if err := ioctlInt(fd, uiSetEvBit, evKey); err != nil {
			return err
		}
		for code := 1; code < btnMisc; code++ {
			if err := ioctlInt(fd, uiSetKeyBit, code); err != nil {
				return err
			}
		}
		for code := keyOK; code <= keyMax; code++ {
			if keymap.Evdev.ToVirtualKey(uint16(code)) != event.KeyUndefined {
				if err := ioctlInt(fd, uiSetKeyBit, code); err != nil {
					return err
				}
			}
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	var dev uinputUserDev
	dev.Absmax[absX] = inj.size[0] - 1
	dev.Absmax[absY] = inj.size[1] - 1
	inj.ptr, err = createDevice(uinputNamePrefix+" pointer", func(fd int) error {
		for _, ev := range []int{evKey, evRel, evAbs} {
			if err := ioctlInt(fd, uiSetEvBit, ev); err != nil {
				return err
			}
		}
		for code := keymap.BtnLeft; code <= keymap.BtnExtra; code++ {
			if err := ioctlInt(fd, uiSetKeyBit, int(code)); err != nil {
				return err
			}
		}
		for _, rel := range []int{relWheel, relHWheel} {
			if err := ioctlInt(fd, uiSetRelBit, rel); err != nil {
				return err
			}
		}
		for _, abs := range []int{absX, absY} {
			if err := ioctlInt(fd, uiSetAbsBit, abs); err != nil {
				return err
			}
		}
		return ioctlInt(fd, uiSetPropBit, inputPropPointer)
	}, &dev)
	if err != nil {
		destroyDevice(inj.kbd)
		return nil, err
	}

	time.Sleep(settleDelay)
	logger.Debugf("[EVDEV] uinput devices ready, pointer area %dx%d", inj.size[0], inj.size[1])
	return inj, nil
}

func createDevice(name string, setup func(fd int) error, dev *uinputUserDev) (int, error) {
	var (
		fd  = -1
		err error
	)
	for _, path := range uinputPaths {
		fd, err = unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err == nil {
			break
		}
	}
	if fd < 0 {
		return -1, status.Wrap(status.Uinput, fmt.Errorf("open uinput: %w", err))
	}
	if err := setup(fd); err != nil {
		unix.Close(fd)
		return -1, status.Wrap(status.Uinput, fmt.Errorf("configure %s: %w", name, err))
	}

	if dev == nil {
		dev = &uinputUserDev{}
	}
	copy(dev.Name[:uinputMaxNameSize-1], name)
	dev.ID = inputID{Bustype: busVirtual, Vendor: 0x1, Product: 0x1, Version: 1}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(dev)), unsafe.Sizeof(*dev))
	if _, err := unix.Write(fd, raw); err != nil {
		unix.Close(fd)
		return -1, status.Wrap(status.Uinput, fmt.Errorf("write %s description: %w", name, err))
	}
	if err := ioctlInt(fd, uiDevCreate, 0); err != nil {
		unix.Close(fd)
		return -1, status.Wrap(status.Uinput, fmt.Errorf("create %s: %w", name, err))
	}
	return fd, nil
}

func destroyDevice(fd int) error {
	if fd < 0 {
		return nil
	}
	err := ioctlInt(fd, uiDevDestroy, 0)
	return errors.Join(err, unix.Close(fd))
}

// framebufferSize reads the console framebuffer size for hosts without X.
func framebufferSize() (int32, int32, bool) {
	raw, err := os.ReadFile("/sys/class/graphics/fb0/virtual_size")
	if err != nil {
		return 0, 0, false
	}
	ws, hs, ok := strings.Cut(strings.TrimSpace(string(raw)), ",")
	if !ok {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return int32(w), int32(h), true
}

func syn() inputEvent { return inputEvent{Type: evSyn, Code: synReport} }

func (inj *injector) abs(x, y int16) []inputEvent {
	ax := min(max(int32(x)-inj.origin[0], 0), inj.size[0]-1)
	ay := min(max(int32(y)-inj.origin[1], 0), inj.size[1]-1)
	return []inputEvent{
		{Type: evAbs, Code: absX, Value: ax},
		{Type: evAbs, Code: absY, Value: ay},
	}
}

func (inj *injector) Key(native uint16, down bool, _ uint32) error {
	var value int32
	if down {
		value = 1
	}
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return writeEvents(inj.kbd, inputEvent{Type: evKey, Code: native, Value: value}, syn())
}

func (inj *injector) Button(kind uint32, _ uint16, x, y int16) error {
	code, value := keymap.EvdevButtonValue(kind)
	events := append(inj.abs(x, y), inputEvent{Type: evKey, Code: code, Value: value}, syn())
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return writeEvents(inj.ptr, events...)
}

func (inj *injector) Move(x, y int16, _ bool) error {
	events := append(inj.abs(x, y), syn())
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return writeEvents(inj.ptr, events...)
}

func (inj *injector) Wheel(w event.WheelData) error {
	ev := inputEvent{Type: evRel, Code: relWheel, Value: -int32(w.Rotation)}
	if w.Direction == event.WheelHorizontal {
		ev = inputEvent{Type: evRel, Code: relHWheel, Value: int32(w.Rotation)}
	}
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return writeEvents(inj.ptr, ev, syn())
}

func (inj *injector) Capabilities() synth.Capabilities {
	return synth.Capabilities{Drag: true, Wheel: true}
}

func (inj *injector) close() error {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	err := errors.Join(destroyDevice(inj.kbd), destroyDevice(inj.ptr))
	inj.kbd, inj.ptr = -1, -1
	return err
}
