//go:build linux

package evdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03
	evMsc = 0x04
	evRep = 0x14

	synReport  = 0
	synDropped = 3

	relX      = 0x00
	relY      = 0x01
	relHWheel = 0x06
	relWheel  = 0x08

	absX = 0x00
	absY = 0x01

	keyA      = 30
	keyMax    = 0x2ff
	btnMisc   = 0x100
	btnMouse  = 0x110
	btnJoy    = 0x120
	keyOK     = 0x160
	keyRepeat = 2

	inputPropPointer = 0x00
	inputPropDirect  = 0x01
)

// uinput.h
const (
	uinputMaxNameSize = 80
	uiDevCreate       = 0x5501
	uiDevDestroy      = 0x5502
	uiSetEvBit        = 0x40045564
	uiSetKeyBit       = 0x40045565
	uiSetRelBit       = 0x40045566
	uiSetAbsBit       = 0x40045567
	uiSetPropBit      = 0x4004556E
	busVirtual        = 0x06
	absSize           = 64
)

// evdev ioctls; the _IOC read requests carry their buffer length
const (
	iocRead       = 2
	eviocgrep     = 0x80084503
	eviocsclockid = 0x400445a0
)

func eviocgbit(ev, size uintptr) uintptr { return iocRead<<30 | size<<16 | 'E'<<8 | (0x20 + ev) }
func eviocgname(size uintptr) uintptr    { return iocRead<<30 | size<<16 | 'E'<<8 | 0x06 }
func eviocgprop(size uintptr) uintptr    { return iocRead<<30 | size<<16 | 'E'<<8 | 0x09 }
func eviocgkey(size uintptr) uintptr     { return iocRead<<30 | size<<16 | 'E'<<8 | 0x18 }
func eviocgled(size uintptr) uintptr     { return iocRead<<30 | size<<16 | 'E'<<8 | 0x19 }

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// legacy uinput device description written before UI_DEV_CREATE
type uinputUserDev struct {
	Name       [uinputMaxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [absSize]int32
	Absmin     [absSize]int32
	Absfuzz    [absSize]int32
	Absflat    [absSize]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

const inputEventSize = int(unsafe.Sizeof(inputEvent{}))

func ioctlPtr(fd int, req uintptr, p unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(p))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlInt(fd int, req uintptr, v int) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(v))
	if errno != 0 {
		return errno
	}
	return nil
}

// bits reads a kernel bitmap through one of the EVIOCG* requests.
func bits(fd int, req func(uintptr) uintptr, max int) ([]byte, error) {
	buf := make([]byte, max/8+1)
	if err := ioctlPtr(fd, req(uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return nil, err
	}
	return buf, nil
}

func testBit(b []byte, n int) bool {
	return n/8 < len(b) && b[n/8]&(1<<(n%8)) != 0
}

func deviceName(fd int) string {
	buf := make([]byte, 256)
	if err := ioctlPtr(fd, eviocgname(uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return ""
	}
	return unix.ByteSliceToString(buf)
}

func writeEvents(fd int, events ...inputEvent) error {
	if len(events) == 0 {
		return nil
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&events[0])), len(events)*inputEventSize)
	_, err := unix.Write(fd, buf)
	return err
}
