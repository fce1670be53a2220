//go:build linux

package evdev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"inputhook/internal/keymap"
	"inputhook/internal/logger"
	"inputhook/internal/platform"
	"inputhook/internal/status"
	"inputhook/internal/translate"
)

type device struct {
	path     string
	fd       int
	name     string
	keyboard bool
	pointer  bool
}

type capture struct {
	devices []*device
	wake    int // eventfd, readable once Interrupt was called
	dec     decoder
}

func probe(path string) (*device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	dev := &device{path: path, fd: fd, name: deviceName(fd)}

	evBits, err := bits(fd, func(n uintptr) uintptr { return eviocgbit(0, n) }, 0x1f)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("EVIOCGBIT %s: %w", path, err)
	}
	var keyBits, relBits []byte
	if testBit(evBits, evKey) {
		keyBits, _ = bits(fd, func(n uintptr) uintptr { return eviocgbit(evKey, n) }, keyMax)
	}
	if testBit(evBits, evRel) {
		relBits, _ = bits(fd, func(n uintptr) uintptr { return eviocgbit(evRel, n) }, 0x0f)
	}
	dev.keyboard = testBit(keyBits, keyA)
	dev.pointer = testBit(relBits, relX) && testBit(keyBits, int(keymap.BtnLeft))
	return dev, nil
}

func (b *Backend) OpenCapture() (platform.Capture, error) {
	paths := b.opts.Devices
	if len(paths) == 0 {
		var err error
		paths, err = filepath.Glob("/dev/input/event*")
		if err != nil {
			return nil, status.Wrap(status.DeviceNotFound, err)
		}
	}

	c := &capture{wake: -1}
	var openErr error
	for _, path := range paths {
		dev, err := probe(path)
		if err != nil {
			openErr = err
			logger.Debugf("[EVDEV] Skipping %s: %v", path, err)
			continue
		}
		if strings.HasPrefix(dev.name, uinputNamePrefix) || (!dev.keyboard && !dev.pointer) {
			unix.Close(dev.fd)
			continue
		}
		if err := ioctlInt(dev.fd, eviocsclockid, unix.CLOCK_MONOTONIC); err != nil {
			logger.Debugf("[EVDEV] %s keeps the realtime clock: %v", path, err)
		}
		logger.Debugf("[EVDEV] Reading %s (%s) keyboard=%v pointer=%v", path, dev.name, dev.keyboard, dev.pointer)
		c.devices = append(c.devices, dev)
	}
	if len(c.devices) == 0 {
		if openErr != nil {
			return nil, status.Wrap(status.DeviceOpen, openErr)
		}
		return nil, status.Wrap(status.DeviceNotFound, errors.New("no keyboard or pointer device under /dev/input"))
	}

	wake, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		c.Close()
		return nil, status.Wrap(status.Poll, fmt.Errorf("eventfd: %w", err))
	}
	c.wake = wake

	if d, err := b.display(); err == nil {
		if x, y, mask, err := d.pointer(); err == nil {
			c.dec.x, c.dec.y = int32(x), int32(y)
			c.dec.seed, c.dec.hasSeed = uint32(mask), true
		}
		c.dec.bounds = desktopBounds(d.screens())
	} else {
		logger.Debugf("[EVDEV] No X display, pointer positions start at the origin: %v", err)
	}
	return c, nil
}

func desktopBounds(screens []platform.Screen) *rect {
	if len(screens) == 0 {
		return nil
	}
	r := &rect{minX: 1 << 30, minY: 1 << 30, maxX: -1 << 30, maxY: -1 << 30}
	for _, s := range screens {
		r.minX = min(r.minX, int32(s.X))
		r.minY = min(r.minY, int32(s.Y))
		r.maxX = max(r.maxX, int32(s.X)+int32(s.Width)-1)
		r.maxY = max(r.maxY, int32(s.Y)+int32(s.Height)-1)
	}
	return r
}

func (c *capture) Run(h platform.Handler) error {
	buf := make([]byte, 64*inputEventSize)
	emit := func(n translate.Native) { h(n) }

	for {
		fds := make([]unix.PollFd, 0, len(c.devices)+1)
		fds = append(fds, unix.PollFd{Fd: int32(c.wake), Events: unix.POLLIN})
		for _, d := range c.devices {
			fds = append(fds, unix.PollFd{Fd: int32(d.fd), Events: unix.POLLIN})
		}

		if _, err := unix.Poll(fds, -1); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return status.Wrap(status.Poll, err)
		}
		if fds[0].Revents != 0 {
			return nil
		}

		alive := c.devices[:0]
		for i, d := range c.devices {
			revents := fds[i+1].Revents
			if revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
				logger.Warnf("[EVDEV] Lost %s (%s)", d.path, d.name)
				unix.Close(d.fd)
				continue
			}
			alive = append(alive, d)
			if revents&unix.POLLIN == 0 {
				continue
			}
			if err := c.drain(d, buf, emit); err != nil {
				logger.Warnf("[EVDEV] Read %s: %v", d.path, err)
			}
		}
		c.devices = alive
	}
}

func (c *capture) drain(d *device, buf []byte, emit func(translate.Native)) error {
	for {
		n, err := unix.Read(d.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				return nil
			}
			return err
		}
		if n < inputEventSize {
			return nil
		}
		events := unsafe.Slice((*inputEvent)(unsafe.Pointer(&buf[0])), n/inputEventSize)
		for _, ev := range events {
			c.dec.feed(ev, emit)
		}
	}
}

func (c *capture) Interrupt() {
	var one [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)
	if _, err := unix.Write(c.wake, one[:]); err != nil {
		logger.Warnf("[EVDEV] Failed to wake listener: %v", err)
	}
}

func (c *capture) Close() error {
	for _, d := range c.devices {
		unix.Close(d.fd)
	}
	c.devices = nil
	if c.wake >= 0 {
		unix.Close(c.wake)
		c.wake = -1
	}
	return nil
}
