//go:build linux

// Package evdev is the Linux backend. It reads /dev/input/event* devices,
// injects through uinput and, when an X display is reachable, uses it for
// the keyboard mapping, pointer position and screen layout.
package evdev

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
	"inputhook/internal/synth"
)

// Options tune device discovery
type Options struct {
	// Devices lists event device paths to read. Empty means every
	// keyboard and pointer under /dev/input.
	Devices []string
	// Display is the X display name; empty uses $DISPLAY.
	Display string
}

// Backend implements platform.Backend for Linux.
type Backend struct {
	opts    Options
	layouts *layoutSource

	xmu sync.Mutex
	x   *display

	injMu sync.Mutex
	inj   *injector
}

func New(opts Options) *Backend {
	b := &Backend{opts: opts}
	b.layouts = &layoutSource{b: b}
	return b
}

func (b *Backend) Name() string { return "evdev" }

func (b *Backend) Table() keymap.Table { return keymap.Evdev }

func (b *Backend) Layouts() deadkey.LayoutSource { return b.layouts }

func (b *Backend) Suppress(uint16) bool { return false }

// Now reads CLOCK_MONOTONIC, the clock devices are switched to.
func (b *Backend) Now() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return uint64(time.Now().UnixMilli())
	}
	return uint64(ts.Nano() / int64(time.Millisecond))
}

func (b *Backend) display() (*display, error) {
	b.xmu.Lock()
	defer b.xmu.Unlock()
	if b.x != nil {
		return b.x, nil
	}
	d, err := openDisplay(b.opts.Display)
	if err != nil {
		return nil, err
	}
	b.x = d
	return d, nil
}

func (b *Backend) Injector() (synth.Injector, error) {
	b.injMu.Lock()
	defer b.injMu.Unlock()
	if b.inj != nil {
		return b.inj, nil
	}
	inj, err := newInjector(b)
	if err != nil {
		return nil, err
	}
	b.inj = inj
	return inj, nil
}

// Close releases the X connection and uinput devices.
func (b *Backend) Close() error {
	b.xmu.Lock()
	if b.x != nil {
		b.x.close()
		b.x = nil
	}
	b.xmu.Unlock()

	b.injMu.Lock()
	defer b.injMu.Unlock()
	if b.inj != nil {
		err := b.inj.close()
		b.inj = nil
		return err
	}
	return nil
}
