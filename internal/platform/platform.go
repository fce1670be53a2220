// Package platform is the contract between the hook engine and the native
// backends under its subdirectories.
package platform

import (
	"errors"

	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
	"inputhook/internal/synth"
	"inputhook/internal/translate"
)

// ErrNotSupported is returned by queries a backend cannot answer.
var ErrNotSupported = errors.New("platform: not supported")

// Screen describes one monitor in global coordinates
type Screen struct {
	Number uint8  `json:"number"`
	X      int16  `json:"x"`
	Y      int16  `json:"y"`
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
}

// Handler receives native captures on the listener thread and reports
// whether the capture should be consumed.
type Handler func(n translate.Native) (consume bool)

// Capture is an installed capture primitive. Run and Close are called on
// the listener thread that opened it; Interrupt may be called from any
// goroutine, including from inside the handler, and before Run starts.
type Capture interface {
	Run(h Handler) error
	Interrupt()
	Close() error
}

// System answers the auxiliary queries. Values are in the platform's
// native units (milliseconds, pixels, or platform scale).
type System interface {
	Screens() ([]Screen, error)
	AutoRepeatRate() (int, error)
	AutoRepeatDelay() (int, error)
	PointerAccelerationMultiplier() (int, error)
	PointerAccelerationThreshold() (int, error)
	PointerSensitivity() (int, error)
	MultiClickTime() (int, error)
}

// Backend bundles everything the engine needs from one platform.
type Backend interface {
	System

	Name() string
	Table() keymap.Table
	Layouts() deadkey.LayoutSource
	// Suppress reports native key codes whose characters are never typed.
	Suppress(code uint16) bool
	// Now is the clock native captures are stamped with, in milliseconds.
	Now() uint64
	// OpenCapture installs the capture primitive on the calling thread.
	OpenCapture() (Capture, error)
	Injector() (synth.Injector, error)
}
