//go:build darwin

// Package darwin is the macOS backend built on a Quartz event tap.
// Capturing and posting events requires the process to be trusted for
// accessibility.
package darwin

/*
#cgo CFLAGS: -Wno-deprecated-declarations
#cgo LDFLAGS: -framework ApplicationServices -framework Carbon -framework CoreFoundation
#include "bridge.h"
*/
import "C"

import (
	"inputhook/event"
	"inputhook/internal/deadkey"
	"inputhook/internal/keymap"
	"inputhook/internal/synth"
)

// Keys whose UCKeyTranslate output is a private-use or control character.
var suppressedKeys = []event.Keycode{
	event.KeyEscape, event.KeyUp, event.KeyDown, event.KeyLeft, event.KeyRight,
	event.KeyHome, event.KeyEnd, event.KeyPageUp, event.KeyPageDown,
	event.KeyDelete, event.KeyInsert, event.KeyHelp, event.KeyClear,
	event.KeyF1, event.KeyF2, event.KeyF3, event.KeyF4, event.KeyF5, event.KeyF6,
	event.KeyF7, event.KeyF8, event.KeyF9, event.KeyF10, event.KeyF11, event.KeyF12,
	event.KeyF13, event.KeyF14, event.KeyF15, event.KeyF16, event.KeyF17, event.KeyF18,
	event.KeyF19, event.KeyF20,
}

// Backend implements platform.Backend for macOS.
type Backend struct {
	suppress map[uint16]struct{}
	layouts  layoutSource
	inj      injector
}

func New() *Backend {
	b := &Backend{suppress: make(map[uint16]struct{}, len(suppressedKeys))}
	for _, k := range suppressedKeys {
		if code, ok := keymap.Darwin.ToNativeKey(k); ok {
			b.suppress[code] = struct{}{}
		}
	}
	return b
}

func (b *Backend) Name() string { return "quartz" }

func (b *Backend) Table() keymap.Table { return keymap.Darwin }

func (b *Backend) Layouts() deadkey.LayoutSource { return &b.layouts }

func (b *Backend) Suppress(code uint16) bool {
	_, ok := b.suppress[code]
	return ok
}

// Now is mach absolute time in milliseconds, the clock event timestamps use.
func (b *Backend) Now() uint64 { return uint64(C.ihNowMillis()) }

func (b *Backend) Injector() (synth.Injector, error) { return &b.inj, nil }
