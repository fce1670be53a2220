//go:build darwin

package darwin

/*
#include "bridge.h"
*/
import "C"

import (
	"errors"
	"unicode/utf16"

	"inputhook/event"
	"inputhook/internal/deadkey"
)

// Carbon EventModifiers bits
const (
	cmdKey     = 0x0100
	shiftKey   = 0x0200
	alphaLock  = 0x0400
	optionKey  = 0x0800
	controlKey = 0x1000
)

func carbonModifiers(m event.Mask) uint32 {
	var mods uint32
	if m&event.MaskShift != 0 {
		mods |= shiftKey
	}
	if m&event.MaskCapsLock != 0 {
		mods |= alphaLock
	}
	if m&event.MaskAlt != 0 {
		mods |= optionKey
	}
	if m&event.MaskCtrl != 0 {
		mods |= controlKey
	}
	if m&event.MaskMeta != 0 {
		mods |= cmdKey
	}
	return mods
}

// layout wraps retained 'uchr' data of one keyboard input source.
type layout struct {
	id   uint64
	data C.CFDataRef
}

func (l *layout) ID() uint64 { return l.id }

func (l *layout) translate(code uint16, mask event.Mask, state *uint32, noDead bool) ([]rune, error) {
	var (
		buf  [8]C.UniChar
		dead = C.uint32_t(*state)
	)
	n := C.ihTranslate(l.data, C.uint16_t(code), C.uint32_t(carbonModifiers(mask)), &dead,
		C.bool(noDead), &buf[0], C.int(len(buf)))
	*state = uint32(dead)
	if n < 0 {
		return nil, errors.New("UCKeyTranslate failed")
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = uint16(buf[i])
	}
	return utf16.Decode(units), nil
}

func (l *layout) Translate(code uint16, mask event.Mask, state *uint32) ([]rune, error) {
	return l.translate(code, mask, state, false)
}

func (l *layout) Lookup(code uint16, mask event.Mask) []rune {
	var state uint32
	out, _ := l.translate(code, mask, &state, true)
	return out
}

func (l *layout) Release() {
	C.ihRelease(C.CFTypeRef(l.data))
	l.data = 0
}

type layoutSource struct{}

func (layoutSource) Current() (deadkey.Layout, error) {
	var id C.uint64_t
	data := C.ihCopyLayoutData(&id)
	if data == 0 {
		return nil, errors.New("current input source has no Unicode key layout")
	}
	return &layout{id: uint64(id), data: data}, nil
}
