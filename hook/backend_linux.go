//go:build linux

package hook

import (
	"inputhook/internal/platform"
	"inputhook/internal/platform/evdev"
)

func newBackend() (platform.Backend, error) {
	return evdev.New(evdev.Options{}), nil
}
