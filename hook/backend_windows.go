//go:build windows

package hook

import (
	"inputhook/internal/platform"
	"inputhook/internal/platform/win32"
)

func newBackend() (platform.Backend, error) {
	return win32.New(), nil
}
