//go:build darwin

package hook

import (
	"inputhook/internal/platform"
	"inputhook/internal/platform/darwin"
)

func newBackend() (platform.Backend, error) {
	return darwin.New(), nil
}
