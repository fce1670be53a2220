//go:build !linux && !darwin && !windows

package hook

import (
	"fmt"
	"runtime"

	"inputhook/internal/platform"
)

func newBackend() (platform.Backend, error) {
	return nil, fmt.Errorf("input hooking not supported on %s", runtime.GOOS)
}
