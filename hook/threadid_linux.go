//go:build linux

package hook

import "golang.org/x/sys/unix"

func threadID() uint64 { return uint64(unix.Gettid()) }
