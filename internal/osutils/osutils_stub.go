//go:build !windows

package osutils

import "os"

// IsAdmin reports whether the process runs as root. Reading evdev devices
// and creating uinput devices otherwise needs membership in the input
// group or a udev rule.
func IsAdmin() bool {
	return os.Geteuid() == 0
}

// EnsureFirewallRule does nothing; only Windows firewall rules are
// managed.
func EnsureFirewallRule(name string, port int, proto Protocol) error {
	return nil
}
