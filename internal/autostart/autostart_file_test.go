//go:build !windows

package autostart

import (
	"runtime"
	"testing"
)

func TestEnableDisable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	old := userHomeDir
	userHomeDir = func() (string, error) { return home, nil }
	defer func() { userHomeDir = old }()

	if isEnabled() {
		t.Fatal("enabled before Enable")
	}
	if err := enable(entry{Label: label, Exec: "/usr/bin/inputhook", Args: []string{"-tray"}}); err != nil {
		t.Fatal(err)
	}
	if !isEnabled() {
		t.Fatalf("not enabled after Enable on %s", runtime.GOOS)
	}
	if err := disable(); err != nil {
		t.Fatal(err)
	}
	if isEnabled() {
		t.Error("still enabled after Disable")
	}
	if err := disable(); err != nil {
		t.Errorf("second Disable: %v", err)
	}
}
