//go:build !windows

package autostart

import (
	"os"
	"path/filepath"
	"runtime"
)

var userHomeDir = os.UserHomeDir

// entryPath returns the LaunchAgent plist on macOS and the XDG autostart
// desktop file elsewhere.
func entryPath() (path, tmpl string, err error) {
	home, err := userHomeDir()
	if err != nil {
		return "", "", err
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "LaunchAgents", label+".plist"), macLaunchAgentPlist, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", "inputhook.desktop"), xdgDesktopEntry, nil
}

func enable(e entry) error {
	path, tmpl, err := entryPath()
	if err != nil {
		return err
	}
	data, err := render(tmpl, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func disable() error {
	path, _, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isEnabled() bool {
	path, _, err := entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
