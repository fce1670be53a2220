//go:build windows

package osutils

import (
	"fmt"
	"os/exec"
	"strings"

	"inputhook/internal/logger"

	"golang.org/x/sys/windows"
)

// IsAdmin checks if the current process has administrative privileges.
// Low-level hooks of an unelevated process do not see input aimed at
// elevated windows.
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}

// EnsureFirewallRule makes sure an inbound rule named name allows port,
// creating or replacing it through PowerShell. Without elevation a UAC
// prompt is raised.
func EnsureFirewallRule(name string, port int, proto Protocol) error {
	logger.Debugf("[FIREWALL] Checking rule '%s' for %s port %d", name, proto, port)

	output, err := exec.Command("netsh", "advfirewall", "firewall", "show", "rule", "name="+name).CombinedOutput()
	out := string(output)
	if err == nil && ruleMatches(out, name, port, proto) {
		logger.Debugf("[FIREWALL] Rule '%s' already allows %s port %d", name, proto, port)
		return nil
	}

	psCommand := firewallCommand(name, port, proto)

	if !IsAdmin() {
		logger.Infof("[FIREWALL] Requesting elevation to open %s port %d", proto, port)

		verbPtr, _ := windows.UTF16PtrFromString("runas")
		exePtr, _ := windows.UTF16PtrFromString("powershell.exe")
		argPtr, _ := windows.UTF16PtrFromString(fmt.Sprintf("-NoProfile -WindowStyle Hidden -Command \"%s\"", psCommand))

		if err := windows.ShellExecute(0, verbPtr, exePtr, argPtr, nil, windows.SW_HIDE); err != nil {
			return fmt.Errorf("firewall: elevated powershell: %w", err)
		}
		return nil
	}

	cmd := exec.Command("powershell", "-NoProfile", "-Command", psCommand)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("firewall: create rule: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}
	logger.Infof("[FIREWALL] Opened %s port %d", proto, port)
	return nil
}
