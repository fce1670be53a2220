// Package osutils holds OS housekeeping for the service: privilege checks
// and firewall rules for the API and relay ports.
package osutils

import (
	"fmt"
	"strconv"
	"strings"
)

// Protocol is the transport a firewall rule opens
type Protocol string

const (
	TCP Protocol = "TCP"
	UDP Protocol = "UDP"
)

// ruleMatches looks for name, port, protocol and an allow action in the
// output of "netsh advfirewall firewall show rule".
func ruleMatches(out, name string, port int, proto Protocol) bool {
	return strings.Contains(out, name) &&
		strings.Contains(out, strconv.Itoa(port)) &&
		strings.Contains(out, string(proto)) &&
		strings.Contains(out, "Allow")
}

func firewallCommand(name string, port int, proto Protocol) string {
	quoted := strings.ReplaceAll(name, "'", "''")
	return fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName '%s' -ErrorAction SilentlyContinue; New-NetFirewallRule -DisplayName '%s' -Direction Inbound -LocalPort %d -Protocol %s -Action Allow -Profile Any",
		quoted, quoted, port, proto,
	)
}
