package osutils

import (
	"strings"
	"testing"
)

func TestRuleMatches(t *testing.T) {
	out := `Rule Name:                            inputhook API
Enabled:                              Yes
Direction:                            In
Protocol:                             TCP
LocalPort:                            18080
Action:                               Allow`

	if !ruleMatches(out, "inputhook API", 18080, TCP) {
		t.Error("matching rule not recognized")
	}
	if ruleMatches(out, "inputhook API", 18081, TCP) {
		t.Error("port mismatch accepted")
	}
	if ruleMatches(out, "inputhook API", 18080, UDP) {
		t.Error("protocol mismatch accepted")
	}
	if ruleMatches("No rules match the specified criteria.", "inputhook API", 18080, TCP) {
		t.Error("missing rule accepted")
	}
}

func TestFirewallCommand(t *testing.T) {
	cmd := firewallCommand("it's inputhook", 18081, UDP)
	for _, want := range []string{"-DisplayName 'it''s inputhook'", "-LocalPort 18081", "-Protocol UDP"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command missing %q: %s", want, cmd)
		}
	}
}
