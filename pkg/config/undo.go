package config

import "strings"

// autoCleared lists attribute prefixes the device removes on its own when
// the port link-type changes. Translating one of these to an undo command
// would fail on the device (or churn), so UndoCommand returns "" for them.
var autoCleared = []string{
	"port trunk allow-pass",
	"port trunk pvid vlan",
	"port hybrid",
}

// undoRule maps an existing configuration line to the command that reverts
// it. Rules are evaluated in order, first match wins.
type undoRule struct {
	match func(line string, tokens []string) bool
	undo  func(line string, tokens []string) string
}

func prefixRule(prefix, result string) undoRule {
	return undoRule{
		match: func(line string, _ []string) bool { return strings.HasPrefix(line, prefix) },
		undo:  func(string, []string) string { return result },
	}
}

// prefixTokenRule undoes a prefixed line by echoing one of its tokens,
// e.g. "ntp unicast-server 192.0.2.1" -> "undo ntp unicast-server 192.0.2.1".
func prefixTokenRule(prefix string, tokenIndex int) undoRule {
	return undoRule{
		match: func(line string, tokens []string) bool {
			return strings.HasPrefix(line, prefix) && len(tokens) > tokenIndex
		},
		undo: func(_ string, tokens []string) string {
			return "undo " + prefix + " " + tokens[tokenIndex]
		},
	}
}

var undoRules = []undoRule{
	// Port attributes. Changing the link-type is a single fixed undo no
	// matter which mode is active, and the default-vlan undo takes no ID.
	prefixRule("port link-type", "undo port link-type"),
	prefixRule("port default vlan", "undo port default vlan"),
	{
		match: func(line string, _ []string) bool {
			for _, prefix := range autoCleared {
				if strings.HasPrefix(line, prefix) {
					return true
				}
			}
			return false
		},
		undo: func(string, []string) string { return "" },
	},
	{
		// Remaining port attributes undo by dropping the value argument.
		match: func(_ string, tokens []string) bool { return len(tokens) > 1 && tokens[0] == "port" },
		undo: func(_ string, tokens []string) string {
			return "undo " + strings.Join(tokens[:len(tokens)-1], " ")
		},
	},

	// Global system directives.
	prefixRule("ip domain-name", "undo ip domain-name"),
	{
		match: func(line string, _ []string) bool {
			return strings.HasPrefix(line, "dns server ") || strings.HasPrefix(line, "dns ipv6 server ")
		},
		undo: func(line string, _ []string) string { return "undo " + line },
	},
	prefixTokenRule("clock timezone", 2),
	prefixRule("clock daylight-saving-time", "undo clock daylight-saving-time"),

	// NTP. The disable toggles undo verbatim; server entries echo their
	// address or interface argument.
	prefixRule("ntp server disable", "undo ntp server disable"),
	prefixRule("ntp ipv6 server disable", "undo ntp ipv6 server disable"),
	prefixTokenRule("ntp server source-interface", 3),
	prefixTokenRule("ntp unicast-server", 2),

	// Identity and credentials. A single collapsing undo removes the whole
	// per-user entry regardless of which sub-attribute line triggered it.
	prefixTokenRule("ssh user", 2),
	prefixTokenRule("rsa peer-public-key", 2),
	prefixTokenRule("local-user", 1),

	// STP.
	prefixRule("stp edged-port enable", "undo stp edged-port"),
	prefixRule("stp bpdu-protection", "undo stp bpdu-protection"),
}

// UndoCommand returns the CLI command that reverts an existing configuration
// line, or "" when the device clears the attribute automatically. Unknown
// lines fall back to "undo <first token>".
func UndoCommand(existing string) string {
	line := strings.TrimSpace(existing)
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ""
	}

	for _, rule := range undoRules {
		if rule.match(line, tokens) {
			return rule.undo(line, tokens)
		}
	}
	return "undo " + tokens[0]
}
