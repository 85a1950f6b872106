package config

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// vlanListPrefixes are line prefixes whose trailing VLAN token list is
// order-insensitive on the device. Normalize sorts the tokens so that
// differently authored lists compare equal.
var vlanListPrefixes = []string{
	"port trunk allow-pass vlan ",
	"port hybrid tagged vlan ",
}

var (
	// En and em dashes occasionally show up in configs pasted from
	// documents. Plain hyphens carry meaning (VLAN ranges) and stay.
	exoticDashes = strings.NewReplacer("–", " ", "—", " ")

	hyphenSpacing = regexp.MustCompile(`\s*-\s*`)
)

// Normalize canonicalizes a configuration line for equality comparison.
// It is total (never fails) and idempotent.
func Normalize(line string) string {
	s := strings.TrimSpace(line)
	s = exoticDashes.Replace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " to ", "-")
	s = hyphenSpacing.ReplaceAllString(s, "-")

	for _, prefix := range vlanListPrefixes {
		if strings.HasPrefix(s, prefix) {
			return prefix + sortVLANTokens(s[len(prefix):])
		}
	}
	return s
}

// sortVLANTokens orders a VLAN token list numerically by each token's
// starting value. A token is either a bare ID or a "start-end" range.
// Unparseable tokens sort last and keep their relative order, so the
// function stays total on malformed input.
func sortVLANTokens(list string) string {
	tokens := strings.Fields(list)
	sort.SliceStable(tokens, func(i, j int) bool {
		return vlanTokenStart(tokens[i]) < vlanTokenStart(tokens[j])
	})
	return strings.Join(tokens, " ")
}

func vlanTokenStart(tok string) int {
	base := tok
	if i := strings.IndexByte(tok, '-'); i > 0 {
		base = tok[:i]
	}
	n, err := strconv.Atoi(base)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
