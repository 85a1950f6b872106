package config

import "strings"

// LocateBlock finds the half-open index range [start, end) of the children
// of parents[0] in the running configuration. The parent line is matched
// exactly (not normalized) against the raw text; children are the maximal
// run of immediately following lines with leading whitespace.
//
// Empty parents means the whole file is the block: (0, len(running)).
// A missing parent returns (-1, -1), which callers treat as "block is
// currently empty" so first-time creation works.
//
// Only parents[0] participates in the lookup. Deeper path elements are
// accepted but ignored; see Locator for the stricter opt-in behavior.
func LocateBlock(running []Line, parents []string) (int, int) {
	return Locator{}.Locate(running, parents)
}

// Locator controls block lookup behavior.
type Locator struct {
	// MultiLevel refines the lookup with parents beyond the first element,
	// matching each deeper parent inside the previous block. Devices rarely
	// have duplicate first-level context names, so the default is the
	// single-level lookup; set MultiLevel when reconciling nested contexts
	// like "bgp 65000" -> "ipv4-family unicast".
	MultiLevel bool
}

// Locate implements the lookup described on LocateBlock.
func (l Locator) Locate(running []Line, parents []string) (int, int) {
	if len(parents) == 0 {
		return 0, len(running)
	}

	start, end := findChild(running, 0, len(running), parents[0], exactMatch)
	if start < 0 || !l.MultiLevel {
		return start, end
	}

	for _, parent := range parents[1:] {
		start, end = findChild(running, start+1, end, parent, trimmedMatch)
		if start < 0 {
			return -1, -1
		}
	}
	return start, end
}

// findChild scans running[from:to] for a line matching parent and returns
// the index range covering the match and its indented children.
func findChild(running []Line, from, to int, parent string, match func(raw, want string) bool) (int, int) {
	for i := from; i < to; i++ {
		if !match(running[i].Raw, parent) {
			continue
		}
		indent := leadingSpaces(running[i].Raw)
		end := i + 1
		for end < to && leadingSpaces(running[end].Raw) > indent {
			end++
		}
		return i, end
	}
	return -1, -1
}

func exactMatch(raw, want string) bool {
	return raw == want
}

// trimmedMatch ignores indentation; nested parents are supplied without
// their on-device leading spaces.
func trimmedMatch(raw, want string) bool {
	return strings.TrimSpace(raw) == want
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

// BlockChildren extracts the child lines for a located block. For the
// whole-file block (empty parents) every line is a child; otherwise the
// parent line itself is excluded.
func BlockChildren(running []Line, parents []string, start, end int) []Line {
	if start < 0 {
		return nil
	}
	if len(parents) == 0 {
		return running[start:end]
	}
	return running[start+1 : end]
}
