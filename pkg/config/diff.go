package config

import (
	"sort"
	"strings"
)

// State selects the reconciliation semantics for a diff.
type State string

const (
	// StatePresent ensures candidate lines exist; extra lines are ignored.
	StatePresent State = "present"
	// StateAbsent ensures candidate lines are removed; extras are ignored.
	StateAbsent State = "absent"
	// StateReplace makes the block exactly the candidates plus the keep
	// set; everything else is removed.
	StateReplace State = "replace"
)

// Diff compares the desired candidate lines against the located parent block
// and returns the CLI commands that converge the device. The result is
// deterministic: removals are ordered by normalized form, additions keep
// candidate authoring order (which encodes dependency order, e.g. link-type
// before default-vlan).
func Diff(running []Line, parents []string, candidates []string, state State, keep []string) []string {
	start, end := LocateBlock(running, parents)
	children := BlockChildren(running, parents, start, end)
	blockFound := start >= 0

	// normalized child line -> original (whitespace-stripped) text
	existing := make(map[string]string, len(children))
	for _, ln := range children {
		existing[ln.Normalized] = strings.TrimSpace(ln.Raw)
	}

	switch state {
	case StateReplace:
		return diffReplace(existing, candidates, keep, blockFound)
	case StateAbsent:
		var cmds []string
		for _, cand := range candidates {
			orig, ok := existing[Normalize(cand)]
			if !ok {
				continue
			}
			if undo := UndoCommand(orig); undo != "" {
				cmds = append(cmds, undo)
			}
		}
		return cmds
	default: // StatePresent
		return additions(existing, candidates, blockFound)
	}
}

// diffReplace is a two-phase build: removals and additions are collected
// into separate ordered lists and merged in one pass, with the link-type
// undo relocated to the end of the removal phase.
func diffReplace(existing map[string]string, candidates, keep []string, blockFound bool) []string {
	desired := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		desired[Normalize(cand)] = true
	}
	keepSet := make(map[string]bool, len(keep))
	for _, k := range keep {
		keepSet[Normalize(k)] = true
	}

	var removeNorms []string
	for norm := range existing {
		if !desired[norm] && !keepSet[norm] {
			removeNorms = append(removeNorms, norm)
		}
	}
	sort.Strings(removeNorms)

	var undos []string
	for _, norm := range removeNorms {
		if undo := UndoCommand(existing[norm]); undo != "" {
			undos = append(undos, undo)
		}
	}
	undos = relocateLinkTypeUndo(undos)

	return append(undos, additions(existing, candidates, blockFound)...)
}

// additions returns the candidates that are not already present, in
// authoring order. Two device quirks need special handling, both only
// meaningful when the parent block already exists (a freshly created block
// applies every candidate verbatim):
//
//   - "port link-type access" is asserted only when a link-type line with a
//     different mode is present. Re-asserting access on an access port is a
//     no-op the device still reports as a change.
//   - "undo shutdown" is asserted only when "shutdown" is present.
func additions(existing map[string]string, candidates []string, blockFound bool) []string {
	var cmds []string
	for _, cand := range candidates {
		plain := strings.TrimSpace(cand)
		norm := Normalize(plain)
		if _, ok := existing[norm]; ok {
			continue
		}
		if blockFound {
			if norm == "port link-type access" && !hasOtherLinkType(existing) {
				continue
			}
			if norm == "undo shutdown" {
				if _, shut := existing["shutdown"]; !shut {
					continue
				}
			}
		}
		cmds = append(cmds, plain)
	}
	return cmds
}

func hasOtherLinkType(existing map[string]string) bool {
	for norm := range existing {
		if strings.HasPrefix(norm, "port link-type") && norm != "port link-type access" {
			return true
		}
	}
	return false
}

// relocateLinkTypeUndo moves "undo port link-type" behind every other undo
// command. The device auto-clears trunk/hybrid attributes on a mode change;
// removing them first keeps the removal sequence valid in either direction.
func relocateLinkTypeUndo(undos []string) []string {
	const linkTypeUndo = "undo port link-type"

	found := false
	out := undos[:0]
	for _, u := range undos {
		if u == linkTypeUndo {
			found = true
			continue
		}
		out = append(out, u)
	}
	if found {
		out = append(out, linkTypeUndo)
	}
	return out
}
