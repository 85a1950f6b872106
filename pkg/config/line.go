// Package config implements the configuration diff engine for Huawei VRP
// devices: it compares the device's running configuration against a desired
// set of lines and produces the minimal, correctly ordered CLI command
// sequence that converges the device, including device-specific "undo"
// semantics.
//
// All functions in this package are pure; fetching the running configuration
// and executing commands is the transport's job (see pkg/device).
package config

import "strings"

// Line is a single line of device configuration as returned by
// "display current-configuration". Raw keeps the original leading
// whitespace, which encodes nesting depth.
type Line struct {
	Raw        string
	Normalized string
	Keyword    string // first token, used as the undo anchor
}

// NewLine derives the comparison forms from a raw configuration line.
func NewLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	keyword := ""
	if fields := strings.Fields(trimmed); len(fields) > 0 {
		keyword = fields[0]
	}
	return Line{
		Raw:        raw,
		Normalized: Normalize(raw),
		Keyword:    keyword,
	}
}

// ParseRunning splits raw "display current-configuration" output into lines.
// Blank lines are kept so that block boundaries match device output exactly.
func ParseRunning(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(strings.TrimRight(text, "\n"), "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = NewLine(r)
	}
	return lines
}

// Command is a single CLI command. Prompt, when set, is a regular expression
// matching the interactive confirmation the device prints before applying;
// Answer is sent in response.
type Command struct {
	Text   string `json:"command"`
	Prompt string `json:"prompt,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// Plain wraps a command string without interactive handling.
func Plain(text string) Command {
	return Command{Text: text}
}

// Interactive reports whether the command expects a confirmation prompt.
func (c Command) Interactive() bool {
	return c.Prompt != ""
}

// Texts extracts the plain command strings from a command sequence.
func Texts(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Text
	}
	return out
}
