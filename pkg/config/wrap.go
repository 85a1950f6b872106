package config

// SaveWhen controls whether a persistence command is appended to a wrapped
// command sequence.
type SaveWhen string

const (
	SaveNever   SaveWhen = "never"
	SaveChanged SaveWhen = "changed"
	SaveAlways  SaveWhen = "always"
)

// Valid reports whether s is a known save policy.
func (s SaveWhen) Valid() bool {
	switch s {
	case SaveNever, SaveChanged, SaveAlways:
		return true
	}
	return false
}

// saveCommand persists the configuration; the device asks for confirmation.
var saveCommand = Command{Text: "save", Prompt: `\[Y/N\]`, Answer: "Y"}

// Wrap surrounds a command body with the configuration-mode envelope:
// "system-view", the parent context lines verbatim, the body, and one
// "return" per nesting level entered. An empty body returns an empty
// sequence for every save policy; a no-op must never enter the device's
// configuration mode or trigger a save.
func Wrap(parents []string, body []string, save SaveWhen) []Command {
	if len(body) == 0 {
		return nil
	}

	cmds := make([]Command, 0, len(parents)+len(body)+len(parents)+3)
	cmds = append(cmds, Plain("system-view"))
	for _, p := range parents {
		cmds = append(cmds, Plain(p))
	}
	for _, b := range body {
		cmds = append(cmds, WrapPrompt(b))
	}
	for i := 0; i <= len(parents); i++ {
		cmds = append(cmds, Plain("return"))
	}

	return AppendSave(cmds, save, true)
}

// AppendSave appends the confirmation-wrapped save command when the policy
// calls for it. Multi-step workflows wrap their steps with SaveNever and
// append a single save here instead of one per step.
func AppendSave(cmds []Command, save SaveWhen, changed bool) []Command {
	if save == SaveAlways || (save == SaveChanged && changed) {
		return append(cmds, saveCommand)
	}
	return cmds
}
