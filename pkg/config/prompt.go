package config

import "strings"

// PromptRule marks commands that the device answers with an interactive
// confirmation. A rule matches on a command prefix or substring; the first
// matching rule wins.
type PromptRule struct {
	Prefix   string
	Contains string
	Prompt   string
	Answer   string
}

func (r PromptRule) matches(text string) bool {
	if r.Prefix != "" {
		return text == strings.TrimSuffix(r.Prefix, " ") || strings.HasPrefix(text, r.Prefix)
	}
	return r.Contains != "" && strings.Contains(text, r.Contains)
}

// DefaultPromptRules covers the confirmations VRP is known to demand:
// persistence, destructive key and user operations, and generic
// continue/overwrite questions.
var DefaultPromptRules = []PromptRule{
	{Prefix: "save ", Prompt: `\[Y/N\]`, Answer: "Y"},
	{Prefix: "undo rsa peer-public-key ", Prompt: `\[Y/N\]:`, Answer: "y"},
	{Prefix: "undo local-user ", Prompt: `\[Y/N\]:`, Answer: "y"},
	{Contains: "privilege level", Prompt: `[Yy]/[Nn]`, Answer: "y"},
	{Contains: "overwrite", Prompt: `\[Y/N\]`, Answer: "y"},
}

// WrapPrompt converts a plain command string into an interactive command
// when it matches a prompt rule, and passes it through unchanged otherwise.
func WrapPrompt(text string) Command {
	return WrapPromptWith(text, DefaultPromptRules)
}

// WrapPromptWith applies a caller-supplied rule set.
func WrapPromptWith(text string, rules []PromptRule) Command {
	for _, r := range rules {
		if r.matches(text) {
			return Command{Text: text, Prompt: r.Prompt, Answer: r.Answer}
		}
	}
	return Plain(text)
}
