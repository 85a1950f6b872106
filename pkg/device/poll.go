package device

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/util"
)

// Condition is a parsed wait-for expression of the form
// "result[<index>] contains '<text>'" or "result[<index>] not contains '<text>'".
type Condition struct {
	Index   int
	Text    string
	Negated bool
	raw     string
}

// ParseCondition validates a wait-for expression up front so a malformed
// condition fails before anything is sent to the device.
func ParseCondition(expr string) (Condition, error) {
	head, _, found := strings.Cut(expr, "contains")
	if !found {
		return Condition{}, fmt.Errorf("condition %q: missing 'contains'", expr)
	}

	negated := false
	if i := strings.LastIndex(head, "not"); i >= 0 && strings.TrimSpace(head[i:]) == "not" {
		negated = true
		head = head[:i]
	}

	open := strings.IndexByte(head, '[')
	closing := strings.IndexByte(head, ']')
	if open < 0 || closing < open {
		return Condition{}, fmt.Errorf("condition %q: missing result index", expr)
	}
	idx, err := strconv.Atoi(head[open+1 : closing])
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: bad result index: %v", expr, err)
	}

	_, tail, _ := strings.Cut(expr, "contains")
	text := strings.Trim(strings.TrimSpace(tail), `'"`)
	if text == "" {
		return Condition{}, fmt.Errorf("condition %q: empty match text", expr)
	}

	return Condition{Index: idx, Text: text, Negated: negated, raw: expr}, nil
}

// Met evaluates the condition against a batch of command outputs. An
// out-of-range index never matches.
func (c Condition) Met(outputs []string) bool {
	if c.Index < 0 || c.Index >= len(outputs) {
		return false
	}
	found := strings.Contains(outputs[c.Index], c.Text)
	if c.Negated {
		return !found
	}
	return found
}

// PollOptions bound a Poll run.
type PollOptions struct {
	Conditions []string
	MatchAny   bool // any condition suffices; default is all
	Retries    int
	Interval   time.Duration
}

// Poll re-executes the command batch until the wait conditions hold or the
// retry budget is exhausted. Exhaustion is a failure, not a crash: the last
// outputs are returned alongside the error so callers can report them.
func Poll(ctx context.Context, tr Transport, cmds []config.Command, opts PollOptions) ([]string, error) {
	conds := make([]Condition, 0, len(opts.Conditions))
	for _, expr := range opts.Conditions {
		c, err := ParseCondition(expr)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}

	if opts.Retries <= 0 {
		opts.Retries = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	var outputs []string
	for attempt := 1; attempt <= opts.Retries; attempt++ {
		var err error
		outputs, err = tr.RunCommands(ctx, cmds)
		if err != nil {
			return outputs, err
		}

		if conditionsMet(conds, outputs, opts.MatchAny) {
			return outputs, nil
		}
		util.Debugf("wait conditions not met, attempt %d/%d", attempt, opts.Retries)

		if attempt < opts.Retries {
			select {
			case <-ctx.Done():
				return outputs, ctx.Err()
			case <-time.After(opts.Interval):
			}
		}
	}

	return outputs, fmt.Errorf("%w after %d attempts: %s",
		util.ErrConditionsNotMet, opts.Retries, strings.Join(opts.Conditions, "; "))
}

func conditionsMet(conds []Condition, outputs []string, any bool) bool {
	if len(conds) == 0 {
		return true
	}
	for _, c := range conds {
		met := c.Met(outputs)
		if any && met {
			return true
		}
		if !any && !met {
			return false
		}
	}
	return !any
}
