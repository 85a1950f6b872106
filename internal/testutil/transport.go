// Package testutil provides shared test doubles.
package testutil

import (
	"context"
	"strings"

	"github.com/vrpctl/vrpctl/pkg/config"
)

// FakeTransport implements device.Transport in memory. Each batch is
// recorded; responses come from Outputs (keyed by command text), falling
// back to Running for the running-config read and to Script entries that
// are consumed one per batch.
type FakeTransport struct {
	// Running is returned for "display current-configuration".
	Running string
	// Outputs maps command text to a canned response.
	Outputs map[string]string
	// Script supplies whole-batch responses, consumed in order. When a
	// batch has a scripted entry it wins over per-command lookup.
	Script [][]string
	// Err, when set, fails every batch.
	Err error

	// Sent records every batch passed to RunCommands.
	Sent [][]config.Command
}

func (f *FakeTransport) RunCommands(_ context.Context, cmds []config.Command) ([]string, error) {
	f.Sent = append(f.Sent, cmds)
	if f.Err != nil {
		return nil, f.Err
	}

	if len(f.Script) > 0 {
		batch := f.Script[0]
		f.Script = f.Script[1:]
		return batch, nil
	}

	out := make([]string, len(cmds))
	for i, cmd := range cmds {
		switch {
		case f.Outputs[cmd.Text] != "":
			out[i] = f.Outputs[cmd.Text]
		case strings.HasPrefix(cmd.Text, "display current-configuration"):
			out[i] = f.Running
		}
	}
	return out, nil
}

// SentTexts flattens every recorded batch into plain command strings.
func (f *FakeTransport) SentTexts() []string {
	var texts []string
	for _, batch := range f.Sent {
		for _, cmd := range batch {
			texts = append(texts, cmd.Text)
		}
	}
	return texts
}
