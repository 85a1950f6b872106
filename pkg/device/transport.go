// Package device talks to VRP devices over an interactive SSH shell. It
// owns session handling, prompt detection, and interactive confirmations;
// the diff engine never touches the wire.
package device

import (
	"context"

	"github.com/vrpctl/vrpctl/pkg/config"
)

// Transport executes a command batch against a device and returns one raw
// response per command, in order. Implementations handle the session,
// interactive prompts, and connection errors; a failure aborts the batch
// and the device may be left mid-way through it.
type Transport interface {
	RunCommands(ctx context.Context, cmds []config.Command) ([]string, error)
}

// runningConfigCommand retrieves the full device configuration.
const runningConfigCommand = "display current-configuration"

// FetchRunningConfig reads the device's running configuration as raw text.
func FetchRunningConfig(ctx context.Context, tr Transport) (string, error) {
	out, err := tr.RunCommands(ctx, []config.Command{config.Plain(runningConfigCommand)})
	if err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", nil
	}
	return out[0], nil
}
