package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"time"

	"golang.org/x/term"

	"github.com/vrpctl/vrpctl/pkg/audit"
	"github.com/vrpctl/vrpctl/pkg/cli"
	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/device"
	"github.com/vrpctl/vrpctl/pkg/inventory"
	"github.com/vrpctl/vrpctl/pkg/reconcile"
)

// connect resolves the selected device from the inventory and opens an SSH
// shell to it. A device with no password in the inventory prompts on the
// terminal.
func connect(ctx context.Context) (*device.SSHTransport, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("device required: use -d <device> flag")
	}

	inv, err := inventory.Load(inventoryPath)
	if err != nil {
		return nil, err
	}
	dev, err := inv.Device(deviceName)
	if err != nil {
		return nil, err
	}

	password := dev.Password
	if password == "" {
		fmt.Fprintf(os.Stderr, "Password for %s@%s: ", dev.Username, dev.Host)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}

	return device.DialSSH(device.SSHConfig{
		Host:     dev.Host,
		Port:     dev.Port,
		Username: dev.Username,
		Password: password,
		Timeout:  time.Duration(dev.Timeout),
	})
}

// withReconciler runs one reconciliation workflow against the selected
// device and handles output and audit logging uniformly.
func withReconciler(operation string, fn func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error)) error {
	ctx := context.Background()

	tr, err := connect(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	r := reconcile.New(tr, deviceName)
	r.Execute = executeMode

	start := time.Now()
	res, err := fn(ctx, r)

	event := audit.NewEvent(currentUser(), deviceName, operation).
		WithExecuteMode(executeMode).
		WithDuration(time.Since(start))
	if res != nil {
		event.WithChanged(res.Changed).WithCommands(config.Texts(res.Commands))
	}
	if err != nil {
		event.WithError(err)
	} else {
		event.WithSuccess()
	}
	audit.Log(event)

	if err != nil {
		return err
	}
	return printResult(res)
}

func printResult(res *reconcile.Result) error {
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	if !res.Changed {
		fmt.Println("No changes required")
		return nil
	}

	fmt.Println("Commands:")
	for _, cmd := range res.Commands {
		if cmd.Interactive() {
			fmt.Printf("  %s  (confirm: %s)\n", cmd.Text, cmd.Answer)
		} else {
			fmt.Printf("  %s\n", cmd.Text)
		}
	}

	if executeMode {
		fmt.Println(cli.Green(fmt.Sprintf("Applied %d commands to %s", len(res.Commands), deviceName)))
	} else {
		fmt.Println(cli.Yellow("Dry run - use -x to execute"))
	}
	return nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

// saveWhenFlag parses the global --save-when value.
func saveWhenFlag() config.SaveWhen {
	return config.SaveWhen(saveWhen)
}
