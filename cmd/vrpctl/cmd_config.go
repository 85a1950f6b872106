package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/device"
	"github.com/vrpctl/vrpctl/pkg/reconcile"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Apply raw configuration lines idempotently",
	Long: `Diff arbitrary configuration lines against a device block and apply
the difference. This is the generic escape hatch for features without a
dedicated command.

Examples:
  vrpctl -d access-sw-01 config apply --parent "interface GE1/0/5" --line "description spare" -x
  vrpctl -d access-sw-01 config apply --line "ip domain-name corp.example" --state absent -x
  vrpctl -d access-sw-01 config apply --parent "vlan 30" --line "name iot" --state replace --keep "description"`,
}

var (
	cfgParents []string
	cfgLines   []string
	cfgState   string
	cfgKeep    []string
)

var configApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge a block to the given lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfgLines) == 0 {
			return fmt.Errorf("at least one --line is required")
		}
		req := reconcile.Request{
			Operation: "config.apply",
			Parents:   cfgParents,
			Lines:     cfgLines,
			State:     config.State(cfgState),
			Keep:      cfgKeep,
			SaveWhen:  saveWhenFlag(),
		}
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

var backupPath string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the running configuration to disk",
	Long: `Fetch the running configuration and write it to a local file. The
write is skipped when the latest snapshot already matches, so repeated
backups of an unchanged device are no-ops.

Examples:
  vrpctl -d access-sw-01 backup
  vrpctl -d access-sw-01 backup --path /tmp/sw01.cfg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tr, err := connect(ctx)
		if err != nil {
			return err
		}
		defer tr.Close()

		r := reconcile.New(tr, deviceName)
		res, err := r.Backup(ctx, reconcile.BackupOptions{
			Path: backupPath,
			Dir:  userSettings.GetBackupDir(),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(res)
		}
		if res.Changed {
			fmt.Printf("Backup written: %s\n", res.Path)
		} else {
			fmt.Printf("Configuration unchanged since %s\n", res.Path)
		}
		return nil
	},
}

var (
	runWaitFor  []string
	runMatchAny bool
	runRetries  int
	runInterval time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <command>...",
	Short: "Run display commands, optionally polling for a condition",
	Long: `Execute one or more read-only commands on the device. With
--wait-for the batch is re-run until the condition holds or the retry
budget is exhausted.

Conditions have the form "result[<index>] contains '<text>'" (or
"not contains"), where index selects the command within the batch.

Examples:
  vrpctl -d access-sw-01 run "display ntp status"
  vrpctl -d access-sw-01 run "display ntp status" --wait-for "result[0] contains 'synchronized'" --retries 10 --interval 5s`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tr, err := connect(ctx)
		if err != nil {
			return err
		}
		defer tr.Close()

		cmds := make([]config.Command, len(args))
		for i, a := range args {
			cmds[i] = config.Plain(a)
		}

		outputs, err := device.Poll(ctx, tr, cmds, device.PollOptions{
			Conditions: runWaitFor,
			MatchAny:   runMatchAny,
			Retries:    runRetries,
			Interval:   runInterval,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(outputs)
		}
		for i, out := range outputs {
			if len(outputs) > 1 {
				fmt.Printf("--- %s\n", args[i])
			}
			fmt.Println(out)
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device model, OS version, and hostname",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tr, err := connect(ctx)
		if err != nil {
			return err
		}
		defer tr.Close()

		info, err := device.FetchInfo(ctx, tr)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(info)
		}
		fmt.Printf("Hostname:   %s\n", info.Hostname)
		fmt.Printf("Model:      %s\n", info.Model)
		fmt.Printf("OS version: %s\n", info.OSVersion)
		return nil
	},
}

func init() {
	f := configApplyCmd.Flags()
	f.StringArrayVar(&cfgParents, "parent", nil, "Parent context line (repeatable for nesting)")
	f.StringArrayVar(&cfgLines, "line", nil, "Desired configuration line (repeatable)")
	f.StringVar(&cfgState, "state", string(config.StatePresent), "Diff semantics: present, absent, replace")
	f.StringArrayVar(&cfgKeep, "keep", nil, "Line to keep during replace (repeatable)")
	configCmd.AddCommand(configApplyCmd)

	backupCmd.Flags().StringVar(&backupPath, "path", "", "Fixed backup file path (default: timestamped under the backup dir)")

	rf := runCmd.Flags()
	rf.StringArrayVar(&runWaitFor, "wait-for", nil, "Condition to wait for (repeatable)")
	rf.BoolVar(&runMatchAny, "match-any", false, "Succeed when any condition holds (default: all)")
	rf.IntVar(&runRetries, "retries", 10, "Maximum attempts")
	rf.DurationVar(&runInterval, "interval", time.Second, "Delay between attempts")
}
