package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/audit"
	"github.com/vrpctl/vrpctl/pkg/cli"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View audit logs",
	Long: `View audit logs of configuration changes.

All reconciliation runs are logged with timestamp, user, device,
operation, the planned commands, and success/failure status.

Examples:
  vrpctl audit list --device access-sw-01
  vrpctl audit list --last 24h
  vrpctl audit list --failures`,
}

var (
	auditDevice    string
	auditUser      string
	auditOperation string
	auditLast      string
	auditLimit     int
	auditFailures  bool
)

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := audit.Filter{
			Device:      auditDevice,
			User:        auditUser,
			Operation:   auditOperation,
			Limit:       auditLimit,
			FailureOnly: auditFailures,
		}

		if auditLast != "" {
			duration, err := time.ParseDuration(auditLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", auditLast)
			}
			filter.StartTime = time.Now().Add(-duration)
		}

		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(events)
		}

		if len(events) == 0 {
			fmt.Println("No audit events found")
			return nil
		}

		t := cli.NewTable(os.Stdout, "TIMESTAMP", "USER", "DEVICE", "OPERATION", "CHANGED", "STATUS")
		for _, event := range events {
			status := cli.Green("ok")
			if !event.Success {
				status = cli.Red("failed")
			} else if event.DryRun {
				status = cli.Yellow("dry-run")
			}
			t.Row(
				event.Timestamp.Format("2006-01-02 15:04:05"),
				event.User,
				event.Device,
				event.Operation,
				strconv.FormatBool(event.Changed),
				status)
		}
		t.Flush()
		return nil
	},
}

func init() {
	f := auditListCmd.Flags()
	f.StringVar(&auditDevice, "device-filter", "", "Filter by device")
	f.StringVar(&auditUser, "user", "", "Filter by user")
	f.StringVar(&auditOperation, "operation", "", "Filter by operation")
	f.StringVar(&auditLast, "last", "", "Only events in the last duration, e.g. 24h")
	f.IntVar(&auditLimit, "limit", 50, "Maximum events to show")
	f.BoolVar(&auditFailures, "failures", false, "Only failed runs")

	auditCmd.AddCommand(auditListCmd)
}
