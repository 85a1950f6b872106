package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/cli"
	"github.com/vrpctl/vrpctl/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.vrpctl/settings.json.

Settings provide defaults for context flags:
  - default_device: Used when -d is not specified
  - inventory:      Device inventory file (--inventory default)
  - backup_dir:     Where configuration snapshots are written
  - audit_log:      Audit log path

Examples:
  vrpctl settings show
  vrpctl settings set device access-sw-01
  vrpctl settings set inventory /etc/vrpctl/devices.yaml
  vrpctl settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable(os.Stdout, "SETTING", "VALUE")
		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}
		printSetting("default_device", s.DefaultDevice)
		printSetting("inventory", s.InventoryPath)
		printSetting("backup_dir", s.BackupDir)
		printSetting("audit_log", s.AuditLog)
		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  device     - Default device name (-d flag default)
  inventory  - Device inventory file (--inventory flag default)
  backup_dir - Backup directory
  audit_log  - Audit log path

Examples:
  vrpctl settings set device access-sw-01
  vrpctl settings set inventory /etc/vrpctl/devices.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, value := args[0], args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "device", "default_device":
			s.DefaultDevice = value
			fmt.Printf("Default device set to: %s\n", value)
		case "inventory", "inventory_path":
			s.InventoryPath = value
			fmt.Printf("Inventory path set to: %s\n", value)
		case "backup_dir":
			s.BackupDir = value
			fmt.Printf("Backup directory set to: %s\n", value)
		case "audit_log":
			s.AuditLog = value
			fmt.Printf("Audit log set to: %s\n", value)
		default:
			return fmt.Errorf("unknown setting: %s (valid: device, inventory, backup_dir, audit_log)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset all settings to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		s.Clear()
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("Settings cleared")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsClearCmd)
}
