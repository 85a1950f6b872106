// Vrpctl - Huawei VRP Configuration Tool
//
// A CLI tool for idempotent configuration of Huawei VRP switches over SSH:
//   - Declarative per-feature commands (interface, vlan, user, clock, ...)
//   - Diff-based convergence: only the commands a device actually needs
//   - Dry-run by default (preview the command plan, require -x to execute)
//   - Audit logging of all changes
//
//	vrpctl -d <device> <noun> <verb> [args] [-x]
//
// Examples:
//
//	vrpctl -d access-sw-01 interface configure GE1/0/14 --mode access --vlan 20 -x
//	vrpctl -d access-sw-01 vlan create 100 --name clients
//	vrpctl -d access-sw-01 user delete olduser -x --save-when always
//	vrpctl -d access-sw-01 backup
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/audit"
	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/settings"
	"github.com/vrpctl/vrpctl/pkg/util"
	"github.com/vrpctl/vrpctl/pkg/version"
)

var (
	// Global context flags (select the target device)
	deviceName    string // -d, --device
	inventoryPath string // --inventory

	// Global option flags
	executeMode bool   // -x, --execute
	saveWhen    string // --save-when
	verbose     bool   // -v
	jsonOutput  bool   // --json

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "vrpctl",
	Short:             "Huawei VRP Configuration Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Vrpctl converges Huawei VRP switches to a declared configuration.

Write commands preview the command plan by default — use -x to execute.

  vrpctl -d <device> <noun> <verb> [args] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		if !config.SaveWhen(saveWhen).Valid() {
			return fmt.Errorf("invalid --save-when %q (never, changed, always)", saveWhen)
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		if deviceName == "" {
			deviceName = userSettings.DefaultDevice
		}
		if inventoryPath == "" {
			inventoryPath = userSettings.GetInventoryPath()
		}

		// Quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		auditLogger, err := audit.NewFileLogger(userSettings.GetAuditLog(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device name from the inventory")
	rootCmd.PersistentFlags().StringVar(&inventoryPath, "inventory", "", "Device inventory file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "JSON output")

	// Write flags apply to every mutating verb; read-only verbs ignore them.
	rootCmd.PersistentFlags().BoolVarP(&executeMode, "execute", "x", false, "Execute the plan (default is dry-run)")
	rootCmd.PersistentFlags().StringVar(&saveWhen, "save-when", string(config.SaveChanged), "Persist device config: never, changed, always")

	rootCmd.AddGroup(
		&cobra.Group{ID: "feature", Title: "Feature Configuration:"},
		&cobra.Group{ID: "device", Title: "Device Operations:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{
		interfaceCmd, vlanCmd, systemCmd, clockCmd, stpCmd, userCmd,
	} {
		cmd.GroupID = "feature"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{configCmd, backupCmd, runCmd, infoCmd} {
		cmd.GroupID = "device"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{settingsCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

// isSettingsOrHelp reports whether cmd runs without device or audit setup.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "settings", "help", "version", "completion":
			return true
		}
	}
	return false
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("vrpctl dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("vrpctl %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}
