package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/feature"
	"github.com/vrpctl/vrpctl/pkg/reconcile"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local device accounts",
	Long: `Create or remove local AAA accounts, password- or SSH-key-based.

Examples:
  vrpctl -d access-sw-01 user create ops --password s3cret --level 3 --service-type ssh -x
  vrpctl -d access-sw-01 user create automation --ssh-key-file ~/.ssh/id_rsa.pub --level 3 -x
  vrpctl -d access-sw-01 user delete olduser -x`,
}

var (
	userPassword   string
	userSSHKey     string
	userSSHKeyFile string
	userLevel      int
	userService    string
)

var userCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Converge a local account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := userSSHKey
		if userSSHKeyFile != "" {
			if key != "" {
				return fmt.Errorf("--ssh-key and --ssh-key-file are mutually exclusive")
			}
			data, err := os.ReadFile(userSSHKeyFile)
			if err != nil {
				return fmt.Errorf("reading SSH key: %w", err)
			}
			key = string(data)
		}

		params := feature.UserParams{
			Name:        args[0],
			Password:    userPassword,
			SSHKey:      key,
			Level:       userLevel,
			ServiceType: userService,
		}
		return withReconciler("user.ensure", func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.EnsureUser(ctx, params, saveWhenFlag())
		})
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a local account, its SSH bindings, and its key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withReconciler("user.remove", func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.RemoveUser(ctx, args[0], saveWhenFlag())
		})
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userPassword, "password", "", "Account password (ignored when a key is given)")
	f.StringVar(&userSSHKey, "ssh-key", "", "OpenSSH public key text")
	f.StringVar(&userSSHKeyFile, "ssh-key-file", "", "Path to an OpenSSH public key")
	f.IntVar(&userLevel, "level", -1, "Privilege level 0-15 (-1 leaves it unmanaged)")
	f.StringVar(&userService, "service-type", "", "Service type: ssh, telnet")

	userCmd.AddCommand(userCreateCmd, userDeleteCmd)
}
