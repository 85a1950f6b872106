package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/feature"
	"github.com/vrpctl/vrpctl/pkg/reconcile"
)

var vlanCmd = &cobra.Command{
	Use:   "vlan",
	Short: "Manage VLAN objects",
	Long: `Create, rename, or delete VLANs.

Requires -d (device) flag.

Examples:
  vrpctl -d access-sw-01 vlan create 100 --name clients -x
  vrpctl -d access-sw-01 vlan delete 100 -x`,
}

var vlanName string

var vlanCreateCmd = &cobra.Command{
	Use:   "create <vlan-id>",
	Short: "Create a VLAN (optionally named)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return withReconciler("vlan.ensure", func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.EnsureVLAN(ctx, feature.VLANParams{ID: id, Name: vlanName}, saveWhenFlag())
		})
	},
}

var vlanDeleteCmd = &cobra.Command{
	Use:   "delete <vlan-id>",
	Short: "Delete a VLAN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return withReconciler("vlan.remove", func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.RemoveVLAN(ctx, id, saveWhenFlag())
		})
	},
}

func init() {
	vlanCreateCmd.Flags().StringVar(&vlanName, "name", "", "VLAN name")
	vlanCmd.AddCommand(vlanCreateCmd, vlanDeleteCmd)
}
