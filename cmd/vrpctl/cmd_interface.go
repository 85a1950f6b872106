package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/feature"
	"github.com/vrpctl/vrpctl/pkg/reconcile"
)

var interfaceCmd = &cobra.Command{
	Use:     "interface",
	Aliases: []string{"if"},
	Short:   "Configure switchports",
	Long: `Configure Huawei VRP switchports (L1 and L2) idempotently.

Requires -d (device) flag.

Examples:
  vrpctl -d access-sw-01 interface configure GE1/0/14 --mode access --vlan 20 --description "Client" --admin up
  vrpctl -d access-sw-01 interface configure GE1/0/30 --mode trunk --trunk-vlans 10-20,55 --native-vlan 55 -x
  vrpctl -d access-sw-01 interface reset GE1/0/31 -x`,
}

var (
	ifMode        string
	ifVLAN        int
	ifTrunkVLANs  string
	ifNativeVLAN  int
	ifDescription string
	ifAdmin       string
	ifSpeed       string
	ifMTU         int
	ifSTPEdged    bool
)

var interfaceConfigureCmd = &cobra.Command{
	Use:   "configure <name>",
	Short: "Converge a switchport to the declared parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := feature.InterfaceParams{
			Name:       args[0],
			PortMode:   feature.PortMode(ifMode),
			AccessVLAN: ifVLAN,
			TrunkVLANs: ifTrunkVLANs,
			NativeVLAN: ifNativeVLAN,
			Speed:      ifSpeed,
			MTU:        ifMTU,
			STPEdged:   ifSTPEdged,
		}
		if cmd.Flags().Changed("description") {
			params.Description = &ifDescription
		}
		switch ifAdmin {
		case "up":
			params.AdminState = feature.AdminUp
		case "down":
			params.AdminState = feature.AdminDown
		case "":
		default:
			return fmt.Errorf("invalid --admin %q (up, down)", ifAdmin)
		}

		req, err := reconcile.InterfaceRequest(params, saveWhenFlag())
		if err != nil {
			return err
		}
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

var interfaceResetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Strip a switchport back to a shut-down default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := reconcile.ResetInterfaceRequest(args[0], saveWhenFlag())
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

func init() {
	f := interfaceConfigureCmd.Flags()
	f.StringVar(&ifMode, "mode", "", "Port mode: access, trunk, hybrid")
	f.IntVar(&ifVLAN, "vlan", 0, "Access VLAN ID")
	f.StringVar(&ifTrunkVLANs, "trunk-vlans", "", "Trunk/hybrid VLAN list, e.g. 10-20,55")
	f.IntVar(&ifNativeVLAN, "native-vlan", 0, "Native VLAN (PVID) for trunk/hybrid ports")
	f.StringVar(&ifDescription, "description", "", "Interface description (empty removes it)")
	f.StringVar(&ifAdmin, "admin", "", "Administrative state: up, down")
	f.StringVar(&ifSpeed, "speed", "", "Fixed speed, e.g. 1000")
	f.IntVar(&ifMTU, "mtu", 0, "MTU in bytes")
	f.BoolVar(&ifSTPEdged, "stp-edged", false, "Enable STP edge-port mode (access only)")

	interfaceCmd.AddCommand(interfaceConfigureCmd, interfaceResetCmd)
}
