package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vrpctl/vrpctl/pkg/feature"
	"github.com/vrpctl/vrpctl/pkg/reconcile"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Configure global DNS and domain settings",
	Long: `Configure or remove global name-resolution settings.

Examples:
  vrpctl -d access-sw-01 system set --domain-name corp.example --dns 192.0.2.53 --dns 192.0.2.54 -x
  vrpctl -d access-sw-01 system unset --dns 192.0.2.54 -x`,
}

var (
	sysDomainName string
	sysDNS        []string
	sysDNS6       []string
)

func systemParams() feature.SystemParams {
	return feature.SystemParams{
		DomainName:   sysDomainName,
		DNSServers:   sysDNS,
		DNSServersV6: sysDNS6,
	}
}

var systemSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Ensure the given DNS/domain lines are present",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := reconcile.SystemRequest(systemParams(), saveWhenFlag())
		if err != nil {
			return err
		}
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

var systemUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Remove the given DNS/domain lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := reconcile.RemoveSystemRequest(systemParams(), saveWhenFlag())
		if err != nil {
			return err
		}
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Configure timezone, DST, and NTP",
	Long: `Configure global time settings. Timezone and daylight-saving
defaults are central European; override them per flag.

Examples:
  vrpctl -d access-sw-01 clock set --server 192.0.2.10 -x
  vrpctl -d access-sw-01 clock set --server 192.0.2.10 --source-interface Vlanif10 --timezone UTC --offset 0 --no-dst`,
}

var (
	clockServer    string
	clockSourceIf  string
	clockTimezone  string
	clockOffset    int
	clockNoDST     bool
	clockDSTStart  string
	clockDSTEnd    string
	clockDSTOffset string
)

var clockSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Converge global time configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := feature.DefaultClockParams()
		params.Server = clockServer
		params.SourceInterface = clockSourceIf
		if clockTimezone != "" {
			params.TimezoneName = clockTimezone
		}
		if cmd.Flags().Changed("offset") {
			params.TimezoneOffset = clockOffset
		}
		if clockNoDST {
			params.DSTName = ""
		}
		if clockDSTStart != "" {
			params.DSTStart = clockDSTStart
		}
		if clockDSTEnd != "" {
			params.DSTEnd = clockDSTEnd
		}
		if clockDSTOffset != "" {
			params.DSTOffset = clockDSTOffset
		}

		req, err := reconcile.ClockRequest(params, saveWhenFlag())
		if err != nil {
			return err
		}
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

var stpCmd = &cobra.Command{
	Use:   "stp",
	Short: "Configure global spanning-tree protection",
}

var stpBPDU bool

var stpSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Converge global STP settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := reconcile.STPRequest(feature.STPParams{BPDUProtection: stpBPDU}, saveWhenFlag())
		return withReconciler(req.Operation, func(ctx context.Context, r *reconcile.Reconciler) (*reconcile.Result, error) {
			return r.Apply(ctx, req)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{systemSetCmd, systemUnsetCmd} {
		f := cmd.Flags()
		f.StringVar(&sysDomainName, "domain-name", "", "IP domain name")
		f.StringArrayVar(&sysDNS, "dns", nil, "DNS server (repeatable)")
		f.StringArrayVar(&sysDNS6, "dns6", nil, "IPv6 DNS server (repeatable)")
	}
	systemCmd.AddCommand(systemSetCmd, systemUnsetCmd)

	f := clockSetCmd.Flags()
	f.StringVar(&clockServer, "server", "", "NTP unicast server address")
	f.StringVar(&clockSourceIf, "source-interface", "", "NTP source interface")
	f.StringVar(&clockTimezone, "timezone", "", "Timezone name")
	f.IntVar(&clockOffset, "offset", 0, "Timezone UTC offset in hours")
	f.BoolVar(&clockNoDST, "no-dst", false, "Skip daylight-saving configuration")
	f.StringVar(&clockDSTStart, "dst-start", "", `DST start, "HH:MM YYYY-MM-DD"`)
	f.StringVar(&clockDSTEnd, "dst-end", "", `DST end, "HH:MM YYYY-MM-DD"`)
	f.StringVar(&clockDSTOffset, "dst-offset", "", `DST offset, "HH:MM"`)
	clockCmd.AddCommand(clockSetCmd)

	stpSetCmd.Flags().BoolVar(&stpBPDU, "bpdu-protection", false, "Enable BPDU protection")
	stpCmd.AddCommand(stpSetCmd)
}
