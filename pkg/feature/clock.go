package feature

import (
	"fmt"

	"github.com/vrpctl/vrpctl/pkg/util"
)

// ClockParams describes NTP, timezone, and daylight-saving settings,
// applied globally.
type ClockParams struct {
	Server          string
	SourceInterface string
	TimezoneName    string
	TimezoneOffset  int
	DSTName         string
	DSTStart        string // "HH:MM YYYY-MM-DD"
	DSTEnd          string
	DSTOffset       string // "HH:MM"
	DisableServer   bool   // disable the built-in IPv4 NTP server
	DisableServerV6 bool
}

// DefaultClockParams returns the conventional central-European defaults.
func DefaultClockParams() ClockParams {
	return ClockParams{
		TimezoneName:    "CET",
		TimezoneOffset:  1,
		DSTName:         "DST",
		DSTStart:        "02:00 2025-03-30",
		DSTEnd:          "03:00 2025-10-26",
		DSTOffset:       "01:00",
		DisableServer:   true,
		DisableServerV6: true,
	}
}

// Validate requires an NTP server address.
func (p *ClockParams) Validate() error {
	var v util.ValidationBuilder
	v.Add(p.Server != "", "NTP server address is required")
	v.Add(p.TimezoneName != "", "timezone name is required")
	return v.Build()
}

// Lines builds the desired global time configuration.
func (p *ClockParams) Lines() []string {
	lines := []string{
		fmt.Sprintf("clock timezone %s add %d", p.TimezoneName, p.TimezoneOffset),
	}
	if p.DSTName != "" {
		lines = append(lines, fmt.Sprintf("clock daylight-saving-time %s one-year %s %s %s",
			p.DSTName, p.DSTStart, p.DSTEnd, p.DSTOffset))
	}
	lines = append(lines, "ntp unicast-server "+p.Server)
	if p.DisableServer {
		lines = append(lines, "ntp server disable")
	}
	if p.DisableServerV6 {
		lines = append(lines, "ntp ipv6 server disable")
	}
	if p.SourceInterface != "" {
		lines = append(lines, "ntp server source-interface "+p.SourceInterface)
	}
	return lines
}
