// Package feature translates declarative parameter sets into the ordered
// configuration lines a VRP device expects. Builders are pure: they do no
// diffing and no I/O, and their output order encodes dependency order (the
// diff engine replays it verbatim).
package feature

import (
	"fmt"

	"github.com/vrpctl/vrpctl/pkg/util"
)

// PortMode is the layer-2 operating mode of a switchport.
type PortMode string

const (
	ModeAccess PortMode = "access"
	ModeTrunk  PortMode = "trunk"
	ModeHybrid PortMode = "hybrid"
)

// AdminState is the administrative state of an interface.
type AdminState string

const (
	AdminUp   AdminState = "up"
	AdminDown AdminState = "down"
)

// InterfaceParams describes the desired state of a switchport, layer 1 and
// layer 2. Zero values mean "leave unmanaged" except Description, where a
// non-nil empty string removes the description.
type InterfaceParams struct {
	Name        string
	Description *string
	AdminState  AdminState
	Speed       string
	MTU         int
	PortMode    PortMode
	AccessVLAN  int
	TrunkVLANs  string // range spec, e.g. "10-20,55"
	NativeVLAN  int
	STPEdged    bool
}

// Validate rejects unsupported parameter combinations before any device
// interaction.
func (p *InterfaceParams) Validate() error {
	var v util.ValidationBuilder
	v.Add(p.Name != "", "interface name is required")

	switch p.PortMode {
	case ModeAccess:
		v.Add(p.TrunkVLANs == "", "'trunk-vlans' is not allowed in access mode")
		v.Add(p.NativeVLAN == 0, "'native-vlan' is not allowed in access mode")
	case ModeTrunk, ModeHybrid:
		v.Add(p.AccessVLAN == 0, "'vlan' can only be used when port mode is 'access'")
	case "":
	default:
		v.AddErrorf("unknown port mode %q", p.PortMode)
	}

	if p.STPEdged && p.PortMode != ModeAccess {
		v.AddErrorf("'stp-edged' is only supported when port mode is 'access'")
	}
	if p.AccessVLAN != 0 {
		if err := util.ValidateVLANID(p.AccessVLAN); err != nil {
			v.AddErrorf("%v", err)
		}
	}
	if p.NativeVLAN != 0 {
		if err := util.ValidateVLANID(p.NativeVLAN); err != nil {
			v.AddErrorf("%v", err)
		}
	}
	if p.TrunkVLANs != "" {
		if _, err := util.ExpandVLANRange(p.TrunkVLANs); err != nil {
			v.AddErrorf("invalid trunk VLAN list: %v", err)
		}
	}
	switch p.AdminState {
	case "", AdminUp, AdminDown:
	default:
		v.AddErrorf("admin state must be 'up' or 'down', got %q", p.AdminState)
	}
	return v.Build()
}

// Parent returns the configuration context line for this interface.
func (p *InterfaceParams) Parent() string {
	return "interface " + p.Name
}

// Lines builds the desired child lines in dependency order: description and
// layer-1 properties first, then the link-type before any VLAN assignment
// that requires it, STP tuning, and the admin state last.
func (p *InterfaceParams) Lines() ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var lines []string
	if p.Description != nil {
		if *p.Description == "" {
			lines = append(lines, "undo description")
		} else {
			lines = append(lines, "description "+*p.Description)
		}
	}
	if p.Speed != "" {
		lines = append(lines, "speed "+p.Speed)
	}
	if p.MTU > 0 {
		lines = append(lines, fmt.Sprintf("mtu %d", p.MTU))
	}

	switch p.PortMode {
	case ModeAccess:
		lines = append(lines, "port link-type access")
		if p.AccessVLAN > 0 {
			lines = append(lines, fmt.Sprintf("port default vlan %d", p.AccessVLAN))
		}
	case ModeTrunk:
		lines = append(lines, "port link-type trunk")
		if p.TrunkVLANs != "" {
			list, err := util.FormatVLANList(p.TrunkVLANs)
			if err != nil {
				return nil, err
			}
			lines = append(lines, "port trunk allow-pass vlan "+list)
		}
		if p.NativeVLAN > 0 {
			lines = append(lines, fmt.Sprintf("port trunk pvid vlan %d", p.NativeVLAN))
		}
	case ModeHybrid:
		lines = append(lines, "port link-type hybrid")
		if p.TrunkVLANs != "" {
			list, err := util.FormatVLANList(p.TrunkVLANs)
			if err != nil {
				return nil, err
			}
			lines = append(lines, "port hybrid tagged vlan "+list)
		}
		if p.NativeVLAN > 0 {
			lines = append(lines, fmt.Sprintf("port hybrid pvid vlan %d", p.NativeVLAN))
		}
	}

	if p.STPEdged {
		lines = append(lines, "stp edged-port enable")
	}

	switch p.AdminState {
	case AdminUp:
		lines = append(lines, "undo shutdown")
	case AdminDown:
		lines = append(lines, "shutdown")
	}
	return lines, nil
}

// ResetLines is the desired body for an interface being reset to factory
// defaults: everything is removed by replace semantics and the port is shut.
func ResetLines() []string {
	return []string{"shutdown"}
}
