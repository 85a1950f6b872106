package feature

import (
	"fmt"

	"github.com/vrpctl/vrpctl/pkg/util"
)

// VLANParams describes a VLAN object. Only the name is configurable inside
// the vlan block so far.
type VLANParams struct {
	ID   int
	Name string
}

// Validate checks the VLAN ID range.
func (p *VLANParams) Validate() error {
	return util.ValidateVLANID(p.ID)
}

// Parent returns the configuration context line for this VLAN.
func (p *VLANParams) Parent() string {
	return fmt.Sprintf("vlan %d", p.ID)
}

// Lines builds the desired child lines of the vlan block.
func (p *VLANParams) Lines() []string {
	if p.Name == "" {
		return nil
	}
	return []string{"name " + p.Name}
}

// DeleteCommand returns the global command that removes the VLAN. VRP
// deletes VLANs from the top level, not from inside the vlan block.
func (p *VLANParams) DeleteCommand() string {
	return fmt.Sprintf("undo vlan %d", p.ID)
}
