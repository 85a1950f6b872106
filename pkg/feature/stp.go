package feature

// STPParams describes global spanning-tree protection settings.
type STPParams struct {
	BPDUProtection bool
}

// Lines builds the desired global STP lines. For removal, the same lines
// are fed to the diff engine with the absent state.
func (p *STPParams) Lines() []string {
	if !p.BPDUProtection {
		return nil
	}
	return []string{"stp bpdu-protection"}
}
