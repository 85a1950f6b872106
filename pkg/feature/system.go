package feature

import "github.com/vrpctl/vrpctl/pkg/util"

// SystemParams describes global name-resolution settings.
type SystemParams struct {
	DomainName   string
	DNSServers   []string
	DNSServersV6 []string
}

// Validate requires at least one managed attribute.
func (p *SystemParams) Validate() error {
	var v util.ValidationBuilder
	v.Add(p.DomainName != "" || len(p.DNSServers) > 0 || len(p.DNSServersV6) > 0,
		"at least one of domain name, DNS server, or IPv6 DNS server is required")
	return v.Build()
}

// Lines builds the desired global configuration lines. Removal is handled
// by the diff engine's absent state, which translates each line to its undo
// form.
func (p *SystemParams) Lines() []string {
	var lines []string
	if p.DomainName != "" {
		lines = append(lines, "ip domain-name "+p.DomainName)
	}
	for _, ip := range p.DNSServers {
		lines = append(lines, "dns server "+ip)
	}
	for _, ip := range p.DNSServersV6 {
		lines = append(lines, "dns ipv6 server "+ip)
	}
	return lines
}
