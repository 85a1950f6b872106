package feature

import (
	"fmt"
	"strings"

	"github.com/vrpctl/vrpctl/pkg/util"
)

// UserParams describes a local AAA account, either password-based or
// authenticated via an RSA public key. Level -1 leaves the privilege level
// unmanaged.
type UserParams struct {
	Name        string
	Password    string
	SSHKey      string // OpenSSH format public key
	Level       int
	ServiceType string // "ssh" or "telnet"
}

// Validate rejects incomplete or conflicting account definitions.
func (p *UserParams) Validate() error {
	var v util.ValidationBuilder
	v.Add(p.Name != "", "user name is required")
	v.Add(p.Level <= 15, fmt.Sprintf("privilege level %d out of range", p.Level))
	switch p.ServiceType {
	case "", "ssh", "telnet":
	default:
		v.AddErrorf("service type must be 'ssh' or 'telnet', got %q", p.ServiceType)
	}
	if p.SSHKey == "" && p.Password == "" {
		v.AddErrorf("either a password or an SSH key is required")
	}
	return v.Build()
}

// KeyBased reports whether the account authenticates with an RSA key.
// When a key is present the password is ignored, matching device behavior.
func (p *UserParams) KeyBased() bool {
	return p.SSHKey != ""
}

// AAALines builds the account's child lines under the "aaa" context.
func (p *UserParams) AAALines() []string {
	var lines []string
	if !p.KeyBased() && p.Password != "" {
		lines = append(lines, fmt.Sprintf("local-user %s password irreversible-cipher %s", p.Name, p.Password))
	}
	if p.Level >= 0 {
		lines = append(lines, fmt.Sprintf("local-user %s privilege level %d", p.Name, p.Level))
	}
	if p.ServiceType != "" {
		lines = append(lines, fmt.Sprintf("local-user %s service-type %s", p.Name, p.ServiceType))
	}
	return lines
}

// PublicKeyParent is the global context line that owns the imported key.
func (p *UserParams) PublicKeyParent() string {
	return fmt.Sprintf("rsa peer-public-key %s encoding-type openssh", p.Name)
}

// KeyImportLines is the raw command sequence that imports the OpenSSH key.
// The key import dialog is not diffable; it runs only when the peer-public-key
// entry was newly created.
func (p *UserParams) KeyImportLines() []string {
	return []string{
		"system-view",
		p.PublicKeyParent(),
		"public-key-code begin",
		strings.TrimSpace(p.SSHKey),
		"public-key-code end",
		"peer-public-key end",
		"return",
	}
}

// SSHUserLines binds the imported key to the SSH user, globally.
func (p *UserParams) SSHUserLines() []string {
	return []string{
		fmt.Sprintf("ssh user %s authentication-type rsa", p.Name),
		fmt.Sprintf("ssh user %s assign rsa-key %s", p.Name, p.Name),
		fmt.Sprintf("ssh user %s service-type stelnet", p.Name),
	}
}

// SystemPrefixes identify the account's global configuration lines (SSH
// user bindings and the imported key) for removal. Any running line with
// one of these prefixes collapses into a single undo per prefix.
func (p *UserParams) SystemPrefixes() []string {
	return []string{
		"ssh user " + p.Name,
		"rsa peer-public-key " + p.Name,
	}
}

// AAAPrefix identifies the account's entry lines under the "aaa" context.
func (p *UserParams) AAAPrefix() string {
	return "local-user " + p.Name
}
