package feature

import (
	"reflect"
	"testing"
)

func TestVLANParams(t *testing.T) {
	p := VLANParams{ID: 100, Name: "clients"}

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := p.Parent(); got != "vlan 100" {
		t.Errorf("Parent() = %q", got)
	}
	if got := p.Lines(); !reflect.DeepEqual(got, []string{"name clients"}) {
		t.Errorf("Lines() = %v", got)
	}
	if got := p.DeleteCommand(); got != "undo vlan 100" {
		t.Errorf("DeleteCommand() = %q", got)
	}

	unnamed := VLANParams{ID: 200}
	if got := unnamed.Lines(); got != nil {
		t.Errorf("unnamed VLAN Lines() = %v, want nil", got)
	}

	bad := VLANParams{ID: 0}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for VLAN 0")
	}
}

func TestSystemParams_Lines(t *testing.T) {
	p := SystemParams{
		DomainName:   "corp.example",
		DNSServers:   []string{"192.0.2.53", "192.0.2.54"},
		DNSServersV6: []string{"2001:db8::53"},
	}

	want := []string{
		"ip domain-name corp.example",
		"dns server 192.0.2.53",
		"dns server 192.0.2.54",
		"dns ipv6 server 2001:db8::53",
	}
	if got := p.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}

	empty := SystemParams{}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty system params")
	}
}

func TestClockParams_Lines(t *testing.T) {
	p := DefaultClockParams()
	p.Server = "192.0.2.10"
	p.SourceInterface = "Vlanif10"

	want := []string{
		"clock timezone CET add 1",
		"clock daylight-saving-time DST one-year 02:00 2025-03-30 03:00 2025-10-26 01:00",
		"ntp unicast-server 192.0.2.10",
		"ntp server disable",
		"ntp ipv6 server disable",
		"ntp server source-interface Vlanif10",
	}
	if got := p.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}

	minimal := ClockParams{Server: "192.0.2.10", TimezoneName: "UTC"}
	wantMinimal := []string{
		"clock timezone UTC add 0",
		"ntp unicast-server 192.0.2.10",
	}
	if got := minimal.Lines(); !reflect.DeepEqual(got, wantMinimal) {
		t.Errorf("minimal Lines() = %v, want %v", got, wantMinimal)
	}

	missing := ClockParams{}
	if err := missing.Validate(); err == nil {
		t.Error("expected error when server is missing")
	}
}

func TestSTPParams_Lines(t *testing.T) {
	on := STPParams{BPDUProtection: true}
	if got := on.Lines(); !reflect.DeepEqual(got, []string{"stp bpdu-protection"}) {
		t.Errorf("Lines() = %v", got)
	}

	off := STPParams{}
	if got := off.Lines(); got != nil {
		t.Errorf("Lines() = %v, want nil", got)
	}
}

func TestUserParams(t *testing.T) {
	classic := UserParams{
		Name:        "legacy_admin",
		Password:    "s3cret",
		Level:       3,
		ServiceType: "telnet",
	}
	if err := classic.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := []string{
		"local-user legacy_admin password irreversible-cipher s3cret",
		"local-user legacy_admin privilege level 3",
		"local-user legacy_admin service-type telnet",
	}
	if got := classic.AAALines(); !reflect.DeepEqual(got, want) {
		t.Errorf("AAALines() = %v, want %v", got, want)
	}

	keyed := UserParams{
		Name:        "ansible",
		SSHKey:      "ssh-rsa AAAAB3Nza... ansible@ctl\n",
		Password:    "ignored",
		Level:       3,
		ServiceType: "ssh",
	}
	if !keyed.KeyBased() {
		t.Fatal("expected key-based user")
	}
	aaa := keyed.AAALines()
	for _, l := range aaa {
		if l == "local-user ansible password irreversible-cipher ignored" {
			t.Error("password line must be dropped for key-based users")
		}
	}

	wantSSH := []string{
		"ssh user ansible authentication-type rsa",
		"ssh user ansible assign rsa-key ansible",
		"ssh user ansible service-type stelnet",
	}
	if got := keyed.SSHUserLines(); !reflect.DeepEqual(got, wantSSH) {
		t.Errorf("SSHUserLines() = %v, want %v", got, wantSSH)
	}
	if got := keyed.PublicKeyParent(); got != "rsa peer-public-key ansible encoding-type openssh" {
		t.Errorf("PublicKeyParent() = %q", got)
	}

	imp := keyed.KeyImportLines()
	if imp[0] != "system-view" || imp[len(imp)-1] != "return" {
		t.Errorf("KeyImportLines() envelope wrong: %v", imp)
	}
	if imp[3] != "ssh-rsa AAAAB3Nza... ansible@ctl" {
		t.Errorf("key not passed through trimmed: %q", imp[3])
	}

	if got := keyed.SystemPrefixes(); len(got) != 2 || got[0] != "ssh user ansible" {
		t.Errorf("SystemPrefixes() = %v", got)
	}
	if got := keyed.AAAPrefix(); got != "local-user ansible" {
		t.Errorf("AAAPrefix() = %q", got)
	}

	missing := UserParams{Name: "x", Level: -1}
	if err := missing.Validate(); err == nil {
		t.Error("expected error when neither password nor key is set")
	}
}
