package reconcile

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/feature"
)

func TestEnsureVLAN(t *testing.T) {
	t.Run("existing vlan with matching name is a no-op", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		res, err := r.EnsureVLAN(context.Background(), feature.VLANParams{ID: 10, Name: "mgmt"}, config.SaveChanged)
		if err != nil {
			t.Fatalf("EnsureVLAN() error = %v", err)
		}
		if res.Changed {
			t.Errorf("expected no change, got %v", config.Texts(res.Commands))
		}
	})

	t.Run("rename existing vlan", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		res, err := r.EnsureVLAN(context.Background(), feature.VLANParams{ID: 10, Name: "management"}, config.SaveNever)
		if err != nil {
			t.Fatalf("EnsureVLAN() error = %v", err)
		}
		want := []string{"system-view", "vlan 10", "undo name", "name management", "return", "return"}
		if got := config.Texts(res.Commands); !reflect.DeepEqual(got, want) {
			t.Errorf("commands = %v, want %v", got, want)
		}
	})

	t.Run("unnamed vlan is created by entering its context", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		res, err := r.EnsureVLAN(context.Background(), feature.VLANParams{ID: 99}, config.SaveChanged)
		if err != nil {
			t.Fatalf("EnsureVLAN() error = %v", err)
		}
		if !res.Changed {
			t.Fatal("creating a missing vlan must report a change")
		}
		want := []string{"system-view", "vlan 99", "return", "return", "save"}
		if got := config.Texts(res.Commands); !reflect.DeepEqual(got, want) {
			t.Errorf("commands = %v, want %v", got, want)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		if _, err := r.EnsureVLAN(context.Background(), feature.VLANParams{ID: 4095}, config.SaveNever); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestRemoveVLAN(t *testing.T) {
	t.Run("absent vlan sends nothing", func(t *testing.T) {
		tr := newFake()
		r := New(tr, "access-sw-01")
		r.Execute = true

		res, err := r.RemoveVLAN(context.Background(), 999, config.SaveChanged)
		if err != nil {
			t.Fatalf("RemoveVLAN() error = %v", err)
		}
		if res.Changed || len(res.Commands) != 0 {
			t.Errorf("expected no-change result, got %+v", res)
		}
		if len(tr.Sent) != 1 {
			t.Errorf("only the running-config read may hit the device, sent %d batches", len(tr.Sent))
		}
	})

	t.Run("existing vlan is removed globally", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		res, err := r.RemoveVLAN(context.Background(), 10, config.SaveChanged)
		if err != nil {
			t.Fatalf("RemoveVLAN() error = %v", err)
		}
		want := []string{"system-view", "undo vlan 10", "return", "save"}
		if got := config.Texts(res.Commands); !reflect.DeepEqual(got, want) {
			t.Errorf("commands = %v, want %v", got, want)
		}
	})
}

func TestEnsureUser_KeyBasedCreation(t *testing.T) {
	r := New(newFake(), "access-sw-01")

	res, err := r.EnsureUser(context.Background(), feature.UserParams{
		Name:        "ansible",
		SSHKey:      "ssh-rsa AAAAB3Nza... ansible@ctl",
		Level:       3,
		ServiceType: "ssh",
	}, config.SaveChanged)
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if !res.Changed {
		t.Fatal("expected a change for a new user")
	}

	texts := config.Texts(res.Commands)

	// The key import envelope runs right after the peer-public-key entry
	// is created.
	keyAt := indexOf(texts, "public-key-code begin")
	if keyAt < 0 {
		t.Fatalf("key import missing from %v", texts)
	}
	if texts[keyAt+1] != "ssh-rsa AAAAB3Nza... ansible@ctl" {
		t.Errorf("key line = %q", texts[keyAt+1])
	}

	aaaAt := indexOf(texts, "local-user ansible privilege level 3")
	sshAt := indexOf(texts, "ssh user ansible assign rsa-key ansible")
	if aaaAt < 0 || sshAt < 0 || aaaAt > sshAt {
		t.Errorf("aaa lines must precede ssh user bindings: %v", texts)
	}

	saves := 0
	for _, cmd := range res.Commands {
		if cmd.Text == "save" {
			saves++
		}
	}
	if saves != 1 || texts[len(texts)-1] != "save" {
		t.Errorf("exactly one trailing save expected: %v", texts)
	}

	for _, cmd := range res.Commands {
		if strings.Contains(cmd.Text, "privilege level") && !cmd.Interactive() {
			t.Errorf("privilege level command must carry a confirmation prompt: %+v", cmd)
		}
	}
}

func TestEnsureUser_Converged(t *testing.T) {
	r := New(newFake(), "access-sw-01")

	res, err := r.EnsureUser(context.Background(), feature.UserParams{
		Name:        "admin",
		SSHKey:      "ssh-rsa AAAAB3Nza... admin@ctl",
		Level:       15,
		ServiceType: "ssh",
	}, config.SaveChanged)
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if res.Changed {
		t.Errorf("fully configured user must be a no-op, got %v", config.Texts(res.Commands))
	}
	if len(res.Commands) != 0 {
		t.Errorf("no-op must not save: %v", config.Texts(res.Commands))
	}
}

func TestRemoveUser(t *testing.T) {
	t.Run("existing user collapses to one undo per entry", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")

		res, err := r.RemoveUser(context.Background(), "admin", config.SaveChanged)
		if err != nil {
			t.Fatalf("RemoveUser() error = %v", err)
		}
		want := []string{
			"system-view",
			"undo ssh user admin",
			"undo rsa peer-public-key admin",
			"return",
			"system-view",
			"aaa",
			"undo local-user admin",
			"return",
			"return",
			"save",
		}
		if got := config.Texts(res.Commands); !reflect.DeepEqual(got, want) {
			t.Errorf("commands = %v, want %v", got, want)
		}

		for _, cmd := range res.Commands {
			switch {
			case strings.HasPrefix(cmd.Text, "undo rsa peer-public-key"),
				strings.HasPrefix(cmd.Text, "undo local-user"):
				if !cmd.Interactive() {
					t.Errorf("%q must carry a confirmation prompt", cmd.Text)
				}
			}
		}
	})

	t.Run("unknown user is a no-op", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		res, err := r.RemoveUser(context.Background(), "ghost", config.SaveAlways)
		if err != nil {
			t.Fatalf("RemoveUser() error = %v", err)
		}
		if res.Changed || len(res.Commands) != 0 {
			t.Errorf("expected no-change result, got %+v", res)
		}
	})

	t.Run("similar prefix does not match", func(t *testing.T) {
		r := New(newFake(), "access-sw-01")
		res, err := r.RemoveUser(context.Background(), "adm", config.SaveNever)
		if err != nil {
			t.Fatalf("RemoveUser() error = %v", err)
		}
		if res.Changed {
			t.Errorf("user %q must not match %q lines: %v", "adm", "admin", config.Texts(res.Commands))
		}
	})
}

func indexOf(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return -1
}
