package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/feature"
	"github.com/vrpctl/vrpctl/pkg/util"
)

// InterfaceRequest converges a switchport to the declared parameters. The
// block is replaced: lines the declaration does not mention are removed.
func InterfaceRequest(p feature.InterfaceParams, save config.SaveWhen) (Request, error) {
	if err := p.Validate(); err != nil {
		return Request{}, err
	}
	lines, err := p.Lines()
	if err != nil {
		return Request{}, err
	}
	return Request{
		Operation: "interface.configure",
		Parents:   []string{p.Parent()},
		Lines:     lines,
		State:     config.StateReplace,
		SaveWhen:  save,
	}, nil
}

// ResetInterfaceRequest strips a switchport back to a shut-down default.
func ResetInterfaceRequest(name string, save config.SaveWhen) Request {
	return Request{
		Operation: "interface.reset",
		Parents:   []string{"interface " + name},
		Lines:     feature.ResetLines(),
		State:     config.StateReplace,
		SaveWhen:  save,
	}
}

// SystemRequest converges global DNS and domain settings.
func SystemRequest(p feature.SystemParams, save config.SaveWhen) (Request, error) {
	if err := p.Validate(); err != nil {
		return Request{}, err
	}
	return Request{
		Operation: "system.configure",
		Lines:     p.Lines(),
		State:     config.StatePresent,
		SaveWhen:  save,
	}, nil
}

// RemoveSystemRequest removes the named global DNS/domain lines.
func RemoveSystemRequest(p feature.SystemParams, save config.SaveWhen) (Request, error) {
	if err := p.Validate(); err != nil {
		return Request{}, err
	}
	return Request{
		Operation: "system.remove",
		Lines:     p.Lines(),
		State:     config.StateAbsent,
		SaveWhen:  save,
	}, nil
}

// ClockRequest converges timezone, daylight saving, and NTP settings.
func ClockRequest(p feature.ClockParams, save config.SaveWhen) (Request, error) {
	if err := p.Validate(); err != nil {
		return Request{}, err
	}
	return Request{
		Operation: "clock.configure",
		Lines:     p.Lines(),
		State:     config.StatePresent,
		SaveWhen:  save,
	}, nil
}

// STPRequest converges global spanning-tree protection settings.
func STPRequest(p feature.STPParams, save config.SaveWhen) Request {
	return Request{
		Operation: "stp.configure",
		Lines:     p.Lines(),
		State:     config.StatePresent,
		SaveWhen:  save,
	}
}

// EnsureVLAN creates or renames a VLAN. A VLAN with no name that does not
// exist yet has an empty candidate body, so the context entry itself is
// issued to create it.
func (r *Reconciler) EnsureVLAN(ctx context.Context, p feature.VLANParams, save config.SaveWhen) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	running, err := r.Running(ctx)
	if err != nil {
		return nil, err
	}

	res := planAgainst(running, Request{
		Operation: "vlan.ensure",
		Parents:   []string{p.Parent()},
		Lines:     p.Lines(),
		State:     config.StateReplace,
		SaveWhen:  save,
	})

	if !res.Changed {
		if start, _ := config.LocateBlock(running, []string{p.Parent()}); start < 0 {
			res.Changed = true
			res.Commands = config.AppendSave([]config.Command{
				config.Plain("system-view"),
				config.Plain(p.Parent()),
				config.Plain("return"),
				config.Plain("return"),
			}, save, true)
		}
	}

	if err := r.execute(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// RemoveVLAN deletes a VLAN object. The undo is a global command, issued
// without entering the VLAN context; a VLAN that is already absent is a
// no-change result with nothing sent.
func (r *Reconciler) RemoveVLAN(ctx context.Context, id int, save config.SaveWhen) (*Result, error) {
	if err := util.ValidateVLANID(id); err != nil {
		return nil, err
	}
	running, err := r.Running(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "vlan.remove"}
	parent := fmt.Sprintf("vlan %d", id)
	if start, _ := config.LocateBlock(running, []string{parent}); start < 0 {
		return res, nil
	}

	res.Changed = true
	res.Commands = config.AppendSave([]config.Command{
		config.Plain("system-view"),
		config.Plain(fmt.Sprintf("undo vlan %d", id)),
		config.Plain("return"),
	}, save, true)

	if err := r.execute(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// EnsureUser converges a local account. Key-based accounts are a three-step
// flow planned against one running-config snapshot: create the
// peer-public-key entry (importing the key only when the entry is new), the
// AAA account lines, and the global SSH user bindings. Each step saves
// nothing on its own; one save is appended per policy at the end.
func (r *Reconciler) EnsureUser(ctx context.Context, p feature.UserParams, save config.SaveWhen) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	running, err := r.Running(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "user.ensure"}

	if p.KeyBased() {
		keyStep := planAgainst(running, Request{
			Operation: "user.ensure",
			Lines:     []string{p.PublicKeyParent()},
			State:     config.StatePresent,
			SaveWhen:  config.SaveNever,
		})
		res.merge(keyStep)
		if keyStep.Changed {
			for _, line := range p.KeyImportLines() {
				res.Commands = append(res.Commands, config.Plain(line))
			}
		}

	}

	res.merge(planAgainst(running, Request{
		Operation: "user.ensure",
		Parents:   []string{"aaa"},
		Lines:     p.AAALines(),
		State:     config.StatePresent,
		SaveWhen:  config.SaveNever,
	}))

	if p.KeyBased() {
		res.merge(planAgainst(running, Request{
			Operation: "user.ensure",
			Lines:     p.SSHUserLines(),
			State:     config.StatePresent,
			SaveWhen:  config.SaveNever,
		}))
	}

	res.Commands = config.AppendSave(res.Commands, save, res.Changed)

	if err := r.execute(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// RemoveUser deletes an account's key, SSH bindings, and AAA entry. Running
// lines are matched by prefix and collapsed to one undo each, so the result
// is no-change when the account does not exist.
func (r *Reconciler) RemoveUser(ctx context.Context, name string, save config.SaveWhen) (*Result, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: user name is required", util.ErrValidationFailed)
	}
	running, err := r.Running(ctx)
	if err != nil {
		return nil, err
	}

	p := feature.UserParams{Name: name}

	var sysUndos []string
	seen := make(map[string]bool)
	for _, ln := range running {
		trimmed := strings.TrimSpace(ln.Raw)
		if trimmed == "" || leadingIndent(ln.Raw) {
			continue
		}
		for _, prefix := range p.SystemPrefixes() {
			if !hasLinePrefix(trimmed, prefix) {
				continue
			}
			if undo := config.UndoCommand(trimmed); undo != "" && !seen[undo] {
				seen[undo] = true
				sysUndos = append(sysUndos, undo)
			}
		}
	}

	var aaaUndos []string
	start, end := config.LocateBlock(running, []string{"aaa"})
	for _, ln := range config.BlockChildren(running, []string{"aaa"}, start, end) {
		trimmed := strings.TrimSpace(ln.Raw)
		if !hasLinePrefix(trimmed, p.AAAPrefix()) {
			continue
		}
		if undo := config.UndoCommand(trimmed); undo != "" && !seen[undo] {
			seen[undo] = true
			aaaUndos = append(aaaUndos, undo)
		}
	}

	res := &Result{Operation: "user.remove"}
	if len(sysUndos) == 0 && len(aaaUndos) == 0 {
		return res, nil
	}

	res.Changed = true
	res.Commands = config.Wrap(nil, sysUndos, config.SaveNever)
	res.Commands = append(res.Commands, config.Wrap([]string{"aaa"}, aaaUndos, config.SaveNever)...)
	res.Commands = config.AppendSave(res.Commands, save, true)

	if err := r.execute(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// hasLinePrefix matches a whole-token prefix: "ssh user bob" must not match
// "ssh user bobby".
func hasLinePrefix(line, prefix string) bool {
	return line == prefix || strings.HasPrefix(line, prefix+" ")
}

func leadingIndent(raw string) bool {
	return strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")
}
