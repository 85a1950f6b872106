// Package reconcile drives device convergence: fetch the running
// configuration, diff it against the desired state, and send the resulting
// command sequence. Every workflow supports a check mode that plans without
// touching the device.
package reconcile

import (
	"context"
	"fmt"

	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/device"
	"github.com/vrpctl/vrpctl/pkg/util"
)

// Request is one declarative reconciliation step: converge the block under
// Parents to the candidate Lines with the given diff semantics.
type Request struct {
	// Operation names the step for logs and audit records.
	Operation string
	Parents   []string
	Lines     []string
	State     config.State
	Keep      []string
	SaveWhen  config.SaveWhen
}

// Result reports what a reconciliation decided and, when executed, what the
// device answered. Changed reflects whether any command was planned; with
// execution enabled it also means every command was actually sent.
type Result struct {
	Operation string           `json:"operation"`
	Changed   bool             `json:"changed"`
	Commands  []config.Command `json:"commands,omitempty"`
	Responses []string         `json:"responses,omitempty"`
}

// merge folds a sub-step into an aggregate result.
func (res *Result) merge(sub *Result) {
	res.Changed = res.Changed || sub.Changed
	res.Commands = append(res.Commands, sub.Commands...)
}

// Reconciler binds a transport to a named device. Execute is off by default:
// workflows plan only, which is the check-mode behavior the CLI exposes.
type Reconciler struct {
	tr      device.Transport
	devName string

	// Execute sends planned commands to the device. Leave false for a
	// dry run.
	Execute bool
}

func New(tr device.Transport, deviceName string) *Reconciler {
	return &Reconciler{tr: tr, devName: deviceName}
}

// DeviceName returns the name the reconciler was bound to.
func (r *Reconciler) DeviceName() string { return r.devName }

// Running fetches and parses the device's running configuration. Every
// workflow reads it fresh; nothing is cached between invocations.
func (r *Reconciler) Running(ctx context.Context) ([]config.Line, error) {
	raw, err := device.FetchRunningConfig(ctx, r.tr)
	if err != nil {
		return nil, fmt.Errorf("fetch running config: %w", err)
	}
	return config.ParseRunning(raw), nil
}

// Plan computes the command sequence for a request without sending anything.
func (r *Reconciler) Plan(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	running, err := r.Running(ctx)
	if err != nil {
		return nil, err
	}
	return planAgainst(running, req), nil
}

// Apply plans the request and, when execution is enabled and the plan is
// non-empty, sends it. A transport failure mid-sequence is returned as-is;
// responses for the commands that did run are kept on the result.
func (r *Reconciler) Apply(ctx context.Context, req Request) (*Result, error) {
	res, err := r.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := r.execute(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// planAgainst diffs one request against an already-fetched running config.
func planAgainst(running []config.Line, req Request) *Result {
	body := config.Diff(running, req.Parents, req.Lines, req.State, req.Keep)
	res := &Result{
		Operation: req.Operation,
		Changed:   len(body) > 0,
		Commands:  config.Wrap(req.Parents, body, req.SaveWhen),
	}
	util.WithOperation(req.Operation).Debugf("planned %d commands", len(res.Commands))
	return res
}

// execute sends a planned result when execution is enabled. A no-change plan
// never touches the device.
func (r *Reconciler) execute(ctx context.Context, res *Result) error {
	if !r.Execute || !res.Changed {
		return nil
	}
	responses, err := r.tr.RunCommands(ctx, res.Commands)
	res.Responses = responses
	if err != nil {
		return fmt.Errorf("device %s: %w", r.devName, err)
	}
	return nil
}

func validateRequest(req *Request) error {
	if req.State == "" {
		req.State = config.StatePresent
	}
	switch req.State {
	case config.StatePresent, config.StateAbsent, config.StateReplace:
	default:
		return fmt.Errorf("%w: unknown state %q", util.ErrInvalidConfig, req.State)
	}
	if req.SaveWhen == "" {
		req.SaveWhen = config.SaveChanged
	}
	if !req.SaveWhen.Valid() {
		return fmt.Errorf("%w: unknown save policy %q", util.ErrInvalidConfig, req.SaveWhen)
	}
	return nil
}
