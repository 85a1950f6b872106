package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vrpctl/vrpctl/internal/testutil"
	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/util"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		expr    string
		want    Condition
		wantErr bool
	}{
		{
			expr: "result[0] contains 'NTP'",
			want: Condition{Index: 0, Text: "NTP"},
		},
		{
			expr: `result[2] contains "synchronized"`,
			want: Condition{Index: 2, Text: "synchronized"},
		},
		{
			expr: "result[0] not contains 'Error'",
			want: Condition{Index: 0, Text: "Error", Negated: true},
		},
		{expr: "result[0] equals 'x'", wantErr: true},
		{expr: "result[] contains 'x'", wantErr: true},
		{expr: "result[0] contains ''", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseCondition(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCondition() error = %v", err)
			}
			if got.Index != tt.want.Index || got.Text != tt.want.Text || got.Negated != tt.want.Negated {
				t.Errorf("ParseCondition() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCondition_Met(t *testing.T) {
	c := Condition{Index: 1, Text: "up"}
	if c.Met([]string{"down"}) {
		t.Error("out-of-range index must not match")
	}
	if !c.Met([]string{"x", "link is up"}) {
		t.Error("expected match")
	}

	n := Condition{Index: 0, Text: "Error", Negated: true}
	if n.Met([]string{"Error: failed"}) {
		t.Error("negated condition must fail when text present")
	}
	if !n.Met([]string{"all good"}) {
		t.Error("negated condition must pass when text absent")
	}
}

func TestPoll_SucceedsOnLaterAttempt(t *testing.T) {
	tr := &testutil.FakeTransport{
		Script: [][]string{
			{"clock status: unsynchronized"},
			{"clock status: synchronized"},
		},
	}

	out, err := Poll(context.Background(), tr, []config.Command{config.Plain("display ntp status")}, PollOptions{
		Conditions: []string{"result[0] contains 'synchronized'"},
		Retries:    3,
		Interval:   time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if out[0] != "clock status: synchronized" {
		t.Errorf("Poll() output = %q", out[0])
	}
	if len(tr.Sent) != 2 {
		t.Errorf("expected 2 attempts, got %d", len(tr.Sent))
	}
}

func TestPoll_BudgetExhausted(t *testing.T) {
	tr := &testutil.FakeTransport{
		Script: [][]string{{"down"}, {"down"}},
	}

	_, err := Poll(context.Background(), tr, []config.Command{config.Plain("display interface brief")}, PollOptions{
		Conditions: []string{"result[0] contains 'up'"},
		Retries:    2,
		Interval:   time.Millisecond,
	})
	if !errors.Is(err, util.ErrConditionsNotMet) {
		t.Fatalf("error = %v, want ErrConditionsNotMet", err)
	}
}

func TestPoll_MatchAny(t *testing.T) {
	tr := &testutil.FakeTransport{
		Script: [][]string{{"state: standby"}},
	}

	_, err := Poll(context.Background(), tr, []config.Command{config.Plain("display hsb state")}, PollOptions{
		Conditions: []string{
			"result[0] contains 'active'",
			"result[0] contains 'standby'",
		},
		MatchAny: true,
		Retries:  1,
	})
	if err != nil {
		t.Fatalf("Poll() with any-match error = %v", err)
	}
}

func TestPoll_TransportError(t *testing.T) {
	tr := &testutil.FakeTransport{Err: errors.New("connection reset")}

	_, err := Poll(context.Background(), tr, []config.Command{config.Plain("display version")}, PollOptions{
		Conditions: []string{"result[0] contains 'VRP'"},
		Retries:    5,
		Interval:   time.Millisecond,
	})
	if err == nil || errors.Is(err, util.ErrConditionsNotMet) {
		t.Fatalf("transport failure must surface directly, got %v", err)
	}
	if len(tr.Sent) != 1 {
		t.Errorf("transport failure must not be retried, got %d attempts", len(tr.Sent))
	}
}

func TestPoll_NoConditions(t *testing.T) {
	tr := &testutil.FakeTransport{Script: [][]string{{"anything"}}}

	out, err := Poll(context.Background(), tr, []config.Command{config.Plain("reboot fast")}, PollOptions{})
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(out) != 1 || len(tr.Sent) != 1 {
		t.Errorf("expected a single attempt, got %d", len(tr.Sent))
	}
}
