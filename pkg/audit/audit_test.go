package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLogger(t *testing.T) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func TestFileLogger_LogAndQuery(t *testing.T) {
	l, _ := newTestLogger(t)

	ev := NewEvent("operator", "access-sw-01", "interface.configure").
		WithCommands([]string{"system-view", "interface GE1/0/1", "shutdown", "return", "return"}).
		WithChanged(true).
		WithExecuteMode(true).
		WithDuration(120 * time.Millisecond).
		WithSuccess()
	if err := l.Log(ev); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := l.Log(NewEvent("operator", "access-sw-02", "vlan.remove").WithError(os.ErrDeadlineExceeded)); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	all, err := l.Query(Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Query() returned %d events, want 2", len(all))
	}

	byDevice, err := l.Query(Filter{Device: "access-sw-01"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(byDevice) != 1 || byDevice[0].Operation != "interface.configure" {
		t.Errorf("device filter returned %+v", byDevice)
	}
	if !byDevice[0].Changed || !byDevice[0].ExecuteMode || byDevice[0].DryRun {
		t.Errorf("event flags lost on round-trip: %+v", byDevice[0])
	}

	failures, err := l.Query(Filter{FailureOnly: true})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(failures) != 1 || failures[0].Device != "access-sw-02" {
		t.Errorf("failure filter returned %+v", failures)
	}
}

func TestFileLogger_QueryLimitOffset(t *testing.T) {
	l, _ := newTestLogger(t)

	for i := 0; i < 5; i++ {
		if err := l.Log(NewEvent("operator", "access-sw-01", "backup").WithSuccess()); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	page, err := l.Query(Filter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page) != 1 {
		t.Errorf("expected last page of 1 event, got %d", len(page))
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := NewFileLogger(path, RotationConfig{MaxSize: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer l.Close()

	if err := l.Log(NewEvent("operator", "sw", "a")); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := l.Log(NewEvent("operator", "sw", "b")); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	matches, _ := filepath.Glob(path + ".*")
	if len(matches) == 0 {
		t.Error("expected a rotated audit log file")
	}
}

func TestDefaultLogger_NoopWhenUnset(t *testing.T) {
	if err := Log(NewEvent("operator", "sw", "noop")); err != nil {
		t.Errorf("Log() without a configured logger must be a no-op, got %v", err)
	}
}
