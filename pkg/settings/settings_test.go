package settings

import (
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFile(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if s.DefaultDevice != "" {
		t.Errorf("missing file must yield empty settings, got %+v", s)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	s := &Settings{
		DefaultDevice: "access-sw-01",
		InventoryPath: "/etc/vrpctl/devices.yaml",
		BackupDir:     "/var/backups/vrp",
	}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *loaded != *s {
		t.Errorf("round-trip mismatch: %+v != %+v", loaded, s)
	}
}

func TestFallbackPaths(t *testing.T) {
	s := &Settings{}
	if s.GetInventoryPath() == "" {
		t.Error("GetInventoryPath() must never be empty")
	}
	if s.GetBackupDir() == "" {
		t.Error("GetBackupDir() must never be empty")
	}
	if s.GetAuditLog() == "" {
		t.Error("GetAuditLog() must never be empty")
	}

	s.BackupDir = "/tmp/b"
	if got := s.GetBackupDir(); got != "/tmp/b" {
		t.Errorf("GetBackupDir() = %q", got)
	}
}

func TestClear(t *testing.T) {
	s := &Settings{DefaultDevice: "x", AuditLog: "y"}
	s.Clear()
	if *s != (Settings{}) {
		t.Errorf("Clear() left %+v", s)
	}
}
