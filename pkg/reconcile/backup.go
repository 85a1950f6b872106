package reconcile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vrpctl/vrpctl/pkg/device"
	"github.com/vrpctl/vrpctl/pkg/util"
)

const backupPrefix = "vrp_"

// BackupOptions selects where a configuration snapshot lands. With Path set
// the snapshot goes to that exact file; otherwise a timestamped file is
// created under Dir.
type BackupOptions struct {
	Path string
	Dir  string
}

// BackupResult reports whether a new snapshot was written and where the
// current snapshot lives.
type BackupResult struct {
	Changed bool   `json:"changed"`
	Path    string `json:"backup_path"`
}

// Backup snapshots the running configuration to disk. The write is
// idempotent: when the device configuration is byte-identical to the most
// recent snapshot at the target location, nothing is written and the
// existing path is returned unchanged.
func (r *Reconciler) Backup(ctx context.Context, opts BackupOptions) (*BackupResult, error) {
	raw, err := device.FetchRunningConfig(ctx, r.tr)
	if err != nil {
		return nil, fmt.Errorf("fetch running config: %w", err)
	}
	content := []byte(raw)

	if opts.Path != "" {
		return backupToPath(opts.Path, content)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "backups"
	}
	return r.backupToDir(dir, content)
}

// backupToPath overwrites a fixed file unless it already holds the content.
func backupToPath(path string, content []byte) (*BackupResult, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return &BackupResult{Changed: false, Path: path}, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read backup %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return nil, fmt.Errorf("write backup %s: %w", path, err)
	}
	return &BackupResult{Changed: true, Path: path}, nil
}

// backupToDir writes a timestamped snapshot unless the latest one in the
// directory already matches, compared by content hash.
func (r *Reconciler) backupToDir(dir string, content []byte) (*BackupResult, error) {
	if latest := latestBackup(dir, r.devName); latest != "" {
		prev, err := os.ReadFile(latest)
		if err == nil && sha256.Sum256(prev) == sha256.Sum256(content) {
			util.WithDevice(r.devName).Debugf("configuration unchanged since %s", filepath.Base(latest))
			return &BackupResult{Changed: false, Path: latest}, nil
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s%s_%s.cfg", backupPrefix, r.devName, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return nil, fmt.Errorf("write backup %s: %w", path, err)
	}
	return &BackupResult{Changed: true, Path: path}, nil
}

// latestBackup returns the newest snapshot for a device, relying on the
// sortable timestamp in the file name.
func latestBackup(dir, devName string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	prefix := backupPrefix + devName + "_"
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1])
}
