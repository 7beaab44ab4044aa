package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "main.tex", "\\documentclass{article}\n")

	mgr := NewBackupManager("")
	backupPath, err := mgr.CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if !strings.Contains(filepath.Base(backupPath), "main.tex.backup_") {
		t.Errorf("backup name = %q, want main.tex.backup_ prefix", filepath.Base(backupPath))
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != "\\documentclass{article}\n" {
		t.Errorf("backup content = %q", string(data))
	}
}

func TestCreateBackupMissingFile(t *testing.T) {
	mgr := NewBackupManager("")
	if _, err := mgr.CreateBackup(filepath.Join(t.TempDir(), "absent.tex")); err == nil {
		t.Fatal("CreateBackup() on missing file, want error")
	}
}

func TestCreateBackupSeparateDir(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	path := writeTestFile(t, dir, "main.tex", "content")

	mgr := NewBackupManager(backupDir)
	backupPath, err := mgr.CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if filepath.Dir(backupPath) != backupDir {
		t.Errorf("backup dir = %q, want %q", filepath.Dir(backupPath), backupDir)
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "main.tex", "original")

	mgr := NewBackupManager("")
	backupPath, err := mgr.CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("clobbered"), 0644); err != nil {
		t.Fatalf("failed to overwrite file: %v", err)
	}
	if err := mgr.Restore(backupPath, path); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("restored content = %q, want original", string(data))
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "main.tex", "content")

	mgr := NewBackupManager("")
	for _, suffix := range []string{"20240101_100000", "20240102_100000"} {
		writeTestFile(t, dir, "main.tex.backup_"+suffix, "old")
	}
	writeTestFile(t, dir, "other.tex.backup_20240101_100000", "old")

	backups, err := mgr.ListBackups(path)
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("ListBackups() = %d backups, want 2", len(backups))
	}
	if !strings.Contains(backups[0], "20240102") {
		t.Errorf("first backup = %q, want newest first", backups[0])
	}
}

func TestApplyToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "main.tex", "before")

	mgr := NewBackupManager("")
	err := ApplyToFile(path, mgr, func(old string) (string, error) {
		if old != "before" {
			t.Errorf("transform input = %q, want before", old)
		}
		return "after", nil
	})
	if err != nil {
		t.Fatalf("ApplyToFile() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "after" {
		t.Errorf("file content = %q, want after", string(data))
	}

	backups, _ := mgr.ListBackups(path)
	if len(backups) != 1 {
		t.Errorf("backups = %d, want 1", len(backups))
	}
}

func TestApplyToFileTransformError(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "main.tex", "before")

	mgr := NewBackupManager("")
	wantErr := errors.New("no change possible")
	err := ApplyToFile(path, mgr, func(old string) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("ApplyToFile() error = %v, want %v", err, wantErr)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "before" {
		t.Errorf("file content = %q, want untouched", string(data))
	}
	backups, _ := mgr.ListBackups(path)
	if len(backups) != 0 {
		t.Errorf("backups = %d, want 0 when transform fails", len(backups))
	}
}
