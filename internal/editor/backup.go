package editor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"latex-editor/internal/logger"
)

// BackupManager creates timestamped copies of documents before file-level
// edits so a failed write can be rolled back.
type BackupManager struct {
	backupDir string
}

// NewBackupManager creates a BackupManager. With an empty backupDir, backups
// land next to the original file.
func NewBackupManager(backupDir string) *BackupManager {
	return &BackupManager{backupDir: backupDir}
}

// CreateBackup copies path to a timestamped backup file and returns its path.
func (m *BackupManager) CreateBackup(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}

	name := fmt.Sprintf("%s.backup_%s", filepath.Base(path), time.Now().Format("20060102_150405"))
	backupPath := filepath.Join(filepath.Dir(path), name)
	if m.backupDir != "" {
		if err := os.MkdirAll(m.backupDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		backupPath = filepath.Join(m.backupDir, name)
	}

	if err := copyFile(path, backupPath); err != nil {
		logger.Error("failed to create backup", err, logger.String("path", path))
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	logger.Debug("backup created", logger.String("backupPath", backupPath))
	return backupPath, nil
}

// Restore copies a backup back over the original file.
func (m *BackupManager) Restore(backupPath, originalPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := copyFile(backupPath, originalPath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	logger.Info("file restored from backup", logger.String("path", originalPath))
	return nil
}

// ListBackups returns the backup files for path, newest first.
func (m *BackupManager) ListBackups(path string) ([]string, error) {
	searchDir := filepath.Dir(path)
	if m.backupDir != "" {
		searchDir = m.backupDir
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	prefix := filepath.Base(path) + ".backup_"
	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			backups = append(backups, filepath.Join(searchDir, entry.Name()))
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
