package editor

import (
	"fmt"
	"os"

	"latex-editor/internal/logger"
)

// ApplyToFile reads path, runs transform over its content, and writes the
// result back, taking a backup first. On write failure the backup is
// restored. The in-memory edit engine never touches files; this is the
// convenience bridge used by the CLI.
func ApplyToFile(path string, backupMgr *BackupManager, transform func(old string) (string, error)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	newText, err := transform(string(data))
	if err != nil {
		return err
	}

	backup, err := backupMgr.CreateBackup(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(newText), 0644); err != nil {
		logger.Error("failed to write file, restoring backup", err, logger.String("path", path))
		if restoreErr := backupMgr.Restore(backup, path); restoreErr != nil {
			return fmt.Errorf("write failed (%v) and restore failed: %w", err, restoreErr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Info("file updated",
		logger.String("path", path),
		logger.Int("oldLen", len(data)),
		logger.Int("newLen", len(newText)))
	return nil
}
