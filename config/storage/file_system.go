package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// AtomicFileUpdate replaces filePath with content through a temporary file in
// the same directory and a rename, so readers never see a partial file. When
// createBackup is set and filePath exists, a timestamped copy is kept first.
func AtomicFileUpdate(filePath string, content []byte, createBackup bool) error {
	bm := NewBackupManager(DefaultBackupRetention)
	backup := createBackup && FileExists(filePath)
	if backup {
		if _, err := bm.CreateBackup(filePath); err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op once renamed

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filePath); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	if backup {
		// The update already succeeded; stale backups are only clutter
		_ = bm.CleanupOldBackups(filePath)
	}

	return nil
}
