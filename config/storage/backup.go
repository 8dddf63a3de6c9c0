package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultBackupRetention is the default number of backups to keep
const DefaultBackupRetention = 3

// BackupManager keeps timestamped copies of a file next to it
type BackupManager struct {
	// MaxBackups is the maximum number of backups to retain
	MaxBackups int

	now func() time.Time
	pid int
}

// NewBackupManager creates a new BackupManager. A non-positive maxBackups
// falls back to DefaultBackupRetention.
func NewBackupManager(maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{
		MaxBackups: maxBackups,
		now:        time.Now,
		pid:        os.Getpid(),
	}
}

// backupTimeFormat sorts lexically in time order down to the microsecond
const backupTimeFormat = "20060102150405.000000"

// CreateBackup copies filePath to <filePath>.backup-<timestamp>-<pid> and
// returns the backup path. The PID is zero-padded to ten digits.
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	timestamp := bm.now().Format(backupTimeFormat)
	backupPath := fmt.Sprintf("%s.backup-%s-%010d", filePath, timestamp, bm.pid)

	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}

// ListBackups returns the backups of filePath, oldest first
func (bm *BackupManager) ListBackups(filePath string) ([]string, error) {
	backupFiles, err := filepath.Glob(filePath + ".backup-*")
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	// Fixed-width timestamp and PID make lexical order chronological
	sort.Strings(backupFiles)

	return backupFiles, nil
}

// CleanupOldBackups removes old backup files, retaining only the most recent MaxBackups
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}

	numToRemove := len(backupFiles) - bm.MaxBackups
	if numToRemove <= 0 {
		return nil
	}

	for _, oldBackup := range backupFiles[:numToRemove] {
		if err := os.Remove(oldBackup); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", oldBackup, err)
		}
	}

	return nil
}

// copyFile copies src to dst, keeping the permissions of src
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
