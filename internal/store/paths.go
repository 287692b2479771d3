package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// GlobalToonifyPath returns the path to the global .toonify directory.
// On Unix: ~/.toonify
// On Windows: %USERPROFILE%\.toonify
func GlobalToonifyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".toonify"), nil
}

// DefaultHistoryPath returns ~/.toonify/history.db, or history.db in the
// working directory when the home directory is unknown.
func DefaultHistoryPath() string {
	globalPath, err := GlobalToonifyPath()
	if err != nil {
		return historyFile
	}
	return filepath.Join(globalPath, historyFile)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
