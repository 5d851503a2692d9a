package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Manager writes downloaded media to disk
type Manager struct {
	overwrite bool
	written   int
	skipped   int
}

// NewManager creates a storage manager. With overwrite false, existing
// files are never replaced.
func NewManager(overwrite bool) *Manager {
	return &Manager{overwrite: overwrite}
}

// Exists reports whether dest is already present
func (m *Manager) Exists(dest string) bool {
	_, err := os.Stat(dest)
	return err == nil
}

// ShouldWrite reports whether Save would write dest. It is false when the
// file exists and overwriting is disabled.
func (m *Manager) ShouldWrite(dest string) bool {
	return m.overwrite || !m.Exists(dest)
}

// Skip records a destination left untouched
func (m *Manager) Skip(dest string) {
	m.skipped++
}

// Save writes the content of r to dest, creating parent directories as
// needed. The data goes to a temporary file in the same directory that is
// renamed into place, so dest is never left truncated.
func (m *Manager) Save(r io.Reader, dest string) (int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempFile := out.Name()

	n, err := io.Copy(out, r)
	closeErr := out.Close()
	if err = errors.Join(err, closeErr); err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to save %s: %w", dest, err)
	}

	// CreateTemp uses 0600; media is not secret
	if err := os.Chmod(tempFile, 0644); err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempFile, dest); err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.written++
	return n, nil
}

// WrittenCount returns the number of files written
func (m *Manager) WrittenCount() int {
	return m.written
}

// SkippedCount returns the number of existing files left alone
func (m *Manager) SkippedCount() int {
	return m.skipped
}
