// Package record persists the fastest solve time as a one-line text file.
package record

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store reads and writes the best-time record file.
type Store struct {
	path string
}

// New returns a store backed by path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored best time in seconds. A missing, unreadable or
// malformed file reads as no record.
func (s *Store) Load() (int, bool) {
	file, err := os.Open(s.path)
	if err != nil {
		return 0, false
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only record file.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Save overwrites the record with v.
func (s *Store) Save(v int) error {
	if v < 0 {
		return fmt.Errorf("record must be non-negative, got %d", v)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create record dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "record-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := fmt.Fprintf(tmpFile, "%d\n", v); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close record: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Reset removes the record. A missing file is not an error.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	return nil
}
