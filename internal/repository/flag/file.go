package flag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/bike-alarm/internal/config"
)

// FileStore persists flag cells to a JSON file on disk.
// A missing file reads as all-false: a device fresh out of the box has
// never triggered.
type FileStore struct {
	// path is the filesystem location of the JSON cell file.
	path string
	// cells caches the decoded cell values once loaded.
	cells []bool
	// loaded marks whether cells holds the on-disk contents.
	loaded bool
	// mu protects concurrent access to the cell file.
	mu sync.Mutex
}

// NewFileStore creates a store that reads/writes JSON at the provided path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: filepath.Clean(path),
	}
}

// ReadFlag reads one cell. A missing file yields false without error.
func (s *FileStore) ReadFlag(address int) (bool, error) {
	if address < 0 || address >= CellCount {
		return false, fmt.Errorf("read flag %d: %w", address, ErrBadAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return false, err
	}

	return s.cells[address], nil
}

// WriteFlag stores one cell, touching the disk only when the value changes.
func (s *FileStore) WriteFlag(address int, value bool) error {
	if address < 0 || address >= CellCount {
		return fmt.Errorf("write flag %d: %w", address, ErrBadAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	if s.cells[address] == value {
		return nil
	}

	s.cells[address] = value

	data, err := json.Marshal(s.cells)
	if err != nil {
		return fmt.Errorf("encode flags: %w", err)
	}

	if err := os.WriteFile(s.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write flag file: %w", err)
	}

	return nil
}

// load fills the cell cache from disk once. Callers hold the mutex.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	cells := make([]bool, CellCount)

	contents, err := os.ReadFile(s.path)

	switch {
	case err == nil:
		var stored []bool
		if err := json.Unmarshal(contents, &stored); err != nil {
			return fmt.Errorf("decode flag file: %w", err)
		}

		copy(cells, stored)
	case errors.Is(err, os.ErrNotExist):
		// Never written: all cells read false.
	default:
		return fmt.Errorf("read flag file: %w", err)
	}

	s.cells = cells
	s.loaded = true

	return nil
}
