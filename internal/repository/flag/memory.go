package flag

import (
	"fmt"
	"sync"
)

// MemoryStore keeps flag cells in memory and counts the writes that
// actually changed a cell, which lets tests assert the update-if-changed
// contract. Nothing survives process exit.
type MemoryStore struct {
	// cells holds the current cell values.
	cells [CellCount]bool
	// writes counts writes that reached the "medium" (changed a cell).
	writes int
	// mu protects cells and writes.
	mu sync.Mutex
}

// NewMemoryStore creates an all-false in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ReadFlag reads one cell.
func (s *MemoryStore) ReadFlag(address int) (bool, error) {
	if address < 0 || address >= CellCount {
		return false, fmt.Errorf("read flag %d: %w", address, ErrBadAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cells[address], nil
}

// WriteFlag stores one cell, counting only writes that change the value.
func (s *MemoryStore) WriteFlag(address int, value bool) error {
	if address < 0 || address >= CellCount {
		return fmt.Errorf("write flag %d: %w", address, ErrBadAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cells[address] == value {
		return nil
	}

	s.cells[address] = value
	s.writes++

	return nil
}

// Writes returns how many writes changed a cell.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writes
}
