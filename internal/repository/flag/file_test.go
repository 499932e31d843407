package flag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileStoreRoundtrip ensures a written flag reads back before any other write.
func TestFileStoreRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flags.json")
	store := NewFileStore(path)

	require.NoError(t, store.WriteFlag(AddressAlarmTriggered, true))

	value, err := store.ReadFlag(AddressAlarmTriggered)
	require.NoError(t, err)
	require.True(t, value)

	// A fresh store over the same file sees the persisted value.
	reopened := NewFileStore(path)

	value, err = reopened.ReadFlag(AddressAlarmTriggered)
	require.NoError(t, err)
	require.True(t, value)
}

// TestFileStoreMissingFile ensures an absent file reads as all-false.
func TestFileStoreMissingFile(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "never-written.json"))

	value, err := store.ReadFlag(AddressAlarmTriggered)
	require.NoError(t, err)
	require.False(t, value)
}

// TestFileStoreUpdateIfChanged ensures an unchanged write leaves the file alone.
func TestFileStoreUpdateIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flags.json")
	store := NewFileStore(path)

	require.NoError(t, store.WriteFlag(AddressAlarmTriggered, true))

	info, err := os.Stat(path)
	require.NoError(t, err)

	written := info.ModTime()

	// Same value: the file must not be rewritten.
	require.NoError(t, store.WriteFlag(AddressAlarmTriggered, true))

	info, err = os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, written, info.ModTime())

	// Writing false while the file never contained the cell set is still a
	// change for address 1, so it lands on disk.
	require.NoError(t, store.WriteFlag(1, true))

	reopened := NewFileStore(path)

	value, err := reopened.ReadFlag(1)
	require.NoError(t, err)
	require.True(t, value)
}

// TestFileStoreBadAddress ensures out-of-range addresses are rejected.
func TestFileStoreBadAddress(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "flags.json"))

	_, err := store.ReadFlag(-1)
	require.ErrorIs(t, err, ErrBadAddress)

	err = store.WriteFlag(CellCount, true)
	require.ErrorIs(t, err, ErrBadAddress)
}

// TestMemoryStoreWriteCounting ensures only changing writes are counted.
func TestMemoryStoreWriteCounting(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	require.NoError(t, store.WriteFlag(AddressAlarmTriggered, false))
	require.Equal(t, 0, store.Writes())

	require.NoError(t, store.WriteFlag(AddressAlarmTriggered, true))
	require.NoError(t, store.WriteFlag(AddressAlarmTriggered, true))
	require.Equal(t, 1, store.Writes())

	value, err := store.ReadFlag(AddressAlarmTriggered)
	require.NoError(t, err)
	require.True(t, value)
}
