package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and rejection of negative durations.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Negative duration.
	cfg := &Config{
		BeepPeriod: -time.Second,
	}
	require.Error(t, Validate(cfg))

	// Empty config gains defaults; auto-disarm stays off.
	cfg = new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultStateFilename, cfg.StateFile)
	require.Equal(t, DefaultBeepPeriod, cfg.BeepPeriod)
	require.Equal(t, DefaultCycleInterval, cfg.CycleInterval)
	require.Zero(t, cfg.AutoDisarm)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		StateFile:  "flags.json",
		BeepPeriod: 500 * time.Millisecond,
		AutoDisarm: 2 * time.Minute,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.StateFile, loaded.StateFile)
	require.Equal(t, cfg.BeepPeriod, loaded.BeepPeriod)
	require.Equal(t, cfg.AutoDisarm, loaded.AutoDisarm)
}

// TestLoadMissingFile ensures a missing settings file yields defaults.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
