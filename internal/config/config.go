package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds tunable parameters for the alarm controller.
type Config struct {
	// StateFile is the path to the JSON file persisting the trigger flag.
	StateFile string `yaml:"state_file"`
	// BeepPeriod is how long the actuator stays on (and then off) while the
	// alarm is triggered.
	BeepPeriod time.Duration `yaml:"beep_period"`
	// AutoDisarm is the cool-down after which a triggered alarm re-arms on
	// its own, provided the kickstand is back down. Zero disables the
	// timed transition entirely.
	AutoDisarm time.Duration `yaml:"auto_disarm"`
	// CycleInterval is the pause between control cycles on the host.
	// Zero selects the default.
	CycleInterval time.Duration `yaml:"cycle_interval"`
}

const (
	// DefaultConfigFilename is the default filename for alarm settings.
	DefaultConfigFilename = "bike-alarm-settings.yaml"

	// DefaultStateFilename is the default filename for the persisted flags.
	DefaultStateFilename = "bike-alarm-flags.json"

	// DefaultBeepPeriod is the default actuator duty period while triggered.
	DefaultBeepPeriod = time.Second

	// DefaultCycleInterval is the default pause between control cycles.
	DefaultCycleInterval = 10 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config and
	// state files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeDuration is returned when a duration field is negative.
	errNegativeDuration = errors.New("durations must not be negative")
)

// Default returns a configuration with all defaults applied.
// AutoDisarm stays zero: the timed re-arm transition is opt-in.
func Default() *Config {
	return &Config{
		StateFile:     DefaultStateFilename,
		BeepPeriod:    DefaultBeepPeriod,
		CycleInterval: DefaultCycleInterval,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the configuration and fills in defaults for unset fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.BeepPeriod < 0 || cfg.AutoDisarm < 0 || cfg.CycleInterval < 0 {
		return errNegativeDuration
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.BeepPeriod == 0 {
		cfg.BeepPeriod = DefaultBeepPeriod
	}

	if cfg.CycleInterval == 0 {
		cfg.CycleInterval = DefaultCycleInterval
	}

	return nil
}
