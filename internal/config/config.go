package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"

	DefaultExtendOffset = 5 * time.Minute
	DefaultTickInterval = time.Second
)

// Config holds the unified application configuration
type Config struct {
	StorePath    string
	Backend      string
	ExtendOffset time.Duration
	TickInterval time.Duration
	SoundCommand string
	Bell         bool
	Locale       string
	DefaultSort  string
}

// Settings represents the config file structure
type Settings struct {
	StorePath    string `yaml:"store_path,omitempty"`
	Backend      string `yaml:"backend,omitempty"`
	ExtendOffset string `yaml:"extend_offset,omitempty"`
	TickInterval string `yaml:"tick_interval,omitempty"`
	SoundCommand string `yaml:"sound_command,omitempty"`
	Bell         *bool  `yaml:"bell,omitempty"`
	Locale       string `yaml:"locale,omitempty"`
	DefaultSort  string `yaml:"default_sort,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	ConfigPath   string
	StorePath    string
	Backend      string
	ExtendOffset time.Duration
	SoundCommand string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StorePath:    filepath.Join(dataDir, "store.json"),
		Backend:      BackendFile,
		ExtendOffset: DefaultExtendOffset,
		TickInterval: DefaultTickInterval,
		Bell:         true,
		Locale:       "und",
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath, _ = getConfigPath()
	}
	if configPath != "" {
		fileSettings, err := loadConfigFile(configPath)
		switch {
		case err == nil:
			if err := cfg.apply(fileSettings); err != nil {
				return nil, fmt.Errorf("config %s: %w", configPath, err)
			}
		case flags.ConfigPath != "":
			// An explicitly requested file must exist and parse.
			return nil, err
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("REMINDR_STORE"); v != "" {
		cfg.StorePath = expandPath(v)
	}
	if v := os.Getenv("REMINDR_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("REMINDR_EXTEND"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REMINDR_EXTEND: %w", err)
		}
		cfg.ExtendOffset = d
	}
	if v := os.Getenv("REMINDR_SOUND"); v != "" {
		cfg.SoundCommand = v
	}

	// Priority 1: CLI flags override everything
	if flags.StorePath != "" {
		cfg.StorePath = expandPath(flags.StorePath)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}
	if flags.ExtendOffset > 0 {
		cfg.ExtendOffset = flags.ExtendOffset
	}
	if flags.SoundCommand != "" {
		cfg.SoundCommand = flags.SoundCommand
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(s *Settings) error {
	if s.StorePath != "" {
		c.StorePath = expandPath(s.StorePath)
	}
	if s.Backend != "" {
		c.Backend = s.Backend
	}
	if s.ExtendOffset != "" {
		d, err := time.ParseDuration(s.ExtendOffset)
		if err != nil {
			return fmt.Errorf("extend_offset: %w", err)
		}
		c.ExtendOffset = d
	}
	if s.TickInterval != "" {
		d, err := time.ParseDuration(s.TickInterval)
		if err != nil {
			return fmt.Errorf("tick_interval: %w", err)
		}
		c.TickInterval = d
	}
	if s.SoundCommand != "" {
		c.SoundCommand = s.SoundCommand
	}
	if s.Bell != nil {
		c.Bell = *s.Bell
	}
	if s.Locale != "" {
		c.Locale = s.Locale
	}
	if s.DefaultSort != "" {
		c.DefaultSort = s.DefaultSort
	}
	return nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendBadger:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendBadger)
	}
	if c.ExtendOffset <= 0 {
		return fmt.Errorf("extend offset must be positive, got %s", c.ExtendOffset)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	switch c.DefaultSort {
	case "", "time", "title":
	default:
		return fmt.Errorf("unknown default_sort %q", c.DefaultSort)
	}
	return nil
}

// DataDir returns the directory holding the store (file or badger dir) and
// the log file.
func (c *Config) DataDir() string {
	return filepath.Dir(filepath.Clean(c.StorePath))
}

// GetDataDir returns the default data directory path
func GetDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "remindr"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "remindr"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "remindr", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "remindr", "config.yaml"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	bell := true
	settings := Settings{
		Backend:      BackendFile,
		ExtendOffset: DefaultExtendOffset.String(),
		TickInterval: DefaultTickInterval.String(),
		Bell:         &bell,
		Locale:       "und",
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
