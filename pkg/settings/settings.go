// Package settings manages persistent user settings for the fabricgen CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default locations used when a setting is unset.
const (
	DefaultVarsDir   = "vars"
	DefaultOutputDir = "host_vars"
	DefaultRedisAddr = "127.0.0.1:6379"
)

// Settings holds persistent user preferences
type Settings struct {
	// VarsDir is the input directory read when --vars is not specified
	VarsDir string `json:"vars_dir,omitempty"`

	// OutputDir is where the file sink writes per-device documents
	OutputDir string `json:"output_dir,omitempty"`

	// RedisAddr is the address of the Redis sink
	RedisAddr string `json:"redis_addr,omitempty"`

	// RedisDB selects the Redis database of the Redis sink
	RedisDB int `json:"redis_db,omitempty"`

	// Format is the default output format of show (table, yaml, json)
	Format string `json:"format,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fabricgen_settings.json"
	}
	return filepath.Join(home, ".fabricgen", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path. A missing file yields
// empty settings.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetVarsDir returns the vars directory (with fallback)
func (s *Settings) GetVarsDir() string {
	if s.VarsDir != "" {
		return s.VarsDir
	}
	return DefaultVarsDir
}

// GetOutputDir returns the output directory (with fallback)
func (s *Settings) GetOutputDir() string {
	if s.OutputDir != "" {
		return s.OutputDir
	}
	return DefaultOutputDir
}

// GetRedisAddr returns the Redis address (with fallback)
func (s *Settings) GetRedisAddr() string {
	if s.RedisAddr != "" {
		return s.RedisAddr
	}
	return DefaultRedisAddr
}

// Keys lists the names accepted by Get and Set, in display order.
var Keys = []string{"vars_dir", "output_dir", "redis_addr", "redis_db", "format"}

// Get returns the raw value of a setting, "" when unset.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "vars_dir":
		return s.VarsDir, nil
	case "output_dir":
		return s.OutputDir, nil
	case "redis_addr":
		return s.RedisAddr, nil
	case "redis_db":
		if s.RedisDB == 0 {
			return "", nil
		}
		return strconv.Itoa(s.RedisDB), nil
	case "format":
		return s.Format, nil
	}
	return "", fmt.Errorf("unknown setting: %s (valid: %s)", key, strings.Join(Keys, ", "))
}

// Set assigns a setting from its string form.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "vars_dir":
		s.VarsDir = value
	case "output_dir":
		s.OutputDir = value
	case "redis_addr":
		s.RedisAddr = value
	case "redis_db":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("redis_db must be a non-negative integer, got %q", value)
		}
		s.RedisDB = n
	case "format":
		switch value {
		case "table", "yaml", "json":
		default:
			return fmt.Errorf("format must be table, yaml or json, got %q", value)
		}
		s.Format = value
	default:
		return fmt.Errorf("unknown setting: %s (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
