package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	Manifest   string     `toml:"manifest"` // default repository manifest path
	ScanDir    string     `toml:"scan_dir"` // default directory to scan for working copies
	UISettings UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTool    bool `toml:"show_tool"`    // annotate entries with their SCM tool
	AnimationMS int  `toml:"animation_ms"` // search box expand/collapse duration
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// service is the concrete implementation
type service struct {
	filePath string
}

// NewService creates a new config service rooted in the user config dir
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "repopick")
	os.MkdirAll(appDir, 0755)

	return &service{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// Load loads the configuration, falling back to defaults when absent
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return Default(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to the default location
func (s *service) Save(config *Config) error {
	return s.SaveToPath(config, s.filePath)
}

// LoadFromPath loads configuration from a specific path
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UISettings.AnimationMS <= 0 {
		cfg.UISettings.AnimationMS = Default().UISettings.AnimationMS
	}
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (s *service) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		UISettings: UISettings{
			ShowTool:    true,
			AnimationMS: 200,
		},
	}
}
