package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the resolved runtime configuration.
type Config struct {
	DBPath  string
	DataDir string
	Debug   bool
	Color   bool
}

// FileConfig represents the TOML configuration file. All fields are
// optional; absent fields fall back to defaults.
type FileConfig struct {
	DBPath *string `toml:"db-path"`
	Debug  *bool   `toml:"debug"`
	Color  *bool   `toml:"color"`
}

// loadFile reads a TOML config from the given path. Missing file is not an error.
func loadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Load resolves the configuration: defaults, then the TOML file, then
// environment overrides (CADENCE_CONFIG, CADENCE_DB, CADENCE_DEBUG).
func Load() (Config, error) {
	path := os.Getenv("CADENCE_CONFIG")
	if path == "" {
		path = DefaultConfigPath()
	}

	file, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:  DefaultDBPath(),
		DataDir: DefaultDataDir(),
		Color:   true,
	}
	if file.DBPath != nil && *file.DBPath != "" {
		cfg.DBPath = *file.DBPath
		cfg.DataDir = filepath.Dir(*file.DBPath)
	}
	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
	if file.Color != nil {
		cfg.Color = *file.Color
	}

	if v := os.Getenv("CADENCE_DB"); v != "" {
		cfg.DBPath = v
		cfg.DataDir = filepath.Dir(v)
	}
	if v := os.Getenv("CADENCE_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = false
	}

	return cfg, nil
}
