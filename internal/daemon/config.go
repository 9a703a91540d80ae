// Package daemon manages the Vigor server lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all server configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Scoring   ScoringConfig   `toml:"scoring"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// ScoringConfig controls engine defaults.
type ScoringConfig struct {
	DefaultBaseline float64 `toml:"default_baseline"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := vigorHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8480,
			CORSOrigins: []string{"*"},
		},
		Scoring: ScoringConfig{
			DefaultBaseline: 290,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "vigor.log"),
		},
	}
}

// LoadConfig reads config from ~/.vigor/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(vigorHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.vigor/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(vigorHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// vigorHome returns the Vigor data directory.
func vigorHome() string {
	if env := os.Getenv("VIGOR_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vigor")
}

// VigorHome is exported for use by other packages.
func VigorHome() string {
	return vigorHome()
}
