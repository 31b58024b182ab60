package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvNoColor  = "ALUNOS_NO_COLOR"
	EnvNoPause  = "ALUNOS_NO_PAUSE"
	EnvHistory  = "ALUNOS_HISTORY"
	EnvLogLevel = "ALUNOS_LOG_LEVEL"
	EnvDemo     = "ALUNOS_DEMO"
)

// Config represents the flat session configuration
type Config struct {
	NoColor  bool   `json:"no_color,omitempty"`
	NoPause  bool   `json:"no_pause,omitempty"`  // skip "press ENTER" after each operation
	History  bool   `json:"history,omitempty"`   // print the audit trail on exit
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Demo     bool   `json:"demo,omitempty"`      // start with fixture students
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{LogLevel: "warn"}
}

// Path returns the config file location for a directory.
func Path(dir string) string {
	return filepath.Join(dir, ".alunos", "config.json")
}

// LoadConfig reads .alunos/config.json from the specified directory.
// A missing file is not an error: defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	return LoadFile(Path(dir))
}

// LoadFile reads a config file from an explicit path.
// A missing file is not an error: defaults are returned.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}

	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	alunosDir := filepath.Dir(Path(dir))
	if err := os.MkdirAll(alunosDir, 0755); err != nil {
		return fmt.Errorf("failed to create .alunos dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv loads a .env file from dir when present and applies ALUNOS_*
// overrides. NO_COLOR (https://no-color.org) is honored as well.
func (c *Config) ApplyEnv(dir string) error {
	envFile := filepath.Join(dir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.NoColor = true
	}

	for name, dst := range map[string]*bool{
		EnvNoColor: &c.NoColor,
		EnvNoPause: &c.NoPause,
		EnvHistory: &c.History,
		EnvDemo:    &c.Demo,
	} {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*dst = b
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = strings.TrimSpace(v)
	}

	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to warn.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
