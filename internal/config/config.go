// Package config loads toonify settings from YAML files, a .env file and
// TOONIFY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/toonify/internal/store"
)

// FileName is the per-project config file looked up in the working directory.
const FileName = ".toonify.yaml"

// Config holds user settings.
type Config struct {
	Compact        bool          `yaml:"compact"`
	EstimateTokens bool          `yaml:"estimate_tokens"`
	History        HistoryConfig `yaml:"history"`
	Server         ServerConfig  `yaml:"server"`
}

// HistoryConfig controls the conversion history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CorsOrigins []string `yaml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			Enabled: true,
			Path:    store.DefaultHistoryPath(),
		},
		Server: ServerConfig{
			Port:        "8080",
			CorsOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration. An explicit path must exist; otherwise
// ./.toonify.yaml and ~/.toonify/config.yaml are tried in that order.
func Load(explicitPath string) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil {
		slog.Debug("skipping .env", "error", err)
	}

	path, err := resolvePath(explicitPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		slog.Debug("loaded config", "path", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	candidates := []string{FileName}
	if global, err := store.GlobalToonifyPath(); err == nil {
		candidates = append(candidates, filepath.Join(global, "config.yaml"))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	bools := []struct {
		name string
		dst  *bool
	}{
		{"TOONIFY_COMPACT", &c.Compact},
		{"TOONIFY_ESTIMATE_TOKENS", &c.EstimateTokens},
		{"TOONIFY_HISTORY", &c.History.Enabled},
	}
	for _, b := range bools {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.name, err)
		}
		*b.dst = parsed
	}

	if v := os.Getenv("TOONIFY_HISTORY_DB"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("TOONIFY_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("TOONIFY_CORS_ORIGINS"); v != "" {
		c.Server.CorsOrigins = splitOrigins(v)
	}
	return nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Validate checks the server settings. Only commands that listen call it.
func (c *Config) Validate() error {
	if err := validatePort(c.Server.Port); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
