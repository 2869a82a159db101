// Package config loads server configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"chartwise/internal/datasource"
)

const defaultConfigFile = "config.yaml"

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StoreConfig controls chart state persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig       `yaml:"server"`
	LogMode   string             `yaml:"log_mode"`
	Store     StoreConfig        `yaml:"store"`
	UploadDir string             `yaml:"upload_dir"`
	Database  *datasource.Config `yaml:"database"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8001",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:3001",
				"http://127.0.0.1:3000",
			},
		},
		LogMode:   "development",
		Store:     StoreConfig{Path: "./data/chart_state.json"},
		UploadDir: "./uploads",
	}
}

// Load reads the configuration file at path and applies environment
// overrides. With an empty path it falls back to ./config.yaml and
// tolerates its absence; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.Database != nil {
		cfg.Database.Normalize()
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHARTWISE_ADDR"); v != "" {
		cfg.Server.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if v := os.Getenv("CHARTWISE_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("CHARTWISE_STATE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("CHARTWISE_UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("CHARTWISE_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.Server.CORSOrigins = origins
	}
}
