package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Engine    EngineConfig    `yaml:"engine"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig guards the API. An empty key leaves the API open, which is the
// expected setup behind tsnet.
type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type EngineConfig struct {
	// RegistryPath points at a YAML registry; empty uses the built-in one.
	RegistryPath          string `yaml:"registry_path"`
	MaxBlocks             int    `yaml:"max_blocks"`
	MiniBlockSpacingWeeks int    `yaml:"mini_block_spacing_weeks"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level to slog. Unknown values fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Engine: EngineConfig{MaxBlocks: 100, MiniBlockSpacingWeeks: 2},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Values missing from the file keep their defaults.
// Env vars use the prefix PERIODIZE_ and underscore-separated paths:
//
//	PERIODIZE_SERVER_HOST, PERIODIZE_SERVER_PORT, PERIODIZE_AUTH_API_KEY,
//	PERIODIZE_TAILSCALE_ENABLED, PERIODIZE_TAILSCALE_HOSTNAME,
//	PERIODIZE_TAILSCALE_STATE_DIR, PERIODIZE_ENGINE_REGISTRY_PATH,
//	PERIODIZE_ENGINE_MAX_BLOCKS, PERIODIZE_ENGINE_MINI_BLOCK_SPACING_WEEKS,
//	PERIODIZE_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a config from defaults plus environment overrides, for
// binaries started without a config file.
func FromEnv() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PERIODIZE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PERIODIZE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PERIODIZE_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("PERIODIZE_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("PERIODIZE_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("PERIODIZE_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("PERIODIZE_ENGINE_REGISTRY_PATH"); v != "" {
		cfg.Engine.RegistryPath = v
	}
	if v := os.Getenv("PERIODIZE_ENGINE_MAX_BLOCKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MaxBlocks = n
		}
	}
	if v := os.Getenv("PERIODIZE_ENGINE_MINI_BLOCK_SPACING_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MiniBlockSpacingWeeks = n
		}
	}
	if v := os.Getenv("PERIODIZE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Engine.MaxBlocks <= 0 {
		return fmt.Errorf("engine.max_blocks must be positive")
	}
	if c.Engine.MiniBlockSpacingWeeks <= 0 {
		return fmt.Errorf("engine.mini_block_spacing_weeks must be positive")
	}
	return nil
}
