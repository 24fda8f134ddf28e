// Package config loads vibematch configuration from TOML files, an
// environment-specific overlay, and VIBEMATCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/pipeline"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvVibematchEnv             = "VIBEMATCH_ENV"
	EnvVibematchShutdownTimeout = "VIBEMATCH_SHUTDOWN_TIMEOUT"
	EnvVibematchVersion         = "VIBEMATCH_VERSION"
)

var serverEnv = &ServerEnv{
	Host:            "VIBEMATCH_SERVER_HOST",
	Port:            "VIBEMATCH_SERVER_PORT",
	ReadTimeout:     "VIBEMATCH_SERVER_READ_TIMEOUT",
	WriteTimeout:    "VIBEMATCH_SERVER_WRITE_TIMEOUT",
	ShutdownTimeout: "VIBEMATCH_SERVER_SHUTDOWN_TIMEOUT",
}

var pipelineEnv = &pipeline.Env{
	MaxAttempts:   "VIBEMATCH_PIPELINE_MAX_ATTEMPTS",
	Backoff:       "VIBEMATCH_PIPELINE_BACKOFF",
	Capacity:      "VIBEMATCH_PIPELINE_CAPACITY",
	FallbackLabel: "VIBEMATCH_PIPELINE_FALLBACK_LABEL",
	Guidance:      "VIBEMATCH_PIPELINE_GUIDANCE",
	InferTimeout:  "VIBEMATCH_PIPELINE_INFER_TIMEOUT",
}

var backgroundEnv = &background.Env{
	Provider:    "VIBEMATCH_BACKGROUND_PROVIDER",
	ModelPath:   "VIBEMATCH_BACKGROUND_MODEL_PATH",
	LibraryPath: "VIBEMATCH_BACKGROUND_LIBRARY_PATH",
	InputName:   "VIBEMATCH_BACKGROUND_INPUT_NAME",
	OutputName:  "VIBEMATCH_BACKGROUND_OUTPUT_NAME",
	Size:        "VIBEMATCH_BACKGROUND_SIZE",
	MaxPixels:   "VIBEMATCH_BACKGROUND_MAX_PIXELS",
}

// Config is the root configuration for the vibematch service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Pipeline        pipeline.Config      `toml:"pipeline"`
	Background      background.Config    `toml:"background"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the VIBEMATCH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvVibematchEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile is Load with an explicit base file path. The overlay is resolved
// next to the base file.
func LoadFile(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Background.Merge(&overlay.Background)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	// The server's write timeout is checked against the pipeline's run
	// budget, so the pipeline section is finalized first.
	if err := c.Pipeline.Finalize(pipelineEnv); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Server.Finalize(serverEnv, c.Pipeline.RunBudget()); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Background.Finalize(backgroundEnv); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvVibematchShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVibematchVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	if env := os.Getenv(EnvVibematchEnv); env != "" {
		path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
