package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/vibematch/internal/matching"
)

// Config holds the retry policy and admission capacity for prediction runs.
// Guidance is appended to the built-in task instructions of the prompt.
type Config struct {
	MaxAttempts   int    `toml:"max_attempts"`
	Backoff       string `toml:"backoff"`
	Capacity      int    `toml:"capacity"`
	FallbackLabel string `toml:"fallback_label"`
	Guidance      string `toml:"guidance"`
	InferTimeout  string `toml:"infer_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MaxAttempts   string
	Backoff       string
	Capacity      string
	FallbackLabel string
	Guidance      string
	InferTimeout  string
}

// BackoffDuration returns Backoff as a time.Duration.
func (c *Config) BackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.Backoff)
	return d
}

// InferTimeoutDuration returns InferTimeout as a time.Duration.
func (c *Config) InferTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.InferTimeout)
	return d
}

// RunBudget is the longest a run can spend in matching: every attempt
// reaching its inference timeout plus the backoff between attempts.
func (c *Config) RunBudget() time.Duration {
	attempts := time.Duration(c.MaxAttempts)
	return attempts*c.InferTimeoutDuration() + (attempts-1)*c.BackoffDuration()
}

// Matching returns the orchestrator settings carried by c.
func (c *Config) Matching() matching.Config {
	return matching.Config{
		MaxAttempts:   c.MaxAttempts,
		Backoff:       c.BackoffDuration(),
		InferTimeout:  c.InferTimeoutDuration(),
		FallbackLabel: c.FallbackLabel,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.Backoff != "" {
		c.Backoff = overlay.Backoff
	}
	if overlay.Capacity != 0 {
		c.Capacity = overlay.Capacity
	}
	if overlay.FallbackLabel != "" {
		c.FallbackLabel = overlay.FallbackLabel
	}
	if overlay.Guidance != "" {
		c.Guidance = overlay.Guidance
	}
	if overlay.InferTimeout != "" {
		c.InferTimeout = overlay.InferTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.Backoff == "" {
		c.Backoff = "1s"
	}
	if c.Capacity == 0 {
		c.Capacity = 3
	}
	if c.FallbackLabel == "" {
		c.FallbackLabel = "cat"
	}
	if c.InferTimeout == "" {
		c.InferTimeout = "60s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxAttempts != "" {
		if v := os.Getenv(env.MaxAttempts); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxAttempts = n
			}
		}
	}
	if env.Backoff != "" {
		if v := os.Getenv(env.Backoff); v != "" {
			c.Backoff = v
		}
	}
	if env.Capacity != "" {
		if v := os.Getenv(env.Capacity); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Capacity = n
			}
		}
	}
	if env.FallbackLabel != "" {
		if v := os.Getenv(env.FallbackLabel); v != "" {
			c.FallbackLabel = v
		}
	}
	if env.Guidance != "" {
		if v := os.Getenv(env.Guidance); v != "" {
			c.Guidance = v
		}
	}
	if env.InferTimeout != "" {
		if v := os.Getenv(env.InferTimeout); v != "" {
			c.InferTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1: %d", c.MaxAttempts)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1: %d", c.Capacity)
	}
	d, err := time.ParseDuration(c.Backoff)
	if err != nil {
		return fmt.Errorf("invalid backoff: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("backoff must be positive: %s", c.Backoff)
	}
	d, err = time.ParseDuration(c.InferTimeout)
	if err != nil {
		return fmt.Errorf("invalid infer_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("infer_timeout must be positive: %s", c.InferTimeout)
	}
	return nil
}
