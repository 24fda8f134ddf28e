package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// writeMargin is added on top of the read timeout and the matching budget
// when write_timeout is derived, leaving room for background removal and the
// response itself.
const writeMargin = 30 * time.Second

// ServerConfig holds HTTP listener parameters. A prediction is answered on
// the request that uploaded the image, so WriteTimeout must outlast the
// slowest matching run or clients see a dropped connection instead of a
// labeled failure.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// ServerEnv maps ServerConfig fields to environment variable names.
type ServerEnv struct {
	Host            string
	Port            string
	ReadTimeout     string
	WriteTimeout    string
	ShutdownTimeout string
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
// runBudget is the worst-case matching time for one request; an unset
// write_timeout is derived from it and an explicit one must exceed it.
func (c *ServerConfig) Finalize(env *ServerEnv, runBudget time.Duration) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = (c.ReadTimeoutDuration() + runBudget + writeMargin).String()
	}
	return c.validate(runBudget)
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "1m"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
}

func (c *ServerConfig) loadEnv(env *ServerEnv) {
	lookup := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	lookup(env.Host, &c.Host)
	lookup(env.ReadTimeout, &c.ReadTimeout)
	lookup(env.WriteTimeout, &c.WriteTimeout)
	lookup(env.ShutdownTimeout, &c.ShutdownTimeout)

	var port string
	lookup(env.Port, &port)
	if n, err := strconv.Atoi(port); err == nil {
		c.Port = n
	}
}

func (c *ServerConfig) validate(runBudget time.Duration) error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	write, err := time.ParseDuration(c.WriteTimeout)
	if err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	if write <= runBudget {
		return fmt.Errorf(
			"write_timeout %s does not cover a worst-case matching run of %s; raise it or lower pipeline max_attempts, infer_timeout, or backoff",
			write, runBudget,
		)
	}
	return nil
}
