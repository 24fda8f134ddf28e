package background

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// ProviderONNX runs a u2netp-style salient object model through ONNX Runtime.
	ProviderONNX = "onnx"
	// ProviderNone skips segmentation and only flattens the image onto white.
	ProviderNone = "none"

	// DefaultMaxPixels bounds the declared width × height of an input image.
	DefaultMaxPixels = 40_000_000
)

// Config holds background removal parameters.
type Config struct {
	Provider    string `toml:"provider"`
	ModelPath   string `toml:"model_path"`
	LibraryPath string `toml:"library_path"`
	InputName   string `toml:"input_name"`
	OutputName  string `toml:"output_name"`
	Size        int    `toml:"size"`
	MaxPixels   int    `toml:"max_pixels"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider    string
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	Size        string
	MaxPixels   string
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
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.ModelPath != "" {
		c.ModelPath = overlay.ModelPath
	}
	if overlay.LibraryPath != "" {
		c.LibraryPath = overlay.LibraryPath
	}
	if overlay.InputName != "" {
		c.InputName = overlay.InputName
	}
	if overlay.OutputName != "" {
		c.OutputName = overlay.OutputName
	}
	if overlay.Size != 0 {
		c.Size = overlay.Size
	}
	if overlay.MaxPixels != 0 {
		c.MaxPixels = overlay.MaxPixels
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderONNX
	}
	if c.ModelPath == "" {
		c.ModelPath = "models/u2netp.onnx"
	}
	if c.InputName == "" {
		c.InputName = "input.1"
	}
	if c.OutputName == "" {
		c.OutputName = "1959"
	}
	if c.Size == 0 {
		c.Size = 320
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = DefaultMaxPixels
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.ModelPath != "" {
		if v := os.Getenv(env.ModelPath); v != "" {
			c.ModelPath = v
		}
	}
	if env.LibraryPath != "" {
		if v := os.Getenv(env.LibraryPath); v != "" {
			c.LibraryPath = v
		}
	}
	if env.InputName != "" {
		if v := os.Getenv(env.InputName); v != "" {
			c.InputName = v
		}
	}
	if env.OutputName != "" {
		if v := os.Getenv(env.OutputName); v != "" {
			c.OutputName = v
		}
	}
	if env.Size != "" {
		if v := os.Getenv(env.Size); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Size = n
			}
		}
	}
	if env.MaxPixels != "" {
		if v := os.Getenv(env.MaxPixels); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxPixels = n
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderONNX:
		if c.ModelPath == "" {
			return fmt.Errorf("model_path required for provider %q", c.Provider)
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Size < 1 {
		return fmt.Errorf("size must be positive: %d", c.Size)
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("max_pixels must be positive: %d", c.MaxPixels)
	}
	return nil
}
