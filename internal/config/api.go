package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/vibematch/pkg/formatting"
	"github.com/JaimeStill/vibematch/pkg/middleware"
)

const defaultMaxUploadSize = 16 * 1024 * 1024

var corsEnv = &middleware.CORSEnv{
	Enabled:          "VIBEMATCH_CORS_ENABLED",
	Origins:          "VIBEMATCH_CORS_ORIGINS",
	AllowedMethods:   "VIBEMATCH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "VIBEMATCH_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "VIBEMATCH_CORS_EXPOSED_HEADERS",
	AllowCredentials: "VIBEMATCH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "VIBEMATCH_CORS_MAX_AGE",
}

// APIConfig holds API routing, upload, and CORS settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	ImageRoot     string                `toml:"image_root"`
	CORS          middleware.CORSConfig `toml:"cors"`
}

// MaxUploadSizeBytes returns MaxUploadSize as a byte count.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return defaultMaxUploadSize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.ImageRoot != "" {
		c.ImageRoot = overlay.ImageRoot
	}

	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "16MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("VIBEMATCH_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("VIBEMATCH_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv("VIBEMATCH_API_IMAGE_ROOT"); v != "" {
		c.ImageRoot = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive: %s", c.MaxUploadSize)
	}
	return nil
}
