package tracing

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultSampleRatio = 1.0

// Config holds OpenTelemetry trace export settings.
// SampleRatio is a pointer so an explicit 0 survives Merge.
type Config struct {
	Enabled         bool     `toml:"enabled"`
	Endpoint        string   `toml:"endpoint"`
	Insecure        bool     `toml:"insecure"`
	ServiceName     string   `toml:"service_name"`
	SampleRatio     *float64 `toml:"sample_ratio"`
	BatchTimeout    string   `toml:"batch_timeout"`
	ShutdownTimeout string   `toml:"shutdown_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled         string
	Endpoint        string
	Insecure        string
	ServiceName     string
	SampleRatio     string
	BatchTimeout    string
	ShutdownTimeout string
}

// Ratio returns the fraction of root traces sampled.
func (c *Config) Ratio() float64 {
	if c.SampleRatio == nil {
		return defaultSampleRatio
	}
	return *c.SampleRatio
}

// BatchTimeoutDuration returns BatchTimeout as a time.Duration.
func (c *Config) BatchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.BatchTimeout)
	return d
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
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
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Insecure {
		c.Insecure = true
	}
	if overlay.ServiceName != "" {
		c.ServiceName = overlay.ServiceName
	}
	if overlay.SampleRatio != nil {
		r := *overlay.SampleRatio
		c.SampleRatio = &r
	}
	if overlay.BatchTimeout != "" {
		c.BatchTimeout = overlay.BatchTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4317"
	}
	if c.ServiceName == "" {
		c.ServiceName = "qualifier"
	}
	if c.BatchTimeout == "" {
		c.BatchTimeout = "5s"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = b
			}
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.Insecure != "" {
		if v := os.Getenv(env.Insecure); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Insecure = b
			}
		}
	}
	if env.ServiceName != "" {
		if v := os.Getenv(env.ServiceName); v != "" {
			c.ServiceName = v
		}
	}
	if env.SampleRatio != "" {
		if v := os.Getenv(env.SampleRatio); v != "" {
			if r, err := strconv.ParseFloat(v, 64); err == nil {
				c.SampleRatio = &r
			}
		}
	}
	if env.BatchTimeout != "" {
		if v := os.Getenv(env.BatchTimeout); v != "" {
			c.BatchTimeout = v
		}
	}
	if env.ShutdownTimeout != "" {
		if v := os.Getenv(env.ShutdownTimeout); v != "" {
			c.ShutdownTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.Enabled && c.Endpoint == "" {
		return fmt.Errorf("endpoint required when tracing is enabled")
	}
	if r := c.Ratio(); r < 0 || r > 1 {
		return fmt.Errorf("sample_ratio must be between 0 and 1")
	}
	if _, err := time.ParseDuration(c.BatchTimeout); err != nil {
		return fmt.Errorf("invalid batch_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}
