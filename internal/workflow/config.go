package workflow

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultReasoningRetries = 1

// Config holds per-run timeouts and the reasoning retry budget.
// MaxReasoningRetries is a pointer so an explicit 0 disables retries.
type Config struct {
	EnrichmentTimeout   string `toml:"enrichment_timeout"`
	ReasoningTimeout    string `toml:"reasoning_timeout"`
	MaxReasoningRetries *int   `toml:"max_reasoning_retries"`
	PersistTimeout      string `toml:"persist_timeout"`
	RunTimeout          string `toml:"run_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	EnrichmentTimeout   string
	ReasoningTimeout    string
	MaxReasoningRetries string
	PersistTimeout      string
	RunTimeout          string
}

// EnrichmentTimeoutDuration returns EnrichmentTimeout as a time.Duration.
func (c *Config) EnrichmentTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.EnrichmentTimeout)
	return d
}

// ReasoningTimeoutDuration returns ReasoningTimeout as a time.Duration.
func (c *Config) ReasoningTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReasoningTimeout)
	return d
}

// PersistTimeoutDuration returns PersistTimeout as a time.Duration.
func (c *Config) PersistTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PersistTimeout)
	return d
}

// RunTimeoutDuration returns RunTimeout as a time.Duration.
func (c *Config) RunTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RunTimeout)
	return d
}

// Retries returns the number of degraded reasoning retries.
func (c *Config) Retries() int {
	if c.MaxReasoningRetries == nil {
		return defaultReasoningRetries
	}
	return *c.MaxReasoningRetries
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
	if overlay.EnrichmentTimeout != "" {
		c.EnrichmentTimeout = overlay.EnrichmentTimeout
	}
	if overlay.ReasoningTimeout != "" {
		c.ReasoningTimeout = overlay.ReasoningTimeout
	}
	if overlay.MaxReasoningRetries != nil {
		n := *overlay.MaxReasoningRetries
		c.MaxReasoningRetries = &n
	}
	if overlay.PersistTimeout != "" {
		c.PersistTimeout = overlay.PersistTimeout
	}
	if overlay.RunTimeout != "" {
		c.RunTimeout = overlay.RunTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.EnrichmentTimeout == "" {
		c.EnrichmentTimeout = "5s"
	}
	if c.ReasoningTimeout == "" {
		c.ReasoningTimeout = "30s"
	}
	if c.MaxReasoningRetries == nil {
		n := defaultReasoningRetries
		c.MaxReasoningRetries = &n
	}
	if c.PersistTimeout == "" {
		c.PersistTimeout = "5s"
	}
	if c.RunTimeout == "" {
		c.RunTimeout = "2m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.EnrichmentTimeout != "" {
		if v := os.Getenv(env.EnrichmentTimeout); v != "" {
			c.EnrichmentTimeout = v
		}
	}
	if env.ReasoningTimeout != "" {
		if v := os.Getenv(env.ReasoningTimeout); v != "" {
			c.ReasoningTimeout = v
		}
	}
	if env.MaxReasoningRetries != "" {
		if v := os.Getenv(env.MaxReasoningRetries); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxReasoningRetries = &n
			}
		}
	}
	if env.PersistTimeout != "" {
		if v := os.Getenv(env.PersistTimeout); v != "" {
			c.PersistTimeout = v
		}
	}
	if env.RunTimeout != "" {
		if v := os.Getenv(env.RunTimeout); v != "" {
			c.RunTimeout = v
		}
	}
}

func (c *Config) validate() error {
	durations := []struct {
		name  string
		value string
	}{
		{"enrichment_timeout", c.EnrichmentTimeout},
		{"reasoning_timeout", c.ReasoningTimeout},
		{"persist_timeout", c.PersistTimeout},
		{"run_timeout", c.RunTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive", d.name)
		}
	}
	if c.Retries() < 0 {
		return fmt.Errorf("max_reasoning_retries must be non-negative")
	}
	return nil
}
