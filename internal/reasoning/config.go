package reasoning

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds text-completion provider settings.
// Temperature is a pointer so an explicit 0 survives Merge.
type Config struct {
	BaseURL              string   `toml:"base_url"`
	Model                string   `toml:"model"`
	Temperature          *float64 `toml:"temperature"`
	DegradedMessageLimit int      `toml:"degraded_message_limit"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL              string
	Model                string
	Temperature          string
	DegradedMessageLimit string
}

// TemperatureValue returns the sampling temperature, 0 when unset.
func (c *Config) TemperatureValue() float64 {
	if c.Temperature == nil {
		return 0
	}
	return *c.Temperature
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
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != nil {
		t := *overlay.Temperature
		c.Temperature = &t
	}
	if overlay.DegradedMessageLimit != 0 {
		c.DegradedMessageLimit = overlay.DegradedMessageLimit
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "llama3"
	}
	if c.DegradedMessageLimit == 0 {
		c.DegradedMessageLimit = 500
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Temperature != "" {
		if v := os.Getenv(env.Temperature); v != "" {
			if t, err := strconv.ParseFloat(v, 64); err == nil {
				c.Temperature = &t
			}
		}
	}
	if env.DegradedMessageLimit != "" {
		if v := os.Getenv(env.DegradedMessageLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DegradedMessageLimit = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if t := c.TemperatureValue(); t < 0 || t > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.DegradedMessageLimit < 1 {
		return fmt.Errorf("degraded_message_limit must be positive")
	}
	return nil
}
