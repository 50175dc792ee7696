package enrichment

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/qualifier/pkg/formatting"
)

// Config holds enrichment lookup settings.
//
// AllowPrivateNetworks disables the guard that refuses connections to
// loopback, private, and link-local addresses. Only tests and local
// development against a stub homepage server should set it.
type Config struct {
	UserAgent            string   `toml:"user_agent"`
	URLTemplate          string   `toml:"url_template"`
	Timeout              string   `toml:"timeout"`
	MaxBodySize          string   `toml:"max_body_size"`
	Rate                 float64  `toml:"rate"`
	Burst                int      `toml:"burst"`
	MaxTrackedDomains    int      `toml:"max_tracked_domains"`
	AllowPrivateNetworks bool     `toml:"allow_private_networks"`
	FreeMailDomains      []string `toml:"free_mail_domains"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	UserAgent            string
	URLTemplate          string
	Timeout              string
	MaxBodySize          string
	Rate                 string
	Burst                string
	MaxTrackedDomains    string
	AllowPrivateNetworks string
	FreeMailDomains      string
}

var defaultFreeMail = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"live.com",
	"aol.com",
	"icloud.com",
	"me.com",
	"proton.me",
	"protonmail.com",
	"gmx.com",
	"mail.com",
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *Config) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024
	}
	return size
}

// URL renders the homepage URL for domain.
func (c *Config) URL(domain string) string {
	return fmt.Sprintf(c.URLTemplate, domain)
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
	if overlay.UserAgent != "" {
		c.UserAgent = overlay.UserAgent
	}
	if overlay.URLTemplate != "" {
		c.URLTemplate = overlay.URLTemplate
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.Rate != 0 {
		c.Rate = overlay.Rate
	}
	if overlay.Burst != 0 {
		c.Burst = overlay.Burst
	}
	if overlay.MaxTrackedDomains != 0 {
		c.MaxTrackedDomains = overlay.MaxTrackedDomains
	}
	if overlay.AllowPrivateNetworks {
		c.AllowPrivateNetworks = true
	}
	if len(overlay.FreeMailDomains) > 0 {
		c.FreeMailDomains = overlay.FreeMailDomains
	}
}

func (c *Config) loadDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = "qualifier/0.1 (+lead enrichment)"
	}
	if c.URLTemplate == "" {
		c.URLTemplate = "https://%s"
	}
	if c.Timeout == "" {
		c.Timeout = "5s"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.Rate == 0 {
		c.Rate = 1
	}
	if c.Burst == 0 {
		c.Burst = 2
	}
	if c.MaxTrackedDomains == 0 {
		c.MaxTrackedDomains = 10000
	}
	if len(c.FreeMailDomains) == 0 {
		c.FreeMailDomains = append([]string(nil), defaultFreeMail...)
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.UserAgent != "" {
		if v := os.Getenv(env.UserAgent); v != "" {
			c.UserAgent = v
		}
	}
	if env.URLTemplate != "" {
		if v := os.Getenv(env.URLTemplate); v != "" {
			c.URLTemplate = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxBodySize != "" {
		if v := os.Getenv(env.MaxBodySize); v != "" {
			c.MaxBodySize = v
		}
	}
	if env.Rate != "" {
		if v := os.Getenv(env.Rate); v != "" {
			if r, err := strconv.ParseFloat(v, 64); err == nil {
				c.Rate = r
			}
		}
	}
	if env.Burst != "" {
		if v := os.Getenv(env.Burst); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Burst = n
			}
		}
	}
	if env.MaxTrackedDomains != "" {
		if v := os.Getenv(env.MaxTrackedDomains); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxTrackedDomains = n
			}
		}
	}
	if env.AllowPrivateNetworks != "" {
		if v := os.Getenv(env.AllowPrivateNetworks); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.AllowPrivateNetworks = b
			}
		}
	}
	if env.FreeMailDomains != "" {
		if v := os.Getenv(env.FreeMailDomains); v != "" {
			domains := strings.Split(v, ",")
			for i, d := range domains {
				domains[i] = strings.TrimSpace(d)
			}
			c.FreeMailDomains = domains
		}
	}
}

func (c *Config) validate() error {
	if !strings.Contains(c.URLTemplate, "%s") {
		return fmt.Errorf("url_template must contain %%s")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("rate must be positive")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be positive")
	}
	if c.MaxTrackedDomains < 1 {
		return fmt.Errorf("max_tracked_domains must be positive")
	}
	return nil
}
