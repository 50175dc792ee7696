// Package config loads the service configuration from TOML files, .env
// files, and QUALIFIER_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/internal/workflow"
	"github.com/JaimeStill/qualifier/pkg/database"
	"github.com/JaimeStill/qualifier/pkg/storage"
	"github.com/JaimeStill/qualifier/pkg/tracing"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvQualifierEnv             = "QUALIFIER_ENV"
	EnvQualifierShutdownTimeout = "QUALIFIER_SHUTDOWN_TIMEOUT"
	EnvQualifierVersion         = "QUALIFIER_VERSION"
	EnvQualifierLogLevel        = "QUALIFIER_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	Host:            "QUALIFIER_DB_HOST",
	Port:            "QUALIFIER_DB_PORT",
	Name:            "QUALIFIER_DB_NAME",
	User:            "QUALIFIER_DB_USER",
	Password:        "QUALIFIER_DB_PASSWORD",
	SSLMode:         "QUALIFIER_DB_SSL_MODE",
	MaxOpenConns:    "QUALIFIER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "QUALIFIER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "QUALIFIER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "QUALIFIER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "QUALIFIER_STORAGE_CONTAINER_NAME",
	ConnectionString: "QUALIFIER_STORAGE_CONNECTION_STRING",
	ServiceURL:       "QUALIFIER_STORAGE_SERVICE_URL",
}

var workflowEnv = &workflow.Env{
	EnrichmentTimeout:   "QUALIFIER_WORKFLOW_ENRICHMENT_TIMEOUT",
	ReasoningTimeout:    "QUALIFIER_WORKFLOW_REASONING_TIMEOUT",
	MaxReasoningRetries: "QUALIFIER_WORKFLOW_MAX_REASONING_RETRIES",
	PersistTimeout:      "QUALIFIER_WORKFLOW_PERSIST_TIMEOUT",
	RunTimeout:          "QUALIFIER_WORKFLOW_RUN_TIMEOUT",
}

var enrichmentEnv = &enrichment.Env{
	UserAgent:            "QUALIFIER_ENRICHMENT_USER_AGENT",
	URLTemplate:          "QUALIFIER_ENRICHMENT_URL_TEMPLATE",
	Timeout:              "QUALIFIER_ENRICHMENT_TIMEOUT",
	MaxBodySize:          "QUALIFIER_ENRICHMENT_MAX_BODY_SIZE",
	Rate:                 "QUALIFIER_ENRICHMENT_RATE",
	Burst:                "QUALIFIER_ENRICHMENT_BURST",
	MaxTrackedDomains:    "QUALIFIER_ENRICHMENT_MAX_TRACKED_DOMAINS",
	AllowPrivateNetworks: "QUALIFIER_ENRICHMENT_ALLOW_PRIVATE_NETWORKS",
	FreeMailDomains:      "QUALIFIER_ENRICHMENT_FREE_MAIL_DOMAINS",
}

var reasoningEnv = &reasoning.Env{
	BaseURL:              "QUALIFIER_REASONING_BASE_URL",
	Model:                "QUALIFIER_REASONING_MODEL",
	Temperature:          "QUALIFIER_REASONING_TEMPERATURE",
	DegradedMessageLimit: "QUALIFIER_REASONING_DEGRADED_MESSAGE_LIMIT",
}

var tracingEnv = &tracing.Env{
	Enabled:         "QUALIFIER_TRACING_ENABLED",
	Endpoint:        "QUALIFIER_TRACING_ENDPOINT",
	Insecure:        "QUALIFIER_TRACING_INSECURE",
	ServiceName:     "QUALIFIER_TRACING_SERVICE_NAME",
	SampleRatio:     "QUALIFIER_TRACING_SAMPLE_RATIO",
	BatchTimeout:    "QUALIFIER_TRACING_BATCH_TIMEOUT",
	ShutdownTimeout: "QUALIFIER_TRACING_SHUTDOWN_TIMEOUT",
}

// Config is the root configuration for the qualifier service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	API             APIConfig         `toml:"api"`
	Workflow        workflow.Config   `toml:"workflow"`
	Enrichment      enrichment.Config `toml:"enrichment"`
	Reasoning       reasoning.Config  `toml:"reasoning"`
	Tracing         tracing.Config    `toml:"tracing"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
	LogLevel        string            `toml:"log_level"`
}

// Env returns the QUALIFIER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvQualifierEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// Load reads .env (if present) into the process environment, then the base
// config (if present), applies any environment overlay, and finalizes all
// values. Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
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
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Workflow.Merge(&overlay.Workflow)
	c.Enrichment.Merge(&overlay.Enrichment)
	c.Reasoning.Merge(&overlay.Reasoning)
	c.Tracing.Merge(&overlay.Tracing)
}

// Finalize applies defaults, environment overrides, and validation to every
// section. Load calls it; tests and tools that build a Config by hand call
// it directly.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Workflow.Finalize(workflowEnv); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	if err := c.Enrichment.Finalize(enrichmentEnv); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}
	if err := c.Reasoning.Finalize(reasoningEnv); err != nil {
		return fmt.Errorf("reasoning: %w", err)
	}
	if err := c.Tracing.Finalize(tracingEnv); err != nil {
		return fmt.Errorf("tracing: %w", err)
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
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvQualifierShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvQualifierVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvQualifierLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
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

func overlayPath() string {
	if env := os.Getenv(EnvQualifierEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
