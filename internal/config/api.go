package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/qualifier/pkg/formatting"
	"github.com/JaimeStill/qualifier/pkg/middleware"
	"github.com/JaimeStill/qualifier/pkg/openapi"
	"github.com/JaimeStill/qualifier/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "QUALIFIER_CORS_ENABLED",
	Origins:          "QUALIFIER_CORS_ORIGINS",
	AllowedMethods:   "QUALIFIER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "QUALIFIER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "QUALIFIER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "QUALIFIER_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "QUALIFIER_OPENAPI_TITLE",
	Description: "QUALIFIER_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "QUALIFIER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "QUALIFIER_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request limits, CORS, OpenAPI metadata, and
// pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	OpenAPI     openapi.Config        `toml:"openapi"`
	Pagination  pagination.Config     `toml:"pagination"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes. Validation guarantees it parses.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxBodySize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("QUALIFIER_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("QUALIFIER_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	return nil
}
