// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/qualifier/internal/config"
	"github.com/JaimeStill/qualifier/internal/infrastructure"
	"github.com/JaimeStill/qualifier/internal/leads"
	"github.com/JaimeStill/qualifier/pkg/middleware"
	"github.com/JaimeStill/qualifier/pkg/module"
	"github.com/JaimeStill/qualifier/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
// The domain is returned as well so root-level routes can share its systems.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	patterns, err := registerRoutes(mux, NewSpec(cfg), domain)
	if err != nil {
		return nil, nil, err
	}
	runtime.Logger.Debug("api routes registered", "base_path", cfg.API.BasePath, "routes", patterns)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, domain, nil
}

// NewSpec creates the OpenAPI document skeleton for the API module. Paths are
// relative to the module base path, which is recorded as the server URL.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(leads.Schemas())
	return spec
}
