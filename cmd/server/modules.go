package main

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/qualifier/internal/api"
	"github.com/JaimeStill/qualifier/internal/config"
	"github.com/JaimeStill/qualifier/internal/infrastructure"
	"github.com/JaimeStill/qualifier/pkg/middleware"
	"github.com/JaimeStill/qualifier/pkg/module"
)

// Modules holds the prefixed modules mounted on the root router.
type Modules struct {
	API    *module.Module
	Domain *api.Domain
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		Domain: domain,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

// buildRouter mounts the modules and the root routes.
func buildRouter(infra *infrastructure.Infrastructure, modules *Modules) *module.Router {
	router := module.NewRouter()
	modules.Mount(router)
	api.RegisterRoot(router, modules.Domain, infra.Checks(), infra.Logger)
	return router
}

// serverMiddleware is applied around the whole router so root routes and
// modules share panic recovery, tracing, and request logging.
func serverMiddleware(logger *slog.Logger, tp trace.TracerProvider) middleware.System {
	mw := middleware.New()
	mw.Use(middleware.Recover(logger))
	mw.Use(middleware.Trace(tp))
	mw.Use(middleware.Logger(logger.With("system", "http")))
	return mw
}
