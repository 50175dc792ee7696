package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/qualifier/pkg/handlers"
	"github.com/JaimeStill/qualifier/pkg/lifecycle"
	"github.com/JaimeStill/qualifier/pkg/module"
)

// StatusMessage is the body of GET / on the root router.
const StatusMessage = "API is online and ready."

// RegisterRoot adds the unprefixed routes: the status payload, the
// POST /qualify-lead form endpoint, and the health and readiness probes.
func RegisterRoot(router *module.Router, domain *Domain, checks lifecycle.Checks, logger *slog.Logger) {
	leadsHandler := domain.Leads.Handler()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": StatusMessage})
	})

	router.HandleNative("POST /qualify-lead", leadsHandler.Qualify)

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if pending := checks.Pending(); len(pending) > 0 {
			logger.Debug("readiness check failed", "pending", pending)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "not ready",
				"pending": pending,
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
