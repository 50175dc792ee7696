package leads

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/pkg/handlers"
	"github.com/JaimeStill/qualifier/pkg/pagination"
	"github.com/JaimeStill/qualifier/pkg/routes"
)

// Handler provides HTTP endpoints for lead operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	maxBody    int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler. maxBody caps JSON request bodies in bytes.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBody int64,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "leads"),
		pagination: pagination,
		maxBody:    maxBody,
	}
}

// Routes returns the route group definition for lead endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/leads",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: listOp},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: findOp},
			{Method: "GET", Pattern: "/{id}/audit", Handler: h.Audit, OpenAPI: auditOp},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: searchOp},
			{Method: "POST", Pattern: "/qualify", Handler: h.Qualify, OpenAPI: qualifyOp},
		},
	}
}

// List returns a paginated list of leads with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single lead by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	l, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, l)
}

// Audit returns the archived run snapshot for a lead.
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	a, err := h.sys.Audit(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching leads.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[SearchRequest](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Qualify runs the workflow for a {name, email, message} body and returns
// the result with 201. Invalid leads still produce a result; only an
// unreadable body is rejected.
func (h *Handler) Qualify(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[QualifyCommand](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, decodeStatus(err), err)
		return
	}

	result := h.sys.Qualify(r.Context(), cmd)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func decodeStatus(err error) int {
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusBadRequest
}
