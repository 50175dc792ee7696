package api

import (
	"net/http"

	"github.com/JaimeStill/qualifier/pkg/openapi"
	"github.com/JaimeStill/qualifier/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, domain *Domain) ([]string, error) {
	groups := []routes.Group{
		domain.Leads.Handler().Routes(),
	}
	routes.Register(mux, groups...)

	if err := routes.Document(spec, groups...); err != nil {
		return nil, err
	}
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return routes.Patterns(groups...), nil
}
