package routes

import (
	"net/http"

	"github.com/JaimeStill/qualifier/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler. OpenAPI is optional
// and only consulted when the route is documented.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
