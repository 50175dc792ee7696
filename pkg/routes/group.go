package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/qualifier/pkg/openapi"
)

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

// Patterns returns the mux patterns the groups register, in declaration order.
func Patterns(groups ...Group) []string {
	var out []string
	for _, group := range groups {
		out = appendPatterns(out, "", group)
	}
	return out
}

func appendPatterns(out []string, parentPrefix string, group Group) []string {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		out = append(out, route.Method+" "+fullPrefix+route.Pattern)
	}
	for _, child := range group.Children {
		out = appendPatterns(out, fullPrefix, child)
	}
	return out
}

// Document adds every route that carries an OpenAPI operation to spec.
// Paths are recorded relative to the mux the groups are registered on.
func Document(spec *openapi.Spec, groups ...Group) error {
	for _, group := range groups {
		if err := documentGroup(spec, "", group); err != nil {
			return err
		}
	}
	return nil
}

func documentGroup(spec *openapi.Spec, parentPrefix string, group Group) error {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}
		path := strings.TrimSuffix(fullPrefix+route.Pattern, "{$}")
		if path == "" {
			path = "/"
		}
		if err := spec.AddOperation(path, route.Method, route.OpenAPI); err != nil {
			return err
		}
	}
	for _, child := range group.Children {
		if err := documentGroup(spec, fullPrefix, child); err != nil {
			return err
		}
	}
	return nil
}
