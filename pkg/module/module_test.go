package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/qualifier/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			assert.Panics(t, func() { module.New(prefix, http.NewServeMux()) })
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	inner := http.NewServeMux()
	var innerPath string
	inner.HandleFunc("GET /leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		innerPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	api := module.New("/api", inner)
	var hits int
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(api)
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads/42/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/leads/42", innerPath)
	assert.Equal(t, 1, hits)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, hits, "native routes bypass module middleware")
}

func TestMountDuplicatePanics(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", http.NewServeMux()))

	assert.Panics(t, func() { router.Mount(module.New("/api", http.NewServeMux())) })
	assert.Equal(t, []string{"/api"}, router.Prefixes())
}
