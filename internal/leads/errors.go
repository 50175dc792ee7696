package leads

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/qualifier/pkg/handlers"
	"github.com/JaimeStill/qualifier/pkg/storage"
)

// Domain errors for lead operations.
var (
	ErrNotFound  = errors.New("lead not found")
	ErrDuplicate = errors.New("lead already exists")
	ErrInvalidID = errors.New("invalid lead id")
)

// MapHTTPStatus maps lead and archive errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, handlers.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrNotConfigured),
		errors.Is(err, storage.ErrInvalidKey):
		return storage.MapHTTPStatus(err)
	default:
		return http.StatusInternalServerError
	}
}
