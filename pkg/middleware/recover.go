package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/qualifier/pkg/handlers"
)

var errInternal = errors.New("internal server error")

// Recover converts a handler panic into a 500 response so one bad request
// cannot take down the listener.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rv := recover()
				if rv == nil {
					return
				}
				if rv == http.ErrAbortHandler {
					panic(rv)
				}
				logger.ErrorContext(r.Context(), "handler panic", "panic", rv, "uri", r.URL.RequestURI())
				handlers.RespondError(w, logger, http.StatusInternalServerError, errInternal)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
