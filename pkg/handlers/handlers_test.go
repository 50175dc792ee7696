package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/qualifier/pkg/handlers"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]string{"tier": "HIGH"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "HIGH", body["tier"])
}

func TestRespondError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, discard, status, errors.New("invalid input"))

		assert.Equal(t, status, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "invalid input", body["error"])
	}
}

type command struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
		got, err := handlers.DecodeJSON[command](httptest.NewRecorder(), req, 1024)
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"Jane"}`))
		_, err := handlers.DecodeJSON[command](httptest.NewRecorder(), req, 1024)
		assert.Error(t, err)
	})

	t.Run("oversized body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
		_, err := handlers.DecodeJSON[command](httptest.NewRecorder(), req, 16)
		assert.ErrorIs(t, err, handlers.ErrBodyTooLarge)
	})
}
