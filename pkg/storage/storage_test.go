package storage_test

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/qualifier/pkg/storage"
)

func TestFinalize(t *testing.T) {
	t.Setenv("TEST_STORAGE_URL", "https://acct.blob.core.windows.net/")

	var cfg storage.Config
	require.NoError(t, cfg.Finalize(&storage.Env{ServiceURL: "TEST_STORAGE_URL"}))

	assert.Equal(t, "qualifier-runs", cfg.ContainerName)
	assert.Equal(t, "https://acct.blob.core.windows.net/", cfg.ServiceURL)
	assert.True(t, cfg.Configured())
}

func TestFinalizeUnconfigured(t *testing.T) {
	var cfg storage.Config
	require.NoError(t, cfg.Finalize(nil))
	assert.False(t, cfg.Configured())

	_, err := storage.New(&cfg, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, storage.ErrNotConfigured)
}

func TestFinalizeInvalidServiceURL(t *testing.T) {
	cfg := storage.Config{ServiceURL: "not a url"}
	err := cfg.Finalize(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid service_url")
}

func TestMerge(t *testing.T) {
	base := storage.Config{ContainerName: "runs", ConnectionString: "base"}
	base.Merge(&storage.Config{ConnectionString: "overlay"})

	assert.Equal(t, "runs", base.ContainerName)
	assert.Equal(t, "overlay", base.ConnectionString)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key  string
		want error
	}{
		{"runs/0d1c.json", nil},
		{"runs/a..b.json", nil},
		{"", storage.ErrEmptyKey},
		{"../secrets", storage.ErrInvalidKey},
		{"runs/../../x", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := storage.ValidateKey(tt.key)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, storage.MapHTTPStatus(storage.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, storage.MapHTTPStatus(storage.ErrInvalidKey))
	assert.Equal(t, http.StatusServiceUnavailable, storage.MapHTTPStatus(storage.ErrNotConfigured))
	assert.Equal(t, http.StatusInternalServerError, storage.MapHTTPStatus(errors.New("x")))
}
