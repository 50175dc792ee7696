package leads_test

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/qualifier/internal/enrichment"
	"github.com/JaimeStill/qualifier/internal/leads"
	"github.com/JaimeStill/qualifier/internal/migrations"
	"github.com/JaimeStill/qualifier/internal/reasoning"
	"github.com/JaimeStill/qualifier/internal/scoring"
	"github.com/JaimeStill/qualifier/internal/workflow"
	"github.com/JaimeStill/qualifier/pkg/lifecycle"
	"github.com/JaimeStill/qualifier/pkg/pagination"
	"github.com/JaimeStill/qualifier/pkg/storage"
)

type staticEnricher struct{}

func (staticEnricher) Lookup(ctx context.Context, domain string) (*enrichment.Facts, error) {
	if domain != "acme.com" {
		return nil, &enrichment.Failure{Kind: enrichment.NotFound, Domain: domain, Err: enrichment.ErrNoContent}
	}
	return &enrichment.Facts{Domain: domain, Company: "Acme Corp", Size: "large"}, nil
}

type staticCompleter struct{}

func (staticCompleter) Complete(ctx context.Context, p reasoning.Prompt) (*reasoning.Completion, error) {
	if strings.Contains(p.Message, "seats") {
		return &reasoning.Completion{Category: "high", Rationale: "Large company with urgent purchase intent"}, nil
	}
	return &reasoning.Completion{Category: "cold", Rationale: "No buying signal"}, nil
}

type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (m *memStore) Ready() bool                            { return true }
func (m *memStore) Start(lc *lifecycle.Coordinator) error { return nil }

func (m *memStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("qualifier"),
		postgres.WithUsername("qualifier"),
		postgres.WithPassword("qualifier"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(connStr))

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestRepositoryIntegration(t *testing.T) {
	db := startPostgres(t)
	archive := newMemStore()
	ctx := context.Background()

	sys, err := leads.New(
		db,
		workflow.Config{},
		staticEnricher{},
		staticCompleter{},
		archive,
		slog.New(slog.DiscardHandler),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		64<<10,
	)
	require.NoError(t, err)

	result := sys.Qualify(ctx, leads.QualifyCommand{
		Name:    "Jane Doe",
		Email:   "jane@acme.com",
		Message: "We need 200 seats by Q3",
	})

	require.NotNil(t, result)
	require.NotNil(t, result.RecordID)
	assert.Equal(t, scoring.High, result.Tier)
	assert.Empty(t, result.Errors)

	t.Run("find persisted record", func(t *testing.T) {
		l, err := sys.Find(ctx, *result.RecordID)
		require.NoError(t, err)

		assert.Equal(t, result.RunID, l.RunID)
		assert.Equal(t, "jane@acme.com", l.Email)
		assert.Equal(t, scoring.High, l.Tier)
		assert.Equal(t, "Large company with urgent purchase intent", l.Rationale)
		require.NotNil(t, l.EnrichmentSummary)
		assert.Equal(t, "Acme Corp; size: large", *l.EnrichmentSummary)
		assert.Empty(t, l.Errors)
		assert.WithinDuration(t, time.Now(), l.CreatedAt, time.Minute)
	})

	t.Run("find unknown id", func(t *testing.T) {
		_, err := sys.Find(ctx, uuid.New())
		assert.ErrorIs(t, err, leads.ErrNotFound)
	})

	t.Run("degraded lead records errors", func(t *testing.T) {
		res := sys.Qualify(ctx, leads.QualifyCommand{
			Name:    "Sam",
			Email:   "sam@gmail.com",
			Message: "Just browsing",
		})
		require.NotNil(t, res.RecordID)
		require.True(t, res.HasError(workflow.EnrichmentUnavailable))

		l, err := sys.Find(ctx, *res.RecordID)
		require.NoError(t, err)
		require.Len(t, l.Errors, 1)
		assert.Equal(t, workflow.EnrichmentUnavailable, l.Errors[0].Kind)
		assert.Nil(t, l.EnrichmentSummary)
	})

	t.Run("list filters by tier and email", func(t *testing.T) {
		high := "high"
		page, err := sys.List(ctx, pagination.PageRequest{}, leads.Filters{Tier: &high})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, "Jane Doe", page.Data[0].Name)

		email := "gmail"
		page, err = sys.List(ctx, pagination.PageRequest{}, leads.Filters{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)

		search := "seats"
		page, err = sys.List(ctx, pagination.PageRequest{Search: &search}, leads.Filters{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)

		page, err = sys.List(ctx, pagination.PageRequest{}, leads.Filters{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, "Sam", page.Data[0].Name, "newest first")
	})

	t.Run("audit snapshot round trip", func(t *testing.T) {
		a, err := sys.Audit(ctx, *result.RecordID)
		require.NoError(t, err)

		assert.Equal(t, "Jane Doe", a.Lead.Name)
		assert.Equal(t, result.RunID, a.Result.RunID)
		assert.Equal(t, result.RecordID, a.Result.RecordID)
		assert.Len(t, a.Result.Trail, 4)
	})
}
