package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/internal/workflow"
	"github.com/JaimeStill/qualifier/pkg/pagination"
	"github.com/JaimeStill/qualifier/pkg/query"
	"github.com/JaimeStill/qualifier/pkg/repository"
	"github.com/JaimeStill/qualifier/pkg/storage"
)

const insertLead = `
	INSERT INTO leads(
		id, run_id, name, email, message, tier, rationale,
		category, enrichment_summary, errors
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

type repo struct {
	db         *sql.DB
	engine     *workflow.Engine
	archive    storage.System
	logger     *slog.Logger
	pagination pagination.Config
	maxBody    int64
}

// New creates a lead repository implementing the System interface.
// The repository persists workflow results, so it constructs the engine
// itself with enricher and completer. archive may be nil, which disables
// audit snapshots.
func New(
	db *sql.DB,
	cfg workflow.Config,
	enricher workflow.Enricher,
	completer workflow.Completer,
	archive storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBody int64,
) (System, error) {
	r := &repo{
		db:         db,
		archive:    archive,
		logger:     logger.With("system", "leads"),
		pagination: pagination,
		maxBody:    maxBody,
	}

	engine, err := workflow.New(cfg, &workflow.Runtime{
		Enricher:  enricher,
		Completer: completer,
		Persister: r,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create workflow engine: %w", err)
	}
	r.engine = engine

	return r, nil
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.maxBody)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Lead], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Email", "Message")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanLead)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Lead, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanLead)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &l, nil
}

// Persist appends one lead record for a frozen result. It satisfies
// workflow.Persister.
func (r *repo) Persist(ctx context.Context, lead workflow.Lead, result workflow.Result) (uuid.UUID, error) {
	errorsJSON, err := json.Marshal(result.Errors)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal errors: %w", err)
	}

	args := []any{
		uuid.New(),
		result.RunID,
		lead.Name,
		lead.Email,
		lead.Message,
		string(result.Tier),
		result.Rationale,
		result.Category,
		result.EnrichmentSummary,
		errorsJSON,
	}

	id, err := repository.QueryOne(ctx, r.db, insertLead, args, scanID)
	if err != nil {
		return uuid.Nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "lead persisted",
		"id", id,
		"run_id", result.RunID,
		"tier", result.Tier,
	)
	return id, nil
}

func (r *repo) Qualify(ctx context.Context, cmd QualifyCommand) *workflow.Result {
	lead := cmd.lead()
	result := r.engine.Qualify(ctx, lead)
	r.store(ctx, lead, result)
	return result
}

func scanID(s repository.Scanner) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.Scan(&id)
	return id, err
}
