package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/qualifier/internal/workflow"
	"github.com/JaimeStill/qualifier/pkg/storage"
)

const archiveTimeout = 10 * time.Second

// AuditKey returns the blob key for a run's audit snapshot.
func AuditKey(runID uuid.UUID) string {
	return "runs/" + runID.String() + ".json"
}

// store uploads the audit snapshot. Failures are logged and never change
// the result returned to the caller.
func (r *repo) store(ctx context.Context, lead workflow.Lead, result *workflow.Result) {
	if r.archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	data, err := json.Marshal(Audit{Lead: lead, Result: *result})
	if err != nil {
		r.logger.WarnContext(ctx, "audit snapshot encode failed", "run_id", result.RunID, "error", err)
		return
	}

	key := AuditKey(result.RunID)
	if err := r.archive.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		r.logger.WarnContext(ctx, "audit snapshot upload failed", "run_id", result.RunID, "error", err)
		return
	}

	r.logger.DebugContext(ctx, "audit snapshot archived", "run_id", result.RunID, "key", key)
}

func (r *repo) Audit(ctx context.Context, id uuid.UUID) (*Audit, error) {
	if r.archive == nil {
		return nil, storage.ErrNotConfigured
	}

	l, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := r.archive.Download(ctx, AuditKey(l.RunID))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var a Audit
	if err := json.NewDecoder(body).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode audit snapshot %s: %w", l.RunID, err)
	}
	return &a, nil
}
