package matchresult

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/leguplabs/pythia/pkg/database"
	pythiaerrors "github.com/leguplabs/pythia/pkg/errors"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// MatchResultRepository defines the interface for match result persistence
type MatchResultRepository interface {
	UpsertBatch(ctx context.Context, results []models.MatchResult) error
	ListByStartup(ctx context.Context, startupID string) ([]models.MatchResult, error)
	ListBySnapshot(ctx context.Context, startupID, fingerprint string) ([]models.MatchResult, error)
}

// Repository implements MatchResultRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new match result repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// UpsertBatch persists a rank run. Rows are keyed on
// (startup_id, investor_id, snapshot_fingerprint); re-running an unchanged
// snapshot conflicts on every row and writes nothing, keeping the operation
// idempotent.
func (r *Repository) UpsertBatch(ctx context.Context, results []models.MatchResult) error {
	ctx, span := tracing.StartSpan(ctx, "MatchResultRepository.UpsertBatch")
	defer span.End()

	if len(results) == 0 {
		return nil
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(matchResultsTable)
	ib.Cols("startup_id", "investor_id", "score", "reasons", "confidence", "quality_contribution", "snapshot_fingerprint", "generated_at")

	for i := range results {
		row := FromMatchResult(&results[i])
		ib.Values(row.StartupID, row.InvestorID, row.Score, row.Reasons, row.Confidence, row.QualityContribution, row.SnapshotFingerprint, row.GeneratedAt)
	}
	ib.OnConflictDoNothing()

	query, args := ib.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"startup_id":   results[0].StartupID,
			"result_count": len(results),
		}).Error("Failed to persist match results")
		return pythiaerrors.NewPersistenceIOError("upsert match results", err)
	}

	return nil
}

// ListByStartup retrieves all persisted results for a startup across
// snapshots, newest snapshot first, score descending within a snapshot.
func (r *Repository) ListByStartup(ctx context.Context, startupID string) ([]models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "MatchResultRepository.ListByStartup")
	defer span.End()

	sb := matchResultStruct.SelectFrom(matchResultsTable)
	sb.Where(sb.Equal("startup_id", startupID))
	sb.OrderBy("generated_at DESC", "score DESC", "investor_id")

	query, args := sb.Build()

	var rows []MatchResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list match results")
		return nil, pythiaerrors.NewPersistenceIOError("list match results", err)
	}

	return ToMatchResults(rows), nil
}

// ListBySnapshot retrieves the persisted results of a single rank run.
func (r *Repository) ListBySnapshot(ctx context.Context, startupID, fingerprint string) ([]models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "MatchResultRepository.ListBySnapshot")
	defer span.End()

	sb := matchResultStruct.SelectFrom(matchResultsTable)
	sb.Where(
		sb.Equal("startup_id", startupID),
		sb.Equal("snapshot_fingerprint", fingerprint),
	)
	sb.OrderBy("score DESC", "quality_contribution DESC", "investor_id")

	query, args := sb.Build()

	var rows []MatchResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list match results for snapshot")
		return nil, pythiaerrors.NewPersistenceIOError("list match results for snapshot", err)
	}

	return ToMatchResults(rows), nil
}
