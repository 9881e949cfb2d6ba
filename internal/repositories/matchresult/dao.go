package matchresult

import (
	"database/sql"

	"github.com/leguplabs/pythia/pkg/database"
	"github.com/leguplabs/pythia/pkg/models"
)

const (
	matchResultsTable = "match_results"
)

// MatchResultRow represents the database row for a match result
type MatchResultRow struct {
	StartupID           sql.NullString           `db:"startup_id"`
	InvestorID          sql.NullString           `db:"investor_id"`
	Score               sql.NullFloat64          `db:"score"`
	Reasons             database.JSONB[[]string] `db:"reasons"`
	Confidence          sql.NullString           `db:"confidence"`
	QualityContribution sql.NullFloat64          `db:"quality_contribution"`
	SnapshotFingerprint sql.NullString           `db:"snapshot_fingerprint"`
	GeneratedAt         sql.NullTime             `db:"generated_at"`
}

var matchResultStruct = database.NewStruct(new(MatchResultRow))

// FromMatchResult converts a domain model to a database row
func FromMatchResult(m *models.MatchResult) *MatchResultRow {
	return &MatchResultRow{
		StartupID:           sql.NullString{String: m.StartupID, Valid: m.StartupID != ""},
		InvestorID:          sql.NullString{String: m.InvestorID, Valid: m.InvestorID != ""},
		Score:               sql.NullFloat64{Float64: m.Score, Valid: true},
		Reasons:             database.JSONB[[]string]{Data: m.Reasons},
		Confidence:          sql.NullString{String: string(m.Confidence), Valid: m.Confidence != ""},
		QualityContribution: sql.NullFloat64{Float64: m.QualityContribution, Valid: true},
		SnapshotFingerprint: sql.NullString{String: m.SnapshotFingerprint, Valid: m.SnapshotFingerprint != ""},
		GeneratedAt:         sql.NullTime{Time: m.GeneratedAt, Valid: !m.GeneratedAt.IsZero()},
	}
}

// ToMatchResult converts a database row to a domain model
func ToMatchResult(row *MatchResultRow) *models.MatchResult {
	return &models.MatchResult{
		StartupID:           row.StartupID.String,
		InvestorID:          row.InvestorID.String,
		Score:               row.Score.Float64,
		Reasons:             row.Reasons.Data,
		Confidence:          models.MatchConfidence(row.Confidence.String),
		QualityContribution: row.QualityContribution.Float64,
		SnapshotFingerprint: row.SnapshotFingerprint.String,
		GeneratedAt:         row.GeneratedAt.Time,
	}
}

// ToMatchResults converts a slice of database rows to domain models
func ToMatchResults(rows []MatchResultRow) []models.MatchResult {
	results := make([]models.MatchResult, len(rows))
	for i, row := range rows {
		results[i] = *ToMatchResult(&row)
	}
	return results
}
