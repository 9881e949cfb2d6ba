package models

import "time"

// MatchConfidence describes how many scoring factors backed a result.
type MatchConfidence string

const (
	MatchConfidenceHigh   MatchConfidence = "high"
	MatchConfidenceMedium MatchConfidence = "medium"
	MatchConfidenceLow    MatchConfidence = "low"
)

// MatchResult is a derived, immutable startup/investor compatibility record.
// A changed input snapshot produces a new MatchResult, never an edit.
type MatchResult struct {
	StartupID           string          `json:"startup_id" db:"startup_id"`
	InvestorID          string          `json:"investor_id" db:"investor_id"`
	Score               float64         `json:"score" db:"score"` // 0-100, one decimal
	Reasons             []string        `json:"reasons" db:"-"`
	Confidence          MatchConfidence `json:"confidence" db:"confidence"`
	QualityContribution float64         `json:"-" db:"quality_contribution"` // tie-break key
	SnapshotFingerprint string          `json:"snapshot_fingerprint" db:"snapshot_fingerprint"`
	GeneratedAt         time.Time       `json:"generated_at" db:"generated_at"`
}

// RankRequest is the HTTP request to generate matches for a startup.
type RankRequest struct {
	Hint         string   `json:"hint" validate:"required"`
	StageFilter  *string  `json:"stage_filter,omitempty"`
	SectorFilter *string  `json:"sector_filter,omitempty"`
	MinScore     *float64 `json:"min_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Limit        int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=200"`
}

// RankResponse is the stable output shape for generated matches.
type RankResponse struct {
	Startup              StartupProfile `json:"startup"`
	ResolutionConfidence string         `json:"resolution_confidence"`
	Matches              []MatchResult  `json:"matches"`
	SnapshotFingerprint  string         `json:"snapshot_fingerprint"`
	GeneratedAt          time.Time      `json:"generated_at"`
}
