// Package ranking applies the compatibility scorer across a candidate pool
// and produces a deterministically ordered, filtered, truncated match set.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/leguplabs/pythia/pkg/fingerprint"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/scoring"
)

const (
	// DefaultLimit is used when the caller does not request a limit.
	DefaultLimit = 50
	// MaxLimit bounds the result set regardless of what the caller asks for.
	MaxLimit = 200
)

// Options filters and truncates a ranking run. Stage and sector filters are
// applied before scoring, MinScore after.
type Options struct {
	StageFilter  *string
	SectorFilter *string
	MinScore     *float64
	Limit        int
	Weights      *scoring.Weights
	GeneratedAt  time.Time
}

// Rank scores every candidate that survives the pre-filters and returns
// fresh MatchResult values ordered by (score desc, quality contribution
// desc, investor ID asc). Candidates are never mutated. An empty result is
// not an error; a nil startup is.
func Rank(startup *models.StartupProfile, candidates []models.InvestorProfile, opts Options) ([]models.MatchResult, error) {
	if startup == nil {
		return nil, fmt.Errorf("rank: startup is unresolved")
	}

	weights := scoring.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}

	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	// Candidates are scored in ID order so tie-breaks are reproducible
	// regardless of the order the pool arrived in.
	pool := make([]models.InvestorProfile, 0, len(candidates))
	for _, candidate := range candidates {
		if passesPreFilter(candidate, opts) {
			pool = append(pool, candidate)
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	snapshot := fingerprint.Snapshot(*startup, pool)

	results := make([]models.MatchResult, 0, len(pool))
	for _, candidate := range pool {
		scored := scoring.Score(*startup, candidate, weights)
		if opts.MinScore != nil && scored.Score < *opts.MinScore {
			continue
		}
		results = append(results, models.MatchResult{
			StartupID:           startup.ID,
			InvestorID:          candidate.ID,
			Score:               scored.Score,
			Reasons:             scored.Reasons,
			Confidence:          scored.Confidence,
			QualityContribution: scored.QualityContribution,
			SnapshotFingerprint: snapshot,
			GeneratedAt:         generatedAt,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].QualityContribution != results[j].QualityContribution {
			return results[i].QualityContribution > results[j].QualityContribution
		}
		return results[i].InvestorID < results[j].InvestorID
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func passesPreFilter(candidate models.InvestorProfile, opts Options) bool {
	if opts.StageFilter != nil {
		found := false
		for _, stage := range candidate.Stages {
			if stage == *opts.StageFilter {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if opts.SectorFilter != nil {
		found := false
		for _, sector := range candidate.Sectors {
			if sector == *opts.SectorFilter {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
