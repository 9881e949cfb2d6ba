// Package match orchestrates a full rank run: resolve the startup, normalize
// both sides, score and rank the investor pool, persist the results, and emit
// the lifecycle event.
package match

import (
	"context"
	"sort"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/leguplabs/pythia/internal/repositories/investorprofile"
	"github.com/leguplabs/pythia/internal/repositories/matchresult"
	"github.com/leguplabs/pythia/internal/repositories/startupprofile"
	"github.com/leguplabs/pythia/pkg/events"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/normalize"
	"github.com/leguplabs/pythia/pkg/ranking"
	"github.com/leguplabs/pythia/pkg/resolver"
	"github.com/leguplabs/pythia/pkg/scoring"
	"github.com/leguplabs/pythia/pkg/share"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// Config bounds rank runs.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Service runs the matching pipeline end to end.
type Service struct {
	resolver  *resolver.Resolver
	startups  startupprofile.StartupProfileRepository
	investors investorprofile.InvestorProfileRepository
	results   matchresult.MatchResultRepository
	shares    *share.Service
	emitter   *events.Emitter
	logger    ectologger.Logger
	config    Config
	now       func() time.Time
}

// NewService creates a new match service
func NewService(
	resolver *resolver.Resolver,
	startups startupprofile.StartupProfileRepository,
	investors investorprofile.InvestorProfileRepository,
	results matchresult.MatchResultRepository,
	shares *share.Service,
	emitter *events.Emitter,
	logger ectologger.Logger,
	config Config,
) *Service {
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = ranking.DefaultLimit
	}
	if config.MaxLimit <= 0 {
		config.MaxLimit = ranking.MaxLimit
	}
	return &Service{
		resolver:  resolver,
		startups:  startups,
		investors: investors,
		results:   results,
		shares:    shares,
		emitter:   emitter,
		logger:    logger,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Resolve resolves an identity hint without running the pipeline.
func (s *Service) Resolve(ctx context.Context, hint string) (*models.ResolutionResult, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Service.Resolve")
	defer span.End()

	return s.resolver.Resolve(ctx, hint)
}

// Rank resolves the hint, scores the investor pool against the normalized
// startup, persists the result set under its snapshot fingerprint, and emits
// a match.generated event. Persistence failures fail the run; the event is
// best effort.
func (s *Service) Rank(ctx context.Context, req *models.RankRequest) (*models.RankResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Service.Rank")
	defer span.End()

	resolution, err := s.resolver.Resolve(ctx, req.Hint)
	if err != nil {
		return nil, err
	}

	startup := normalize.StartupProfile(*resolution.Startup)

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"startup_id":            startup.ID,
		"resolution_confidence": resolution.Confidence,
	})

	pool, err := s.investors.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pool {
		pool[i] = normalize.InvestorProfile(pool[i])
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}
	if limit > s.config.MaxLimit {
		limit = s.config.MaxLimit
	}

	generatedAt := s.now()
	matches, err := ranking.Rank(&startup, pool, ranking.Options{
		StageFilter:  normalize.Stage(req.StageFilter),
		SectorFilter: normalize.Sector(req.SectorFilter),
		MinScore:     req.MinScore,
		Limit:        limit,
		GeneratedAt:  generatedAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.results.UpsertBatch(ctx, matches); err != nil {
		return nil, err
	}

	if err := s.emitter.EmitMatchGenerated(ctx, startup.ID, matches); err != nil {
		log.WithError(err).Warn("Match event emission failed")
	}

	log.WithFields(map[string]any{
		"pool_size":   len(pool),
		"match_count": len(matches),
	}).Info("Generated matches")

	response := &models.RankResponse{
		Startup:              startup,
		ResolutionConfidence: string(resolution.Confidence),
		Matches:              matches,
		GeneratedAt:          generatedAt,
	}
	if len(matches) > 0 {
		response.SnapshotFingerprint = matches[0].SnapshotFingerprint
	}

	return response, nil
}

// CreateShare mints a share token over a startup's most recent persisted
// match set. The set is frozen into the token at creation time.
func (s *Service) CreateShare(ctx context.Context, req *models.CreateShareRequest) (*models.CreateShareResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Service.CreateShare")
	defer span.End()

	startup, err := s.startups.GetByID(ctx, req.StartupID)
	if err != nil {
		return nil, err
	}

	persisted, err := s.results.ListByStartup(ctx, startup.ID)
	if err != nil {
		return nil, err
	}

	matches, generatedAt := latestSnapshot(persisted)

	token, err := s.shares.Create(ctx, startup, matches, generatedAt)
	if err != nil {
		return nil, err
	}

	if err := s.emitter.EmitShareCreated(ctx, token); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Share event emission failed")
	}

	return &models.CreateShareResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// ViewShare serves the frozen view behind a share token.
func (s *Service) ViewShare(ctx context.Context, token string) (*models.ShareView, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Service.ViewShare")
	defer span.End()

	return s.shares.View(ctx, token)
}

// latestSnapshot reduces a newest-first result list to the rows of its most
// recent snapshot, re-sorted into presentation order.
func latestSnapshot(results []models.MatchResult) ([]models.MatchResult, time.Time) {
	if len(results) == 0 {
		return []models.MatchResult{}, time.Time{}
	}

	fingerprint := results[0].SnapshotFingerprint
	generatedAt := results[0].GeneratedAt

	matches := make([]models.MatchResult, 0, len(results))
	for _, result := range results {
		if result.SnapshotFingerprint == fingerprint {
			matches = append(matches, result)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].QualityContribution != matches[j].QualityContribution {
			return matches[i].QualityContribution > matches[j].QualityContribution
		}
		return matches[i].InvestorID < matches[j].InvestorID
	})

	return matches, generatedAt
}

// Weights exposes the active scoring weights, for diagnostics.
func (s *Service) Weights() scoring.Weights {
	return scoring.DefaultWeights()
}
