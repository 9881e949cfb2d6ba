// Package share mints and serves read-only share links over frozen match
// views.
package share

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/leguplabs/pythia/internal/repositories/sharetoken"
	pythiaerrors "github.com/leguplabs/pythia/pkg/errors"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/redis"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// DefaultTTL is how long a share link stays viewable.
const DefaultTTL = 7 * 24 * time.Hour

const cacheKeyPrefix = "share:view:"

// Service mints share tokens and serves their frozen views. The view is
// copied into the token at creation time; later profile or match changes
// never leak into an already-shared link.
type Service struct {
	repo   sharetoken.ShareTokenRepository
	cache  *redis.Client
	logger ectologger.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a new share service. The cache is optional; a nil cache
// serves every view from the repository.
func NewService(repo sharetoken.ShareTokenRepository, cache *redis.Client, logger ectologger.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create mints a token over the given startup summary and match set. The
// match set must already be in presentation order.
func (s *Service) Create(ctx context.Context, startup *models.StartupProfile, matches []models.MatchResult, generatedAt time.Time) (*models.ShareToken, error) {
	ctx, span := tracing.StartSpan(ctx, "share.Service.Create")
	defer span.End()

	now := s.now()
	token := &models.ShareToken{
		Token:     uuid.New().String(),
		StartupID: startup.ID,
		View: models.ShareView{
			Startup:     startup.Summary(),
			Matches:     matches,
			GeneratedAt: generatedAt,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Create(ctx, token); err != nil {
		return nil, err
	}

	s.cacheView(ctx, token)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"startup_id": startup.ID,
		"expires_at": token.ExpiresAt,
	}).Info("Created share token")

	return token, nil
}

// View serves the frozen view behind a token. Unknown tokens yield
// NotFoundError; known but expired tokens yield ExpiredError so the caller
// can render a distinct state.
func (s *Service) View(ctx context.Context, token string) (*models.ShareView, error) {
	ctx, span := tracing.StartSpan(ctx, "share.Service.View")
	defer span.End()

	record, err := s.cachedToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record, err = s.repo.Get(ctx, token)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, pythiaerrors.NewNotFoundError(token)
		}
		s.cacheView(ctx, record)
	}

	if s.now().After(record.ExpiresAt) {
		return nil, pythiaerrors.NewExpiredError(token, record.ExpiresAt)
	}

	return &record.View, nil
}

// cachedToken reads the token record through the cache. Cache failures are
// logged and treated as misses.
func (s *Service) cachedToken(ctx context.Context, token string) (*models.ShareToken, error) {
	if s.cache == nil {
		return nil, nil
	}

	raw, found, err := s.cache.Get(ctx, cacheKeyPrefix+token)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Share view cache read failed")
		return nil, nil
	}
	if !found {
		return nil, nil
	}

	var record models.ShareToken
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Share view cache entry corrupt")
		return nil, nil
	}

	return &record, nil
}

func (s *Service) cacheView(ctx context.Context, record *models.ShareToken) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		return
	}

	ttl := record.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}

	if err := s.cache.Set(ctx, cacheKeyPrefix+record.Token, data, ttl); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Share view cache write failed")
	}
}
