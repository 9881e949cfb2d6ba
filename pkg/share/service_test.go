package share

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pythiaerrors "github.com/leguplabs/pythia/pkg/errors"
	"github.com/leguplabs/pythia/pkg/logging"
	"github.com/leguplabs/pythia/pkg/models"
)

// fakeTokenRepo is an in-memory ShareTokenRepository.
type fakeTokenRepo struct {
	tokens map[string]models.ShareToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]models.ShareToken)}
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *models.ShareToken) error {
	f.tokens[token.Token] = *token
	return nil
}

func (f *fakeTokenRepo) Get(ctx context.Context, token string) (*models.ShareToken, error) {
	record, ok := f.tokens[token]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func strPtr(s string) *string {
	return &s
}

func shareStartup() *models.StartupProfile {
	return &models.StartupProfile{
		ID:      "startup-1",
		Name:    "Acme",
		Tagline: "Infrastructure for embedded finance",
		Domain:  "acme.com",
		Sectors: []string{"fintech"},
		Stage:   strPtr("seed"),
	}
}

func shareMatches() []models.MatchResult {
	return []models.MatchResult{
		{StartupID: "startup-1", InvestorID: "inv-a", Score: 72.5, SnapshotFingerprint: "fp-1"},
		{StartupID: "startup-1", InvestorID: "inv-b", Score: 51.0, SnapshotFingerprint: "fp-1"},
	}
}

func newTestService(repo *fakeTokenRepo, now time.Time) *Service {
	svc := NewService(repo, nil, logging.NewNop(), DefaultTTL)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateAndView(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, t0)

	generatedAt := t0.Add(-time.Hour)
	token, err := svc.Create(context.Background(), shareStartup(), shareMatches(), generatedAt)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, t0.Add(DefaultTTL), token.ExpiresAt)

	view, err := svc.View(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", view.Startup.Name)
	assert.Len(t, view.Matches, 2)
	assert.Equal(t, generatedAt, view.GeneratedAt)
}

func TestViewInsideWindow(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, t0)

	token, err := svc.Create(context.Background(), shareStartup(), shareMatches(), t0)
	require.NoError(t, err)

	svc.now = func() time.Time { return t0.Add(6 * 24 * time.Hour) }

	_, err = svc.View(context.Background(), token.Token)
	assert.NoError(t, err)
}

func TestViewAfterExpiry(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, t0)

	token, err := svc.Create(context.Background(), shareStartup(), shareMatches(), t0)
	require.NoError(t, err)

	svc.now = func() time.Time { return t0.Add(8 * 24 * time.Hour) }

	_, err = svc.View(context.Background(), token.Token)
	require.Error(t, err)
	assert.True(t, pythiaerrors.IsExpiredError(err))
	assert.False(t, pythiaerrors.IsNotFoundError(err))
}

func TestViewUnknownToken(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeTokenRepo(), t0)

	_, err := svc.View(context.Background(), "missing-token")
	require.Error(t, err)
	assert.True(t, pythiaerrors.IsNotFoundError(err))
	assert.False(t, pythiaerrors.IsExpiredError(err))
}

func TestViewIsFrozen(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, t0)

	startup := shareStartup()
	token, err := svc.Create(context.Background(), startup, shareMatches(), t0)
	require.NoError(t, err)

	// Edits after token creation must not leak into the shared view.
	startup.Name = "Acme (rebranded)"
	startup.Sectors = append(startup.Sectors, "ai")

	view, err := svc.View(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", view.Startup.Name)
	assert.Equal(t, []string{"fintech"}, view.Startup.Sectors)
}
