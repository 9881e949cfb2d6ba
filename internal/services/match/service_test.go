package match

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leguplabs/pythia/pkg/events"
	"github.com/leguplabs/pythia/pkg/logging"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/resolver"
	"github.com/leguplabs/pythia/pkg/scoring"
	"github.com/leguplabs/pythia/pkg/share"
)

type fakeStartupRepo struct {
	profiles []models.StartupProfile
}

func (f *fakeStartupRepo) GetByID(ctx context.Context, id string) (*models.StartupProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStartupRepo) GetByDomain(ctx context.Context, domain string) (*models.StartupProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].Domain == domain {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStartupRepo) ListByLinkedInURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error) {
	return nil, nil
}

func (f *fakeStartupRepo) ListByCrunchbaseURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error) {
	return nil, nil
}

func (f *fakeStartupRepo) ListByDomainContains(ctx context.Context, domain string) ([]models.StartupProfile, error) {
	var matches []models.StartupProfile
	for _, p := range f.profiles {
		if p.Domain != "" && (strings.Contains(p.Domain, domain) || strings.Contains(domain, p.Domain)) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (f *fakeStartupRepo) UpsertProvisional(ctx context.Context, domain string, name string) (*models.StartupProfile, error) {
	profile := models.StartupProfile{
		ID:     uuid.New().String(),
		Name:   name,
		Domain: domain,
		Status: models.StartupProfileStatusPending,
	}
	f.profiles = append(f.profiles, profile)
	return &f.profiles[len(f.profiles)-1], nil
}

type fakeInvestorRepo struct {
	profiles []models.InvestorProfile
}

func (f *fakeInvestorRepo) GetByID(ctx context.Context, id string) (*models.InvestorProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInvestorRepo) List(ctx context.Context) ([]models.InvestorProfile, error) {
	return f.profiles, nil
}

type fakeResultRepo struct {
	rows []models.MatchResult
}

func (f *fakeResultRepo) UpsertBatch(ctx context.Context, results []models.MatchResult) error {
	for _, result := range results {
		if !f.exists(result) {
			f.rows = append(f.rows, result)
		}
	}
	return nil
}

func (f *fakeResultRepo) exists(result models.MatchResult) bool {
	for _, row := range f.rows {
		if row.StartupID == result.StartupID && row.InvestorID == result.InvestorID && row.SnapshotFingerprint == result.SnapshotFingerprint {
			return true
		}
	}
	return false
}

func (f *fakeResultRepo) ListByStartup(ctx context.Context, startupID string) ([]models.MatchResult, error) {
	var results []models.MatchResult
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].StartupID == startupID {
			results = append(results, f.rows[i])
		}
	}
	return results, nil
}

func (f *fakeResultRepo) ListBySnapshot(ctx context.Context, startupID, fingerprint string) ([]models.MatchResult, error) {
	var results []models.MatchResult
	for _, row := range f.rows {
		if row.StartupID == startupID && row.SnapshotFingerprint == fingerprint {
			results = append(results, row)
		}
	}
	return results, nil
}

type fakeTokenRepo struct {
	tokens map[string]models.ShareToken
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

type fixture struct {
	service  *Service
	startups *fakeStartupRepo
	results  *fakeResultRepo
}

func newFixture(startups []models.StartupProfile, investors []models.InvestorProfile) *fixture {
	logger := logging.NewNop()
	startupRepo := &fakeStartupRepo{profiles: startups}
	resultRepo := &fakeResultRepo{}

	svc := NewService(
		resolver.New(startupRepo, logger, resolver.Config{}),
		startupRepo,
		&fakeInvestorRepo{profiles: investors},
		resultRepo,
		share.NewService(&fakeTokenRepo{tokens: map[string]models.ShareToken{}}, nil, logger, share.DefaultTTL),
		events.NewEmitter(nil, logger),
		logger,
		Config{},
	)

	return &fixture{service: svc, startups: startupRepo, results: resultRepo}
}

func strPtr(s string) *string {
	return &s
}

func f(v float64) *float64 {
	return &v
}

func knownStartup() models.StartupProfile {
	return models.StartupProfile{
		ID:          "startup-1",
		Name:        "Acme",
		Domain:      "acme.com",
		Sectors:     []string{"Fintech", "AI"},
		Stage:       strPtr("Seed"),
		GodScore:    f(72),
		RaiseAmount: f(2_000_000),
		Status:      models.StartupProfileStatusApproved,
	}
}

func investorPool() []models.InvestorProfile {
	return []models.InvestorProfile{
		{
			ID:        "inv-a",
			Name:      "First Check Capital",
			Sectors:   []string{"FinTech"},
			Stages:    []string{"Seed", "Series A"},
			CheckSize: models.CheckSizeRange{Min: f(500_000), Max: f(3_000_000)},
		},
		{
			ID:      "inv-b",
			Name:    "Climate Only Ventures",
			Sectors: []string{"Climate"},
			Stages:  []string{"Series B"},
		},
	}
}

func TestRankEndToEnd(t *testing.T) {
	fx := newFixture([]models.StartupProfile{knownStartup()}, investorPool())

	response, err := fx.service.Rank(context.Background(), &models.RankRequest{Hint: "https://acme.com"})
	require.NoError(t, err)

	assert.Equal(t, "startup-1", response.Startup.ID)
	assert.Equal(t, "exact_domain", response.ResolutionConfidence)
	require.Len(t, response.Matches, 2)
	assert.Equal(t, "inv-a", response.Matches[0].InvestorID)
	assert.Greater(t, response.Matches[0].Score, response.Matches[1].Score)
	assert.NotEmpty(t, response.SnapshotFingerprint)

	// Raw labels were normalized before scoring.
	assert.Equal(t, []string{"fintech", "ai"}, response.Startup.Sectors)

	// The run was persisted under its fingerprint.
	persisted, err := fx.results.ListBySnapshot(context.Background(), "startup-1", response.SnapshotFingerprint)
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestRankIsIdempotentForUnchangedInputs(t *testing.T) {
	fx := newFixture([]models.StartupProfile{knownStartup()}, investorPool())

	first, err := fx.service.Rank(context.Background(), &models.RankRequest{Hint: "acme.com"})
	require.NoError(t, err)
	second, err := fx.service.Rank(context.Background(), &models.RankRequest{Hint: "acme.com"})
	require.NoError(t, err)

	assert.Equal(t, first.SnapshotFingerprint, second.SnapshotFingerprint)
	assert.Len(t, fx.results.rows, 2)
}

func TestRankUnknownHintCreatesProvisional(t *testing.T) {
	fx := newFixture(nil, investorPool())

	response, err := fx.service.Rank(context.Background(), &models.RankRequest{Hint: "newco.dev"})
	require.NoError(t, err)

	assert.Equal(t, "created_provisional", response.ResolutionConfidence)
	assert.Equal(t, models.StartupProfileStatusPending, response.Startup.Status)
	// A provisional profile still ranks; it just scores on little signal.
	assert.Len(t, response.Matches, 2)
}

func TestRankAppliesFilters(t *testing.T) {
	fx := newFixture([]models.StartupProfile{knownStartup()}, investorPool())

	response, err := fx.service.Rank(context.Background(), &models.RankRequest{
		Hint:        "acme.com",
		StageFilter: strPtr("Series B"),
	})
	require.NoError(t, err)

	require.Len(t, response.Matches, 1)
	assert.Equal(t, "inv-b", response.Matches[0].InvestorID)
}

func TestCreateShareAndView(t *testing.T) {
	fx := newFixture([]models.StartupProfile{knownStartup()}, investorPool())

	ranked, err := fx.service.Rank(context.Background(), &models.RankRequest{Hint: "acme.com"})
	require.NoError(t, err)

	created, err := fx.service.CreateShare(context.Background(), &models.CreateShareRequest{StartupID: "startup-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.True(t, created.ExpiresAt.After(time.Now()))

	view, err := fx.service.ViewShare(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", view.Startup.Name)
	require.Len(t, view.Matches, len(ranked.Matches))
	assert.Equal(t, ranked.Matches[0].InvestorID, view.Matches[0].InvestorID)
}

func TestWeightsExposesActiveWeights(t *testing.T) {
	fx := newFixture(nil, nil)

	assert.Equal(t, scoring.DefaultWeights(), fx.service.Weights())
}
