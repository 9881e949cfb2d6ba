package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leguplabs/pythia/pkg/models"
)

func f(v float64) *float64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func rankStartup() *models.StartupProfile {
	return &models.StartupProfile{
		ID:          "startup-1",
		Name:        "Acme",
		Domain:      "acme.com",
		Sectors:     []string{"fintech"},
		Stage:       strPtr("seed"),
		GodScore:    f(60),
		RaiseAmount: f(1_000_000),
	}
}

func investor(id string, sectors []string, stages []string) models.InvestorProfile {
	return models.InvestorProfile{
		ID:      id,
		Name:    "Investor " + id,
		Sectors: sectors,
		Stages:  stages,
	}
}

func TestRankOrdersByScoreThenID(t *testing.T) {
	pool := []models.InvestorProfile{
		investor("inv-c", []string{"fintech"}, []string{"seed"}),
		investor("inv-a", []string{"fintech"}, []string{"seed"}),
		investor("inv-b", []string{"climate"}, nil),
	}

	results, err := Rank(rankStartup(), pool, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// inv-a and inv-c tie on every factor; ID breaks the tie.
	assert.Equal(t, "inv-a", results[0].InvestorID)
	assert.Equal(t, "inv-c", results[1].InvestorID)
	assert.Equal(t, "inv-b", results[2].InvestorID)
	assert.Greater(t, results[0].Score, results[2].Score)
}

func TestRankDeterministicAcrossPoolOrder(t *testing.T) {
	pool := []models.InvestorProfile{
		investor("inv-a", []string{"fintech"}, []string{"seed"}),
		investor("inv-b", []string{"climate"}, nil),
		investor("inv-c", []string{"fintech"}, []string{"seed"}),
	}
	shuffled := []models.InvestorProfile{pool[2], pool[0], pool[1]}

	generatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := Rank(rankStartup(), pool, Options{GeneratedAt: generatedAt})
	require.NoError(t, err)
	second, err := Rank(rankStartup(), shuffled, Options{GeneratedAt: generatedAt})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankSharedFingerprint(t *testing.T) {
	pool := []models.InvestorProfile{
		investor("inv-a", []string{"fintech"}, []string{"seed"}),
		investor("inv-b", []string{"climate"}, nil),
	}

	results, err := Rank(rankStartup(), pool, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NotEmpty(t, results[0].SnapshotFingerprint)
	assert.Equal(t, results[0].SnapshotFingerprint, results[1].SnapshotFingerprint)
}

func TestRankStageFilter(t *testing.T) {
	pool := []models.InvestorProfile{
		investor("inv-a", []string{"fintech"}, []string{"seed"}),
		investor("inv-b", []string{"fintech"}, []string{"series-b"}),
	}

	results, err := Rank(rankStartup(), pool, Options{StageFilter: strPtr("seed")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "inv-a", results[0].InvestorID)
}

func TestRankSectorFilter(t *testing.T) {
	pool := []models.InvestorProfile{
		investor("inv-a", []string{"fintech"}, []string{"seed"}),
		investor("inv-b", []string{"climate"}, []string{"seed"}),
	}

	results, err := Rank(rankStartup(), pool, Options{SectorFilter: strPtr("climate")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "inv-b", results[0].InvestorID)
}

func TestRankMinScoreFiltersAfterScoring(t *testing.T) {
	pool := []models.InvestorProfile{
		investor("inv-a", []string{"fintech"}, []string{"seed"}),
		investor("inv-b", nil, nil),
	}

	results, err := Rank(rankStartup(), pool, Options{MinScore: f(40)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "inv-a", results[0].InvestorID)
}

func TestRankLimit(t *testing.T) {
	pool := make([]models.InvestorProfile, 0, 5)
	for _, id := range []string{"inv-a", "inv-b", "inv-c", "inv-d", "inv-e"} {
		pool = append(pool, investor(id, []string{"fintech"}, []string{"seed"}))
	}

	results, err := Rank(rankStartup(), pool, Options{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	over, err := Rank(rankStartup(), pool, Options{Limit: MaxLimit + 50})
	require.NoError(t, err)
	assert.Len(t, over, 5)
}

func TestRankEmptyPool(t *testing.T) {
	results, err := Rank(rankStartup(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankNilStartup(t *testing.T) {
	_, err := Rank(nil, nil, Options{})
	assert.Error(t, err)
}

func TestRankStampsGeneratedAt(t *testing.T) {
	generatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pool := []models.InvestorProfile{investor("inv-a", []string{"fintech"}, []string{"seed"})}

	results, err := Rank(rankStartup(), pool, Options{GeneratedAt: generatedAt})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, generatedAt, results[0].GeneratedAt)
}
