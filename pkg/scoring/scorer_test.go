package scoring

import (
	"testing"

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

func seedStartup() models.StartupProfile {
	return models.StartupProfile{
		ID:          "startup-1",
		Name:        "Acme",
		Domain:      "acme.com",
		Sectors:     []string{"fintech", "ai"},
		Stage:       strPtr("seed"),
		GodScore:    f(72),
		RaiseAmount: f(2_000_000),
	}
}

func seedInvestor() models.InvestorProfile {
	return models.InvestorProfile{
		ID:        "investor-1",
		Name:      "First Check Capital",
		Archetype: models.InvestorArchetypeFund,
		Sectors:   []string{"fintech"},
		Stages:    []string{"seed", "series-a"},
		CheckSize: models.CheckSizeRange{Min: f(500_000), Max: f(3_000_000)},
	}
}

func TestScoreStrongPairing(t *testing.T) {
	result := Score(seedStartup(), seedInvestor(), DefaultWeights())

	// sector 3 + stage 5 + global geography 2 + check size 3 + quality 7.2,
	// rescaled against the 34-point maximum.
	assert.InDelta(t, 59.4, result.Score, 0.001)
	assert.Greater(t, result.Score, 50.0)
	assert.Equal(t, models.MatchConfidenceHigh, result.Confidence)

	assert.Contains(t, result.Reasons, "Sector match: fintech")
	assert.Contains(t, result.Reasons, "Stage fit: seed")
	assert.Contains(t, result.Reasons, "Geography fit: investor invests globally")
	assert.Contains(t, result.Reasons, "Check size fit: $2.0M within $500K-$3.0M")
	assert.Contains(t, result.Reasons, "Quality score: 72/100")
}

func TestScoreDeterministic(t *testing.T) {
	first := Score(seedStartup(), seedInvestor(), DefaultWeights())
	second := Score(seedStartup(), seedInvestor(), DefaultWeights())

	assert.Equal(t, first, second)
}

func TestScoreMissingFieldsContributeZero(t *testing.T) {
	startup := models.StartupProfile{ID: "startup-2", Name: "Stealth"}
	investor := models.InvestorProfile{
		ID:          "investor-2",
		Sectors:     []string{"climate"},
		Geographies: []string{"europe"},
	}

	result := Score(startup, investor, DefaultWeights())

	// Only the neutral check-size factor contributes.
	assert.Equal(t, models.MatchConfidenceLow, result.Confidence)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "Check size: raise amount unknown, neutral fit", result.Reasons[0])
	assert.Greater(t, result.Score, 0.0)
	assert.Less(t, result.Score, 10.0)
}

func TestScoreSectorCap(t *testing.T) {
	startup := seedStartup()
	startup.Sectors = []string{"fintech", "ai", "saas", "devtools"}
	investor := seedInvestor()
	investor.Sectors = []string{"fintech", "ai", "saas", "devtools"}

	capped := Score(startup, investor, DefaultWeights())

	startup.Sectors = []string{"fintech", "ai", "saas"}
	investor.Sectors = []string{"fintech", "ai", "saas"}
	atCap := Score(startup, investor, DefaultWeights())

	// Three shared sectors already hit the 9-point cap.
	assert.Equal(t, atCap.Score, capped.Score)
}

func TestScoreSectorMonotonic(t *testing.T) {
	startup := seedStartup()
	startup.Sectors = []string{"fintech", "ai", "saas", "devtools"}
	investor := seedInvestor()
	investor.Sectors = nil

	// Growing only the investor's shared sectors one tag at a time never
	// decreases the score, below and across the cap.
	prev := Score(startup, investor, DefaultWeights()).Score
	for _, sector := range startup.Sectors {
		investor.Sectors = append(investor.Sectors, sector)
		next := Score(startup, investor, DefaultWeights()).Score
		assert.GreaterOrEqual(t, next, prev, "adding sector %q lowered the score", sector)
		prev = next
	}
}

func TestScoreSignalOverlap(t *testing.T) {
	startup := seedStartup()
	startup.Signals = []string{"yc w24", "10k mrr"}
	investor := seedInvestor()
	investor.ThesisKeywords = []string{"yc", "b2b"}

	result := Score(startup, investor, DefaultWeights())

	assert.Contains(t, result.Reasons, "Signal overlap: yc w24")
}

func TestScoreCheckSizeOutsideRange(t *testing.T) {
	startup := seedStartup()
	startup.RaiseAmount = f(10_000_000)

	result := Score(startup, seedInvestor(), DefaultWeights())

	for _, reason := range result.Reasons {
		assert.NotContains(t, reason, "Check size fit")
	}
}

func TestScoreGeographyMismatch(t *testing.T) {
	startup := seedStartup()
	startup.Geography = strPtr("berlin")
	investor := seedInvestor()
	investor.Geographies = []string{"us", "canada"}

	result := Score(startup, investor, DefaultWeights())

	for _, reason := range result.Reasons {
		assert.NotContains(t, reason, "Geography fit")
	}
}

func TestScoreQualityContribution(t *testing.T) {
	result := Score(seedStartup(), seedInvestor(), DefaultWeights())

	// 7.2 raw quality points rescaled against the 34-point maximum.
	assert.InDelta(t, 21.2, result.QualityContribution, 0.001)
}

func TestScoreClampsGodScore(t *testing.T) {
	startup := seedStartup()
	startup.GodScore = f(150)

	result := Score(startup, seedInvestor(), DefaultWeights())

	assert.Contains(t, result.Reasons, "Quality score: 100/100")
	assert.LessOrEqual(t, result.Score, 100.0)
}
