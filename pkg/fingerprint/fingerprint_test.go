package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leguplabs/pythia/pkg/models"
)

func f(v float64) *float64 {
	return &v
}

func snapshotStartup() models.StartupProfile {
	return models.StartupProfile{
		ID:          "startup-1",
		Domain:      "acme.com",
		Sectors:     []string{"fintech", "ai"},
		GodScore:    f(72),
		RaiseAmount: f(2_000_000),
		Status:      models.StartupProfileStatusPending,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func snapshotInvestors() []models.InvestorProfile {
	return []models.InvestorProfile{
		{ID: "inv-a", Sectors: []string{"fintech"}, Stages: []string{"seed"}},
		{ID: "inv-b", Sectors: []string{"climate"}},
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	first := Snapshot(snapshotStartup(), snapshotInvestors())
	second := Snapshot(snapshotStartup(), snapshotInvestors())

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestSnapshotIgnoresCandidateOrder(t *testing.T) {
	investors := snapshotInvestors()
	reversed := []models.InvestorProfile{investors[1], investors[0]}

	assert.Equal(t, Snapshot(snapshotStartup(), investors), Snapshot(snapshotStartup(), reversed))
}

func TestSnapshotDetectsAttributeChange(t *testing.T) {
	base := Snapshot(snapshotStartup(), snapshotInvestors())

	changed := snapshotStartup()
	changed.RaiseAmount = f(5_000_000)

	assert.True(t, HasChanged(base, Snapshot(changed, snapshotInvestors())))
}

func TestSnapshotDetectsCandidateChange(t *testing.T) {
	base := Snapshot(snapshotStartup(), snapshotInvestors())

	investors := snapshotInvestors()
	investors[0].Sectors = []string{"fintech", "saas"}

	assert.True(t, HasChanged(base, Snapshot(snapshotStartup(), investors)))
}

func TestSnapshotIgnoresTimestampsAndStatus(t *testing.T) {
	base := Snapshot(snapshotStartup(), snapshotInvestors())

	touched := snapshotStartup()
	touched.Status = models.StartupProfileStatusApproved
	touched.UpdatedAt = time.Now()

	assert.Equal(t, base, Snapshot(touched, snapshotInvestors()))
}
