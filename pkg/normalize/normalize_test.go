package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestStage(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"nil input", nil, nil},
		{"empty input", strPtr(""), nil},
		{"exact seed", strPtr("seed"), strPtr(StageSeed)},
		{"cased series a", strPtr("Series A"), strPtr(StageSeriesA)},
		{"pre-seed before seed", strPtr("Pre-Seed round"), strPtr(StagePreSeed)},
		{"series d folds into c+", strPtr("Series D"), strPtr(StageSeriesCPlus)},
		{"late stage", strPtr("Late-Stage"), strPtr(StageGrowth)},
		{"unknown", strPtr("bootstrap"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stage(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestStageOrdinal(t *testing.T) {
	assert.Equal(t, 0, StageOrdinal(StagePreSeed))
	assert.Equal(t, 2, StageOrdinal(StageSeriesA))
	assert.Equal(t, -1, StageOrdinal("unknown"))
}

func TestSector(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ai alias", "AI", "ai"},
		{"ml alias", "ml", "ai"},
		{"machine learning keyword", "Machine Learning", "ai"},
		{"payments", "Payments", "fintech"},
		{"biotech", "Biotech", "healthtech"},
		{"marketplace", "Marketplace", "ecommerce"},
		{"unknown keeps lowered raw", "SpaceTech", "spacetech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sector(&tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestSectorShortAliasNeedsWholeLabel(t *testing.T) {
	// "html" contains "ml" but is not a machine-learning label.
	got := Sector(strPtr("html"))
	require.NotNil(t, got)
	assert.Equal(t, "html", *got)
}

func TestSectorsDeduplicates(t *testing.T) {
	got := Sectors([]string{"AI", "machine learning", "Fintech", "", "fintech"})
	assert.Equal(t, []string{"ai", "fintech"}, got)
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin *float64
		wantMax *float64
	}{
		{"explicit range", "$500K - $3M", f(500_000), f(3_000_000)},
		{"single amount", "$2.5M", f(2_500_000), f(2_500_000)},
		{"shared suffix range", "$2-5M", f(2_000_000), f(5_000_000)},
		{"mm suffix", "1mm", f(1_000_000), f(1_000_000)},
		{"bare small number reads as millions", "2", f(2_000_000), f(2_000_000)},
		{"bare mid number reads as thousands", "250", f(250_000), f(250_000)},
		{"bare large number reads literally", "750000", f(750_000), f(750_000)},
		{"garbage", "call us", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSize(&tt.input)
			assertAmount(t, tt.wantMin, got.Min)
			assertAmount(t, tt.wantMax, got.Max)
		})
	}
}

func TestCheckSizeNilInput(t *testing.T) {
	got := CheckSize(nil)
	assert.True(t, got.IsZero())
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full url", "https://www.Acme.com/about", "acme.com"},
		{"bare domain", "acme.com", "acme.com"},
		{"with port", "acme.com:8080", "acme.com"},
		{"scheme no www", "http://acme.io", "acme.io"},
		{"no dot", "acme", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Domain(tt.input))
		})
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords([]string{" YC W24 ", "yc w24", "Revenue", ""})
	assert.Equal(t, []string{"yc w24", "revenue"}, got)
}

func f(v float64) *float64 {
	return &v
}

func assertAmount(t *testing.T, want, got *float64) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.InDelta(t, *want, *got, 0.01)
}
