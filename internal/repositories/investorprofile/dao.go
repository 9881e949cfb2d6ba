package investorprofile

import (
	"database/sql"
	"time"

	"github.com/leguplabs/pythia/pkg/database"
	"github.com/leguplabs/pythia/pkg/models"
)

const (
	investorProfilesTable = "investor_profiles"
)

// InvestorProfileRow represents the database row for an investor profile
type InvestorProfileRow struct {
	ID                 sql.NullString           `db:"id"`
	Name               sql.NullString           `db:"name"`
	Archetype          sql.NullString           `db:"archetype"`
	Sectors            database.JSONB[[]string] `db:"sectors"`
	Stages             database.JSONB[[]string] `db:"stages"`
	CheckSizeMin       sql.NullFloat64          `db:"check_size_min"`
	CheckSizeMax       sql.NullFloat64          `db:"check_size_max"`
	Geographies        database.JSONB[[]string] `db:"geographies"`
	ThesisKeywords     database.JSONB[[]string] `db:"thesis_keywords"`
	NotableInvestments database.JSONB[[]string] `db:"notable_investments"`
	CreatedAt          sql.NullTime             `db:"created_at"`
	UpdatedAt          sql.NullTime             `db:"updated_at"`
}

var investorProfileStruct = database.NewStruct(new(InvestorProfileRow))

// ToInvestorProfile converts a database row to a domain model
func ToInvestorProfile(row *InvestorProfileRow) *models.InvestorProfile {
	return &models.InvestorProfile{
		ID:        row.ID.String,
		Name:      row.Name.String,
		Archetype: models.InvestorArchetype(row.Archetype.String),
		Sectors:   row.Sectors.Data,
		Stages:    row.Stages.Data,
		CheckSize: models.CheckSizeRange{
			Min: toFloatPointer(row.CheckSizeMin),
			Max: toFloatPointer(row.CheckSizeMax),
		},
		Geographies:        row.Geographies.Data,
		ThesisKeywords:     row.ThesisKeywords.Data,
		NotableInvestments: row.NotableInvestments.Data,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
}

// ToInvestorProfiles converts a slice of database rows to domain models
func ToInvestorProfiles(rows []InvestorProfileRow) []models.InvestorProfile {
	profiles := make([]models.InvestorProfile, len(rows))
	for i, row := range rows {
		profiles[i] = *ToInvestorProfile(&row)
	}
	return profiles
}

func toFloatPointer(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}
