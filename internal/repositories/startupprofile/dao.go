package startupprofile

import (
	"database/sql"
	"time"

	"github.com/leguplabs/pythia/pkg/database"
	"github.com/leguplabs/pythia/pkg/models"
)

const (
	startupProfilesTable = "startup_profiles"
)

// StartupProfileRow represents the database row for a startup profile
type StartupProfileRow struct {
	ID            sql.NullString            `db:"id"`
	Name          sql.NullString            `db:"name"`
	Tagline       sql.NullString            `db:"tagline"`
	Domain        sql.NullString            `db:"domain"`
	LinkedInURL   sql.NullString            `db:"linkedin_url"`
	CrunchbaseURL sql.NullString            `db:"crunchbase_url"`
	Sectors       database.JSONB[[]string]  `db:"sectors"`
	Stage         sql.NullString            `db:"stage"`
	Geography     sql.NullString            `db:"geography"`
	GodScore      sql.NullFloat64           `db:"god_score"`
	Signals       database.JSONB[[]string]  `db:"signals"`
	RaiseAmount   sql.NullFloat64           `db:"raise_amount"`
	Status        sql.NullString            `db:"status"`
	CreatedAt     sql.NullTime              `db:"created_at"`
	UpdatedAt     sql.NullTime              `db:"updated_at"`
}

var startupProfileStruct = database.NewStruct(new(StartupProfileRow))

// FromStartupProfile converts a domain model to a database row
func FromStartupProfile(p *models.StartupProfile) *StartupProfileRow {
	return &StartupProfileRow{
		ID:            sql.NullString{String: p.ID, Valid: p.ID != ""},
		Name:          sql.NullString{String: p.Name, Valid: p.Name != ""},
		Tagline:       sql.NullString{String: p.Tagline, Valid: p.Tagline != ""},
		Domain:        sql.NullString{String: p.Domain, Valid: p.Domain != ""},
		LinkedInURL:   nullableString(p.LinkedInURL),
		CrunchbaseURL: nullableString(p.CrunchbaseURL),
		Sectors:       database.JSONB[[]string]{Data: p.Sectors},
		Stage:         nullableString(p.Stage),
		Geography:     nullableString(p.Geography),
		GodScore:      nullableFloat(p.GodScore),
		Signals:       database.JSONB[[]string]{Data: p.Signals},
		RaiseAmount:   nullableFloat(p.RaiseAmount),
		Status:        sql.NullString{String: string(p.Status), Valid: p.Status != ""},
		CreatedAt:     sql.NullTime{Time: p.CreatedAt, Valid: !p.CreatedAt.IsZero()},
		UpdatedAt:     sql.NullTime{Time: p.UpdatedAt, Valid: !p.UpdatedAt.IsZero()},
	}
}

// ToStartupProfile converts a database row to a domain model
func ToStartupProfile(row *StartupProfileRow) *models.StartupProfile {
	return &models.StartupProfile{
		ID:            row.ID.String,
		Name:          row.Name.String,
		Tagline:       row.Tagline.String,
		Domain:        row.Domain.String,
		LinkedInURL:   toPointer(row.LinkedInURL),
		CrunchbaseURL: toPointer(row.CrunchbaseURL),
		Sectors:       row.Sectors.Data,
		Stage:         toPointer(row.Stage),
		Geography:     toPointer(row.Geography),
		GodScore:      toFloatPointer(row.GodScore),
		Signals:       row.Signals.Data,
		RaiseAmount:   toFloatPointer(row.RaiseAmount),
		Status:        models.StartupProfileStatus(row.Status.String),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

// ToStartupProfiles converts a slice of database rows to domain models
func ToStartupProfiles(rows []StartupProfileRow) []models.StartupProfile {
	profiles := make([]models.StartupProfile, len(rows))
	for i, row := range rows {
		profiles[i] = *ToStartupProfile(&row)
	}
	return profiles
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func toPointer(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
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
