package sharetoken

import (
	"database/sql"
	"time"

	"github.com/leguplabs/pythia/pkg/database"
	"github.com/leguplabs/pythia/pkg/models"
)

const (
	shareTokensTable = "share_tokens"
)

// ShareTokenRow represents the database row for a share token
type ShareTokenRow struct {
	Token     sql.NullString                   `db:"token"`
	StartupID sql.NullString                   `db:"startup_id"`
	View      database.JSONB[models.ShareView] `db:"view"`
	CreatedAt sql.NullTime                     `db:"created_at"`
	ExpiresAt sql.NullTime                     `db:"expires_at"`
}

var shareTokenStruct = database.NewStruct(new(ShareTokenRow))

// FromShareToken converts a domain model to a database row
func FromShareToken(t *models.ShareToken) *ShareTokenRow {
	return &ShareTokenRow{
		Token:     sql.NullString{String: t.Token, Valid: t.Token != ""},
		StartupID: sql.NullString{String: t.StartupID, Valid: t.StartupID != ""},
		View:      database.JSONB[models.ShareView]{Data: t.View},
		CreatedAt: sql.NullTime{Time: t.CreatedAt, Valid: !t.CreatedAt.IsZero()},
		ExpiresAt: sql.NullTime{Time: t.ExpiresAt, Valid: !t.ExpiresAt.IsZero()},
	}
}

// ToShareToken converts a database row to a domain model
func ToShareToken(row *ShareTokenRow) *models.ShareToken {
	return &models.ShareToken{
		Token:     row.Token.String,
		StartupID: row.StartupID.String,
		View:      row.View.Data,
		CreatedAt: row.CreatedAt.Time,
		ExpiresAt: row.ExpiresAt.Time,
	}
}

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}
