package models

import "time"

// ShareView is the frozen, read-only payload behind a share token. It is
// copied at token creation time; later profile edits never change it.
type ShareView struct {
	Startup     StartupSummary `json:"startup"`
	Matches     []MatchResult  `json:"matches"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ShareToken references a frozen match set for external read-only access.
// Expired tokens are kept so they stay distinguishable from unknown ones.
type ShareToken struct {
	Token     string    `json:"token" db:"token"`
	StartupID string    `json:"startup_id" db:"startup_id"`
	View      ShareView `json:"view" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// CreateShareRequest asks for a share token over a startup's latest matches.
type CreateShareRequest struct {
	StartupID string `json:"startup_id" validate:"required"`
}

// CreateShareResponse returns the minted token.
type CreateShareResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
