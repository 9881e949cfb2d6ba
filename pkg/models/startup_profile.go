package models

import "time"

// StartupProfileStatus is the review lifecycle state of a startup profile.
type StartupProfileStatus string

const (
	StartupProfileStatusPending  StartupProfileStatus = "pending"
	StartupProfileStatusApproved StartupProfileStatus = "approved"
	StartupProfileStatusRejected StartupProfileStatus = "rejected"
)

// StartupProfile is a startup record as the matching engine sees it. The ID
// and domain are immutable once created; the normalizer may amend the
// remaining fields without changing identity.
type StartupProfile struct {
	ID            string               `json:"id" db:"id"`
	Name          string               `json:"name" db:"name"`
	Tagline       string               `json:"tagline,omitempty" db:"tagline"`
	Domain        string               `json:"domain" db:"domain"` // canonical dedup key
	LinkedInURL   *string              `json:"linkedin_url,omitempty" db:"linkedin_url"`
	CrunchbaseURL *string              `json:"crunchbase_url,omitempty" db:"crunchbase_url"`
	Sectors       []string             `json:"sectors" db:"-"`
	Stage         *string              `json:"stage,omitempty" db:"stage"`
	Geography     *string              `json:"geography,omitempty" db:"geography"`
	GodScore      *float64             `json:"god_score,omitempty" db:"god_score"`
	Signals       []string             `json:"signals" db:"-"`
	RaiseAmount   *float64             `json:"raise_amount,omitempty" db:"raise_amount"`
	Status        StartupProfileStatus `json:"status" db:"status"`
	CreatedAt     time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" db:"updated_at"`
}

// StartupSummary is the read-only slice of a startup embedded in share views.
type StartupSummary struct {
	Name    string   `json:"name"`
	Tagline string   `json:"tagline,omitempty"`
	Sectors []string `json:"sectors"`
	Stage   *string  `json:"stage,omitempty"`
}

// Summary returns the shareable summary of a profile.
func (p *StartupProfile) Summary() StartupSummary {
	return StartupSummary{
		Name:    p.Name,
		Tagline: p.Tagline,
		Sectors: p.Sectors,
		Stage:   p.Stage,
	}
}
