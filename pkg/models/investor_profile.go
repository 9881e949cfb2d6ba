package models

import "time"

// InvestorArchetype classifies the kind of capital provider.
type InvestorArchetype string

const (
	InvestorArchetypeFund          InvestorArchetype = "fund"
	InvestorArchetypeAngelNetwork  InvestorArchetype = "angel_network"
	InvestorArchetypeAccelerator   InvestorArchetype = "accelerator"
	InvestorArchetypeCorporateFund InvestorArchetype = "corporate_fund"
)

// CheckSizeRange is an investor's check size in dollars. A nil bound means
// unbounded on that side.
type CheckSizeRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Contains reports whether amount falls inside the range.
func (r CheckSizeRange) Contains(amount float64) bool {
	if r.Min != nil && amount < *r.Min {
		return false
	}
	if r.Max != nil && amount > *r.Max {
		return false
	}
	return true
}

// IsZero reports whether neither bound is set.
func (r CheckSizeRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// InvestorProfile is an investor record. Read-only to the matching engine;
// created and enriched by external collaborators.
type InvestorProfile struct {
	ID                 string            `json:"id" db:"id"`
	Name               string            `json:"name" db:"name"`
	Archetype          InvestorArchetype `json:"archetype" db:"archetype"`
	Sectors            []string          `json:"sectors" db:"-"`
	Stages             []string          `json:"stages" db:"-"` // an investor may span multiple stages
	CheckSize          CheckSizeRange    `json:"check_size" db:"-"`
	Geographies        []string          `json:"geographies" db:"-"` // empty means global
	ThesisKeywords     []string          `json:"thesis_keywords" db:"-"`
	NotableInvestments []string          `json:"notable_investments" db:"-"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" db:"updated_at"`
}
