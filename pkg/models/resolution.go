package models

// ResolutionConfidence ranks the evidence behind an identity match, strongest
// first.
type ResolutionConfidence string

const (
	ResolutionExactDomain        ResolutionConfidence = "exact_domain"
	ResolutionLinkedInMatch      ResolutionConfidence = "linkedin_match"
	ResolutionCrunchbaseMatch    ResolutionConfidence = "crunchbase_match"
	ResolutionContainsDomain     ResolutionConfidence = "contains_domain"
	ResolutionCreatedProvisional ResolutionConfidence = "created_provisional"
)

// ResolutionResult is the outcome of resolving a free-text identity hint.
type ResolutionResult struct {
	Startup    *StartupProfile      `json:"startup"`
	Confidence ResolutionConfidence `json:"confidence"`
}

// ResolveRequest carries the identity hint: a URL, partial URL, or
// domain-like text.
type ResolveRequest struct {
	Hint string `json:"hint" validate:"required"`
}
