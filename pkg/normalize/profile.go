package normalize

import "github.com/leguplabs/pythia/pkg/models"

// StartupProfile returns a copy of the profile with every scoreable field in
// canonical form. Scoring operates only on normalized profiles so it never
// needs defensive checks beyond "factor contributes zero".
func StartupProfile(p models.StartupProfile) models.StartupProfile {
	p.Domain = Domain(p.Domain)
	p.Sectors = Sectors(p.Sectors)
	p.Stage = Stage(p.Stage)
	p.Signals = Keywords(p.Signals)
	if p.Geography != nil {
		geo := Keywords([]string{*p.Geography})
		if len(geo) == 0 {
			p.Geography = nil
		} else {
			p.Geography = &geo[0]
		}
	}
	return p
}

// InvestorProfile returns a copy of the investor with canonical sectors,
// stages, geographies, and thesis keywords.
func InvestorProfile(p models.InvestorProfile) models.InvestorProfile {
	p.Sectors = Sectors(p.Sectors)
	p.Geographies = Keywords(p.Geographies)
	p.ThesisKeywords = Keywords(p.ThesisKeywords)

	stages := make([]string, 0, len(p.Stages))
	seen := make(map[string]bool, len(p.Stages))
	for _, raw := range p.Stages {
		stage := Stage(&raw)
		if stage == nil || seen[*stage] {
			continue
		}
		seen[*stage] = true
		stages = append(stages, *stage)
	}
	p.Stages = stages

	return p
}
