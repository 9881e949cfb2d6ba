// Package scoring computes explainable startup/investor compatibility scores.
// Score is a pure function: fixed inputs always produce byte-identical
// output, missing fields contribute zero to their factor, and nothing here
// touches I/O.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/leguplabs/pythia/pkg/models"
)

// Weights holds the per-factor weights. Callers may override individual
// weights; the factor set itself is fixed.
type Weights struct {
	SectorPerMatch float64 // points per shared sector
	SectorCap      float64
	StageFit       float64
	Geography      float64
	CheckSize      float64
	SignalPerMatch float64 // points per overlapping signal keyword
	SignalCap      float64
	QualityMax     float64 // points at GOD score 100
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		SectorPerMatch: 3,
		SectorCap:      9,
		StageFit:       5,
		Geography:      2,
		CheckSize:      3,
		SignalPerMatch: 1,
		SignalCap:      5,
		QualityMax:     10,
	}
}

// maxAttainable is the raw-point total a perfect pairing could reach; the
// final score rescales against it so 100 is always reachable.
func (w Weights) maxAttainable() float64 {
	return w.SectorCap + w.StageFit + w.Geography + w.CheckSize + w.SignalCap + w.QualityMax
}

// Result is a scored pairing with one human-readable reason per factor that
// contributed a non-zero amount.
type Result struct {
	Score               float64 // 0-100, one decimal
	Reasons             []string
	Confidence          models.MatchConfidence
	QualityContribution float64 // rescaled quality-floor points, used as a ranking tie-break
}

// Score computes the compatibility of a startup/investor pairing. Both
// profiles are expected in normalized form (see pkg/normalize).
func Score(startup models.StartupProfile, investor models.InvestorProfile, weights Weights) Result {
	maxTotal := weights.maxAttainable()
	if maxTotal <= 0 {
		weights = DefaultWeights()
		maxTotal = weights.maxAttainable()
	}

	var total float64
	var contributing int
	reasons := make([]string, 0, 6)

	// Sector overlap
	shared := intersect(startup.Sectors, investor.Sectors)
	if len(shared) > 0 {
		points := math.Min(float64(len(shared))*weights.SectorPerMatch, weights.SectorCap)
		total += points
		contributing++
		reasons = append(reasons, "Sector match: "+strings.Join(shared, ", "))
	}

	// Stage fit
	if startup.Stage != nil && contains(investor.Stages, *startup.Stage) {
		total += weights.StageFit
		contributing++
		reasons = append(reasons, "Stage fit: "+*startup.Stage)
	}

	// Geography fit: overlap, or an investor with no geography focus is
	// treated as global.
	if geographyPoints, reason := geographyFit(startup, investor, weights.Geography); geographyPoints > 0 {
		total += geographyPoints
		contributing++
		reasons = append(reasons, reason)
	}

	// Check-size fit: a missing raise amount is neutral rather than a miss.
	if checkPoints, reason := checkSizeFit(startup, investor, weights.CheckSize); checkPoints > 0 {
		total += checkPoints
		contributing++
		reasons = append(reasons, reason)
	}

	// Signal overlap against the investor's thesis keywords
	overlapping := signalOverlap(startup.Signals, investor.ThesisKeywords)
	if len(overlapping) > 0 {
		points := math.Min(float64(len(overlapping))*weights.SignalPerMatch, weights.SignalCap)
		total += points
		contributing++
		reasons = append(reasons, "Signal overlap: "+strings.Join(overlapping, ", "))
	}

	// Quality floor: GOD score scaled linearly onto [0, QualityMax]
	var qualityPoints float64
	if startup.GodScore != nil && *startup.GodScore > 0 {
		godScore := math.Min(*startup.GodScore, 100)
		qualityPoints = godScore / 100 * weights.QualityMax
		total += qualityPoints
		contributing++
		reasons = append(reasons, fmt.Sprintf("Quality score: %.0f/100", godScore))
	}

	score := roundScore(total / maxTotal * 100)
	score = math.Max(0, math.Min(100, score))

	return Result{
		Score:               score,
		Reasons:             reasons,
		Confidence:          confidenceFor(contributing),
		QualityContribution: roundScore(qualityPoints / maxTotal * 100),
	}
}

func geographyFit(startup models.StartupProfile, investor models.InvestorProfile, points float64) (float64, string) {
	if len(investor.Geographies) == 0 {
		return points, "Geography fit: investor invests globally"
	}
	if startup.Geography == nil {
		return 0, ""
	}
	for _, geography := range investor.Geographies {
		if strings.Contains(*startup.Geography, geography) || strings.Contains(geography, *startup.Geography) {
			return points, "Geography fit: " + geography
		}
	}
	return 0, ""
}

func checkSizeFit(startup models.StartupProfile, investor models.InvestorProfile, points float64) (float64, string) {
	if startup.RaiseAmount == nil {
		return points / 2, "Check size: raise amount unknown, neutral fit"
	}
	if investor.CheckSize.Contains(*startup.RaiseAmount) {
		return points, fmt.Sprintf("Check size fit: %s within %s", formatAmount(*startup.RaiseAmount), formatRange(investor.CheckSize))
	}
	return 0, ""
}

// intersect returns the sorted intersection of two tag sets.
func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, tag := range b {
		set[tag] = true
	}
	shared := make([]string, 0, len(a))
	seen := make(map[string]bool, len(a))
	for _, tag := range a {
		if set[tag] && !seen[tag] {
			seen[tag] = true
			shared = append(shared, tag)
		}
	}
	sort.Strings(shared)
	return shared
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// signalOverlap returns the startup signals that overlap an investor thesis
// keyword by case-insensitive substring containment, in startup order.
func signalOverlap(signals, thesis []string) []string {
	overlapping := make([]string, 0, len(signals))
	for _, signal := range signals {
		for _, keyword := range thesis {
			if strings.Contains(signal, keyword) || strings.Contains(keyword, signal) {
				overlapping = append(overlapping, signal)
				break
			}
		}
	}
	return overlapping
}

func confidenceFor(contributing int) models.MatchConfidence {
	switch {
	case contributing >= 4:
		return models.MatchConfidenceHigh
	case contributing >= 2:
		return models.MatchConfidenceMedium
	default:
		return models.MatchConfidenceLow
	}
}

// roundScore rounds to one decimal, the precision of the public score.
func roundScore(value float64) float64 {
	return math.Round(value*10) / 10
}

func formatAmount(amount float64) string {
	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%.0fK", amount/1_000)
	default:
		return fmt.Sprintf("$%.0f", amount)
	}
}

func formatRange(r models.CheckSizeRange) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return formatAmount(*r.Min) + "-" + formatAmount(*r.Max)
	case r.Min != nil:
		return formatAmount(*r.Min) + "+"
	case r.Max != nil:
		return "up to " + formatAmount(*r.Max)
	default:
		return "any check size"
	}
}
