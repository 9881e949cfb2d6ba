// Package normalize maps free-form profile attributes onto the canonical
// vocabulary the scorer works over. Every function is pure and total:
// unparseable input degrades to nil/empty, it never produces an error,
// because normalization feeds a best-effort scorer, not a validator.
package normalize

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/leguplabs/pythia/pkg/models"
)

// Canonical funding stages, ordered from earliest to latest.
const (
	StagePreSeed     = "pre-seed"
	StageSeed        = "seed"
	StageSeriesA     = "series-a"
	StageSeriesB     = "series-b"
	StageSeriesCPlus = "series-c+"
	StageGrowth      = "growth"
)

type stageEntry struct {
	canonical string
	keywords  []string
}

// Ordered: pre-seed before seed so "pre-seed round" doesn't land on seed.
var stageVocabulary = []stageEntry{
	{StagePreSeed, []string{"pre-seed", "preseed", "pre seed"}},
	{StageSeed, []string{"seed"}},
	{StageSeriesA, []string{"series a", "series-a", "seriesa"}},
	{StageSeriesB, []string{"series b", "series-b", "seriesb"}},
	{StageSeriesCPlus, []string{"series c", "series-c", "series d", "series-d", "series e", "series-e", "c+"}},
	{StageGrowth, []string{"growth", "late stage", "late-stage", "pre-ipo"}},
}

var stageOrdinals = map[string]int{
	StagePreSeed:     0,
	StageSeed:        1,
	StageSeriesA:     2,
	StageSeriesB:     3,
	StageSeriesCPlus: 4,
	StageGrowth:      5,
}

// Stage maps a raw stage string onto the canonical vocabulary using
// case-insensitive substring matching. First matching canonical wins.
// Returns nil when nothing matches.
func Stage(raw *string) *string {
	if raw == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*raw))
	if lowered == "" {
		return nil
	}
	for _, entry := range stageVocabulary {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				canonical := entry.canonical
				return &canonical
			}
		}
	}
	return nil
}

// StageOrdinal returns a stage's position in the canonical ordering, or -1
// for an unknown stage.
func StageOrdinal(stage string) int {
	if ordinal, ok := stageOrdinals[stage]; ok {
		return ordinal
	}
	return -1
}

type sectorEntry struct {
	canonical string
	aliases   []string // whole-label matches, for short names like "ai"
	keywords  []string // substring matches
}

// Ordered keyword families; first match wins.
var sectorVocabulary = []sectorEntry{
	{"ai", []string{"ai", "ml", "a.i."}, []string{"artificial intelligence", "machine learning", "deep learning", "llm"}},
	{"fintech", nil, []string{"fintech", "financial", "payments", "banking", "insurtech", "lending"}},
	{"healthtech", nil, []string{"health", "medical", "biotech", "pharma", "wellness"}},
	{"climate", nil, []string{"climate", "clean energy", "sustainab", "carbon", "solar"}},
	{"cybersecurity", nil, []string{"cyber", "security", "privacy"}},
	{"ecommerce", nil, []string{"e-commerce", "ecommerce", "marketplace", "retail"}},
	{"edtech", nil, []string{"edtech", "education", "learning"}},
	{"devtools", nil, []string{"developer", "devtools", "dev tools", "infrastructure"}},
	{"saas", nil, []string{"saas", "b2b software", "enterprise software"}},
	{"consumer", nil, []string{"consumer", "social", "creator"}},
}

// Sector maps a raw sector label onto a canonical tag. Unmatched input falls
// back to the lower-cased raw string as its own ad-hoc tag so labels are
// never dropped silently. Returns nil only for empty input.
func Sector(raw *string) *string {
	if raw == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*raw))
	if lowered == "" {
		return nil
	}
	for _, entry := range sectorVocabulary {
		for _, alias := range entry.aliases {
			if lowered == alias {
				canonical := entry.canonical
				return &canonical
			}
		}
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				canonical := entry.canonical
				return &canonical
			}
		}
	}
	return &lowered
}

// Sectors normalizes a label list, dropping empties and duplicates while
// preserving first-seen order.
func Sectors(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	result := make([]string, 0, len(raw))
	for _, label := range raw {
		canonical := Sector(&label)
		if canonical == nil || seen[*canonical] {
			continue
		}
		seen[*canonical] = true
		result = append(result, *canonical)
	}
	return result
}

// CheckSize parses a free-form check size such as "$500K - $3M", "$2.5M", or
// a bare number. Malformed input yields an unbounded range rather than an
// error. Bare numbers infer their unit from magnitude: values under 100 read
// as millions, under 100,000 as thousands, anything larger as literal
// dollars. An explicit K/M/B suffix always wins.
func CheckSize(raw *string) models.CheckSizeRange {
	if raw == nil {
		return models.CheckSizeRange{}
	}
	cleaned := strings.TrimSpace(*raw)
	if cleaned == "" {
		return models.CheckSizeRange{}
	}

	parts := splitRange(cleaned)
	switch len(parts) {
	case 1:
		amount := parseAmount(parts[0])
		return models.CheckSizeRange{Min: amount, Max: amount}
	case 2:
		return models.CheckSizeRange{Min: parseAmount(parts[0]), Max: parseAmount(parts[1])}
	default:
		return models.CheckSizeRange{}
	}
}

func splitRange(s string) []string {
	for _, sep := range []string{" - ", "–", " to ", "-"} {
		if strings.Contains(s, sep) {
			left, right, _ := strings.Cut(s, sep)
			// A lone "$2-5M" style range shares the suffix with both sides.
			if suffix := trailingUnit(right); suffix != "" && trailingUnit(left) == "" {
				left += suffix
			}
			return []string{left, right}
		}
	}
	return []string{s}
}

func trailingUnit(s string) string {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	for _, unit := range []string{"k", "m", "b", "mm"} {
		if strings.HasSuffix(trimmed, unit) {
			return unit
		}
	}
	return ""
}

func parseAmount(s string) *float64 {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(cleaned, "mm"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "mm")
	case strings.HasSuffix(cleaned, "k"):
		multiplier = 1_000
		cleaned = strings.TrimSuffix(cleaned, "k")
	case strings.HasSuffix(cleaned, "m"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "m")
	case strings.HasSuffix(cleaned, "b"):
		multiplier = 1_000_000_000
		cleaned = strings.TrimSuffix(cleaned, "b")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil || value < 0 {
		return nil
	}

	if multiplier == 1.0 {
		// Bare number: infer the implied unit from magnitude.
		switch {
		case value < 100:
			multiplier = 1_000_000
		case value < 100_000:
			multiplier = 1_000
		}
	}

	result := value * multiplier
	return &result
}

// Domain reduces a URL or domain-like string to the canonical dedup key:
// lower-cased hostname with scheme, www prefix, port, and path stripped.
// Returns "" when no hostname can be extracted.
func Domain(raw string) string {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" {
		return ""
	}

	host := trimmed
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
		host = parsed.Host
	} else if parsed, err := url.Parse("https://" + trimmed); err == nil && parsed.Host != "" {
		host = parsed.Host
	}

	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") {
		return ""
	}
	return host
}

// Keywords lowercases and de-duplicates a free-form keyword set.
func Keywords(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	result := make([]string, 0, len(raw))
	for _, keyword := range raw {
		cleaned := strings.ToLower(strings.TrimSpace(keyword))
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		result = append(result, cleaned)
	}
	return result
}
