// Package fingerprint produces deterministic snapshot fingerprints over the
// inputs of a match generation, so identical inputs never persist duplicate
// rows and changed inputs are detectable as a new snapshot.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/leguplabs/pythia/pkg/models"
)

// Snapshot hashes the startup attributes plus the ID-ordered candidate pool.
// Candidate order as supplied does not affect the result.
func Snapshot(startup models.StartupProfile, candidates []models.InvestorProfile) string {
	ordered := make([]models.InvestorProfile, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	canonical := "{\"startup\":" + canonicalize(startupAttributes(startup)) + ",\"candidates\":["
	for i, candidate := range ordered {
		if i > 0 {
			canonical += ","
		}
		canonical += canonicalize(investorAttributes(candidate))
	}
	canonical += "]}"

	hash := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(hash[:])
}

// startupAttributes selects the scoring-relevant attributes. Timestamps and
// review status are excluded: they change without changing the match inputs.
func startupAttributes(p models.StartupProfile) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"domain":       p.Domain,
		"sectors":      sortedCopy(p.Sectors),
		"stage":        p.Stage,
		"geography":    p.Geography,
		"god_score":    p.GodScore,
		"signals":      sortedCopy(p.Signals),
		"raise_amount": p.RaiseAmount,
	}
}

func investorAttributes(p models.InvestorProfile) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"sectors":     sortedCopy(p.Sectors),
		"stages":      sortedCopy(p.Stages),
		"check_min":   p.CheckSize.Min,
		"check_max":   p.CheckSize.Max,
		"geographies": sortedCopy(p.Geographies),
		"thesis":      sortedCopy(p.ThesisKeywords),
	}
}

func sortedCopy(values []string) []string {
	result := make([]string, len(values))
	copy(result, values)
	sort.Strings(result)
	return result
}

// canonicalize creates a deterministic string representation of a value by
// sorting map keys and recursively processing nested structures.
func canonicalize(data any) string {
	switch v := data.(type) {
	case map[string]any:
		return canonicalizeMap(v)
	case []string:
		result := "["
		for i, item := range v {
			if i > 0 {
				result += ","
			}
			result += canonicalize(item)
		}
		return result + "]"
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

func canonicalizeMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := "{"
	for i, k := range keys {
		if i > 0 {
			result += ","
		}
		keyJSON, _ := json.Marshal(k)
		result += string(keyJSON) + ":" + canonicalize(m[k])
	}
	return result + "}"
}

// HasChanged compares two fingerprints to detect changes.
func HasChanged(oldFingerprint, newFingerprint string) bool {
	return oldFingerprint != newFingerprint
}
