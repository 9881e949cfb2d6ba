// Package resolver turns an arbitrary identity hint (URL, partial URL, or
// domain-like text) into exactly one canonical startup record, with a
// confidence classification ordered from strongest to weakest evidence.
package resolver

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/Gobusters/ectologger"

	pythiaerrors "github.com/leguplabs/pythia/pkg/errors"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/normalize"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// StartupRepository is the profile store surface the resolver needs. All
// lookup methods return their matches without error when nothing is found;
// UpsertProvisional must be atomic per domain (unique constraint) so
// concurrent resolves of the same unseen domain yield one record.
type StartupRepository interface {
	GetByDomain(ctx context.Context, domain string) (*models.StartupProfile, error)
	ListByLinkedInURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error)
	ListByCrunchbaseURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error)
	ListByDomainContains(ctx context.Context, domain string) ([]models.StartupProfile, error)
	UpsertProvisional(ctx context.Context, domain string, name string) (*models.StartupProfile, error)
}

// Config controls resolution behavior.
type Config struct {
	// Strict surfaces ResolutionAmbiguousError when a step matches more
	// than one record instead of tie-breaking deterministically.
	Strict bool
}

// Resolver resolves identity hints against the startup profile store.
// Provisional creation is the only mutating path in the engine.
type Resolver struct {
	repo   StartupRepository
	logger ectologger.Logger
	config Config
}

func New(repo StartupRepository, logger ectologger.Logger, config Config) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
		config: config,
	}
}

// Known social-profile and company-database hosts.
const (
	linkedInHost   = "linkedin.com"
	crunchbaseHost = "crunchbase.com"
)

// Resolve runs the precedence chain: exact domain, linkedin profile,
// crunchbase profile, domain containment, provisional creation. Stronger
// evidence is never overridden by weaker evidence found later.
func (r *Resolver) Resolve(ctx context.Context, hint string) (*models.ResolutionResult, error) {
	ctx, span := tracing.StartSpan(ctx, "resolver.Resolver.Resolve")
	defer span.End()

	parsed, err := parseHint(hint)
	if err != nil {
		return nil, err
	}

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"hint":   hint,
		"domain": parsed.domain,
	})

	// Exact canonical-domain match is the strongest evidence.
	exact, err := r.repo.GetByDomain(ctx, parsed.domain)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return &models.ResolutionResult{Startup: exact, Confidence: models.ResolutionExactDomain}, nil
	}

	if hostIs(parsed.host, linkedInHost) {
		matches, err := r.repo.ListByLinkedInURL(ctx, parsed.profileURL)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			startup, err := r.pick(hint, matches, log)
			if err != nil {
				return nil, err
			}
			return &models.ResolutionResult{Startup: startup, Confidence: models.ResolutionLinkedInMatch}, nil
		}
	}

	if hostIs(parsed.host, crunchbaseHost) {
		matches, err := r.repo.ListByCrunchbaseURL(ctx, parsed.profileURL)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			startup, err := r.pick(hint, matches, log)
			if err != nil {
				return nil, err
			}
			return &models.ResolutionResult{Startup: startup, Confidence: models.ResolutionCrunchbaseMatch}, nil
		}
	}

	contains, err := r.repo.ListByDomainContains(ctx, parsed.domain)
	if err != nil {
		return nil, err
	}
	if len(contains) > 0 {
		startup, err := r.pick(hint, contains, log)
		if err != nil {
			return nil, err
		}
		return &models.ResolutionResult{Startup: startup, Confidence: models.ResolutionContainsDomain}, nil
	}

	// Nothing matched: create a provisional pending record keyed on the
	// canonical domain. The upsert makes a second resolve of the same
	// unseen domain return the first record instead of a duplicate.
	provisional, err := r.repo.UpsertProvisional(ctx, parsed.domain, placeholderName(parsed.domain))
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]any{"startup_id": provisional.ID}).Info("Created provisional startup profile")

	return &models.ResolutionResult{Startup: provisional, Confidence: models.ResolutionCreatedProvisional}, nil
}

// pick resolves a multi-candidate step deterministically: most recently
// updated first, lowest ID on an exact tie. Ambiguity is logged, not
// surfaced, unless strict mode is on.
func (r *Resolver) pick(hint string, matches []models.StartupProfile, log ectologger.Logger) (*models.StartupProfile, error) {
	if len(matches) == 1 {
		return &matches[0], nil
	}

	if r.config.Strict {
		ids := make([]string, len(matches))
		for i, match := range matches {
			ids[i] = match.ID
		}
		sort.Strings(ids)
		return nil, &pythiaerrors.ResolutionAmbiguousError{Hint: hint, CandidateIDs: ids}
	}

	sorted := make([]models.StartupProfile, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].UpdatedAt.Equal(sorted[j].UpdatedAt) {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	log.WithFields(map[string]any{
		"candidate_count": len(matches),
		"picked_id":       sorted[0].ID,
	}).Warn("Ambiguous identity hint, picked most recently updated record")

	return &sorted[0], nil
}

type parsedHint struct {
	host       string // full hostname, www stripped
	domain     string // canonical domain
	profileURL string // normalized host+path for profile-URL matching
}

// parseHint parses the hint as a URL, retrying with an https prefix. Hints
// that still yield no plausible hostname fail with InvalidHintError.
func parseHint(hint string) (*parsedHint, error) {
	trimmed := strings.TrimSpace(hint)
	if trimmed == "" {
		return nil, pythiaerrors.NewInvalidHintError(hint)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("https://" + trimmed)
		if err != nil || parsed.Host == "" {
			return nil, pythiaerrors.NewInvalidHintError(hint)
		}
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") {
		return nil, pythiaerrors.NewInvalidHintError(hint)
	}

	path := strings.TrimRight(strings.ToLower(parsed.Path), "/")

	return &parsedHint{
		host:       host,
		domain:     normalize.Domain(host),
		profileURL: host + path,
	}, nil
}

func hostIs(host, known string) bool {
	return host == known || strings.HasSuffix(host, "."+known)
}

// placeholderName derives a display name for a provisional record from the
// domain's first label, e.g. "acme.com" -> "Acme".
func placeholderName(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return domain
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
