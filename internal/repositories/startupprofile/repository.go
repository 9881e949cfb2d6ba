package startupprofile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/leguplabs/pythia/pkg/database"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// StartupProfileRepository defines the interface for startup profile data access
type StartupProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.StartupProfile, error)
	GetByDomain(ctx context.Context, domain string) (*models.StartupProfile, error)
	ListByLinkedInURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error)
	ListByCrunchbaseURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error)
	ListByDomainContains(ctx context.Context, domain string) ([]models.StartupProfile, error)
	UpsertProvisional(ctx context.Context, domain string, name string) (*models.StartupProfile, error)
}

// Repository implements StartupProfileRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new startup profile repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a startup profile by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.StartupProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "StartupProfileRepository.GetByID")
	defer span.End()

	sb := startupProfileStruct.SelectFrom(startupProfilesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var row StartupProfileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "startup profile not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get startup profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get startup profile")
	}

	return ToStartupProfile(&row), nil
}

// GetByDomain retrieves a startup profile by canonical domain. Returns nil
// without error when no record exists, so callers can fall through to the
// weaker lookup steps.
func (r *Repository) GetByDomain(ctx context.Context, domain string) (*models.StartupProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "StartupProfileRepository.GetByDomain")
	defer span.End()

	sb := startupProfileStruct.SelectFrom(startupProfilesTable)
	sb.Where(sb.Equal("domain", domain))

	query, args := sb.Build()

	var row StartupProfileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get startup profile by domain")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get startup profile by domain")
	}

	return ToStartupProfile(&row), nil
}

// ListByLinkedInURL retrieves startup profiles whose stored LinkedIn URL
// matches the normalized profile URL.
func (r *Repository) ListByLinkedInURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error) {
	return r.listByProfileURL(ctx, "StartupProfileRepository.ListByLinkedInURL", "linkedin_url", profileURL)
}

// ListByCrunchbaseURL retrieves startup profiles whose stored Crunchbase URL
// matches the normalized profile URL.
func (r *Repository) ListByCrunchbaseURL(ctx context.Context, profileURL string) ([]models.StartupProfile, error) {
	return r.listByProfileURL(ctx, "StartupProfileRepository.ListByCrunchbaseURL", "crunchbase_url", profileURL)
}

// Stored profile URLs carry scheme and www noise; strip both sides down to
// host+path before comparing.
const profileURLExpr = "RTRIM(REGEXP_REPLACE(LOWER(%s), '^https?://(www\\.)?', ''), '/')"

func (r *Repository) listByProfileURL(ctx context.Context, spanName, column, profileURL string) ([]models.StartupProfile, error) {
	ctx, span := tracing.StartSpan(ctx, spanName)
	defer span.End()

	sb := startupProfileStruct.SelectFrom(startupProfilesTable)
	sb.Where(
		sb.IsNotNull(column),
		fmt.Sprintf(profileURLExpr+" = %s", column, sb.Var(profileURL)),
	)
	sb.OrderBy("id")

	query, args := sb.Build()

	var rows []StartupProfileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"column": column}).Error("Failed to list startup profiles by profile URL")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list startup profiles")
	}

	return ToStartupProfiles(rows), nil
}

// ListByDomainContains retrieves profiles whose domain contains the given
// domain or is contained by it, for fuzzy containment matching.
func (r *Repository) ListByDomainContains(ctx context.Context, domain string) ([]models.StartupProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "StartupProfileRepository.ListByDomainContains")
	defer span.End()

	sb := startupProfileStruct.SelectFrom(startupProfilesTable)
	sb.Where(
		sb.Or(
			sb.Like("domain", "%"+domain+"%"),
			fmt.Sprintf("POSITION(domain IN %s) > 0", sb.Var(domain)),
		),
	)
	sb.OrderBy("id")

	query, args := sb.Build()

	var rows []StartupProfileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list startup profiles by domain containment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list startup profiles")
	}

	return ToStartupProfiles(rows), nil
}

// UpsertProvisional inserts a pending profile keyed on the canonical domain.
// When the domain already exists the existing record is returned untouched,
// so concurrent resolves of the same unseen domain converge on one record.
func (r *Repository) UpsertProvisional(ctx context.Context, domain string, name string) (*models.StartupProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "StartupProfileRepository.UpsertProvisional")
	defer span.End()

	now := Now()
	profile := &models.StartupProfile{
		ID:        uuid.New().String(),
		Name:      name,
		Domain:    domain,
		Sectors:   []string{},
		Signals:   []string{},
		Status:    models.StartupProfileStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	row := FromStartupProfile(profile)
	ib := startupProfileStruct.InsertInto(startupProfilesTable, row)

	query, args := ib.Build()
	// The no-op update makes the conflicting insert return the existing row.
	query += " ON CONFLICT (domain) DO UPDATE SET domain = EXCLUDED.domain RETURNING id, name, tagline, domain, linkedin_url, crunchbase_url, sectors, stage, geography, god_score, signals, raise_amount, status, created_at, updated_at"

	var result StartupProfileRow
	if err := r.db.GetContext(ctx, &result, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"domain": domain}).Error("Failed to upsert provisional startup profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create provisional startup profile")
	}

	return ToStartupProfile(&result), nil
}
