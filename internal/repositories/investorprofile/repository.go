package investorprofile

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/leguplabs/pythia/pkg/database"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// InvestorProfileRepository defines the interface for investor profile data access.
// The matching engine only reads investor records.
type InvestorProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.InvestorProfile, error)
	List(ctx context.Context) ([]models.InvestorProfile, error)
}

// Repository implements InvestorProfileRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new investor profile repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an investor profile by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.InvestorProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "InvestorProfileRepository.GetByID")
	defer span.End()

	sb := investorProfileStruct.SelectFrom(investorProfilesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()

	var row InvestorProfileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "investor profile not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get investor profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get investor profile")
	}

	return ToInvestorProfile(&row), nil
}

// List retrieves the full investor pool in stable ID order.
func (r *Repository) List(ctx context.Context) ([]models.InvestorProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "InvestorProfileRepository.List")
	defer span.End()

	sb := investorProfileStruct.SelectFrom(investorProfilesTable)
	sb.OrderBy("id")

	query, args := sb.Build()

	var rows []InvestorProfileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list investor profiles")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list investor profiles")
	}

	return ToInvestorProfiles(rows), nil
}
