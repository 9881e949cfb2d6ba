package sharetoken

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Gobusters/ectologger"

	"github.com/leguplabs/pythia/pkg/database"
	pythiaerrors "github.com/leguplabs/pythia/pkg/errors"
	"github.com/leguplabs/pythia/pkg/models"
	"github.com/leguplabs/pythia/pkg/tracing"
)

// ShareTokenRepository defines the interface for share token persistence
type ShareTokenRepository interface {
	Create(ctx context.Context, token *models.ShareToken) error
	Get(ctx context.Context, token string) (*models.ShareToken, error)
}

// Repository implements ShareTokenRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new share token repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create persists a share token with its frozen view
func (r *Repository) Create(ctx context.Context, token *models.ShareToken) error {
	ctx, span := tracing.StartSpan(ctx, "ShareTokenRepository.Create")
	defer span.End()

	row := FromShareToken(token)
	ib := shareTokenStruct.InsertInto(shareTokensTable, row)

	query, args := ib.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"startup_id": token.StartupID}).Error("Failed to create share token")
		return pythiaerrors.NewPersistenceIOError("create share token", err)
	}

	return nil
}

// Get retrieves a share token. Returns nil without error when the token does
// not exist; the caller decides between not-found and expired.
func (r *Repository) Get(ctx context.Context, token string) (*models.ShareToken, error) {
	ctx, span := tracing.StartSpan(ctx, "ShareTokenRepository.Get")
	defer span.End()

	sb := shareTokenStruct.SelectFrom(shareTokensTable)
	sb.Where(sb.Equal("token", token))

	query, args := sb.Build()

	var row ShareTokenRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get share token")
		return nil, pythiaerrors.NewPersistenceIOError("get share token", err)
	}

	return ToShareToken(&row), nil
}
