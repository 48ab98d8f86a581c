package persistence

import (
	"context"
	"errors"

	"github.com/dashboard/backend/internal/domain/identity"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/dashboard/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormProfileRepository implements identity.ProfileRepository using GORM.
// Profiles are keyed by the owner id itself, so owner scoping and the
// primary key lookup are the same predicate.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID returns the profile or shared.ErrNotFound
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Insert creates the profile row. Concurrent first requests can both
// attempt the insert; the loser surfaces shared.ErrAlreadyExists so the
// caller can treat the race as benign.
func (r *GormProfileRepository) Insert(ctx context.Context, profile *identity.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// isUniqueViolation matches the pgx unique-violation SQLSTATE surfaced
// by the postgres driver, or GORM's translated duplicate-key error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Ensure GormProfileRepository implements identity.ProfileRepository
var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
