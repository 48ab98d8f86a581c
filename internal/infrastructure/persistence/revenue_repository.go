package persistence

import (
	"context"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRevenueRepository implements billing.RevenueRepository using GORM.
// The revenue series is reference data shared by every owner, so the
// repository reads it unscoped.
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewGormRevenueRepository creates a new GormRevenueRepository
func NewGormRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// FindAll returns all revenue points ordered by month ascending
func (r *GormRevenueRepository) FindAll(ctx context.Context) ([]billing.RevenuePoint, error) {
	var revenueModels []models.RevenueModel
	if err := r.db.WithContext(ctx).
		Order("month ASC").
		Find(&revenueModels).Error; err != nil {
		return nil, err
	}

	points := make([]billing.RevenuePoint, len(revenueModels))
	for i, model := range revenueModels {
		points[i] = model.ToDomain()
	}
	return points, nil
}

// Ensure GormRevenueRepository implements billing.RevenueRepository
var _ billing.RevenueRepository = (*GormRevenueRepository)(nil)
