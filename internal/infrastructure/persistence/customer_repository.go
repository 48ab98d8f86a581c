package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/dashboard/backend/internal/infrastructure/persistence/models"
	"github.com/dashboard/backend/internal/infrastructure/persistence/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements billing.CustomerRepository using GORM
type GormCustomerRepository struct {
	scoped *owner.ScopedDB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{scoped: owner.NewScopedDB(db)}
}

// FindByIDForOwner finds a customer by ID within an owner's scope
func (r *GormCustomerRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Customer, error) {
	var model models.CustomerModel
	if err := r.scoped.WithOwner(ctx, ownerID).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all customers for an owner, name ascending.
// A non-empty search matches name OR email case-insensitively.
func (r *GormCustomerRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.CustomerModel{}).
		Scopes(customerSearchScope(filter.Search)).
		Order("name ASC")

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]billing.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// FindFieldsForOwner returns the (id, name) picker projection
func (r *GormCustomerRepository) FindFieldsForOwner(ctx context.Context, ownerID uuid.UUID) ([]billing.CustomerField, error) {
	var fields []billing.CustomerField
	if err := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.CustomerModel{}).
		Select("id, name").
		Order("name ASC").
		Scan(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// CountForOwner counts customers for an owner
func (r *GormCustomerRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.CustomerModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new customer. The owner id is already attached by the
// domain constructor; it is never taken from client input.
func (r *GormCustomerRepository) Save(ctx context.Context, customer *billing.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.scoped.Unscoped(ctx).Create(model).Error
}

// UpdateForOwner applies name/email behind the owner-equality guard.
// A row with a matching id but a different owner matches zero rows;
// the caller cannot distinguish "not found" from "not yours".
func (r *GormCustomerRepository) UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, name, email string) (int64, error) {
	result := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.CustomerModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       name,
			"email":      strings.ToLower(email),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteForOwner deletes behind the same owner-equality guard
func (r *GormCustomerRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	result := r.scoped.WithOwner(ctx, ownerID).
		Where("id = ?", id).
		Delete(&models.CustomerModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// customerSearchScope matches name OR email as a case-insensitive
// substring. An empty or whitespace-only search means "no filter",
// not "match nothing".
func customerSearchScope(search string) func(db *gorm.DB) *gorm.DB {
	trimmed := strings.TrimSpace(search)
	return func(db *gorm.DB) *gorm.DB {
		if trimmed == "" {
			return db
		}
		pattern := "%" + trimmed + "%"
		return db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
}

// Ensure GormCustomerRepository implements billing.CustomerRepository
var _ billing.CustomerRepository = (*GormCustomerRepository)(nil)
