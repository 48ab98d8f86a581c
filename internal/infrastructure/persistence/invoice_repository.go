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

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	scoped *owner.ScopedDB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{scoped: owner.NewScopedDB(db)}
}

// invoiceCustomerRow is the scan target for invoice rows joined with
// their owning customer's display fields.
type invoiceCustomerRow struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	AmountMinor   int64 `gorm:"column:amount_minor_units"`
	Status        string
	Date          time.Time
	CustomerName  string
	CustomerEmail string
	CustomerImage string
}

func (row invoiceCustomerRow) toDomain() billing.InvoiceWithCustomer {
	return billing.InvoiceWithCustomer{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		AmountMinor:   row.AmountMinor,
		Status:        billing.InvoiceStatus(row.Status),
		Date:          row.Date,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		CustomerImage: row.CustomerImage,
	}
}

const invoiceCustomerSelect = "invoices.id, invoices.customer_id, invoices.amount_minor_units, " +
	"invoices.status, invoices.date, customers.name AS customer_name, " +
	"customers.email AS customer_email, customers.image_url AS customer_image"

// FindByIDForOwner finds an invoice by ID within an owner's scope
func (r *GormInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
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

// FindFilteredForOwner returns one page of invoices with customer
// fields, date descending. List and count share invoiceSearchScope so
// page counts and page contents can never disagree.
func (r *GormInvoiceRepository) FindFilteredForOwner(ctx context.Context, ownerID uuid.UUID, query string, page, pageSize int) ([]billing.InvoiceWithCustomer, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var rows []invoiceCustomerRow
	if err := r.scoped.WithOwnerTable(ctx, "invoices", ownerID).
		Table("invoices").
		Select(invoiceCustomerSelect).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Scopes(invoiceSearchScope(query)).
		Order("invoices.date DESC").
		Offset(offset).
		Limit(pageSize).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.InvoiceWithCustomer, len(rows))
	for i, row := range rows {
		invoices[i] = row.toDomain()
	}
	return invoices, nil
}

// CountFilteredForOwner counts invoices under the identical predicate
// applied by FindFilteredForOwner, without pagination.
func (r *GormInvoiceRepository) CountFilteredForOwner(ctx context.Context, ownerID uuid.UUID, query string) (int64, error) {
	var count int64
	if err := r.scoped.WithOwnerTable(ctx, "invoices", ownerID).
		Table("invoices").
		Scopes(invoiceSearchScope(query)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLatestForOwner returns the newest invoices with customer fields
func (r *GormInvoiceRepository) FindLatestForOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]billing.InvoiceWithCustomer, error) {
	var rows []invoiceCustomerRow
	if err := r.scoped.WithOwnerTable(ctx, "invoices", ownerID).
		Table("invoices").
		Select(invoiceCustomerSelect).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Order("invoices.date DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.InvoiceWithCustomer, len(rows))
	for i, row := range rows {
		invoices[i] = row.toDomain()
	}
	return invoices, nil
}

// FindByCustomerIDsForOwner returns all invoices of the given customers
func (r *GormInvoiceRepository) FindByCustomerIDsForOwner(ctx context.Context, ownerID uuid.UUID, customerIDs []uuid.UUID) ([]billing.Invoice, error) {
	if len(customerIDs) == 0 {
		return []billing.Invoice{}, nil
	}

	var invoiceModels []models.InvoiceModel
	if err := r.scoped.WithOwner(ctx, ownerID).
		Where("customer_id IN ?", customerIDs).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindStatusAmountsForOwner scans all (status, amount) pairs for the owner
func (r *GormInvoiceRepository) FindStatusAmountsForOwner(ctx context.Context, ownerID uuid.UUID) ([]billing.StatusAmount, error) {
	var rows []struct {
		Status      string
		AmountMinor int64 `gorm:"column:amount_minor_units"`
	}
	if err := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.InvoiceModel{}).
		Select("status, amount_minor_units").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	pairs := make([]billing.StatusAmount, len(rows))
	for i, row := range rows {
		pairs[i] = billing.StatusAmount{
			Status:      billing.InvoiceStatus(row.Status),
			AmountMinor: row.AmountMinor,
		}
	}
	return pairs, nil
}

// CountForOwner counts invoices for an owner
func (r *GormInvoiceRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.InvoiceModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new invoice with its owner id already attached
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.scoped.Unscoped(ctx).Create(model).Error
}

// UpdateForOwner applies the mutable invoice fields guarded by owner
// equality. Zero rows affected means absent or foreign, and the two are
// indistinguishable on purpose.
func (r *GormInvoiceRepository) UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, customerID uuid.UUID, amountMinor int64, status billing.InvoiceStatus) (int64, error) {
	result := r.scoped.WithOwner(ctx, ownerID).
		Model(&models.InvoiceModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"customer_id":        customerID,
			"amount_minor_units": amountMinor,
			"status":             string(status),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteForOwner deletes guarded by owner equality and reports rows affected
func (r *GormInvoiceRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	result := r.scoped.WithOwner(ctx, ownerID).
		Where("id = ?", id).
		Delete(&models.InvoiceModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// invoiceSearchScope matches the invoice's status text OR its date
// text as a case-insensitive substring (OR semantics - matching either
// field suffices). It is the single predicate shared by the filtered
// list and the filtered count.
func invoiceSearchScope(query string) func(db *gorm.DB) *gorm.DB {
	trimmed := strings.TrimSpace(query)
	return func(db *gorm.DB) *gorm.DB {
		if trimmed == "" {
			return db
		}
		pattern := "%" + trimmed + "%"
		return db.Where("invoices.status ILIKE ? OR invoices.date::text ILIKE ?", pattern, pattern)
	}
}

// Ensure GormInvoiceRepository implements billing.InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
