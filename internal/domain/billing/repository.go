package billing

import (
	"context"

	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines persistence operations for customers.
// Every method is owner-scoped: implementations must filter by
// owner_id unconditionally, and guarded writes must match zero rows
// when the id belongs to a different owner.
type CustomerRepository interface {
	// FindByIDForOwner returns the customer or shared.ErrNotFound.
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)
	// FindAllForOwner returns customers ordered by name ascending.
	// A non-empty filter.Search matches name OR email as a
	// case-insensitive substring.
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Customer, error)
	// FindFieldsForOwner returns the (id, name) picker projection,
	// ordered by name ascending.
	FindFieldsForOwner(ctx context.Context, ownerID uuid.UUID) ([]CustomerField, error)
	// CountForOwner returns the number of customers for the owner.
	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// Save inserts a new customer with its owner id already attached.
	Save(ctx context.Context, customer *Customer) error
	// UpdateForOwner applies name/email guarded by
	// id = ? AND owner_id = ?. Returns the number of rows affected;
	// zero means the row is absent or belongs to another owner, and
	// the two cases are indistinguishable on purpose.
	UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, name, email string) (int64, error)
	// DeleteForOwner deletes guarded by the same owner-equality
	// predicate and reports rows affected.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}

// InvoiceRepository defines persistence operations for invoices.
// The filtered list and the filtered count must share one predicate so
// page counts and page contents never disagree.
type InvoiceRepository interface {
	// FindByIDForOwner returns the invoice or shared.ErrNotFound.
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	// FindFilteredForOwner returns one page of invoices denormalized
	// with customer fields, date descending. A non-empty query matches
	// the status text OR the date text, case-insensitive.
	FindFilteredForOwner(ctx context.Context, ownerID uuid.UUID, query string, page, pageSize int) ([]InvoiceWithCustomer, error)
	// CountFilteredForOwner counts rows under the identical predicate.
	CountFilteredForOwner(ctx context.Context, ownerID uuid.UUID, query string) (int64, error)
	// FindLatestForOwner returns the newest invoices, date descending.
	FindLatestForOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]InvoiceWithCustomer, error)
	// FindByCustomerIDsForOwner returns all invoices belonging to the
	// given customers of this owner.
	FindByCustomerIDsForOwner(ctx context.Context, ownerID uuid.UUID, customerIDs []uuid.UUID) ([]Invoice, error)
	// FindStatusAmountsForOwner scans all (status, amount) pairs.
	FindStatusAmountsForOwner(ctx context.Context, ownerID uuid.UUID) ([]StatusAmount, error)
	// CountForOwner returns the number of invoices for the owner.
	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// Save inserts a new invoice with its owner id already attached.
	Save(ctx context.Context, invoice *Invoice) error
	// UpdateForOwner applies customer/amount/status guarded by
	// id = ? AND owner_id = ? and reports rows affected.
	UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, customerID uuid.UUID, amountMinor int64, status InvoiceStatus) (int64, error)
	// DeleteForOwner deletes guarded by the same owner-equality
	// predicate and reports rows affected.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}

// RevenueRepository reads the reference revenue series
type RevenueRepository interface {
	// FindAll returns all points ordered by month ascending.
	FindAll(ctx context.Context) ([]RevenuePoint, error)
}
