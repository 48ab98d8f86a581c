package billing

import (
	"time"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const (
	// InvoicesPerPage is the fixed page size of the invoices table
	InvoicesPerPage = 6
	// LatestInvoicesLimit is the size of the dashboard's latest-invoices card
	LatestInvoicesLimit = 5
)

// CustomerFormRequest carries the customer create/update form fields.
// The owner id never appears here; it is always derived server-side.
type CustomerFormRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url" binding:"omitempty,max=2048"`
}

// InvoiceFormRequest carries the invoice create/update form fields.
// Amount is a major-unit decimal string as typed into the form.
type InvoiceFormRequest struct {
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

// InvoiceListFilter carries the invoices table query parameters
type InvoiceListFilter struct {
	Query string `form:"query"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
}

// CustomerListFilter carries the customers table query parameters
type CustomerListFilter struct {
	Query string `form:"query"`
}

// ValidationRejection reports a rejected mutation: per-field message
// lists keyed by field name plus one summary message. It is an error so
// services can return it through the normal error path, and carries no
// store state because rejected mutations never touch the store.
type ValidationRejection struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

// Error implements the error interface
func (r *ValidationRejection) Error() string {
	return r.Message
}

// fieldErrors accumulates per-field validation messages
type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func (f fieldErrors) reject(summary string) *ValidationRejection {
	return &ValidationRejection{Errors: f, Message: summary}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *billing.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CustomerFieldResponse is the (id, name) picker projection
type CustomerFieldResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CustomerSummaryResponse is a customer with its invoice aggregates,
// pending/paid totals display-formatted.
type CustomerSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ImageURL      string    `json:"image_url"`
	TotalInvoices int       `json:"total_invoices"`
	TotalPending  string    `json:"total_pending"`
	TotalPaid     string    `json:"total_paid"`
}

// ToCustomerSummaryResponse converts a domain summary to its response form
func ToCustomerSummaryResponse(s billing.CustomerSummary) CustomerSummaryResponse {
	return CustomerSummaryResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		ImageURL:      s.ImageURL,
		TotalInvoices: s.TotalInvoices,
		TotalPending:  valueobject.FormatMinorUnits(s.TotalPendingMinor, valueobject.DefaultCurrency),
		TotalPaid:     valueobject.FormatMinorUnits(s.TotalPaidMinor, valueobject.DefaultCurrency),
	}
}

// InvoiceRowResponse is one row of the invoices table: the invoice
// denormalized with customer display fields and a formatted amount.
type InvoiceRowResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	Amount        string    `json:"amount"`
	AmountMinor   int64     `json:"amount_minor_units"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerImage string    `json:"customer_image"`
}

// ToInvoiceRowResponse converts a denormalized invoice to its response form
func ToInvoiceRowResponse(inv billing.InvoiceWithCustomer) InvoiceRowResponse {
	return InvoiceRowResponse{
		ID:            inv.ID,
		CustomerID:    inv.CustomerID,
		Amount:        valueobject.FormatMinorUnits(inv.AmountMinor, valueobject.DefaultCurrency),
		AmountMinor:   inv.AmountMinor,
		Status:        string(inv.Status),
		Date:          inv.Date.Format("2006-01-02"),
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		CustomerImage: inv.CustomerImage,
	}
}

// InvoiceDetailResponse is the invoice point read used by the edit
// form. Amount is the major-unit decimal string the form edits;
// AmountMinor stays exact for anything that computes.
type InvoiceDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Amount      string    `json:"amount"`
	AmountMinor int64     `json:"amount_minor_units"`
	Display     string    `json:"display"`
	Status      string    `json:"status"`
	Date        string    `json:"date"`
}

// ToInvoiceDetailResponse converts a domain Invoice to its detail form
func ToInvoiceDetailResponse(inv *billing.Invoice) InvoiceDetailResponse {
	money := valueobject.NewFromMinorUnits(inv.AmountMinor, valueobject.DefaultCurrency)
	return InvoiceDetailResponse{
		ID:          inv.ID,
		CustomerID:  inv.CustomerID,
		Amount:      money.Major().StringFixed(2),
		AmountMinor: inv.AmountMinor,
		Display:     money.Display(),
		Status:      string(inv.Status),
		Date:        inv.Date.Format("2006-01-02"),
	}
}

// CardStatsResponse carries the four dashboard cards: entity counts
// plus display-formatted paid and pending totals.
type CardStatsResponse struct {
	InvoiceCount  int64  `json:"invoice_count"`
	CustomerCount int64  `json:"customer_count"`
	TotalPaid     string `json:"total_paid"`
	TotalPending  string `json:"total_pending"`
}

// RevenuePointResponse is one month of the revenue chart
type RevenuePointResponse struct {
	Month       string `json:"month"`
	Amount      string `json:"amount"`
	AmountMinor int64  `json:"amount_minor_units"`
}

// ToRevenuePointResponse converts a domain RevenuePoint to its response form
func ToRevenuePointResponse(p billing.RevenuePoint) RevenuePointResponse {
	return RevenuePointResponse{
		Month:       p.Month,
		Amount:      valueobject.FormatMinorUnits(p.AmountMinor, valueobject.DefaultCurrency),
		AmountMinor: p.AmountMinor,
	}
}
