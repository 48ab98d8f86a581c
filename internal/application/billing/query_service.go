// Package billing holds the application services of the invoicing
// dashboard: owner-scoped queries, dashboard aggregation, and validated
// customer and invoice mutations.
package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueryService handles owner-scoped dashboard reads. Store failures are
// logged with their cause and surfaced as generic domain messages;
// absence on point reads stays shared.ErrNotFound, which is an outcome,
// not a failure.
type QueryService struct {
	customerRepo billing.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
	revenueRepo  billing.RevenueRepository
	logger       *zap.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	customerRepo billing.CustomerRepository,
	invoiceRepo billing.InvoiceRepository,
	revenueRepo billing.RevenueRepository,
	logger *zap.Logger,
) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		revenueRepo:  revenueRepo,
		logger:       logger,
	}
}

// ListInvoices returns one page of the invoices table, six rows per
// page, newest first. A non-empty query matches status text or date
// text case-insensitively.
func (s *QueryService) ListInvoices(ctx context.Context, ownerID uuid.UUID, query string, page int) ([]InvoiceRowResponse, error) {
	if page < 1 {
		page = 1
	}
	invoices, err := s.invoiceRepo.FindFilteredForOwner(ctx, ownerID, query, page, InvoicesPerPage)
	if err != nil {
		s.logger.Error("Failed to fetch invoices",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch invoices.")
	}

	rows := make([]InvoiceRowResponse, len(invoices))
	for i, inv := range invoices {
		rows[i] = ToInvoiceRowResponse(inv)
	}
	return rows, nil
}

// CountInvoicePages returns the number of pages the invoices table has
// under the given query. It counts under the exact predicate ListInvoices
// pages over, so the two cannot disagree.
func (s *QueryService) CountInvoicePages(ctx context.Context, ownerID uuid.UUID, query string) (int, error) {
	total, err := s.invoiceRepo.CountFilteredForOwner(ctx, ownerID, query)
	if err != nil {
		s.logger.Error("Failed to count invoices",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return 0, shared.NewStoreError("Failed to fetch total number of invoices.")
	}
	return shared.TotalPages(total, InvoicesPerPage), nil
}

// GetInvoiceByID returns one invoice of the owner, shaped for the edit
// form, or shared.ErrNotFound.
func (s *QueryService) GetInvoiceByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceDetailResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("Failed to fetch invoice",
			zap.String("owner_id", ownerID.String()),
			zap.String("invoice_id", id.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch invoice.")
	}

	response := ToInvoiceDetailResponse(invoice)
	return &response, nil
}

// ListLatestInvoices returns the newest five invoices with customer
// display fields for the dashboard overview card.
func (s *QueryService) ListLatestInvoices(ctx context.Context, ownerID uuid.UUID) ([]InvoiceRowResponse, error) {
	invoices, err := s.invoiceRepo.FindLatestForOwner(ctx, ownerID, LatestInvoicesLimit)
	if err != nil {
		s.logger.Error("Failed to fetch latest invoices",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch the latest invoices.")
	}

	rows := make([]InvoiceRowResponse, len(invoices))
	for i, inv := range invoices {
		rows[i] = ToInvoiceRowResponse(inv)
	}
	return rows, nil
}

// GetCustomerByID returns one customer of the owner or shared.ErrNotFound
func (s *QueryService) GetCustomerByID(ctx context.Context, ownerID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("Failed to fetch customer",
			zap.String("owner_id", ownerID.String()),
			zap.String("customer_id", id.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch customer.")
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// ListCustomerFields returns the (id, name) projection of every
// customer of the owner, name ascending, for selection widgets.
func (s *QueryService) ListCustomerFields(ctx context.Context, ownerID uuid.UUID) ([]CustomerFieldResponse, error) {
	fields, err := s.customerRepo.FindFieldsForOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch customer fields",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch all customers.")
	}

	responses := make([]CustomerFieldResponse, len(fields))
	for i, f := range fields {
		responses[i] = CustomerFieldResponse{ID: f.ID, Name: f.Name}
	}
	return responses, nil
}

// ListCustomers returns the owner's customers, name ascending. The
// search term matches name or email only when it is non-empty after
// trimming; a blank query lists everyone.
func (s *QueryService) ListCustomers(ctx context.Context, ownerID uuid.UUID, query string) ([]billing.Customer, error) {
	filter := shared.Filter{Search: strings.TrimSpace(query)}
	customers, err := s.customerRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("Failed to fetch customers",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch customers.")
	}
	return customers, nil
}

// MonthlyRevenue returns the reference revenue series, month ascending.
// The series is owner-independent.
func (s *QueryService) MonthlyRevenue(ctx context.Context) ([]RevenuePointResponse, error) {
	points, err := s.revenueRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch revenue", zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch revenue data.")
	}

	responses := make([]RevenuePointResponse, len(points))
	for i, p := range points {
		responses[i] = ToRevenuePointResponse(p)
	}
	return responses, nil
}
