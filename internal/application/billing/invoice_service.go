package billing

import (
	"context"
	"errors"
	"time"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/dashboard/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// invoiceForm is the validated form of an InvoiceFormRequest
type invoiceForm struct {
	customerID  uuid.UUID
	amountMinor int64
	status      billing.InvoiceStatus
}

// InvoiceService handles invoice mutations with the same pipeline as
// customer mutations: field-level validation before any store access,
// server-side owner derivation, owner-guarded writes, and listing
// invalidation after each applied write.
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo billing.CustomerRepository
	invalidator  ListingInvalidationPublisher
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. invalidator may be nil.
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo billing.CustomerRepository,
	invalidator ListingInvalidationPublisher,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// parseInvoiceForm collects every field failure. The amount arrives as
// a major-unit decimal string and must convert to whole minor units.
func parseInvoiceForm(req InvoiceFormRequest) (invoiceForm, fieldErrors) {
	errs := fieldErrors{}
	form := invoiceForm{}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil || customerID == uuid.Nil {
		errs.add("customer_id", "Please select a customer.")
	} else {
		form.customerID = customerID
	}

	money, err := valueobject.NewFromMajorString(req.Amount, valueobject.DefaultCurrency)
	if err != nil || money.MinorUnits() <= 0 {
		errs.add("amount", "Please enter an amount greater than $0.")
	} else {
		form.amountMinor = money.MinorUnits()
	}

	switch billing.InvoiceStatus(req.Status) {
	case billing.InvoiceStatusPending, billing.InvoiceStatusPaid:
		form.status = billing.InvoiceStatus(req.Status)
	default:
		errs.add("status", "Please select an invoice status.")
	}

	return form, errs
}

// CreateInvoice validates and creates an invoice for the owner. The
// referenced customer must belong to the same owner; a foreign customer
// id fails validation exactly like a nonexistent one.
func (s *InvoiceService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, req InvoiceFormRequest) (*InvoiceDetailResponse, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	form, errs := parseInvoiceForm(req)
	if len(errs) > 0 {
		return nil, errs.reject("Missing or invalid fields. Failed to create invoice.")
	}

	if err := s.checkCustomerOwnership(ctx, ownerID, form.customerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			errs.add("customer_id", "Please select a customer.")
			return nil, errs.reject("Missing or invalid fields. Failed to create invoice.")
		}
		return nil, shared.NewStoreError("Database error. Failed to create invoice.")
	}

	invoice, err := billing.NewInvoice(ownerID, form.customerID, form.amountMinor, form.status, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Error("Failed to create invoice",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Database error. Failed to create invoice.")
	}

	s.signalInvalidation(ctx, ownerID)

	response := ToInvoiceDetailResponse(invoice)
	return &response, nil
}

// UpdateInvoice validates and applies customer/amount/status to one
// invoice under the owner-equality guard. Zero rows affected is a
// silent no-op.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID, req InvoiceFormRequest) error {
	if ownerID == uuid.Nil {
		return shared.ErrUnauthenticated
	}

	form, errs := parseInvoiceForm(req)
	if len(errs) > 0 {
		return errs.reject("Missing or invalid fields. Failed to update invoice.")
	}

	if err := s.checkCustomerOwnership(ctx, ownerID, form.customerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			errs.add("customer_id", "Please select a customer.")
			return errs.reject("Missing or invalid fields. Failed to update invoice.")
		}
		return shared.NewStoreError("Database error. Failed to update invoice.")
	}

	rows, err := s.invoiceRepo.UpdateForOwner(ctx, ownerID, invoiceID, form.customerID, form.amountMinor, form.status)
	if err != nil {
		s.logger.Error("Failed to update invoice",
			zap.String("owner_id", ownerID.String()),
			zap.String("invoice_id", invoiceID.String()),
			zap.Error(err))
		return shared.NewStoreError("Database error. Failed to update invoice.")
	}
	if rows == 0 {
		return nil
	}

	s.signalInvalidation(ctx, ownerID)
	return nil
}

// DeleteInvoice deletes one invoice under the owner-equality guard
func (s *InvoiceService) DeleteInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return shared.ErrUnauthenticated
	}

	rows, err := s.invoiceRepo.DeleteForOwner(ctx, ownerID, invoiceID)
	if err != nil {
		s.logger.Error("Failed to delete invoice",
			zap.String("owner_id", ownerID.String()),
			zap.String("invoice_id", invoiceID.String()),
			zap.Error(err))
		return shared.NewStoreError("Database error. Failed to delete invoice.")
	}
	if rows == 0 {
		return nil
	}

	s.signalInvalidation(ctx, ownerID)
	return nil
}

// checkCustomerOwnership verifies the customer exists within the
// owner's scope. The scoped point read makes a foreign customer
// indistinguishable from a missing one.
func (s *InvoiceService) checkCustomerOwnership(ctx context.Context, ownerID, customerID uuid.UUID) error {
	_, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to verify customer ownership",
			zap.String("owner_id", ownerID.String()),
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
	}
	return err
}

func (s *InvoiceService) signalInvalidation(ctx context.Context, ownerID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.PublishInvalidation(ctx, ownerID, "invoices"); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to publish listing invalidation",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
}
