package billing

import (
	"context"
	"errors"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingInvalidationPublisher signals that an owner's cached listings
// are stale. Mutation services publish after every applied write.
type ListingInvalidationPublisher interface {
	PublishInvalidation(ctx context.Context, ownerID uuid.UUID, entity string) error
}

// CustomerService handles customer mutations. Every mutation runs the
// same pipeline: validate first with zero store access on rejection,
// derive the owner server-side, guard writes by owner equality, and
// signal listing invalidation after each applied write.
type CustomerService struct {
	customerRepo billing.CustomerRepository
	invalidator  ListingInvalidationPublisher
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService. invalidator may be nil.
func NewCustomerService(
	customerRepo billing.CustomerRepository,
	invalidator ListingInvalidationPublisher,
	logger *zap.Logger,
) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// validateCustomerForm collects every field failure instead of stopping
// at the first one, so the form can mark all invalid fields at once.
func validateCustomerForm(req CustomerFormRequest) fieldErrors {
	errs := fieldErrors{}
	if err := billing.ValidateCustomerName(req.Name); err != nil {
		errs.add("name", err.Error())
	}
	if err := billing.ValidateCustomerEmail(req.Email); err != nil {
		errs.add("email", err.Error())
	}
	return errs
}

// CreateCustomer validates and creates a customer for the owner
func (s *CustomerService) CreateCustomer(ctx context.Context, ownerID uuid.UUID, req CustomerFormRequest) (*CustomerResponse, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}

	if errs := validateCustomerForm(req); len(errs) > 0 {
		return nil, errs.reject("Missing or invalid fields. Failed to create customer.")
	}

	customer, err := billing.NewCustomer(ownerID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	customer.ImageURL = req.ImageURL

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to create customer",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Database error. Failed to create customer.")
	}

	s.signalInvalidation(ctx, ownerID)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateCustomer validates and applies name/email to one customer. The
// write is guarded by owner equality: a foreign or absent id matches
// zero rows and the call still succeeds, so existence never leaks.
func (s *CustomerService) UpdateCustomer(ctx context.Context, ownerID, customerID uuid.UUID, req CustomerFormRequest) error {
	if ownerID == uuid.Nil {
		return shared.ErrUnauthenticated
	}

	if errs := validateCustomerForm(req); len(errs) > 0 {
		return errs.reject("Missing or invalid fields. Failed to update customer.")
	}

	rows, err := s.customerRepo.UpdateForOwner(ctx, ownerID, customerID, req.Name, req.Email)
	if err != nil {
		s.logger.Error("Failed to update customer",
			zap.String("owner_id", ownerID.String()),
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
		return shared.NewStoreError("Database error. Failed to update customer.")
	}
	if rows == 0 {
		// Absent or another owner's row. Nothing changed, nothing to signal.
		return nil
	}

	s.signalInvalidation(ctx, ownerID)
	return nil
}

// DeleteCustomer deletes one customer under the owner-equality guard.
// Zero rows affected is the same silent no-op as in UpdateCustomer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, ownerID, customerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return shared.ErrUnauthenticated
	}

	rows, err := s.customerRepo.DeleteForOwner(ctx, ownerID, customerID)
	if err != nil {
		s.logger.Error("Failed to delete customer",
			zap.String("owner_id", ownerID.String()),
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
		return shared.NewStoreError("Database error. Failed to delete customer.")
	}
	if rows == 0 {
		return nil
	}

	s.signalInvalidation(ctx, ownerID)
	return nil
}

// signalInvalidation publishes the staleness signal best-effort. The
// mutation already succeeded; a lost signal only means a replica serves
// a stale listing until its TTL expires.
func (s *CustomerService) signalInvalidation(ctx context.Context, ownerID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.PublishInvalidation(ctx, ownerID, "customers"); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Failed to publish listing invalidation",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
}
