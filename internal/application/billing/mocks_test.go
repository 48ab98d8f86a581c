package billing

import (
	"context"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of billing.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Customer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Customer, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindFieldsForOwner(ctx context.Context, ownerID uuid.UUID) ([]billing.CustomerField, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.CustomerField), args.Error(1)
}

func (m *MockCustomerRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *billing.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, name, email string) (int64, error) {
	args := m.Called(ctx, ownerID, id, name, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindFilteredForOwner(ctx context.Context, ownerID uuid.UUID, query string, page, pageSize int) ([]billing.InvoiceWithCustomer, error) {
	args := m.Called(ctx, ownerID, query, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceRepository) CountFilteredForOwner(ctx context.Context, ownerID uuid.UUID, query string) (int64, error) {
	args := m.Called(ctx, ownerID, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindLatestForOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]billing.InvoiceWithCustomer, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.InvoiceWithCustomer), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomerIDsForOwner(ctx context.Context, ownerID uuid.UUID, customerIDs []uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, ownerID, customerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindStatusAmountsForOwner(ctx context.Context, ownerID uuid.UUID) ([]billing.StatusAmount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.StatusAmount), args.Error(1)
}

func (m *MockInvoiceRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, customerID uuid.UUID, amountMinor int64, status billing.InvoiceStatus) (int64, error) {
	args := m.Called(ctx, ownerID, id, customerID, amountMinor, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRevenueRepository is a mock implementation of billing.RevenueRepository
type MockRevenueRepository struct {
	mock.Mock
}

func (m *MockRevenueRepository) FindAll(ctx context.Context) ([]billing.RevenuePoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RevenuePoint), args.Error(1)
}

// MockInvalidationPublisher is a mock ListingInvalidationPublisher
type MockInvalidationPublisher struct {
	mock.Mock
}

func (m *MockInvalidationPublisher) PublishInvalidation(ctx context.Context, ownerID uuid.UUID, entity string) error {
	args := m.Called(ctx, ownerID, entity)
	return args.Error(0)
}

// MockSummaryCache is a mock SummaryCache
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ownerID uuid.UUID, query string) ([]billing.CustomerSummary, bool) {
	args := m.Called(ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]billing.CustomerSummary), args.Bool(1)
}

func (m *MockSummaryCache) Set(ownerID uuid.UUID, query string, summaries []billing.CustomerSummary) {
	m.Called(ownerID, query, summaries)
}

func (m *MockSummaryCache) InvalidateOwner(ownerID uuid.UUID) {
	m.Called(ownerID)
}
