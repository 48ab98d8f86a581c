package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	appbilling "github.com/dashboard/backend/internal/application/billing"
	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dashboardHandlerFixture struct {
	customerRepo *MockCustomerRepository
	invoiceRepo  *MockInvoiceRepository
	revenueRepo  *MockRevenueRepository
	router       *gin.Engine
}

func newDashboardHandlerFixture(ownerID uuid.UUID) *dashboardHandlerFixture {
	f := &dashboardHandlerFixture{
		customerRepo: new(MockCustomerRepository),
		invoiceRepo:  new(MockInvoiceRepository),
		revenueRepo:  new(MockRevenueRepository),
	}

	queryService := appbilling.NewQueryService(f.customerRepo, f.invoiceRepo, f.revenueRepo, nil)
	dashboardService := appbilling.NewDashboardService(f.customerRepo, f.invoiceRepo, nil, nil)

	h := NewDashboardHandler(queryService, dashboardService)

	f.router = gin.New()
	f.router.Use(withOwner(ownerID))
	h.RegisterRoutes(f.router.Group("/api/v1"))
	return f
}

func TestDashboardHandler_Cards(t *testing.T) {
	ownerID := uuid.New()
	f := newDashboardHandlerFixture(ownerID)

	f.invoiceRepo.On("CountForOwner", mock.Anything, ownerID).Return(int64(12), nil)
	f.customerRepo.On("CountForOwner", mock.Anything, ownerID).Return(int64(4), nil)
	f.invoiceRepo.On("FindStatusAmountsForOwner", mock.Anything, ownerID).Return([]billing.StatusAmount{
		{Status: billing.InvoiceStatusPaid, AmountMinor: 123456},
		{Status: billing.InvoiceStatusPending, AmountMinor: 5000},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cards", nil)
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec.Body.Bytes())
	row := resp.Data.(map[string]any)
	assert.Equal(t, float64(12), row["invoice_count"])
	assert.Equal(t, float64(4), row["customer_count"])
	assert.Equal(t, "$1,234.56", row["total_paid"])
	assert.Equal(t, "$50.00", row["total_pending"])
}

func TestDashboardHandler_Cards_AllOrNothing(t *testing.T) {
	ownerID := uuid.New()
	f := newDashboardHandlerFixture(ownerID)

	f.invoiceRepo.On("CountForOwner", mock.Anything, ownerID).Return(int64(0), assert.AnError)
	f.customerRepo.On("CountForOwner", mock.Anything, ownerID).Return(int64(4), nil).Maybe()
	f.invoiceRepo.On("FindStatusAmountsForOwner", mock.Anything, ownerID).
		Return([]billing.StatusAmount{}, nil).Maybe()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/cards", nil)
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec.Body.Bytes())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Failed to fetch card data.", resp.Error.Message)
}

func TestDashboardHandler_Revenue(t *testing.T) {
	ownerID := uuid.New()
	f := newDashboardHandlerFixture(ownerID)

	f.revenueRepo.On("FindAll", mock.Anything).Return([]billing.RevenuePoint{
		{Month: "2026-01", AmountMinor: 200000},
		{Month: "2026-02", AmountMinor: 0},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/revenue", nil)
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec.Body.Bytes())
	points, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, points, 2)
	first := points[0].(map[string]any)
	assert.Equal(t, "2026-01", first["month"])
	assert.Equal(t, "$2,000.00", first["amount"])
}

func TestDashboardHandler_Revenue_StoreFailure(t *testing.T) {
	ownerID := uuid.New()
	f := newDashboardHandlerFixture(ownerID)

	f.revenueRepo.On("FindAll", mock.Anything).Return(nil, assert.AnError)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/revenue", nil)
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec.Body.Bytes())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Failed to fetch revenue data.", resp.Error.Message)
}
