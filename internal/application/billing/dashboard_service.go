package billing

import (
	"context"
	"strings"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/dashboard/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SummaryCache caches customer listing summaries per owner and query.
// A nil cache disables caching entirely.
type SummaryCache interface {
	Get(ownerID uuid.UUID, query string) ([]billing.CustomerSummary, bool)
	Set(ownerID uuid.UUID, query string, summaries []billing.CustomerSummary)
	InvalidateOwner(ownerID uuid.UUID)
}

// DashboardService computes the owner's dashboard aggregates. All money
// arithmetic happens in integer minor units; formatting is applied once
// at the response boundary.
type DashboardService struct {
	customerRepo billing.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
	cache        SummaryCache
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(
	customerRepo billing.CustomerRepository,
	invoiceRepo billing.InvoiceRepository,
	cache SummaryCache,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		cache:        cache,
		logger:       logger,
	}
}

// ComputeCardStats issues the three card queries concurrently and joins
// them all-or-nothing: one failure fails the whole computation, never a
// card-by-card mix of fresh and missing numbers.
func (s *DashboardService) ComputeCardStats(ctx context.Context, ownerID uuid.UUID) (*CardStatsResponse, error) {
	var (
		invoiceCount  int64
		customerCount int64
		statusAmounts []billing.StatusAmount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoiceCount, err = s.invoiceRepo.CountForOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		customerCount, err = s.customerRepo.CountForOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		statusAmounts, err = s.invoiceRepo.FindStatusAmountsForOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to fetch card data",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch card data.")
	}

	var paidMinor, pendingMinor int64
	for _, sa := range statusAmounts {
		switch sa.Status {
		case billing.InvoiceStatusPaid:
			paidMinor += sa.AmountMinor
		case billing.InvoiceStatusPending:
			pendingMinor += sa.AmountMinor
		}
	}

	return &CardStatsResponse{
		InvoiceCount:  invoiceCount,
		CustomerCount: customerCount,
		TotalPaid:     valueobject.FormatMinorUnits(paidMinor, valueobject.DefaultCurrency),
		TotalPending:  valueobject.FormatMinorUnits(pendingMinor, valueobject.DefaultCurrency),
	}, nil
}

// SummarizeCustomers returns the owner's customers with per-customer
// invoice aggregates, filtered by the search term. The customer fetch
// is load-bearing and fails the call; the invoice fetch degrades to
// zeroed aggregates so the listing itself survives a partial outage.
func (s *DashboardService) SummarizeCustomers(ctx context.Context, ownerID uuid.UUID, query string) ([]CustomerSummaryResponse, error) {
	query = strings.TrimSpace(query)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ownerID, query); ok {
			return toSummaryResponses(cached), nil
		}
	}

	customers, err := s.customerRepo.FindAllForOwner(ctx, ownerID, shared.Filter{Search: query})
	if err != nil {
		s.logger.Error("Failed to fetch customers",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, shared.NewStoreError("Failed to fetch customer table.")
	}

	summaries := summarize(customers, s.fetchInvoices(ctx, ownerID, customers))

	if s.cache != nil {
		s.cache.Set(ownerID, query, summaries)
	}
	return toSummaryResponses(summaries), nil
}

// fetchInvoices loads all invoices of the given customers. On failure
// it logs and returns nil, which summarize turns into zeroed aggregates.
func (s *DashboardService) fetchInvoices(ctx context.Context, ownerID uuid.UUID, customers []billing.Customer) []billing.Invoice {
	if len(customers) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	invoices, err := s.invoiceRepo.FindByCustomerIDsForOwner(ctx, ownerID, ids)
	if err != nil {
		s.logger.Warn("Failed to fetch invoices for customer summaries, degrading to zeroed aggregates",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil
	}
	return invoices
}

// summarize groups invoices by customer in one pass. Pending and paid
// amounts land in their sums; any other status counts toward the
// invoice total but toward neither sum. Customers without invoices keep
// zero totals.
func summarize(customers []billing.Customer, invoices []billing.Invoice) []billing.CustomerSummary {
	byCustomer := make(map[uuid.UUID]*billing.CustomerSummary, len(customers))
	summaries := make([]billing.CustomerSummary, len(customers))
	for i, c := range customers {
		summaries[i] = billing.CustomerSummary{
			ID:       c.ID,
			Name:     c.Name,
			Email:    c.Email,
			ImageURL: c.ImageURL,
		}
		byCustomer[c.ID] = &summaries[i]
	}

	for _, inv := range invoices {
		summary, ok := byCustomer[inv.CustomerID]
		if !ok {
			continue
		}
		summary.TotalInvoices++
		switch inv.Status {
		case billing.InvoiceStatusPending:
			summary.TotalPendingMinor += inv.AmountMinor
		case billing.InvoiceStatusPaid:
			summary.TotalPaidMinor += inv.AmountMinor
		}
	}

	return summaries
}

func toSummaryResponses(summaries []billing.CustomerSummary) []CustomerSummaryResponse {
	responses := make([]CustomerSummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ToCustomerSummaryResponse(s)
	}
	return responses
}
