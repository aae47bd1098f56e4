package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pedizone/pedizone-crm/internal/sales"
	"github.com/pedizone/pedizone-crm/internal/shared"
	"github.com/pedizone/pedizone-crm/internal/visits"
)

// SalesLister lists sales visible to a caller.
type SalesLister interface {
	List(ctx context.Context, caller shared.Caller, filter sales.ListFilter) ([]sales.Sale, error)
}

// VisitLister lists visits visible to a caller.
type VisitLister interface {
	List(ctx context.Context, caller shared.Caller, filter visits.ListFilter) ([]visits.Visit, error)
}

// SalesReport is the body of GET /reports/sales.
type SalesReport struct {
	Sales       []sales.Sale    `json:"sales"`
	TotalCount  int             `json:"total_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// VisitsReport is the body of GET /reports/visits. Photos are stripped.
type VisitsReport struct {
	Visits     []visits.Visit `json:"visits"`
	TotalCount int            `json:"total_count"`
}

// Service builds reports from the scoped sales and visit lists.
type Service struct {
	sales  SalesLister
	visits VisitLister
}

// NewService builds a Service.
func NewService(sales SalesLister, visits VisitLister) *Service {
	return &Service{sales: sales, visits: visits}
}

// Sales reports scoped sales whose sale_date falls in rng.
func (s *Service) Sales(ctx context.Context, caller shared.Caller, rng shared.DateRange) (SalesReport, error) {
	list, err := s.sales.List(ctx, caller, sales.ListFilter{Range: rng})
	if err != nil {
		return SalesReport{}, err
	}
	total := decimal.Zero
	for _, sale := range list {
		total = total.Add(sale.TotalAmount)
	}
	return SalesReport{Sales: list, TotalCount: len(list), TotalAmount: total}, nil
}

// Visits reports scoped visits whose visit_date falls in rng.
func (s *Service) Visits(ctx context.Context, caller shared.Caller, rng shared.DateRange) (VisitsReport, error) {
	list, err := s.visits.List(ctx, caller, visits.ListFilter{Range: rng})
	if err != nil {
		return VisitsReport{}, err
	}
	for i := range list {
		list[i].PhotoBase64 = nil
	}
	return VisitsReport{Visits: list, TotalCount: len(list)}, nil
}
