package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service implements sales recording and commission reporting.
type Service struct {
	repo   Repository
	scopes *rbac.Resolver
	now    func() time.Time
}

// NewService builds a Service.
func NewService(repo Repository, scopes *rbac.Resolver) *Service {
	return &Service{repo: repo, scopes: scopes, now: time.Now}
}

// List returns sales in the caller's scope.
func (s *Service) List(ctx context.Context, caller shared.Caller, filter ListFilter) ([]Sale, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Sales)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope.Narrow(filter.SalespersonID), filter)
}

// Totals sums sales in scope created at or after since.
func (s *Service) Totals(ctx context.Context, scope rbac.Scope, since time.Time) (Totals, error) {
	return s.repo.Totals(ctx, scope, since)
}

// Get returns a sale in the caller's scope.
func (s *Service) Get(ctx context.Context, caller shared.Caller, id string) (Sale, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Sales)
	if err != nil {
		return Sale{}, err
	}
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return Sale{}, err
	}
	if !scope.Permits(sale.SalespersonID) {
		return Sale{}, shared.NotFound("sale not found")
	}
	return sale, nil
}

// Create records a sale owned by the caller.
func (s *Service) Create(ctx context.Context, caller shared.Caller, req CreateSaleRequest) (Sale, error) {
	saleDate, err := shared.ParseTimestamp(req.SaleDate)
	if err != nil {
		return Sale{}, shared.BadRequest("sale_date must be RFC3339 or YYYY-MM-DD")
	}
	sale := Sale{
		ID:            uuid.NewString(),
		CustomerID:    strings.TrimSpace(req.CustomerID),
		SalespersonID: caller.ID,
		SaleDate:      saleDate,
		Items:         req.Items,
		TotalAmount:   *req.TotalAmount,
		Notes:         optional(req.Notes),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// Delete removes a sale in the caller's scope.
func (s *Service) Delete(ctx context.Context, caller shared.Caller, id string) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Commission reports the caller's sales this month and the resulting tier.
func (s *Service) Commission(ctx context.Context, caller shared.Caller) (Commission, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Commission)
	if err != nil {
		return Commission{}, err
	}
	month, err := s.repo.Totals(ctx, scope, shared.MonthStart(s.now()))
	if err != nil {
		return Commission{}, err
	}
	tier := TierFor(month.Amount)
	return Commission{
		MonthlyTotal: month.Amount,
		Emoji:        tier.Emoji,
		Level:        tier.Level,
		SalesCount:   month.Count,
	}, nil
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
