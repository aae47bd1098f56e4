package collections

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service records payments collected from customers.
type Service struct {
	repo   Repository
	scopes *rbac.Resolver
}

// NewService builds a Service.
func NewService(repo Repository, scopes *rbac.Resolver) *Service {
	return &Service{repo: repo, scopes: scopes}
}

// List returns collections in the caller's scope.
func (s *Service) List(ctx context.Context, caller shared.Caller, filter ListFilter) ([]Collection, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Collections)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope.Narrow(filter.SalespersonID), filter)
}

// Total sums collected amounts in scope.
func (s *Service) Total(ctx context.Context, scope rbac.Scope) (decimal.Decimal, error) {
	return s.repo.Total(ctx, scope)
}

// Create records a collection owned by the caller.
func (s *Service) Create(ctx context.Context, caller shared.Caller, req CreateCollectionRequest) (Collection, error) {
	date, err := shared.ParseTimestamp(req.CollectionDate)
	if err != nil {
		return Collection{}, shared.BadRequest("collection_date must be RFC3339 or YYYY-MM-DD")
	}
	c := Collection{
		ID:             uuid.NewString(),
		CustomerID:     strings.TrimSpace(req.CustomerID),
		SalespersonID:  caller.ID,
		Amount:         *req.Amount,
		CollectionDate: date,
		PaymentMethod:  req.PaymentMethod,
		CreatedAt:      time.Now().UTC(),
	}
	if req.Notes != nil {
		if n := strings.TrimSpace(*req.Notes); n != "" {
			c.Notes = &n
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Collection{}, err
	}
	return c, nil
}

// Delete removes a collection in the caller's scope.
func (s *Service) Delete(ctx context.Context, caller shared.Caller, id string) error {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Collections)
	if err != nil {
		return err
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !scope.Permits(c.SalespersonID) {
		return shared.NotFound("collection not found")
	}
	return s.repo.Delete(ctx, id)
}
