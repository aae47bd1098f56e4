package customers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service implements customer management within the caller's region.
type Service struct {
	repo   Repository
	scopes *rbac.Resolver
}

// NewService builds a Service.
func NewService(repo Repository, scopes *rbac.Resolver) *Service {
	return &Service{repo: repo, scopes: scopes}
}

// List returns customers in the caller's scope, optionally narrowed to a region.
func (s *Service) List(ctx context.Context, caller shared.Caller, filter ListFilter) ([]Customer, error) {
	scope, err := s.scope(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope.Narrow(filter.RegionID))
}

// Count returns the number of customers in scope.
func (s *Service) Count(ctx context.Context, scope rbac.Scope) (int, error) {
	return s.repo.Count(ctx, scope)
}

// Get returns a customer visible to caller.
func (s *Service) Get(ctx context.Context, caller shared.Caller, id string) (Customer, error) {
	scope, err := s.scope(ctx, caller)
	if err != nil {
		return Customer{}, err
	}
	return s.visible(ctx, scope, id)
}

// Create stores a customer. Non-admins may only create in their own region.
func (s *Service) Create(ctx context.Context, caller shared.Caller, req CreateCustomerRequest) (Customer, error) {
	scope, err := s.scope(ctx, caller)
	if err != nil {
		return Customer{}, err
	}
	regionID := strings.TrimSpace(req.RegionID)
	if !scope.Permits(regionID) {
		return Customer{}, shared.Forbidden("cannot create customers outside your region")
	}
	c := Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     optional(req.Email),
		RegionID:  regionID,
		TaxNumber: optional(req.TaxNumber),
		Notes:     optional(req.Notes),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Update applies the fields present in req to a visible customer.
func (s *Service) Update(ctx context.Context, caller shared.Caller, id string, req UpdateCustomerRequest) (Customer, error) {
	scope, err := s.scope(ctx, caller)
	if err != nil {
		return Customer{}, err
	}
	c, err := s.visible(ctx, scope, id)
	if err != nil {
		return Customer{}, err
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		c.Email = optional(req.Email)
	}
	if req.TaxNumber != nil {
		c.TaxNumber = optional(req.TaxNumber)
	}
	if req.Notes != nil {
		c.Notes = optional(req.Notes)
	}
	if req.RegionID != nil {
		regionID := strings.TrimSpace(*req.RegionID)
		if !scope.Permits(regionID) {
			return Customer{}, shared.Forbidden("cannot move customers outside your region")
		}
		c.RegionID = regionID
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Delete removes a visible customer.
func (s *Service) Delete(ctx context.Context, caller shared.Caller, id string) error {
	scope, err := s.scope(ctx, caller)
	if err != nil {
		return err
	}
	if _, err := s.visible(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) scope(ctx context.Context, caller shared.Caller) (rbac.Scope, error) {
	return s.scopes.Resolve(ctx, caller, rbac.Customers)
}

func (s *Service) visible(ctx context.Context, scope rbac.Scope, id string) (Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	if !scope.Permits(c.RegionID) {
		return Customer{}, shared.NotFound("customer not found")
	}
	return c, nil
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
