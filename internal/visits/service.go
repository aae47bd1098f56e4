package visits

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service implements field visit tracking.
type Service struct {
	repo   Repository
	scopes *rbac.Resolver
}

// NewService builds a Service.
func NewService(repo Repository, scopes *rbac.Resolver) *Service {
	return &Service{repo: repo, scopes: scopes}
}

// List returns visits in the caller's scope.
func (s *Service) List(ctx context.Context, caller shared.Caller, filter ListFilter) ([]Visit, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Visits)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope.Narrow(filter.SalespersonID), filter)
}

// Count returns the number of visits in scope.
func (s *Service) Count(ctx context.Context, scope rbac.Scope) (int, error) {
	return s.repo.Count(ctx, scope)
}

// Get returns a visit in the caller's scope.
func (s *Service) Get(ctx context.Context, caller shared.Caller, id string) (Visit, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Visits)
	if err != nil {
		return Visit{}, err
	}
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return Visit{}, err
	}
	if !scope.Permits(v.SalespersonID) {
		return Visit{}, shared.NotFound("visit not found")
	}
	return v, nil
}

// Create records a visit owned by the caller.
func (s *Service) Create(ctx context.Context, caller shared.Caller, req CreateVisitRequest) (Visit, error) {
	visitDate, err := shared.ParseTimestamp(req.VisitDate)
	if err != nil {
		return Visit{}, shared.BadRequest("visit_date must be RFC3339 or YYYY-MM-DD")
	}
	v := Visit{
		ID:            uuid.NewString(),
		CustomerID:    strings.TrimSpace(req.CustomerID),
		SalespersonID: caller.ID,
		VisitDate:     visitDate,
		Notes:         optional(req.Notes),
		Location:      req.Location,
		PhotoBase64:   optional(req.PhotoBase64),
		Status:        req.Status,
		CreatedAt:     time.Now().UTC(),
	}
	if v.Status == "" {
		v.Status = StatusVisited
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

// Delete removes a visit in the caller's scope.
func (s *Service) Delete(ctx context.Context, caller shared.Caller, id string) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
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
