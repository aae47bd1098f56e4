package regions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements region management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Region, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Region, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRegionRequest) (Region, error) {
	reg := Region{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: optional(req.Description),
		ManagerID:   optional(req.ManagerID),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return Region{}, err
	}
	return reg, nil
}

// Update applies the fields present in req. Empty optional strings clear them.
func (s *Service) Update(ctx context.Context, id string, req UpdateRegionRequest) (Region, error) {
	reg, err := s.repo.Get(ctx, id)
	if err != nil {
		return Region{}, err
	}
	if req.Name != nil {
		reg.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		reg.Description = optional(req.Description)
	}
	if req.ManagerID != nil {
		reg.ManagerID = optional(req.ManagerID)
	}
	if err := s.repo.Update(ctx, reg); err != nil {
		return Region{}, err
	}
	return reg, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
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
