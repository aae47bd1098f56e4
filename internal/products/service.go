package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service implements the product catalog.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns active products. Admins may ask for inactive ones too.
func (s *Service) List(ctx context.Context, caller shared.Caller, filter ListFilter) ([]Product, error) {
	if caller.Role != shared.RoleAdmin {
		filter.IncludeInactive = false
	}
	return s.repo.List(ctx, filter)
}

// Get returns a product. Inactive products are hidden from non-admins.
func (s *Service) Get(ctx context.Context, caller shared.Caller, id string) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !p.Active && caller.Role != shared.RoleAdmin {
		return Product{}, shared.NotFound("product not found")
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	p := Product{
		ID:          uuid.NewString(),
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		UnitPrice:   *req.UnitPrice,
		Price1To5:   req.Price1To5,
		Price6To10:  req.Price6To10,
		Price11To24: req.Price11To24,
		Unit:        strings.TrimSpace(req.Unit),
		Category:    optional(req.Category),
		Description: optional(req.Description),
		PhotoBase64: optional(req.PhotoBase64),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update applies the fields present in req.
func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if req.Code != nil {
		p.Code = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.Price1To5 != nil {
		p.Price1To5 = req.Price1To5
	}
	if req.Price6To10 != nil {
		p.Price6To10 = req.Price6To10
	}
	if req.Price11To24 != nil {
		p.Price11To24 = req.Price11To24
	}
	if req.Unit != nil {
		p.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Category != nil {
		p.Category = optional(req.Category)
	}
	if req.Description != nil {
		p.Description = optional(req.Description)
	}
	if req.PhotoBase64 != nil {
		p.PhotoBase64 = optional(req.PhotoBase64)
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete follows the catalog's deletion mode for products.
func (s *Service) Delete(ctx context.Context, id string) error {
	if desc, _ := rbac.Describe(rbac.Products); desc.Deletion == rbac.DeleteSoft {
		return s.repo.Deactivate(ctx, id)
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
