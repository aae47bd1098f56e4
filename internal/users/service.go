package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service implements user management.
type Service struct {
	repo     Repository
	scopes   *rbac.Resolver
	hashCost int
}

// NewService builds a Service. A hashCost of zero uses bcrypt.DefaultCost.
func NewService(repo Repository, scopes *rbac.Resolver, hashCost int) *Service {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, scopes: scopes, hashCost: hashCost}
}

// List returns the users visible to caller.
func (s *Service) List(ctx context.Context, caller shared.Caller, filter ListFilter) ([]User, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Users)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope, filter)
}

// Get returns one user if it is visible to caller.
func (s *Service) Get(ctx context.Context, caller shared.Caller, id string) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if caller.ID == u.ID {
		return u, nil
	}
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Users)
	if err != nil {
		return User{}, err
	}
	if !scope.Permits(u.Region()) {
		return User{}, shared.NotFound("user not found")
	}
	return u, nil
}

// Lookup fetches a user by id without scope checks.
func (s *Service) Lookup(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

// LookupByUsername fetches a user by username without scope checks.
func (s *Service) LookupByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Create stores a new user with a hashed password.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         shared.Role(req.Role),
		RegionID:     normalizeRegion(req.RegionID),
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Update applies the fields present in req.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if req.Username != nil {
		u.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		u.Role = shared.Role(*req.Role)
	}
	if req.RegionID != nil {
		u.RegionID = normalizeRegion(req.RegionID)
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if req.Password != nil {
		hash, err := s.HashPassword(*req.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, caller shared.Caller, id string) error {
	if caller.ID == id {
		return shared.BadRequest("cannot delete your own account")
	}
	return s.repo.Delete(ctx, id)
}

// HashPassword returns the bcrypt hash of plain.
func (s *Service) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("users: hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeRegion(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
