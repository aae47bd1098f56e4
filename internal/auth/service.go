package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pedizone/pedizone-crm/internal/shared"
	"github.com/pedizone/pedizone-crm/internal/users"
)

// UserDirectory resolves accounts for authentication.
type UserDirectory interface {
	Lookup(ctx context.Context, id string) (users.User, error)
	LookupByUsername(ctx context.Context, username string) (users.User, error)
}

// LoginObserver counts login outcomes.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// Service wraps authentication business rules.
type Service struct {
	users    UserDirectory
	tokens   *TokenIssuer
	denylist Denylist
	observer LoginObserver
	logger   *slog.Logger
}

// NewService constructs a Service. denylist and observer may be nil.
func NewService(dir UserDirectory, tokens *TokenIssuer, denylist Denylist, observer LoginObserver, logger *slog.Logger) *Service {
	if denylist == nil {
		denylist = NopDenylist{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: dir, tokens: tokens, denylist: denylist, observer: observer, logger: logger}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	u, err := s.users.LookupByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, shared.ErrNotFound) {
		s.observe("invalid_credentials")
		return LoginResponse{}, shared.Unauthorized("incorrect username or password")
	}
	if err != nil {
		return LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.observe("invalid_credentials")
		return LoginResponse{}, shared.Unauthorized("incorrect username or password")
	}
	if !u.Active {
		s.observe("inactive")
		return LoginResponse{}, shared.Forbidden("account is inactive")
	}
	token, _, err := s.tokens.Issue(u)
	if err != nil {
		return LoginResponse{}, err
	}
	s.observe("success")
	return LoginResponse{AccessToken: token, TokenType: "bearer", User: u}, nil
}

// Authenticate resolves the user behind a bearer token.
func (s *Service) Authenticate(ctx context.Context, raw string) (users.User, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return users.User{}, shared.Unauthorized("could not validate credentials")
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("token denylist unavailable", slog.Any("error", err))
	}
	if revoked {
		return users.User{}, shared.Unauthorized("token has been revoked")
	}
	u, err := s.users.Lookup(ctx, claims.Subject)
	if errors.Is(err, shared.ErrNotFound) {
		return users.User{}, shared.NotFound("user not found")
	}
	if err != nil {
		return users.User{}, err
	}
	if !u.Active {
		return users.User{}, shared.Forbidden("account is inactive")
	}
	return u, nil
}

// Logout revokes the token until its expiry.
func (s *Service) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return shared.Unauthorized("could not validate credentials")
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *Service) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveLogin(outcome)
	}
}
