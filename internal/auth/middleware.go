package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/shared"
	"github.com/pedizone/pedizone-crm/internal/users"
)

type userContextKey struct{}

// UserFromContext returns the authenticated user stored by RequireAuth.
func UserFromContext(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(users.User)
	return u, ok
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Middleware resolves the caller from the bearer token.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireAuth rejects requests without a valid token and stores the caller
// in the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			httpx.RespondError(w, r, m.Logger, shared.Unauthorized("not authenticated"))
			return
		}
		u, err := m.Service.Authenticate(r.Context(), token)
		if err != nil {
			httpx.RespondError(w, r, m.Logger, err)
			return
		}
		ctx := shared.ContextWithCaller(r.Context(), u.Caller())
		ctx = context.WithValue(ctx, userContextKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
