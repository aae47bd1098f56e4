package rbac

import (
	"log/slog"
	"net/http"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Middleware wires policy checks into HTTP routes.
type Middleware struct {
	Logger *slog.Logger
}

// Require rejects requests whose caller may not perform action on res.
func (m Middleware) Require(res Resource, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := shared.CallerFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, r, m.Logger, shared.Unauthorized("not authenticated"))
				return
			}
			if err := Authorize(caller, res, action); err != nil {
				if m.Logger != nil {
					m.Logger.Debug("rbac denied",
						slog.String("user_id", caller.ID),
						slog.String("role", string(caller.Role)),
						slog.String("resource", string(res)),
						slog.String("action", string(action)))
				}
				httpx.RespondError(w, r, m.Logger, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
