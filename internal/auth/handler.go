package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Handler exposes login, logout and identity endpoints.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	binder         *httpx.Binder
	middleware     Middleware
	loginRateLimit int
}

// NewHandler builds a Handler. loginRateLimit is attempts per minute per IP;
// zero disables the limiter.
func NewHandler(logger *slog.Logger, service *Service, binder *httpx.Binder, loginRateLimit int) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		binder:         binder,
		middleware:     Middleware{Service: service, Logger: logger},
		loginRateLimit: loginRateLimit,
	}
}

// Middleware returns the bearer auth middleware bound to this handler's service.
func (h *Handler) Middleware() Middleware {
	return h.middleware
}

// MountRoutes registers auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.loginRateLimit > 0 {
			r.Use(httprate.Limit(h.loginRateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					httpx.Detail(w, http.StatusTooManyRequests, "too many login attempts")
				}),
			))
		}
		r.Post("/login", h.login)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireAuth)
		r.Get("/me", h.me)
		r.Post("/logout", h.logout)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.binder.Bind(r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	resp, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("login rejected", slog.String("username", req.Username), slog.String("reason", shared.UserSafeMessage(err)))
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, h.logger, shared.Unauthorized("not authenticated"))
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := BearerToken(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.Message(w, "logged out")
}
