package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
)

// Initializer runs first-time setup.
type Initializer interface {
	Init(ctx context.Context) (Result, error)
}

type initResponse struct {
	Message       string `json:"message"`
	AdminUsername string `json:"admin_username,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}

// Handler exposes system initialization.
type Handler struct {
	logger *slog.Logger
	init   Initializer
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, init Initializer) *Handler {
	return &Handler{logger: logger, init: init}
}

// MountRoutes registers POST /init. It is reachable without a token.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/init", h.handleInit)
}

func (h *Handler) handleInit(w http.ResponseWriter, r *http.Request) {
	res, err := h.init.Init(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if !res.Initialized {
		httpx.JSON(w, http.StatusOK, initResponse{Message: "already initialized"})
		return
	}
	httpx.JSON(w, http.StatusOK, initResponse{
		Message:       "system initialized",
		AdminUsername: res.AdminUsername,
		AdminPassword: res.AdminPassword,
	})
}
