package documents

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Handler exposes document endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	binder  *httpx.Binder
	rbac    rbac.Middleware
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, binder *httpx.Binder, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, binder: binder, rbac: rbac}
}

// MountRoutes registers document routes. Writes are admin only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.Documents, rbac.ActionList)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.Documents, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.Documents, rbac.ActionRead)).Get("/{id}", h.get)
	r.With(h.rbac.Require(rbac.Documents, rbac.ActionDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), ListFilter{CustomerID: r.URL.Query().Get("customer_id")})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	var req CreateDocumentRequest
	if err := h.binder.Bind(r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	d, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	h.logger.Info("document uploaded", slog.String("document_id", d.ID), slog.Bool("inline", d.Inline()))
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.Message(w, "document deleted")
}
