package collections

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Handler exposes collection endpoints.
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

// MountRoutes registers collection routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.Collections, rbac.ActionList)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.Collections, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.Collections, rbac.ActionDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	q := r.URL.Query()
	rng, err := shared.ParseDateRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	list, err := h.service.List(r.Context(), caller, ListFilter{
		SalespersonID: q.Get("salesperson_id"),
		CustomerID:    q.Get("customer_id"),
		Range:         rng,
	})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	var req CreateCollectionRequest
	if err := h.binder.Bind(r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	c, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	if err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.Message(w, "collection deleted")
}
