package customers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	binder  *httpx.Binder
	rbac    rbac.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, binder *httpx.Binder, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, binder: binder, rbac: rbac}
}

// MountRoutes registers customer routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.Customers, rbac.ActionList)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.Customers, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.Customers, rbac.ActionRead)).Get("/{id}", h.get)
	r.With(h.rbac.Require(rbac.Customers, rbac.ActionUpdate)).Put("/{id}", h.update)
	r.With(h.rbac.Require(rbac.Customers, rbac.ActionDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	list, err := h.service.List(r.Context(), caller, ListFilter{RegionID: r.URL.Query().Get("region_id")})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	c, err := h.service.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	var req CreateCustomerRequest
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

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	caller, _ := shared.CallerFromContext(r.Context())
	var req UpdateCustomerRequest
	if err := h.binder.Bind(r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	c, err := h.service.Update(r.Context(), caller, chi.URLParam(r, "id"), req)
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
	httpx.Message(w, "customer deleted")
}
