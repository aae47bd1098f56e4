package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pedizone/pedizone-crm/internal/auth"
	"github.com/pedizone/pedizone-crm/internal/bootstrap"
	"github.com/pedizone/pedizone-crm/internal/collections"
	"github.com/pedizone/pedizone-crm/internal/customers"
	"github.com/pedizone/pedizone-crm/internal/dashboard"
	"github.com/pedizone/pedizone-crm/internal/documents"
	"github.com/pedizone/pedizone-crm/internal/observability"
	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/products"
	"github.com/pedizone/pedizone-crm/internal/regions"
	"github.com/pedizone/pedizone-crm/internal/reports"
	"github.com/pedizone/pedizone-crm/internal/sales"
	"github.com/pedizone/pedizone-crm/internal/users"
	"github.com/pedizone/pedizone-crm/internal/visits"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	AuthHandler        *auth.Handler
	BootstrapHandler   *bootstrap.Handler
	UsersHandler       *users.Handler
	RegionsHandler     *regions.Handler
	CustomersHandler   *customers.Handler
	ProductsHandler    *products.Handler
	VisitsHandler      *visits.Handler
	SalesHandler       *sales.Handler
	CollectionsHandler *collections.Handler
	DocumentsHandler   *documents.Handler
	DashboardHandler   *dashboard.Handler
	ReportsHandler     *reports.Handler
}

// NewRouter constructs the chi.Router with PediZone defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Detail(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Detail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	prefix := "/api"
	if params.Config != nil {
		prefix = params.Config.APIPrefix
	}
	mount := func(r chi.Router) {
		if params.BootstrapHandler != nil {
			params.BootstrapHandler.MountRoutes(r)
		}
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthHandler.Middleware().RequireAuth)

			routes := []struct {
				path    string
				handler interface{ MountRoutes(chi.Router) }
				present bool
			}{
				{"/users", params.UsersHandler, params.UsersHandler != nil},
				{"/regions", params.RegionsHandler, params.RegionsHandler != nil},
				{"/customers", params.CustomersHandler, params.CustomersHandler != nil},
				{"/products", params.ProductsHandler, params.ProductsHandler != nil},
				{"/visits", params.VisitsHandler, params.VisitsHandler != nil},
				{"/sales", params.SalesHandler, params.SalesHandler != nil},
				{"/collections", params.CollectionsHandler, params.CollectionsHandler != nil},
				{"/documents", params.DocumentsHandler, params.DocumentsHandler != nil},
				{"/dashboard", params.DashboardHandler, params.DashboardHandler != nil},
				{"/reports", params.ReportsHandler, params.ReportsHandler != nil},
			}
			for _, rt := range routes {
				if rt.present {
					r.Route(rt.path, rt.handler.MountRoutes)
				}
			}
		})
	}
	if prefix == "" {
		mount(r)
	} else {
		r.Route(prefix, mount)
	}

	return r
}
