package products

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]Product
}

func (m *memoryRepo) List(_ context.Context, filter ListFilter) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Product{}
	for _, p := range m.rows {
		if !p.Active && !filter.IncludeInactive {
			continue
		}
		if filter.Category != "" && (p.Category == nil || *p.Category != filter.Category) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return Product{}, shared.NotFound("product not found")
	}
	return p, nil
}

func (m *memoryRepo) Create(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.rows {
		if other.Code == p.Code {
			return shared.BadRequest("product code already exists")
		}
	}
	m.rows[p.ID] = p
	return nil
}

func (m *memoryRepo) Update(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return shared.NotFound("product not found")
	}
	m.rows[p.ID] = p
	return nil
}

func (m *memoryRepo) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return shared.NotFound("product not found")
	}
	p.Active = false
	m.rows[id] = p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func newRouter(caller shared.Caller, repo *memoryRepo) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(repo), httpx.NewBinder(), rbac.Middleware{Logger: logger})
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithCaller(req.Context(), caller)))
		})
	})
	r.Route("/products", h.MountRoutes)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

var (
	admin = shared.Caller{ID: "admin", Role: shared.RoleAdmin}
	sales = shared.Caller{ID: "sp", Role: shared.RoleSalesperson, RegionID: "north"}
)

func TestCreateProductDefaultsAndNumbers(t *testing.T) {
	repo := &memoryRepo{rows: map[string]Product{}}
	h := newRouter(admin, repo)

	rec := serve(h, http.MethodPost, "/products", `{"code":"T1","name":"Thermometer","unit_price":100,"price_1_5":95.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(100), got["unit_price"])
	assert.Equal(t, 95.5, got["price_1_5"])
	assert.Nil(t, got["price_6_10"])
	assert.Equal(t, DefaultUnit, got["unit"])
	assert.Equal(t, true, got["active"])

	rec = serve(h, http.MethodPost, "/products", `{"code":"T1","name":"Dup","unit_price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"product code already exists"}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/products", `{"code":"T2","name":"No price"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodPost, "/products", `{"code":"T3","name":"Negative","unit_price":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSoftDeleteHidesProductButKeepsRecord(t *testing.T) {
	repo := &memoryRepo{rows: map[string]Product{
		"p1": {ID: "p1", Code: "T1", Name: "Thermometer", UnitPrice: decimal.NewFromInt(100), Active: true},
		"p2": {ID: "p2", Code: "T2", Name: "Syringe", UnitPrice: decimal.NewFromInt(5), Active: true},
	}}
	adminAPI := newRouter(admin, repo)
	salesAPI := newRouter(sales, repo)

	assert.Equal(t, http.StatusForbidden, serve(salesAPI, http.MethodDelete, "/products/p1", "").Code)
	require.Equal(t, http.StatusOK, serve(adminAPI, http.MethodDelete, "/products/p1", "").Code)

	stored, err := repo.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, stored.Active)

	var list []Product
	require.NoError(t, json.Unmarshal(serve(salesAPI, http.MethodGet, "/products", "").Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)

	require.NoError(t, json.Unmarshal(serve(salesAPI, http.MethodGet, "/products?include_inactive=true", "").Body.Bytes(), &list))
	assert.Len(t, list, 1)

	require.NoError(t, json.Unmarshal(serve(adminAPI, http.MethodGet, "/products?include_inactive=true", "").Body.Bytes(), &list))
	assert.Len(t, list, 2)

	assert.Equal(t, http.StatusNotFound, serve(salesAPI, http.MethodGet, "/products/p1", "").Code)
	assert.Equal(t, http.StatusOK, serve(adminAPI, http.MethodGet, "/products/p1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(adminAPI, http.MethodDelete, "/products/ghost", "").Code)
}

func TestUpdateProductPartial(t *testing.T) {
	repo := &memoryRepo{rows: map[string]Product{
		"p1": {ID: "p1", Code: "T1", Name: "Thermometer", UnitPrice: decimal.NewFromInt(100), Unit: DefaultUnit, Active: true},
	}}
	svc := NewService(repo)
	price := decimal.RequireFromString("120.50")

	p, err := svc.Update(context.Background(), "p1", UpdateProductRequest{UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, p.UnitPrice.Equal(price))
	assert.Equal(t, "Thermometer", p.Name)
	assert.Equal(t, DefaultUnit, p.Unit)
}
