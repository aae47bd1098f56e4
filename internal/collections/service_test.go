package collections

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
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
	rows map[string]Collection
}

func (m *memoryRepo) List(_ context.Context, scope rbac.Scope, filter ListFilter) ([]Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Collection{}
	for _, c := range m.rows {
		if scope.Permits(c.SalespersonID) && (filter.CustomerID == "" || filter.CustomerID == c.CustomerID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryRepo) Total(ctx context.Context, scope rbac.Scope) (decimal.Decimal, error) {
	list, _ := m.List(ctx, scope, ListFilter{})
	total := decimal.Zero
	for _, c := range list {
		total = total.Add(c.Amount)
	}
	return total, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return Collection{}, shared.NotFound("collection not found")
	}
	return c, nil
}

func (m *memoryRepo) Create(_ context.Context, c Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = c
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return shared.NotFound("collection not found")
	}
	delete(m.rows, id)
	return nil
}

type team map[string][]string

func (t team) SalespersonIDs(_ context.Context, region string) ([]string, error) { return t[region], nil }

var (
	admin   = shared.Caller{ID: "admin", Role: shared.RoleAdmin}
	northRM = shared.Caller{ID: "rm-n", Role: shared.RoleRegionalManager, RegionID: "north"}
	sp1     = shared.Caller{ID: "sp-1", Role: shared.RoleSalesperson, RegionID: "north"}
	sp3     = shared.Caller{ID: "sp-3", Role: shared.RoleSalesperson, RegionID: "south"}
)

func newTestService() *Service {
	return NewService(&memoryRepo{rows: map[string]Collection{}}, rbac.NewResolver(team{"north": {"sp-1"}, "south": {"sp-3"}}))
}

func request(amount int64, method PaymentMethod) CreateCollectionRequest {
	a := decimal.NewFromInt(amount)
	return CreateCollectionRequest{CustomerID: "c1", Amount: &a, CollectionDate: "2025-03-04", PaymentMethod: method}
}

func TestTotalFollowsScope(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, sp1, request(250, PaymentCash))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sp1, request(100, PaymentCard))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sp3, request(999, PaymentBankTransfer))
	require.NoError(t, err)

	north, err := svc.Total(ctx, rbac.Only("sp-1"))
	require.NoError(t, err)
	assert.True(t, north.Equal(decimal.NewFromInt(350)), north.String())

	all, err := svc.Total(ctx, rbac.All())
	require.NoError(t, err)
	assert.True(t, all.Equal(decimal.NewFromInt(1349)), all.String())

	list, err := svc.List(ctx, northRM, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteOutsideScopeIsNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	c, err := svc.Create(ctx, sp3, request(10, PaymentCash))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sp3, request(20, PaymentCard))
	require.NoError(t, err)

	before, err := svc.List(ctx, admin, ListFilter{})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, sp1, c.ID), shared.ErrNotFound)
	unchanged, err := svc.List(ctx, admin, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, unchanged, len(before))

	require.NoError(t, svc.Delete(ctx, sp3, c.ID))
	after, err := svc.List(ctx, admin, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)
	for _, remaining := range after {
		assert.NotEqual(t, c.ID, remaining.ID)
	}

	assert.ErrorIs(t, svc.Delete(ctx, admin, c.ID), shared.ErrNotFound)
}

func TestHandlerCreate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, newTestService(), httpx.NewBinder(), rbac.Middleware{Logger: logger})
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithCaller(req.Context(), sp1)))
		})
	})
	r.Route("/collections", h.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(`{"customer_id":"c1","amount":75.5,"collection_date":"2025-03-04","payment_method":"cheque"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(`{"customer_id":"c1","amount":0,"collection_date":"2025-03-04","payment_method":"cash"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(`{"customer_id":"c1","salesperson_id":"sp-3","amount":75.5,"collection_date":"2025-03-04","payment_method":"bank_transfer"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var c Collection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "sp-1", c.SalespersonID)
	assert.Equal(t, "75.5", c.Amount.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/collections/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"collection not found"}`, rec.Body.String())
}
