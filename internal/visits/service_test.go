package visits

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
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]Visit
}

func (m *memoryRepo) List(_ context.Context, scope rbac.Scope, filter ListFilter) ([]Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Visit{}
	for _, v := range m.rows {
		if !scope.Permits(v.SalespersonID) {
			continue
		}
		if filter.CustomerID != "" && v.CustomerID != filter.CustomerID {
			continue
		}
		if !filter.Range.Contains(v.VisitDate) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return out, nil
}

func (m *memoryRepo) Count(ctx context.Context, scope rbac.Scope) (int, error) {
	list, err := m.List(ctx, scope, ListFilter{})
	return len(list), err
}

func (m *memoryRepo) Get(_ context.Context, id string) (Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.rows[id]
	if !ok {
		return Visit{}, shared.NotFound("visit not found")
	}
	return v, nil
}

func (m *memoryRepo) Create(_ context.Context, v Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[v.ID] = v
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return shared.NotFound("visit not found")
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
	sp2     = shared.Caller{ID: "sp-2", Role: shared.RoleSalesperson, RegionID: "north"}
	sp3     = shared.Caller{ID: "sp-3", Role: shared.RoleSalesperson, RegionID: "south"}
)

func newTestService() (*Service, *memoryRepo) {
	repo := &memoryRepo{rows: map[string]Visit{}}
	resolver := rbac.NewResolver(team{"north": {"sp-1", "sp-2"}, "south": {"sp-3"}})
	return NewService(repo, resolver), repo
}

func TestCreateForcesSalesperson(t *testing.T) {
	svc, repo := newTestService()

	v, err := svc.Create(context.Background(), sp1, CreateVisitRequest{
		CustomerID: "c1", SalespersonID: "sp-3", VisitDate: "2025-03-04",
		Location: &Location{Latitude: 41.0, Longitude: 29.0},
	})
	require.NoError(t, err)
	assert.Equal(t, "sp-1", v.SalespersonID)
	assert.Equal(t, StatusVisited, v.Status)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), v.VisitDate)

	stored, err := repo.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "sp-1", stored.SalespersonID)

	_, err = svc.Create(context.Background(), sp1, CreateVisitRequest{CustomerID: "c1", VisitDate: "tomorrow"})
	assert.ErrorIs(t, err, shared.ErrBadRequest)
}

func TestListRoleScoping(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, c := range []shared.Caller{sp1, sp1, sp2, sp3} {
		_, err := svc.Create(ctx, c, CreateVisitRequest{CustomerID: "c1", VisitDate: "2025-03-04T10:00:00Z"})
		require.NoError(t, err)
	}

	mine, err := svc.List(ctx, sp1, ListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, v := range mine {
		assert.Equal(t, sp1.ID, v.SalespersonID)
	}

	spoofed, err := svc.List(ctx, sp1, ListFilter{SalespersonID: "sp-2"})
	require.NoError(t, err)
	assert.Empty(t, spoofed)

	teamVisits, err := svc.List(ctx, northRM, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, teamVisits, 3)
	for _, v := range teamVisits {
		assert.Contains(t, []string{"sp-1", "sp-2"}, v.SalespersonID)
	}

	all, err := svc.List(ctx, admin, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	n, err := svc.Count(ctx, rbac.Only("sp-1", "sp-2"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGetAndDeleteOutsideScope(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	v, err := svc.Create(ctx, sp3, CreateVisitRequest{CustomerID: "c1", VisitDate: "2025-03-04"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, northRM, v.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, sp1, v.ID), shared.ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, sp3, v.ID))
	assert.ErrorIs(t, svc.Delete(ctx, sp3, v.ID), shared.ErrNotFound)
}

func TestHandlerCreateValidatesStatus(t *testing.T) {
	svc, _ := newTestService()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, svc, httpx.NewBinder(), rbac.Middleware{Logger: logger})
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithCaller(req.Context(), sp1)))
		})
	})
	r.Route("/visits", h.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(`{"customer_id":"c1","visit_date":"2025-03-04","status":"lost"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(`{"customer_id":"c1","visit_date":"2025-03-04","location":{"latitude":120,"longitude":0}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/visits", strings.NewReader(`{"customer_id":"c1","visit_date":"2025-03-04","status":"agreed","salesperson_id":"someone-else"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v Visit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "sp-1", v.SalespersonID)
	assert.Equal(t, StatusAgreed, v.Status)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/visits?start_date=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
