package sales

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// ============================================================================
// IN-MEMORY REPOSITORY
// ============================================================================

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]Sale
}

func (m *memoryRepo) List(_ context.Context, scope rbac.Scope, filter ListFilter) ([]Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Sale{}
	for _, s := range m.rows {
		if !scope.Permits(s.SalespersonID) {
			continue
		}
		if filter.CustomerID != "" && s.CustomerID != filter.CustomerID {
			continue
		}
		if !filter.Range.Contains(s.SaleDate) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

func (m *memoryRepo) Totals(_ context.Context, scope rbac.Scope, since time.Time) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := Totals{Amount: decimal.Zero}
	for _, s := range m.rows {
		if !scope.Permits(s.SalespersonID) || s.CreatedAt.Before(since) {
			continue
		}
		t.Count++
		t.Amount = t.Amount.Add(s.TotalAmount)
	}
	return t, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return Sale{}, shared.NotFound("sale not found")
	}
	return s, nil
}

func (m *memoryRepo) Create(_ context.Context, s Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = s
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return shared.NotFound("sale not found")
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

func newTestService() (*Service, *memoryRepo) {
	repo := &memoryRepo{rows: map[string]Sale{}}
	return NewService(repo, rbac.NewResolver(team{"north": {"sp-1"}, "south": {"sp-3"}})), repo
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func saleRequest(total int64) CreateSaleRequest {
	return CreateSaleRequest{
		CustomerID: "c1",
		SaleDate:   "2025-03-04",
		Items: []Item{{
			ProductID: "p1", ProductName: "Baby shoe",
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(total), Total: decimal.NewFromInt(total),
		}},
		TotalAmount: amount(total),
	}
}

// ============================================================================
// UNIT TESTS
// ============================================================================

func TestTierFor(t *testing.T) {
	cases := []struct {
		amount int64
		level  string
		emoji  string
	}{
		{0, "Starter", "🌱"},
		{10000, "Starter", "🌱"},
		{10001, "Strong", "💪"},
		{30000, "Strong", "💪"},
		{30001, "On Fire", "🔥"},
		{50000, "On Fire", "🔥"},
		{50001, "Champion", "🏆"},
	}
	for _, tc := range cases {
		tier := TierFor(decimal.NewFromInt(tc.amount))
		assert.Equal(t, tc.level, tier.Level, "amount %d", tc.amount)
		assert.Equal(t, tc.emoji, tier.Emoji, "amount %d", tc.amount)
	}
}

func TestCommissionCountsOnlyThisMonth(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Create(ctx, sp1, saleRequest(20000))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sp1, saleRequest(15000))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sp3, saleRequest(90000))
	require.NoError(t, err)
	repo.rows["old"] = Sale{ID: "old", SalespersonID: "sp-1", TotalAmount: decimal.NewFromInt(70000), CreatedAt: now.AddDate(0, -1, 0)}

	c, err := svc.Commission(ctx, sp1)
	require.NoError(t, err)
	assert.True(t, c.MonthlyTotal.Equal(decimal.NewFromInt(35000)))
	assert.Equal(t, 2, c.SalesCount)
	assert.Equal(t, "On Fire", c.Level)
	assert.Equal(t, "🔥", c.Emoji)

	_, err = svc.Commission(ctx, admin)
	require.NoError(t, err)
}

func TestGetAndDeleteOutsideScope(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	s, err := svc.Create(ctx, sp3, saleRequest(100))
	require.NoError(t, err)

	_, err = svc.Get(ctx, northRM, s.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, northRM, s.ID), shared.ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, admin, s.ID))
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc, _ := newTestService()
	req := saleRequest(100)
	req.SaleDate = "04/03/2025"
	_, err := svc.Create(context.Background(), sp1, req)
	assert.ErrorIs(t, err, shared.ErrBadRequest)
}

// ============================================================================
// HTTP WORKFLOW
// ============================================================================

type SalesWorkflowTestSuite struct {
	suite.Suite
	svc    *Service
	router chi.Router
	caller shared.Caller
}

func (s *SalesWorkflowTestSuite) SetupTest() {
	s.svc, _ = newTestService()
	s.caller = sp1
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, s.svc, httpx.NewBinder(), rbac.Middleware{Logger: logger})
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithCaller(req.Context(), s.caller)))
		})
	})
	r.Route("/sales", h.MountRoutes)
	s.router = r
}

func (s *SalesWorkflowTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func (s *SalesWorkflowTestSuite) TestRecordAndListSale() {
	rec := s.do(http.MethodPost, "/sales", `{
		"customer_id": "c1",
		"salesperson_id": "sp-3",
		"sale_date": "2025-03-04T09:30:00Z",
		"items": [{"product_id": "p1", "product_name": "Baby shoe", "quantity": 5, "unit_price": 100, "total": 500}],
		"total_amount": 500
	}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/sales", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Len(list, 1)
	s.Equal("sp-1", list[0]["salesperson_id"])
	s.EqualValues(500, list[0]["total_amount"])

	rec = s.do(http.MethodGet, "/sales?start_date=2025-03-05", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *SalesWorkflowTestSuite) TestValidationFailures() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/sales", `{"customer_id":"c1","sale_date":"2025-03-04","items":[],"total_amount":0}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/sales", `{"customer_id":"c1","sale_date":"2025-03-04","items":[{"product_id":"p1","product_name":"x","quantity":0,"unit_price":1,"total":0}],"total_amount":0}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/sales", `{"customer_id":"c1","sale_date":"2025-03-04","items":[{"product_id":"p1","product_name":"x","quantity":1,"unit_price":1,"total":1}],"total_amount":-1}`).Code)
}

func (s *SalesWorkflowTestSuite) TestCommissionAndDeletePermissions() {
	rec := s.do(http.MethodGet, "/sales/commission", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.JSONEq(`{"monthly_total":0,"emoji":"🌱","level":"Starter","sales_count":0}`, rec.Body.String())

	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/sales/anything", "").Code)

	s.caller = admin
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/sales/anything", "").Code)
}

func TestSalesWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(SalesWorkflowTestSuite))
}
