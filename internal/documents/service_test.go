package documents

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]Document
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{rows: map[string]Document{}} }

func (m *memoryRepo) List(_ context.Context, filter ListFilter) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Document{}
	for _, d := range m.rows {
		if filter.CustomerID != "" && (d.CustomerID == nil || *d.CustomerID != filter.CustomerID) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return Document{}, shared.NotFound("document not found")
	}
	return d, nil
}

func (m *memoryRepo) Create(_ context.Context, d Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[d.ID] = d
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return shared.NotFound("document not found")
	}
	delete(m.rows, id)
	return nil
}

func strPtr(s string) *string { return &s }

var admin = shared.Caller{ID: "admin-1", Role: shared.RoleAdmin}

func TestCreatePayloadRules(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, CreateDocumentRequest{Title: "Catalog", Type: "catalog"})
	assert.ErrorIs(t, err, shared.ErrBadRequest)

	_, err = svc.Create(ctx, admin, CreateDocumentRequest{
		Title: "Catalog", Type: "catalog",
		FileBase64: strPtr("JVBERi0xLjQK"), FileName: strPtr("c.pdf"), URL: strPtr("https://example.com/c.pdf"),
	})
	assert.ErrorIs(t, err, shared.ErrBadRequest)

	_, err = svc.Create(ctx, admin, CreateDocumentRequest{Title: "Catalog", Type: "catalog", FileBase64: strPtr("JVBERi0xLjQK")})
	assert.ErrorIs(t, err, shared.ErrBadRequest)

	inline, err := svc.Create(ctx, admin, CreateDocumentRequest{
		Title: "Catalog", Type: "catalog",
		FileBase64: strPtr("JVBERi0xLjQK"), FileName: strPtr("c.pdf"), FileType: strPtr("application/pdf"),
	})
	require.NoError(t, err)
	assert.True(t, inline.Inline())
	assert.Equal(t, "admin-1", inline.UploadedBy)

	linked, err := svc.Create(ctx, admin, CreateDocumentRequest{
		Title: "Brochure", Type: "brochure", URL: strPtr("https://example.com/b.pdf"), FileName: strPtr("ignored.pdf"),
		CustomerID: strPtr("c1"),
	})
	require.NoError(t, err)
	assert.False(t, linked.Inline())
	assert.Nil(t, linked.FileName)

	byCustomer, err := svc.List(ctx, ListFilter{CustomerID: "c1"})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, linked.ID, byCustomer[0].ID)
}

func TestHandlerPermissions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(newMemoryRepo()), httpx.NewBinder(), rbac.Middleware{Logger: logger})
	caller := shared.Caller{ID: "sp-1", Role: shared.RoleSalesperson}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithCaller(req.Context(), caller)))
		})
	})
	r.Route("/documents", h.MountRoutes)

	body := `{"title":"Price list","type":"price_list","url":"https://example.com/p.pdf"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	caller = admin
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(`{"title":"x","type":"catalog","url":"not a url"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/documents/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
