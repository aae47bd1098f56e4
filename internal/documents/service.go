package documents

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Service stores customer documents in the configured backend.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service over a postgres or mongo repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a document uploaded by caller. Exactly one of file_base64
// and url must be present; inline files need a file_name.
func (s *Service) Create(ctx context.Context, caller shared.Caller, req CreateDocumentRequest) (Document, error) {
	d := Document{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: optional(req.Description),
		Type:        strings.TrimSpace(req.Type),
		CustomerID:  optional(req.CustomerID),
		UploadedBy:  caller.ID,
		FileBase64:  req.FileBase64,
		FileName:    optional(req.FileName),
		FileType:    optional(req.FileType),
		URL:         optional(req.URL),
		CreatedAt:   s.now().UTC(),
	}
	switch {
	case d.FileBase64 != nil && d.URL != nil:
		return Document{}, shared.BadRequest("provide either file_base64 or url, not both")
	case d.FileBase64 == nil && d.URL == nil:
		return Document{}, shared.BadRequest("file_base64 or url is required")
	case d.FileBase64 != nil && d.FileName == nil:
		return Document{}, shared.BadRequest("file_name is required with file_base64")
	}
	if !d.Inline() {
		d.FileName, d.FileType = nil, nil
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
