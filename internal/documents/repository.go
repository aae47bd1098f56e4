package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Repository persists documents. Implementations exist for PostgreSQL and
// MongoDB; the backend is chosen at startup.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Create(ctx context.Context, d Document) error
	Delete(ctx context.Context, id string) error
}

const documentColumns = `id, title, description, type, customer_id, uploaded_by, file_base64, file_name, file_type, url, created_at`

type pgRepository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{db: pool}
}

func (r *pgRepository) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	var where db.Where
	if filter.CustomerID != "" {
		where.Eq("customer_id", filter.CustomerID)
	}
	rows, err := r.db.Query(ctx, `SELECT `+documentColumns+` FROM documents`+where.SQL()+` ORDER BY created_at DESC`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("documents: list: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		return scanDocument(row)
	})
	if err != nil {
		return nil, fmt.Errorf("documents: scan: %w", err)
	}
	return list, nil
}

func (r *pgRepository) Get(ctx context.Context, id string) (Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, shared.NotFound("document not found")
	}
	if err != nil {
		return Document{}, fmt.Errorf("documents: get: %w", err)
	}
	return d, nil
}

func (r *pgRepository) Create(ctx context.Context, d Document) error {
	_, err := r.db.Exec(ctx, `INSERT INTO documents (`+documentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.Title, d.Description, d.Type, d.CustomerID, d.UploadedBy, d.FileBase64, d.FileName, d.FileType, d.URL, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("documents: create: %w", err)
	}
	return nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("documents: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("document not found")
	}
	return nil
}

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Type, &d.CustomerID, &d.UploadedBy,
		&d.FileBase64, &d.FileName, &d.FileType, &d.URL, &d.CreatedAt)
	return d, err
}
