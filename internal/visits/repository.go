package visits

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Repository persists visits. scope filters on salesperson_id.
type Repository interface {
	List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]Visit, error)
	Count(ctx context.Context, scope rbac.Scope) (int, error)
	Get(ctx context.Context, id string) (Visit, error)
	Create(ctx context.Context, visit Visit) error
	Delete(ctx context.Context, id string) error
}

const visitColumns = `id, customer_id, salesperson_id, visit_date, notes, location, photo_base64, status, created_at`

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]Visit, error) {
	var where db.Where
	scope.Apply(&where, "salesperson_id")
	if filter.CustomerID != "" {
		where.Eq("customer_id", filter.CustomerID)
	}
	if filter.Range.From != nil {
		where.Gte("visit_date", *filter.Range.From)
	}
	if filter.Range.To != nil {
		where.Lte("visit_date", *filter.Range.To)
	}
	rows, err := r.db.Query(ctx, `SELECT `+visitColumns+` FROM visits`+where.SQL()+` ORDER BY visit_date DESC`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("visits: list: %w", err)
	}
	defer rows.Close()

	list := []Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("visits: scan: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *repository) Count(ctx context.Context, scope rbac.Scope) (int, error) {
	var where db.Where
	scope.Apply(&where, "salesperson_id")
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM visits`+where.SQL(), where.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("visits: count: %w", err)
	}
	return n, nil
}

func (r *repository) Get(ctx context.Context, id string) (Visit, error) {
	v, err := scanVisit(r.db.QueryRow(ctx, `SELECT `+visitColumns+` FROM visits WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Visit{}, shared.NotFound("visit not found")
	}
	if err != nil {
		return Visit{}, fmt.Errorf("visits: get: %w", err)
	}
	return v, nil
}

func (r *repository) Create(ctx context.Context, v Visit) error {
	_, err := r.db.Exec(ctx, `INSERT INTO visits (`+visitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.CustomerID, v.SalespersonID, v.VisitDate, v.Notes, v.Location, v.PhotoBase64, v.Status, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("visits: create: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("visits: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("visit not found")
	}
	return nil
}

func scanVisit(row pgx.Row) (Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.CustomerID, &v.SalespersonID, &v.VisitDate, &v.Notes, &v.Location, &v.PhotoBase64, &v.Status, &v.CreatedAt)
	return v, err
}
