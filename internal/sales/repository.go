package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Repository persists sales. scope filters on salesperson_id.
type Repository interface {
	List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]Sale, error)
	// Totals sums sales in scope created at or after since. A zero since
	// covers every sale.
	Totals(ctx context.Context, scope rbac.Scope, since time.Time) (Totals, error)
	Get(ctx context.Context, id string) (Sale, error)
	Create(ctx context.Context, sale Sale) error
	Delete(ctx context.Context, id string) error
}

const saleColumns = `id, customer_id, salesperson_id, sale_date, items, total_amount, notes, created_at`

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]Sale, error) {
	var where db.Where
	scope.Apply(&where, "salesperson_id")
	if filter.CustomerID != "" {
		where.Eq("customer_id", filter.CustomerID)
	}
	if filter.Range.From != nil {
		where.Gte("sale_date", *filter.Range.From)
	}
	if filter.Range.To != nil {
		where.Lte("sale_date", *filter.Range.To)
	}
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales`+where.SQL()+` ORDER BY sale_date DESC`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("sales: list: %w", err)
	}
	defer rows.Close()

	list := []Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("sales: scan: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *repository) Totals(ctx context.Context, scope rbac.Scope, since time.Time) (Totals, error) {
	var where db.Where
	scope.Apply(&where, "salesperson_id")
	if !since.IsZero() {
		where.Gte("created_at", since)
	}
	var t Totals
	err := r.db.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM sales`+where.SQL(), where.Args()...).
		Scan(&t.Count, &t.Amount)
	if err != nil {
		return Totals{}, fmt.Errorf("sales: totals: %w", err)
	}
	return t, nil
}

func (r *repository) Get(ctx context.Context, id string) (Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, shared.NotFound("sale not found")
	}
	if err != nil {
		return Sale{}, fmt.Errorf("sales: get: %w", err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, s Sale) error {
	_, err := r.db.Exec(ctx, `INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CustomerID, s.SalespersonID, s.SaleDate, s.Items, s.TotalAmount, s.Notes, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("sales: create: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sales: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("sale not found")
	}
	return nil
}

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.CustomerID, &s.SalespersonID, &s.SaleDate, &s.Items, &s.TotalAmount, &s.Notes, &s.CreatedAt)
	if s.Items == nil {
		s.Items = []Item{}
	}
	return s, err
}

