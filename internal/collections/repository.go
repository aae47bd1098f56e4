package collections

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Repository persists collections. scope filters on salesperson_id.
type Repository interface {
	List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]Collection, error)
	Total(ctx context.Context, scope rbac.Scope) (decimal.Decimal, error)
	Get(ctx context.Context, id string) (Collection, error)
	Create(ctx context.Context, c Collection) error
	Delete(ctx context.Context, id string) error
}

const collectionColumns = `id, customer_id, salesperson_id, amount, collection_date, payment_method, notes, created_at`

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]Collection, error) {
	var where db.Where
	scope.Apply(&where, "salesperson_id")
	if filter.CustomerID != "" {
		where.Eq("customer_id", filter.CustomerID)
	}
	if filter.Range.From != nil {
		where.Gte("collection_date", *filter.Range.From)
	}
	if filter.Range.To != nil {
		where.Lte("collection_date", *filter.Range.To)
	}
	rows, err := r.db.Query(ctx, `SELECT `+collectionColumns+` FROM collections`+where.SQL()+` ORDER BY collection_date DESC`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("collections: list: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Collection, error) {
		return scanCollection(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collections: scan: %w", err)
	}
	return list, nil
}

func (r *repository) Total(ctx context.Context, scope rbac.Scope) (decimal.Decimal, error) {
	var where db.Where
	scope.Apply(&where, "salesperson_id")
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM collections`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("collections: total: %w", err)
	}
	return total, nil
}

func (r *repository) Get(ctx context.Context, id string) (Collection, error) {
	c, err := scanCollection(r.db.QueryRow(ctx, `SELECT `+collectionColumns+` FROM collections WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, shared.NotFound("collection not found")
	}
	if err != nil {
		return Collection{}, fmt.Errorf("collections: get: %w", err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Collection) error {
	_, err := r.db.Exec(ctx, `INSERT INTO collections (`+collectionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CustomerID, c.SalespersonID, c.Amount, c.CollectionDate, string(c.PaymentMethod), c.Notes, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("collections: create: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("collections: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("collection not found")
	}
	return nil
}

func scanCollection(row pgx.Row) (Collection, error) {
	var (
		c      Collection
		method string
	)
	err := row.Scan(&c.ID, &c.CustomerID, &c.SalespersonID, &c.Amount, &c.CollectionDate, &method, &c.Notes, &c.CreatedAt)
	c.PaymentMethod = PaymentMethod(method)
	return c, err
}
