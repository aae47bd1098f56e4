package customers

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

// Repository persists customers. scope filters on region_id.
type Repository interface {
	List(ctx context.Context, scope rbac.Scope) ([]Customer, error)
	Count(ctx context.Context, scope rbac.Scope) (int, error)
	Get(ctx context.Context, id string) (Customer, error)
	Create(ctx context.Context, customer Customer) error
	Update(ctx context.Context, customer Customer) error
	Delete(ctx context.Context, id string) error
}

const customerColumns = `id, name, address, phone, email, region_id, tax_number, notes, created_at`

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, scope rbac.Scope) ([]Customer, error) {
	var where db.Where
	scope.Apply(&where, "region_id")
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers`+where.SQL()+` ORDER BY name`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("customers: list: %w", err)
	}
	defer rows.Close()

	list := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("customers: scan: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *repository) Count(ctx context.Context, scope rbac.Scope) (int, error) {
	var where db.Where
	scope.Apply(&where, "region_id")
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where.SQL(), where.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("customers: count: %w", err)
	}
	return n, nil
}

func (r *repository) Get(ctx context.Context, id string) (Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, shared.NotFound("customer not found")
	}
	if err != nil {
		return Customer{}, fmt.Errorf("customers: get: %w", err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Customer) error {
	_, err := r.db.Exec(ctx, `INSERT INTO customers (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.RegionID, c.TaxNumber, c.Notes, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("customers: create: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, c Customer) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET name = $2, address = $3, phone = $4, email = $5,
		region_id = $6, tax_number = $7, notes = $8 WHERE id = $1`,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.RegionID, c.TaxNumber, c.Notes)
	if err != nil {
		return fmt.Errorf("customers: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("customer not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("customers: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("customer not found")
	}
	return nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.RegionID, &c.TaxNumber, &c.Notes, &c.CreatedAt)
	return c, err
}
