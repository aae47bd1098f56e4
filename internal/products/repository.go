package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Repository persists products.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, product Product) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const productColumns = `id, code, name, unit_price, price_1_5, price_6_10, price_11_24, unit, category, description, photo_base64, active, created_at`

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	var where db.Where
	if !filter.IncludeInactive {
		where.Eq("active", true)
	}
	if filter.Category != "" {
		where.Eq("category", filter.Category)
	}
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products`+where.SQL()+` ORDER BY name`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	defer rows.Close()

	list := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("products: scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.NotFound("product not found")
	}
	if err != nil {
		return Product{}, fmt.Errorf("products: get: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Product) error {
	_, err := r.db.Exec(ctx, `INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Code, p.Name, p.UnitPrice, p.Price1To5, p.Price6To10, p.Price11To24,
		p.Unit, p.Category, p.Description, p.PhotoBase64, p.Active, p.CreatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p Product) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET code = $2, name = $3, unit_price = $4, price_1_5 = $5,
		price_6_10 = $6, price_11_24 = $7, unit = $8, category = $9, description = $10,
		photo_base64 = $11, active = $12 WHERE id = $1`,
		p.ID, p.Code, p.Name, p.UnitPrice, p.Price1To5, p.Price6To10, p.Price11To24,
		p.Unit, p.Category, p.Description, p.PhotoBase64, p.Active)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("product not found")
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("products: deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("product not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("product not found")
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.UnitPrice, &p.Price1To5, &p.Price6To10, &p.Price11To24,
		&p.Unit, &p.Category, &p.Description, &p.PhotoBase64, &p.Active, &p.CreatedAt)
	return p, err
}

func mapWriteError(err error) error {
	if db.IsUniqueViolation(err, "") {
		return shared.BadRequest("product code already exists")
	}
	return fmt.Errorf("products: write: %w", err)
}
