package regions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Repository persists regions.
type Repository interface {
	List(ctx context.Context) ([]Region, error)
	Get(ctx context.Context, id string) (Region, error)
	Create(ctx context.Context, region Region) error
	Update(ctx context.Context, region Region) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context) ([]Region, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, manager_id, created_at FROM regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("regions: list: %w", err)
	}
	defer rows.Close()

	list := []Region{}
	for rows.Next() {
		var reg Region
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Description, &reg.ManagerID, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("regions: scan: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Region, error) {
	var reg Region
	err := r.db.QueryRow(ctx, `SELECT id, name, description, manager_id, created_at FROM regions WHERE id = $1`, id).
		Scan(&reg.ID, &reg.Name, &reg.Description, &reg.ManagerID, &reg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Region{}, shared.NotFound("region not found")
	}
	if err != nil {
		return Region{}, fmt.Errorf("regions: get: %w", err)
	}
	return reg, nil
}

func (r *repository) Create(ctx context.Context, reg Region) error {
	_, err := r.db.Exec(ctx, `INSERT INTO regions (id, name, description, manager_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		reg.ID, reg.Name, reg.Description, reg.ManagerID, reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("regions: create: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, reg Region) error {
	tag, err := r.db.Exec(ctx, `UPDATE regions SET name = $2, description = $3, manager_id = $4 WHERE id = $1`,
		reg.ID, reg.Name, reg.Description, reg.ManagerID)
	if err != nil {
		return fmt.Errorf("regions: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("region not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("regions: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("region not found")
	}
	return nil
}
