package users

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

// Repository persists users.
type Repository interface {
	List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user User) error
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
	SalespersonIDs(ctx context.Context, regionID string) ([]string, error)
}

const userColumns = `id, username, email, full_name, role, region_id, password_hash, active, created_at`

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL implementation.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, scope rbac.Scope, filter ListFilter) ([]User, error) {
	var where db.Where
	scope.Apply(&where, "region_id")
	if filter.RegionID != "" {
		where.Eq("region_id", filter.RegionID)
	}
	if filter.Role != "" {
		where.Eq("role", filter.Role)
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users`+where.SQL()+` ORDER BY created_at DESC`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer rows.Close()

	list := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("users: scan: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *repository) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *repository) getBy(ctx context.Context, column, value string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.NotFound("user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("users: get by %s: %w", column, err)
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Username, u.Email, u.FullName, string(u.Role), u.RegionID, u.PasswordHash, u.Active, u.CreatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, u User) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET username = $2, email = $3, full_name = $4, role = $5,
		region_id = $6, password_hash = $7, active = $8 WHERE id = $1`,
		u.ID, u.Username, u.Email, u.FullName, string(u.Role), u.RegionID, u.PasswordHash, u.Active)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("user not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("user not found")
	}
	return nil
}

// SalespersonIDs implements rbac.TeamDirectory.
func (r *repository) SalespersonIDs(ctx context.Context, regionID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE region_id = $1 AND role = $2`, regionID, string(shared.RoleSalesperson))
	if err != nil {
		return nil, fmt.Errorf("users: team: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("users: team: %w", err)
	}
	return ids, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u    User
		role string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &role, &u.RegionID, &u.PasswordHash, &u.Active, &u.CreatedAt)
	u.Role = shared.Role(role)
	return u, err
}

func mapWriteError(err error) error {
	switch {
	case db.IsUniqueViolation(err, "users_username_key"):
		return shared.BadRequest("username already exists")
	case db.IsUniqueViolation(err, "users_email_key"):
		return shared.BadRequest("email already exists")
	case db.IsUniqueViolation(err, ""):
		return shared.BadRequest("user already exists")
	}
	return fmt.Errorf("users: write: %w", err)
}
