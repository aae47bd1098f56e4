// Package bootstrap creates the schema and the first administrator.
package bootstrap

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

//go:embed schema.sql
var Schema string

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@pedizone.com"
	defaultAdminName     = "PediZone Admin"
	sampleRegionName     = "Istanbul Anatolia"
	sampleRegionDesc     = "Istanbul Anatolian side"
)

// Result describes what Init did.
type Result struct {
	Initialized   bool
	AdminUsername string
	AdminPassword string
}

// Service applies the schema and seeds the administrator.
type Service struct {
	conn     db.TxBeginner
	hashCost int
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds a Service. A hashCost of zero uses bcrypt.DefaultCost.
func NewService(conn db.TxBeginner, hashCost int, logger *slog.Logger) *Service {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{conn: conn, hashCost: hashCost, logger: logger, now: time.Now}
}

// Migrate applies the idempotent DDL.
func (s *Service) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, s.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, Schema); err != nil {
			return fmt.Errorf("bootstrap: apply schema: %w", err)
		}
		return nil
	})
}

// Init applies the schema and, when no administrator exists, creates the
// default admin and a sample region in the same transaction.
func (s *Service) Init(ctx context.Context) (Result, error) {
	var res Result
	err := db.WithTx(ctx, s.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, Schema); err != nil {
			return fmt.Errorf("bootstrap: apply schema: %w", err)
		}
		exists, err := adminExists(ctx, tx)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), s.hashCost)
		if err != nil {
			return fmt.Errorf("bootstrap: hash password: %w", err)
		}
		now := s.now().UTC()
		if _, err := tx.Exec(ctx, `INSERT INTO users (id, username, email, full_name, role, region_id, password_hash, active, created_at)
			VALUES ($1, $2, $3, $4, $5, NULL, $6, TRUE, $7)`,
			uuid.NewString(), DefaultAdminUsername, DefaultAdminEmail, defaultAdminName, string(shared.RoleAdmin), string(hash), now); err != nil {
			if db.IsUniqueViolation(err, "") {
				return shared.BadRequest("username %q is taken by a non-admin account", DefaultAdminUsername)
			}
			return fmt.Errorf("bootstrap: insert admin: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO regions (id, name, description, manager_id, created_at) VALUES ($1, $2, $3, NULL, $4)`,
			uuid.NewString(), sampleRegionName, sampleRegionDesc, now); err != nil {
			return fmt.Errorf("bootstrap: insert region: %w", err)
		}
		res = Result{Initialized: true, AdminUsername: DefaultAdminUsername, AdminPassword: DefaultAdminPassword}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if s.logger != nil {
		s.logger.Info("bootstrap init", slog.Bool("initialized", res.Initialized))
	}
	return res, nil
}

// ResetAdminPassword sets the password of the default admin account.
func (s *Service) ResetAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return shared.BadRequest("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash password: %w", err)
	}
	return db.WithTx(ctx, s.conn, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET password_hash = $2, active = TRUE WHERE username = $1`, DefaultAdminUsername, string(hash))
		if err != nil {
			return fmt.Errorf("bootstrap: reset password: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return shared.NotFound("user %q not found", DefaultAdminUsername)
		}
		return nil
	})
}

func adminExists(ctx context.Context, tx pgx.Tx) (bool, error) {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE role = $1 LIMIT 1`, string(shared.RoleAdmin)).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bootstrap: find admin: %w", err)
	}
	return true, nil
}
