package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worklog/internal/domain/auth"
	"worklog/internal/platform/config"
)

// Seed ensures the initial admin account exists. It is safe to run on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(strings.ToLower(cfg.SeedAdminEmail))
	if email == "" {
		return nil
	}
	if strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required when SEED_ADMIN_EMAIL is set")
	}

	var existing string
	err := pool.QueryRow(ctx, "SELECT id FROM profiles WHERE email = $1", email).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO profiles (email, password_hash, full_name, role, is_active)
    VALUES ($1, $2, $3, $4, true)
  `, email, hash, cfg.SeedAdminName, auth.RoleAdmin)
	return err
}
