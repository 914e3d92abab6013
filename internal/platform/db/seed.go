package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"dayflow/internal/domain/auth"
	"dayflow/internal/platform/config"
	"dayflow/internal/platform/querier"
)

const seedAdminCode = "ADM001"

// Seed makes sure an admin account with a leave ledger exists.
func Seed(ctx context.Context, pool *Pool, cfg config.Config) error {
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *Pool, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return querier.WithTx(ctx, pool, func(q querier.Querier) error {
		if err := q.QueryRow(ctx, `
      INSERT INTO users (email, password_hash, employee_code, first_name, last_name, role, department, position)
      VALUES ($1,$2,$3,'System','Admin',$4,'Administration','Administrator')
      RETURNING id
    `, email, hash, seedAdminCode, auth.RoleAdmin).Scan(&id); err != nil {
			return err
		}
		_, err := q.Exec(ctx, "INSERT INTO leave_balances (employee_id) VALUES ($1) ON CONFLICT DO NOTHING", id)
		return err
	})
}
