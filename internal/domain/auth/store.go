package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"dayflow/internal/platform/querier"
)

// Credentials is the login-relevant slice of an account.
type Credentials struct {
	UserID       string
	EmployeeCode string
	Role         string
	PasswordHash string
}

type CredentialStore interface {
	CredentialsByEmail(ctx context.Context, email string) (Credentials, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	var out Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_code, role, password_hash
    FROM users
    WHERE email = $1
  `, strings.ToLower(strings.TrimSpace(email))).Scan(&out.UserID, &out.EmployeeCode, &out.Role, &out.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrInvalidCredentials
	}
	return out, err
}
