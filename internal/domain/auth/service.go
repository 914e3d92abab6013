package auth

import (
	"context"
	"errors"
	"time"

	"dayflow/internal/apperrors"
)

var ErrInvalidCredentials = apperrors.New(apperrors.ErrUnauthorized, "invalid credentials")

type Service struct {
	Store  CredentialStore
	Secret string
	TTL    time.Duration
}

func NewService(store CredentialStore, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TTL: ttl}
}

// Session is the result of a successful login.
type Session struct {
	Token        string
	UserID       string
	EmployeeCode string
	Role         string
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	creds, err := s.Store.CredentialsByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.Issue(creds.UserID, creds.EmployeeCode, creds.Role)
}

// Issue signs a token for an account that has already been authenticated,
// such as one created moments ago by signup.
func (s *Service) Issue(userID, employeeCode, role string) (Session, error) {
	if userID == "" || !ValidRole(role) {
		return Session{}, errors.New("cannot issue token for incomplete account")
	}
	token, err := GenerateToken(s.Secret, Claims{UserID: userID, Role: role, EmployeeCode: employeeCode}, s.TTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: userID, EmployeeCode: employeeCode, Role: role}, nil
}
