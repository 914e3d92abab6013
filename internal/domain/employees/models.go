package employees

import (
	"time"

	"dayflow/internal/apperrors"
)

type Employee struct {
	ID           string
	Email        string
	EmployeeCode string
	FirstName    string
	LastName     string
	Role         string
	Department   string
	Position     string
	Phone        *string
	Address      *string
	Avatar       *string
	JoinDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) Name() string {
	return e.FirstName + " " + e.LastName
}

type CreateInput struct {
	Email        string
	Password     string
	EmployeeCode string
	FirstName    string
	LastName     string
	Role         string
	Department   string
	Position     string
	Phone        *string
	Address      *string
	JoinDate     *time.Time
}

// UpdateInput holds the fields to change; nil means unchanged.
type UpdateInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Address    *string
	Avatar     *string
	Department *string
	Position   *string
	Role       *string
	Password   *string
}

const (
	DefaultDepartment = "Unassigned"
	DefaultPosition   = "New Employee"
	MinPasswordLength = 6
)

var (
	ErrNotFound        = apperrors.New(apperrors.ErrNotFound, "employee not found")
	ErrDuplicate       = apperrors.New(apperrors.ErrDuplicate, "an employee with this email or employee id already exists")
	ErrForbidden       = apperrors.New(apperrors.ErrForbidden, "not allowed to access this employee")
	ErrInvalidRole     = apperrors.New(apperrors.ErrValidation, "role must be one of employee, hr, admin")
	ErrWeakPassword    = apperrors.New(apperrors.ErrValidation, "password must be at least 6 characters")
	ErrMissingIdentity = apperrors.New(apperrors.ErrValidation, "email, employee id, first name and last name are required")
)
