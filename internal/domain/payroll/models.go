package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Record struct {
	ID           string
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Month        int
	Year         int
	BasicSalary  decimal.Decimal
	Allowances   decimal.Decimal
	Deductions   decimal.Decimal
	NetSalary    decimal.Decimal
	Status       Status
	PaidOn       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows a listing; zero fields do not filter.
type Filter struct {
	EmployeeID string
	Month      int
	Year       int
}

type UpsertInput struct {
	EmployeeCode string
	Month        int
	Year         int
	BasicSalary  decimal.Decimal
	Allowances   *decimal.Decimal
	Deductions   *decimal.Decimal
}

// UpdateInput holds the fields to change; nil means unchanged.
type UpdateInput struct {
	Month       *int
	Year        *int
	BasicSalary *decimal.Decimal
	Allowances  *decimal.Decimal
	Deductions  *decimal.Decimal
	Status      *string
	PaidOn      *time.Time
}

func (in UpdateInput) touchesAmounts() bool {
	return in.BasicSalary != nil || in.Allowances != nil || in.Deductions != nil
}
