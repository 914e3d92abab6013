package leave

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryAnnual   Category = "annual"
	CategorySick     Category = "sick"
	CategoryPersonal Category = "personal"
	CategoryUnpaid   Category = "unpaid"
)

var Categories = []Category{CategoryAnnual, CategorySick, CategoryPersonal, CategoryUnpaid}

func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CategoryAnnual, CategorySick, CategoryPersonal, CategoryUnpaid:
		return c, true
	}
	return "", false
}

// Tracked reports whether the category draws on the balance ledger.
func (c Category) Tracked() bool {
	return c == CategoryAnnual || c == CategorySick || c == CategoryPersonal
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	}
	return "", false
}

// Terminal reports whether no further decision may be applied.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Request struct {
	ID           string
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Category     Category
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	Reason       string
	Status       Status
	AppliedOn    time.Time
	ReviewerID   *string
	ReviewerName *string
	ReviewedOn   *time.Time
	Comments     *string
}

type Filter struct {
	EmployeeID string
	Status     Status
}

type CreateInput struct {
	// EmployeeCode targets another employee; honoured for privileged actors only.
	EmployeeCode string
	Category     string
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
}

type DecideInput struct {
	Status   string
	Comments *string
}
