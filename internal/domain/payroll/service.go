package payroll

import (
	"context"
	"errors"
	"strings"
	"time"

	"dayflow/internal/domain/auth"
)

type Service struct {
	store    StoreAPI
	currency string
	now      func() time.Time
}

func NewService(store StoreAPI, currency string) *Service {
	if currency == "" {
		currency = "USD"
	}
	return &Service{store: store, currency: currency, now: time.Now}
}

// List returns payroll records, newest period first. Employees only see their
// own; an unknown employee code yields an empty list.
func (s *Service) List(ctx context.Context, actor auth.Actor, employeeCode string, month, year int) ([]Record, error) {
	filter := Filter{Month: month, Year: year}
	switch {
	case !auth.Can(actor, auth.ActionPayrollRead, auth.Target{}):
		filter.EmployeeID = actor.UserID
	case strings.TrimSpace(employeeCode) != "":
		id, err := s.store.EmployeeIDByCode(ctx, strings.TrimSpace(employeeCode))
		if errors.Is(err, ErrEmployeeNotFound) {
			return []Record{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.EmployeeID = id
	}
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (Record, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !auth.Can(actor, auth.ActionPayrollRead, auth.Target{OwnerID: r.EmployeeID}) {
		return Record{}, ErrForbidden
	}
	return r, nil
}

// Upsert creates or replaces the record for the employee's month and year.
func (s *Service) Upsert(ctx context.Context, actor auth.Actor, in UpsertInput) (Record, error) {
	if !auth.Can(actor, auth.ActionPayrollWrite, auth.Target{}) {
		return Record{}, ErrForbidden
	}
	if err := validatePeriod(in.Month, in.Year); err != nil {
		return Record{}, err
	}
	allowances, deductions := orZero(in.Allowances), orZero(in.Deductions)
	if err := validateAmounts(in.BasicSalary, allowances, deductions); err != nil {
		return Record{}, err
	}
	employeeID, err := s.store.EmployeeIDByCode(ctx, strings.TrimSpace(in.EmployeeCode))
	if err != nil {
		return Record{}, err
	}

	id, err := s.store.Upsert(ctx, Record{
		EmployeeID:  employeeID,
		Month:       in.Month,
		Year:        in.Year,
		BasicSalary: in.BasicSalary,
		Allowances:  allowances,
		Deductions:  deductions,
		NetSalary:   NetSalary(in.BasicSalary, allowances, deductions),
	})
	if err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, id)
}

// Update merges in into the record. Net salary is recomputed whenever a salary
// component changes; marking a record paid stamps paidOn if none is given.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, in UpdateInput) (Record, error) {
	if !auth.Can(actor, auth.ActionPayrollWrite, auth.Target{}) {
		return Record{}, ErrForbidden
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if in.Month != nil {
		r.Month = *in.Month
	}
	if in.Year != nil {
		r.Year = *in.Year
	}
	if err := validatePeriod(r.Month, r.Year); err != nil {
		return Record{}, err
	}
	if in.BasicSalary != nil {
		r.BasicSalary = *in.BasicSalary
	}
	if in.Allowances != nil {
		r.Allowances = *in.Allowances
	}
	if in.Deductions != nil {
		r.Deductions = *in.Deductions
	}
	if in.touchesAmounts() {
		if err := validateAmounts(r.BasicSalary, r.Allowances, r.Deductions); err != nil {
			return Record{}, err
		}
		r.NetSalary = NetSalary(r.BasicSalary, r.Allowances, r.Deductions)
	}
	if in.Status != nil {
		status, ok := ParseStatus(strings.TrimSpace(*in.Status))
		if !ok {
			return Record{}, ErrInvalidStatus
		}
		r.Status = status
	}
	if in.PaidOn != nil {
		paidOn := *in.PaidOn
		r.PaidOn = &paidOn
	}
	if r.Status == StatusPaid && r.PaidOn == nil {
		now := s.now().UTC()
		r.PaidOn = &now
	}

	if err := s.store.Update(ctx, r); err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) (Record, error) {
	if !auth.Can(actor, auth.ActionPayrollDelete, auth.Target{}) {
		return Record{}, ErrForbidden
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return r, s.store.Delete(ctx, id)
}

// Payslip renders the record as a PDF for its owner or a privileged reader.
func (s *Service) Payslip(ctx context.Context, actor auth.Actor, id string) (Record, []byte, error) {
	r, err := s.Get(ctx, actor, id)
	if err != nil {
		return Record{}, nil, err
	}
	doc, err := RenderPayslip(r, s.currency)
	if err != nil {
		return Record{}, nil, err
	}
	return r, doc, nil
}
