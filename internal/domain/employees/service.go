package employees

import (
	"context"
	"strings"
	"time"

	"dayflow/internal/domain/auth"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) List(ctx context.Context, actor auth.Actor) ([]Employee, error) {
	if !auth.Can(actor, auth.ActionEmployeesList, auth.Target{}) {
		return nil, ErrForbidden
	}
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Employee{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (Employee, error) {
	if !auth.Can(actor, auth.ActionEmployeesRead, auth.Target{OwnerID: id}) {
		return Employee{}, ErrForbidden
	}
	return s.store.Get(ctx, id)
}

// Register creates an account without an acting user, as self-signup does.
// The account always gets the employee role.
func (s *Service) Register(ctx context.Context, in CreateInput) (Employee, error) {
	in.Role = auth.RoleEmployee
	in.Department = ""
	in.Position = ""
	return s.create(ctx, in)
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, in CreateInput) (Employee, error) {
	if !auth.Can(actor, auth.ActionEmployeesCreate, auth.Target{}) {
		return Employee{}, ErrForbidden
	}
	return s.create(ctx, in)
}

func (s *Service) create(ctx context.Context, in CreateInput) (Employee, error) {
	emp := Employee{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		EmployeeCode: strings.TrimSpace(in.EmployeeCode),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         strings.ToLower(strings.TrimSpace(in.Role)),
		Department:   strings.TrimSpace(in.Department),
		Position:     strings.TrimSpace(in.Position),
		Phone:        trimmed(in.Phone),
		Address:      trimmed(in.Address),
		JoinDate:     s.now().UTC().Truncate(24 * time.Hour),
	}
	if emp.Email == "" || emp.EmployeeCode == "" || emp.FirstName == "" || emp.LastName == "" {
		return Employee{}, ErrMissingIdentity
	}
	if emp.Role == "" {
		emp.Role = auth.RoleEmployee
	}
	if !auth.ValidRole(emp.Role) {
		return Employee{}, ErrInvalidRole
	}
	if len(in.Password) < MinPasswordLength {
		return Employee{}, ErrWeakPassword
	}
	if emp.Department == "" {
		emp.Department = DefaultDepartment
	}
	if emp.Position == "" {
		emp.Position = DefaultPosition
	}
	if in.JoinDate != nil && !in.JoinDate.IsZero() {
		emp.JoinDate = *in.JoinDate
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Employee{}, err
	}
	return s.store.Create(ctx, emp, hash)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, in UpdateInput) (Employee, error) {
	if !auth.Can(actor, auth.ActionEmployeesUpdate, auth.Target{OwnerID: id}) {
		return Employee{}, ErrForbidden
	}
	if in.TouchesAssignment() && !auth.Can(actor, auth.ActionEmployeesAssign, auth.Target{OwnerID: id}) {
		return Employee{}, ErrForbidden
	}
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if err := ApplyUpdate(&emp, in); err != nil {
		return Employee{}, err
	}

	var hash *string
	if in.Password != nil {
		if len(*in.Password) < MinPasswordLength {
			return Employee{}, ErrWeakPassword
		}
		h, err := auth.HashPassword(*in.Password)
		if err != nil {
			return Employee{}, err
		}
		hash = &h
	}
	if err := s.store.Update(ctx, emp, hash); err != nil {
		return Employee{}, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) (Employee, error) {
	if !auth.Can(actor, auth.ActionEmployeesDelete, auth.Target{OwnerID: id}) {
		return Employee{}, ErrForbidden
	}
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	return emp, s.store.Delete(ctx, id)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	return optional(*value)
}
