package employees

import (
	"context"

	"github.com/jackc/pgx/v5"

	"dayflow/internal/domain/leave"
	"dayflow/internal/platform/querier"
)

type Store struct {
	DB querier.Beginner
}

func NewStore(db querier.Beginner) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, email, employee_code, first_name, last_name, role, department, position,
    phone, address, avatar, join_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Email, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Role,
		&e.Department, &e.Position, &e.Phone, &e.Address, &e.Avatar, &e.JoinDate, &e.CreatedAt, &e.UpdatedAt)
	if querier.IsMissing(err) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+employeeColumns+" FROM users ORDER BY employee_code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM users WHERE id = $1", id))
}

func (s *Store) Create(ctx context.Context, emp Employee, passwordHash string) (Employee, error) {
	var created Employee
	err := querier.WithTx(ctx, s.DB, func(q querier.Querier) error {
		var err error
		created, err = scanEmployee(q.QueryRow(ctx, `
      INSERT INTO users (email, password_hash, employee_code, first_name, last_name, role, department, position, phone, address, join_date)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
      RETURNING`+employeeColumns,
			emp.Email, passwordHash, emp.EmployeeCode, emp.FirstName, emp.LastName, emp.Role,
			emp.Department, emp.Position, emp.Phone, emp.Address, emp.JoinDate))
		if err != nil {
			return err
		}
		_, err = leave.NewStore(q).GetOrCreateBalance(ctx, created.ID)
		return err
	})
	if querier.IsUniqueViolation(err) {
		return Employee{}, ErrDuplicate
	}
	return created, err
}

func (s *Store) Update(ctx context.Context, emp Employee, passwordHash *string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE users
    SET first_name = $2, last_name = $3, role = $4, department = $5, position = $6,
        phone = $7, address = $8, avatar = $9,
        password_hash = COALESCE($10, password_hash), updated_at = now()
    WHERE id = $1
  `, emp.ID, emp.FirstName, emp.LastName, emp.Role, emp.Department, emp.Position,
		emp.Phone, emp.Address, emp.Avatar, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
