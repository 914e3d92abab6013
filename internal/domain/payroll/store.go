package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"dayflow/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// Amounts cross the driver as text so no precision is lost to float64.
const recordSelect = `
    SELECT p.id, p.employee_id, u.employee_code, u.first_name || ' ' || u.last_name,
           p.month, p.year, p.basic_salary::text, p.allowances::text, p.deductions::text,
           p.net_salary::text, p.status, p.paid_on, p.created_at, p.updated_at
    FROM payroll_records p
    JOIN users u ON u.id = p.employee_id`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	var basic, allowances, deductions, net, status string
	err := row.Scan(&r.ID, &r.EmployeeID, &r.EmployeeCode, &r.EmployeeName,
		&r.Month, &r.Year, &basic, &allowances, &deductions, &net,
		&status, &r.PaidOn, &r.CreatedAt, &r.UpdatedAt)
	if querier.IsMissing(err) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, err
	}
	r.Status = Status(status)
	for _, field := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{basic, &r.BasicSalary},
		{allowances, &r.Allowances},
		{deductions, &r.Deductions},
		{net, &r.NetSalary},
	} {
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return Record{}, fmt.Errorf("parse payroll amount %q: %w", field.raw, err)
		}
		*field.dst = value
	}
	return r, nil
}

func (s *Store) EmployeeIDByCode(ctx context.Context, code string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM users WHERE employee_code = $1", code).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmployeeNotFound
	}
	return id, err
}

func (s *Store) Upsert(ctx context.Context, r Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records (employee_id, month, year, basic_salary, allowances, deductions, net_salary)
    VALUES ($1,$2,$3,$4::numeric,$5::numeric,$6::numeric,$7::numeric)
    ON CONFLICT (employee_id, month, year) DO UPDATE SET
      basic_salary = EXCLUDED.basic_salary,
      allowances = EXCLUDED.allowances,
      deductions = EXCLUDED.deductions,
      net_salary = EXCLUDED.net_salary,
      updated_at = now()
    RETURNING id
  `, r.EmployeeID, r.Month, r.Year, r.BasicSalary.String(), r.Allowances.String(),
		r.Deductions.String(), r.NetSalary.String()).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, recordSelect+" WHERE p.id = $1", id))
}

func (s *Store) Update(ctx context.Context, r Record) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET month = $2, year = $3, basic_salary = $4::numeric, allowances = $5::numeric,
        deductions = $6::numeric, net_salary = $7::numeric, status = $8, paid_on = $9,
        updated_at = now()
    WHERE id = $1
  `, r.ID, r.Month, r.Year, r.BasicSalary.String(), r.Allowances.String(),
		r.Deductions.String(), r.NetSalary.String(), string(r.Status), r.PaidOn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePeriod
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM payroll_records WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	query, args := buildListQuery(filter)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func buildListQuery(filter Filter) (string, []any) {
	var conds []string
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conds = append(conds, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		conds = append(conds, fmt.Sprintf("p.month = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conds = append(conds, fmt.Sprintf("p.year = $%d", len(args)))
	}
	query := recordSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY p.year DESC, p.month DESC, u.employee_code", args
}
