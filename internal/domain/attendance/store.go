package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dayflow/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordSelect = `
    SELECT a.id, a.employee_id, u.employee_code, u.first_name || ' ' || u.last_name,
           a.date, a.check_in, a.check_out, a.status, a.work_hours
    FROM attendance_records a
    JOIN users u ON u.id = a.employee_id`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	var status string
	err := row.Scan(&r.ID, &r.EmployeeID, &r.EmployeeCode, &r.EmployeeName,
		&r.Date, &r.CheckIn, &r.CheckOut, &status, &r.WorkHours)
	if querier.IsMissing(err) {
		return Record{}, ErrRecordNotFound
	}
	r.Status = Status(status)
	return r, err
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
    INSERT INTO attendance_records (employee_id, date, check_in, check_out, status, work_hours)
    VALUES ($1,$2,$3,$4,$5,$6)
    ON CONFLICT (employee_id, date) DO UPDATE SET
      check_in = EXCLUDED.check_in,
      check_out = EXCLUDED.check_out,
      status = EXCLUDED.status,
      work_hours = EXCLUDED.work_hours,
      updated_at = now()
    RETURNING id
  `, r.EmployeeID, r.Date, r.CheckIn, r.CheckOut, string(r.Status), r.WorkHours).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, recordSelect+" WHERE a.id = $1", id))
}

func (s *Store) Update(ctx context.Context, r Record) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records
    SET date = $2, check_in = $3, check_out = $4, status = $5, work_hours = $6, updated_at = now()
    WHERE id = $1
  `, r.ID, r.Date, r.CheckIn, r.CheckOut, string(r.Status), r.WorkHours)
	if err != nil {
		if querier.IsUniqueViolation(err) {
			return ErrDuplicateDay
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM attendance_records WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := recordSelect + " WHERE 1=1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND a.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}
	query += " ORDER BY a.date DESC, u.employee_code"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
