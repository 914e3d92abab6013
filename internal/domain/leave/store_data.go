package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dayflow/internal/platform/querier"
)

const requestColumns = `
    r.id, r.employee_id, u.employee_code, u.first_name || ' ' || u.last_name,
    r.leave_type, r.start_date, r.end_date, r.days, r.reason, r.status, r.applied_on,
    r.reviewed_by, CASE WHEN rv.id IS NULL THEN NULL ELSE rv.first_name || ' ' || rv.last_name END,
    r.reviewed_on, r.comments`

const requestFrom = `
    FROM leave_requests r
    JOIN users u ON u.id = r.employee_id
    LEFT JOIN users rv ON rv.id = r.reviewed_by`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	var category, status string
	err := row.Scan(&r.ID, &r.EmployeeID, &r.EmployeeCode, &r.EmployeeName,
		&category, &r.StartDate, &r.EndDate, &r.Days, &r.Reason, &status, &r.AppliedOn,
		&r.ReviewerID, &r.ReviewerName, &r.ReviewedOn, &r.Comments)
	if querier.IsMissing(err) {
		return Request{}, ErrRequestNotFound
	}
	r.Category = Category(category)
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

func (s *Store) CreateRequest(ctx context.Context, r Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, r.EmployeeID, string(r.Category), r.StartDate, r.EndDate, r.Days, r.Reason, string(r.Status)).Scan(&id)
	return id, err
}

func (s *Store) GetRequest(ctx context.Context, id string) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, "SELECT"+requestColumns+requestFrom+" WHERE r.id = $1", id))
}

func (s *Store) LockRequest(ctx context.Context, id string) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, "SELECT"+requestColumns+requestFrom+" WHERE r.id = $1 FOR UPDATE OF r", id))
}

func (s *Store) UpdateDecision(ctx context.Context, id string, status Status, reviewerID string, comments *string, reviewedOn time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $2, reviewed_by = $3, reviewed_on = $4, comments = COALESCE($5, comments)
    WHERE id = $1
  `, id, string(status), reviewerID, reviewedOn, comments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *Store) UpdateComments(ctx context.Context, id string, comments *string) error {
	_, err := s.DB.Exec(ctx, "UPDATE leave_requests SET comments = COALESCE($2, comments) WHERE id = $1", id, comments)
	return err
}

func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *Store) ListRequests(ctx context.Context, filter Filter) ([]Request, error) {
	query := "SELECT" + requestColumns + requestFrom + " WHERE 1=1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += " ORDER BY r.applied_on DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
