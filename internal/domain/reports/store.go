package reports

import (
	"context"
	"time"

	"dayflow/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) CountEmployees(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM users WHERE role = 'employee'")
}

func (s *Store) CountPresent(ctx context.Context, day time.Time) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM attendance_records WHERE date = $1 AND status = 'present'", day)
}

func (s *Store) CountOnLeave(ctx context.Context, day time.Time) (int, error) {
	return s.count(ctx, `
    SELECT COUNT(1) FROM leave_requests
    WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1
  `, day)
}

func (s *Store) CountPendingLeave(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = 'pending'")
}
