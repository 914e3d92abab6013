package leave

import (
	"context"
	"fmt"
)

func ledgerColumns(c Category) (allotted, used string, err error) {
	switch c {
	case CategoryAnnual:
		return "annual", "used_annual", nil
	case CategorySick:
		return "sick", "used_sick", nil
	case CategoryPersonal:
		return "personal", "used_personal", nil
	}
	return "", "", fmt.Errorf("%w: %s", ErrUntrackedCategory, c)
}

func (s *Store) GetOrCreateBalance(ctx context.Context, employeeID string) (Balance, error) {
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, annual, sick, personal)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id) DO NOTHING
  `, employeeID, DefaultAnnual, DefaultSick, DefaultPersonal); err != nil {
		return Balance{}, err
	}

	var b Balance
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, annual, sick, personal, used_annual, used_sick, used_personal
    FROM leave_balances
    WHERE employee_id = $1
  `, employeeID).Scan(&b.EmployeeID, &b.Annual, &b.Sick, &b.Personal, &b.UsedAnnual, &b.UsedSick, &b.UsedPersonal)
	return b, err
}

func (s *Store) ReserveDays(ctx context.Context, employeeID string, c Category, days int, guard bool) error {
	allotted, used, err := ledgerColumns(c)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE leave_balances SET %[1]s = %[1]s + $2, updated_at = now() WHERE employee_id = $1", used)
	if guard {
		query += fmt.Sprintf(" AND %s - %s >= $2", allotted, used)
	}
	tag, err := s.DB.Exec(ctx, query, employeeID, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if guard {
			return insufficient(c)
		}
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ReleaseDays(ctx context.Context, employeeID string, c Category, days int) error {
	_, used, err := ledgerColumns(c)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, fmt.Sprintf(
		"UPDATE leave_balances SET %[1]s = GREATEST(%[1]s - $2, 0), updated_at = now() WHERE employee_id = $1", used,
	), employeeID, days)
	return err
}
