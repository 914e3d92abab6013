package attendance

import "context"

type StoreAPI interface {
	EmployeeIDByCode(ctx context.Context, code string) (string, error)
	// Upsert creates or replaces the record keyed by (employee, date).
	Upsert(ctx context.Context, r Record) (string, error)
	Get(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Record, error)
}
