package employees

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	// Create inserts the employee and their default leave ledger atomically.
	Create(ctx context.Context, emp Employee, passwordHash string) (Employee, error)
	Update(ctx context.Context, emp Employee, passwordHash *string) error
	Delete(ctx context.Context, id string) error
}
