package leave

import (
	"context"
	"time"
)

type StoreAPI interface {
	// WithinTx runs fn against a store bound to a single transaction.
	WithinTx(ctx context.Context, fn func(StoreAPI) error) error

	EmployeeIDByCode(ctx context.Context, code string) (string, error)

	GetOrCreateBalance(ctx context.Context, employeeID string) (Balance, error)
	// ReserveDays adds days to the used counter. With guard set the update only
	// applies while enough balance remains, and ErrInsufficientBalance is returned otherwise.
	ReserveDays(ctx context.Context, employeeID string, c Category, days int, guard bool) error
	ReleaseDays(ctx context.Context, employeeID string, c Category, days int) error

	CreateRequest(ctx context.Context, r Request) (string, error)
	GetRequest(ctx context.Context, id string) (Request, error)
	// LockRequest reads a request and holds a row lock until the transaction ends.
	LockRequest(ctx context.Context, id string) (Request, error)
	UpdateDecision(ctx context.Context, id string, status Status, reviewerID string, comments *string, reviewedOn time.Time) error
	UpdateComments(ctx context.Context, id string, comments *string) error
	DeleteRequest(ctx context.Context, id string) error
	ListRequests(ctx context.Context, filter Filter) ([]Request, error)
}
