package leave

import (
	"context"
	"errors"

	"dayflow/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(StoreAPI) error) error {
	beginner, ok := s.DB.(querier.Beginner)
	if !ok {
		return errors.New("leave store: database handle cannot begin transactions")
	}
	return querier.WithTx(ctx, beginner, func(q querier.Querier) error {
		return fn(&Store{DB: q})
	})
}
