package repositories

import (
	"context"
)

// UnitOfWork runs a function with all repository calls inside it sharing
// one transaction. Used to make consume-token-then-mutate-user sequences
// atomic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
