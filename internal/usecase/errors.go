package usecase

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// storeFailure wraps a repository error as ErrStoreUnavailable while keeping
// the original cause (including context deadline errors) in the chain.
func storeFailure(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: request timed out: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
