package service

import (
	"context"

	"github.com/artesania/feria-api/internal/domain"
)

// Error kinds surfaced by the services. Engine errors propagate through
// the application workflow unchanged, so callers can always tell a
// capacity failure from a validation one with errors.Is.
var (
	ErrNotFound   = domain.ErrNotFound
	ErrValidation = domain.ErrValidation
	ErrCapacity   = domain.ErrCapacity
	ErrStorage    = domain.ErrStorage
)

// Store is the slice of the repository the services require. Each
// operation is one Load, in-memory mutation, one Save.
type Store interface {
	Load(ctx context.Context) (domain.Aggregate, error)
	Save(ctx context.Context, agg domain.Aggregate) error
}
