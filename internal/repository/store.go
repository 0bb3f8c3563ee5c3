package repository

import (
	"context"

	"github.com/artesania/feria-api/internal/domain"
)

// Store persists the aggregate document. Each Load/Save pair is the unit
// of consistency; there is no isolation between concurrent callers (the
// deployment assumes a single effective writer, last write wins).
type Store interface {
	// Load reads the persisted aggregate. A backend with no prior state
	// initializes and persists an empty aggregate before returning it.
	// Unreadable or corrupt state fails with domain.ErrStorage.
	Load(ctx context.Context) (domain.Aggregate, error)

	// Save fully overwrites the persisted state. A failed save must not
	// leave a truncated or mixed-version document behind.
	Save(ctx context.Context, agg domain.Aggregate) error
}
