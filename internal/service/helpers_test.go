package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artesania/feria-api/internal/domain"
	"github.com/artesania/feria-api/internal/repository/filestore"
)

// newStore backs the services with a real file store in a temp dir, so
// every assertion runs against persisted state.
func newStore(t *testing.T) *filestore.Store {
	t.Helper()

	return filestore.New(filepath.Join(t.TempDir(), "ferias.json"))
}

func mustCreateFair(t *testing.T, svc *FairService, name string, categories ...domain.Category) domain.Fair {
	t.Helper()

	fair, err := svc.CreateFair(context.Background(), domain.Fair{
		Name:       name,
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-05",
		Categories: categories,
	})
	require.NoError(t, err)

	return fair
}

func loadAggregate(t *testing.T, store Store) domain.Aggregate {
	t.Helper()

	agg, err := store.Load(context.Background())
	require.NoError(t, err)

	return agg
}

func ptr[T any](v T) *T {
	return &v
}
