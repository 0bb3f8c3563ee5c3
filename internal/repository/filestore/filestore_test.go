package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesania/feria-api/internal/domain"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("initializes an empty document on first load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ferias.json")
		store := New(path)

		agg, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, agg.Fairs)
		assert.Empty(t, agg.Artisans)
		assert.Empty(t, agg.Applications)
		assert.Empty(t, agg.Users)

		// The document is persisted immediately.
		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "nested", "ferias.json")
		store := New(path)

		_, err := store.Load(ctx)
		require.NoError(t, err)

		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("defaults collections missing from the document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ferias.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fairs": []}`), 0o644))

		agg, err := New(path).Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, agg.Artisans)
		assert.NotNil(t, agg.Applications)
		assert.NotNil(t, agg.Users)
	})

	t.Run("corrupt document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ferias.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fairs": [`), 0o644))

		_, err := New(path).Load(ctx)
		require.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		dir := t.TempDir()
		store := New(filepath.Join(dir, "ferias.json"))

		agg := domain.Empty()
		agg.Fairs = append(agg.Fairs, domain.Fair{
			ID:         1,
			Name:       "Spring Fair",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-05",
			Categories: []domain.Category{{Name: "pottery", Quota: 3}},
			TotalQuota: 3,
			Occupied:   1,
		})
		agg.Artisans = append(agg.Artisans, domain.Artisan{ID: 1, Name: "Ana", Category: "pottery", FairID: 1})
		require.NoError(t, store.Save(ctx, agg))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, agg, loaded)
	})

	t.Run("persists password hashes and counters", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ferias.json")
		store := New(path)

		agg := domain.Empty()
		agg.Users = append(agg.Users, domain.User{
			ID:            1,
			Email:         "ana@example.com",
			Password:      "$2a$10$hash",
			Name:          "Ana",
			Role:          domain.RoleUser,
			FavoriteFairs: []int{},
		})
		agg.Counters = domain.Counters{Fair: 4, Artisan: 9, User: 1}
		require.NoError(t, store.Save(ctx, agg))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded.Users, 1)
		assert.Equal(t, "$2a$10$hash", loaded.Users[0].Password)
		assert.Equal(t, agg.Counters, loaded.Counters)

		// The hash lives in the document itself, not only in memory.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "$2a$10$hash")
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		store := New(filepath.Join(dir, "ferias.json"))

		require.NoError(t, store.Save(ctx, domain.Empty()))
		require.NoError(t, store.Save(ctx, domain.Empty()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "ferias.json", entries[0].Name())
	})

	t.Run("overwrites atomically", func(t *testing.T) {
		dir := t.TempDir()
		store := New(filepath.Join(dir, "ferias.json"))

		first := domain.Empty()
		first.Fairs = append(first.Fairs, domain.Fair{ID: 1, Name: "Spring Fair", Categories: []domain.Category{}})
		require.NoError(t, store.Save(ctx, first))

		second := domain.Empty()
		second.Fairs = append(second.Fairs, domain.Fair{ID: 2, Name: "Winter Fair", Categories: []domain.Category{}})
		require.NoError(t, store.Save(ctx, second))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded.Fairs, 1)
		assert.Equal(t, 2, loaded.Fairs[0].ID)
	})
}
