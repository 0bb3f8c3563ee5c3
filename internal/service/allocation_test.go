package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesania/feria-api/internal/domain"
)

func TestAllocate(t *testing.T) {
	ctx := context.Background()

	t.Run("admits until the category quota is reached", func(t *testing.T) {
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		fair := mustCreateFair(t, fairs, "Spring Market",
			domain.Category{Name: "ceramics", Quota: 2},
			domain.Category{Name: "textiles", Quota: 1},
		)

		first, err := alloc.Allocate(ctx, fair.ID, "ceramics", "  Ana  ", "bowls")
		require.NoError(t, err)
		assert.Equal(t, 1, first.ID)
		assert.Equal(t, "Ana", first.Name)

		second, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Beto", "vases")
		require.NoError(t, err)
		assert.Equal(t, 2, second.ID)

		_, err = alloc.Allocate(ctx, fair.ID, "ceramics", "Carla", "plates")
		require.ErrorIs(t, err, domain.ErrCapacity)

		// The textiles quota is untouched by ceramics allocations.
		_, err = alloc.Allocate(ctx, fair.ID, "textiles", "Diana", "scarves")
		require.NoError(t, err)

		agg := loadAggregate(t, store)
		assert.Equal(t, 3, agg.FindFair(fair.ID).Occupied)
	})

	t.Run("rejects a category the fair does not offer", func(t *testing.T) {
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		_, err := alloc.Allocate(ctx, fair.ID, "jewelry", "Ana", "")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("treats a zero quota as full", func(t *testing.T) {
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 0})

		_, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Ana", "")
		require.ErrorIs(t, err, domain.ErrCapacity)
	})

	t.Run("fails on an unknown fair", func(t *testing.T) {
		store := newStore(t)
		alloc := NewAllocationService(store)

		_, err := alloc.Allocate(ctx, 42, "ceramics", "Ana", "")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("never reuses a deleted id", func(t *testing.T) {
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 5})

		a1, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)
		a2, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Beto", "")
		require.NoError(t, err)

		require.NoError(t, alloc.DeleteArtisan(ctx, a2.ID))

		a3, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Carla", "")
		require.NoError(t, err)
		assert.Greater(t, a3.ID, a2.ID)
		assert.Greater(t, a3.ID, a1.ID)
	})
}

func TestDeleteArtisan(t *testing.T) {
	ctx := context.Background()

	t.Run("frees the slot and refreshes occupancy", func(t *testing.T) {
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		artisan, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)

		require.NoError(t, alloc.DeleteArtisan(ctx, artisan.ID))

		agg := loadAggregate(t, store)
		assert.Empty(t, agg.Artisans)
		assert.Equal(t, 0, agg.FindFair(fair.ID).Occupied)

		// The slot can be granted again.
		_, err = alloc.Allocate(ctx, fair.ID, "ceramics", "Beto", "")
		require.NoError(t, err)
	})

	t.Run("is a no-op for an unknown id", func(t *testing.T) {
		store := newStore(t)
		alloc := NewAllocationService(store)

		require.NoError(t, alloc.DeleteArtisan(ctx, 99))
	})
}

func TestGetArtisan(t *testing.T) {
	ctx := context.Background()

	store := newStore(t)
	fairs := NewFairService(store)
	alloc := NewAllocationService(store)

	fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})
	created, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Ana", "wheel-thrown")
	require.NoError(t, err)

	artisan, err := alloc.GetArtisan(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, artisan)

	_, err = alloc.GetArtisan(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateArtisan(t *testing.T) {
	ctx := context.Background()

	t.Run("moves occupancy to the new fair", func(t *testing.T) {
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		src := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})
		dst := mustCreateFair(t, fairs, "Autumn Market", domain.Category{Name: "ceramics", Quota: 1})

		artisan, err := alloc.Allocate(ctx, src.ID, "ceramics", "Ana", "")
		require.NoError(t, err)

		_, err = alloc.UpdateArtisan(ctx, artisan.ID, ArtisanPatch{FairID: ptr(dst.ID)})
		require.NoError(t, err)

		agg := loadAggregate(t, store)
		assert.Equal(t, 0, agg.FindFair(src.ID).Occupied)
		assert.Equal(t, 1, agg.FindFair(dst.ID).Occupied)
	})

	t.Run("does not re-check quota, so an edit can exceed it", func(t *testing.T) {
		// Reference behavior: edits skip admission control. This can push
		// a category over quota and nothing flags it.
		store := newStore(t)
		fairs := NewFairService(store)
		alloc := NewAllocationService(store)

		fair := mustCreateFair(t, fairs, "Spring Market",
			domain.Category{Name: "ceramics", Quota: 1},
			domain.Category{Name: "textiles", Quota: 1},
		)

		_, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)
		moved, err := alloc.Allocate(ctx, fair.ID, "textiles", "Beto", "")
		require.NoError(t, err)

		_, err = alloc.UpdateArtisan(ctx, moved.ID, ArtisanPatch{Category: ptr("ceramics")})
		require.NoError(t, err)

		agg := loadAggregate(t, store)
		assert.Equal(t, 2, agg.CountArtisansInCategory(fair.ID, "ceramics"))
		assert.Equal(t, 1, agg.FindFair(fair.ID).Quota("ceramics"))
	})

	t.Run("fails on an unknown id", func(t *testing.T) {
		store := newStore(t)
		alloc := NewAllocationService(store)

		_, err := alloc.UpdateArtisan(ctx, 7, ArtisanPatch{Name: ptr("Ana")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSearchArtisans(t *testing.T) {
	ctx := context.Background()

	store := newStore(t)
	fairs := NewFairService(store)
	alloc := NewAllocationService(store)

	fair := mustCreateFair(t, fairs, "Spring Market",
		domain.Category{Name: "ceramics", Quota: 5},
		domain.Category{Name: "textiles", Quota: 5},
	)

	_, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Ana Diaz", "")
	require.NoError(t, err)
	_, err = alloc.Allocate(ctx, fair.ID, "textiles", "Beto Soto", "")
	require.NoError(t, err)

	byName, err := alloc.SearchArtisans(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Ana Diaz", byName[0].Name)

	byCategory, err := alloc.SearchArtisans(ctx, "TEXT")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Beto Soto", byCategory[0].Name)

	all, err := alloc.SearchArtisans(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
