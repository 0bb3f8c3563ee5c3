package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesania/feria-api/internal/domain"
)

func newWorkflow(t *testing.T) (Store, *FairService, *AllocationService, *ApplicationService) {
	t.Helper()

	store := newStore(t)
	fairs := NewFairService(store)
	alloc := NewAllocationService(store)

	return store, fairs, alloc, NewApplicationService(store, alloc)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	store, fairs, _, applications := newWorkflow(t)
	fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

	application, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "  Ana ", " bowls ")
	require.NoError(t, err)

	assert.Equal(t, 1, application.ID)
	assert.Equal(t, 7, application.UserID)
	assert.Equal(t, "Ana", application.Name)
	assert.Equal(t, "bowls", application.Description)
	assert.Equal(t, domain.ApplicationPending, application.State)

	// No capacity check and no allocation at submission.
	agg := loadAggregate(t, store)
	assert.Empty(t, agg.Artisans)
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates the slot and accepts", func(t *testing.T) {
		store, fairs, _, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "bowls")
		require.NoError(t, err)

		approved, err := applications.Approve(ctx, submitted.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationAccepted, approved.State)

		agg := loadAggregate(t, store)
		require.Len(t, agg.Artisans, 1)
		assert.Equal(t, "Ana", agg.Artisans[0].Name)
		assert.Equal(t, fair.ID, agg.Artisans[0].FairID)
		assert.Equal(t, 1, agg.FindFair(fair.ID).Occupied)
	})

	t.Run("is idempotent: a second approval allocates nothing", func(t *testing.T) {
		store, fairs, _, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 2})

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)

		_, err = applications.Approve(ctx, submitted.ID)
		require.NoError(t, err)
		again, err := applications.Approve(ctx, submitted.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationAccepted, again.State)

		agg := loadAggregate(t, store)
		assert.Len(t, agg.Artisans, 1)
	})

	t.Run("propagates a capacity failure and stays pending", func(t *testing.T) {
		store, fairs, alloc, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		_, err := alloc.Allocate(ctx, fair.ID, "ceramics", "Occupier", "")
		require.NoError(t, err)

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)

		_, err = applications.Approve(ctx, submitted.ID)
		require.ErrorIs(t, err, domain.ErrCapacity)

		agg := loadAggregate(t, store)
		assert.Equal(t, domain.ApplicationPending, agg.FindApplication(submitted.ID).State)
		assert.Len(t, agg.Artisans, 1)
	})

	t.Run("propagates a validation failure for a dropped category", func(t *testing.T) {
		store, fairs, _, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)

		_, err = fairs.UpdateFair(ctx, fair.ID, FairPatch{
			Categories: &[]domain.Category{{Name: "textiles", Quota: 1}},
		})
		require.NoError(t, err)

		_, err = applications.Approve(ctx, submitted.ID)
		require.ErrorIs(t, err, domain.ErrValidation)

		agg := loadAggregate(t, store)
		assert.Equal(t, domain.ApplicationPending, agg.FindApplication(submitted.ID).State)
	})

	t.Run("refuses a rejected application", func(t *testing.T) {
		_, fairs, _, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)
		require.NoError(t, applications.Reject(ctx, submitted.ID))

		_, err = applications.Approve(ctx, submitted.ID)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("fails on an unknown id", func(t *testing.T) {
		_, _, _, applications := newWorkflow(t)

		_, err := applications.Approve(ctx, 42)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the application rejected", func(t *testing.T) {
		store, fairs, _, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)

		require.NoError(t, applications.Reject(ctx, submitted.ID))

		agg := loadAggregate(t, store)
		assert.Equal(t, domain.ApplicationRejected, agg.FindApplication(submitted.ID).State)
	})

	t.Run("rejecting an accepted application does not free the slot", func(t *testing.T) {
		// Known asymmetry preserved from the reference behavior: the state
		// flips but the allocated artisan stays and keeps occupying quota.
		store, fairs, _, applications := newWorkflow(t)
		fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

		submitted, err := applications.Submit(ctx, 7, fair.ID, "ceramics", "Ana", "")
		require.NoError(t, err)
		_, err = applications.Approve(ctx, submitted.ID)
		require.NoError(t, err)

		require.NoError(t, applications.Reject(ctx, submitted.ID))

		agg := loadAggregate(t, store)
		assert.Equal(t, domain.ApplicationRejected, agg.FindApplication(submitted.ID).State)
		assert.Len(t, agg.Artisans, 1)
		assert.Equal(t, 1, agg.FindFair(fair.ID).Occupied)
	})

	t.Run("is a no-op for an unknown id", func(t *testing.T) {
		_, _, _, applications := newWorkflow(t)

		require.NoError(t, applications.Reject(ctx, 42))
	})
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()

	_, fairs, _, applications := newWorkflow(t)
	fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 5})

	_, err := applications.Submit(ctx, 1, fair.ID, "ceramics", "Ana", "")
	require.NoError(t, err)
	_, err = applications.Submit(ctx, 2, fair.ID, "ceramics", "Beto", "")
	require.NoError(t, err)
	_, err = applications.Submit(ctx, 1, fair.ID, "ceramics", "Ana again", "")
	require.NoError(t, err)

	mine, err := applications.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := applications.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// TestRetryAfterSlotFrees replays the end-to-end scenario: a full
// category rejects the second applicant until the first allocation is
// deleted, then the retry succeeds.
func TestRetryAfterSlotFrees(t *testing.T) {
	ctx := context.Background()

	store, fairs, alloc, applications := newWorkflow(t)
	fair := mustCreateFair(t, fairs, "Spring Market", domain.Category{Name: "ceramics", Quota: 1})

	appA, err := applications.Submit(ctx, 1, fair.ID, "ceramics", "Artisan A", "")
	require.NoError(t, err)
	approvedA, err := applications.Approve(ctx, appA.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, approvedA.State)

	agg := loadAggregate(t, store)
	assert.Equal(t, 1, agg.CountArtisansInCategory(fair.ID, "ceramics"))

	appB, err := applications.Submit(ctx, 2, fair.ID, "ceramics", "Artisan B", "")
	require.NoError(t, err)
	_, err = applications.Approve(ctx, appB.ID)
	require.ErrorIs(t, err, domain.ErrCapacity)

	agg = loadAggregate(t, store)
	allocatedA := agg.Artisans[0]
	require.NoError(t, alloc.DeleteArtisan(ctx, allocatedA.ID))

	agg = loadAggregate(t, store)
	assert.Equal(t, 0, agg.FindFair(fair.ID).Occupied)

	approvedB, err := applications.Approve(ctx, appB.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, approvedB.State)

	agg = loadAggregate(t, store)
	assert.Equal(t, 1, agg.CountArtisansInCategory(fair.ID, "ceramics"))
	assert.Equal(t, 1, agg.FindFair(fair.ID).Occupied)
}
