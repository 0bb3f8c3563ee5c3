package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/artesania/feria-api/internal/domain"
)

// AllocationService is the quota engine: it decides whether an artisan
// fits a fair's category and keeps the derived occupancy counts
// consistent after every mutation.
type AllocationService struct {
	store Store
}

func NewAllocationService(store Store) *AllocationService {
	return &AllocationService{
		store: store,
	}
}

// ArtisanPatch carries the editable artisan fields; nil means unchanged.
type ArtisanPatch struct {
	Name        *string
	Description *string
	Category    *string
	FairID      *int
}

// Occupancy returns (occupied, quota) for a fair's category. Occupied is
// the per-category count; quota is 0 when the fair does not offer the
// category.
func (s *AllocationService) Occupancy(agg *domain.Aggregate, fair *domain.Fair, category string) (int, int) {
	return agg.CountArtisansInCategory(fair.ID, category), fair.Quota(category)
}

// Allocate admits an artisan into a fair's category, subject to the
// category quota, and persists the result.
func (s *AllocationService) Allocate(ctx context.Context, fairID int, category, name, description string) (domain.Artisan, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Artisan{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	artisan, err := s.allocate(&agg, fairID, category, name, description)
	if err != nil {
		return domain.Artisan{}, err
	}

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Artisan{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return artisan, nil
}

// allocate performs the admission check and mutation on an already-loaded
// aggregate so the application workflow can approve and allocate inside a
// single save. The check runs against current state at call time; there
// is no reservation (single-writer assumption).
func (s *AllocationService) allocate(agg *domain.Aggregate, fairID int, category, name, description string) (domain.Artisan, error) {
	fair := agg.FindFair(fairID)
	if fair == nil {
		return domain.Artisan{}, fmt.Errorf("%w: fair %v", domain.ErrNotFound, fairID)
	}

	if !fair.Offers(category) {
		return domain.Artisan{}, fmt.Errorf("%w: category %q not offered by fair %v", domain.ErrValidation, category, fairID)
	}

	occupied, quota := s.Occupancy(agg, fair, category)
	if quota == 0 || occupied >= quota {
		return domain.Artisan{}, fmt.Errorf("%w: category %q of fair %v is full (%v/%v)", domain.ErrCapacity, category, fairID, occupied, quota)
	}

	artisan := domain.Artisan{
		ID:          agg.NextArtisanID(),
		Name:        strings.TrimSpace(name),
		Category:    category,
		Description: strings.TrimSpace(description),
		FairID:      fairID,
	}
	agg.Artisans = append(agg.Artisans, artisan)

	// The admission check is per category; the denormalized count on the
	// fair is fair-wide.
	fair.Occupied = agg.CountArtisans(fair.ID)

	return artisan, nil
}

// DeleteArtisan frees a slot. Deleting an unknown id is a no-op.
func (s *AllocationService) DeleteArtisan(ctx context.Context, id int) error {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("s.store.Load -> %w", err)
	}

	if agg.FindArtisan(id) == nil {
		return nil
	}

	kept := agg.Artisans[:0]
	for _, a := range agg.Artisans {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	agg.Artisans = kept

	recomputeOccupancy(&agg)

	if err = s.store.Save(ctx, agg); err != nil {
		return fmt.Errorf("s.store.Save -> %w", err)
	}

	return nil
}

// UpdateArtisan applies a patch and refreshes occupancy counts. It does
// NOT re-run the quota check, so an edit can push a category over quota;
// that matches the reference behavior and is asserted by tests.
func (s *AllocationService) UpdateArtisan(ctx context.Context, id int, patch ArtisanPatch) (domain.Artisan, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Artisan{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	artisan := agg.FindArtisan(id)
	if artisan == nil {
		return domain.Artisan{}, fmt.Errorf("%w: artisan %v", domain.ErrNotFound, id)
	}

	if patch.Name != nil {
		artisan.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		artisan.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		artisan.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.FairID != nil {
		artisan.FairID = *patch.FairID
	}

	recomputeOccupancy(&agg)

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Artisan{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return *artisan, nil
}

func (s *AllocationService) GetArtisan(ctx context.Context, id int) (domain.Artisan, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Artisan{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	artisan := agg.FindArtisan(id)
	if artisan == nil {
		return domain.Artisan{}, fmt.Errorf("%w: artisan %v", domain.ErrNotFound, id)
	}

	return *artisan, nil
}

func (s *AllocationService) ListArtisans(ctx context.Context) ([]domain.Artisan, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	return agg.Artisans, nil
}

// SearchArtisans filters the directory by a case-insensitive substring of
// the artisan name or category. An empty query returns everything.
func (s *AllocationService) SearchArtisans(ctx context.Context, query string) ([]domain.Artisan, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return agg.Artisans, nil
	}

	matched := make([]domain.Artisan, 0)
	for _, a := range agg.Artisans {
		if strings.Contains(strings.ToLower(a.Name), query) || strings.Contains(strings.ToLower(a.Category), query) {
			matched = append(matched, a)
		}
	}

	return matched, nil
}

// recomputeOccupancy refreshes every fair's denormalized occupied count
// from the artisan records.
func recomputeOccupancy(agg *domain.Aggregate) {
	for i := range agg.Fairs {
		agg.Fairs[i].Occupied = agg.CountArtisans(agg.Fairs[i].ID)
	}
}
