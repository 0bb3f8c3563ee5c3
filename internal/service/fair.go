package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/artesania/feria-api/internal/domain"
)

// FairService is the registry: it creates, edits and deletes fairs and
// owns the cascade on deletion.
type FairService struct {
	store Store
}

func NewFairService(store Store) *FairService {
	return &FairService{
		store: store,
	}
}

// FairPatch carries the editable fair fields; nil means unchanged.
type FairPatch struct {
	Name        *string
	StartDate   *string
	EndDate     *string
	Preferences *string
	Categories  *[]domain.Category
}

func (s *FairService) CreateFair(ctx context.Context, fair domain.Fair) (domain.Fair, error) {
	categories, totalQuota, err := normalizeCategories(fair.Categories)
	if err != nil {
		return domain.Fair{}, err
	}

	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Fair{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	fair.ID = agg.NextFairID()
	fair.Name = strings.TrimSpace(fair.Name)
	fair.Categories = categories
	fair.TotalQuota = totalQuota
	fair.Occupied = 0

	agg.Fairs = append(agg.Fairs, fair)

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Fair{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return fair, nil
}

// UpdateFair applies the provided fields. Replacing categories recomputes
// the total quota but deliberately not the occupied count: a category
// shrink can leave occupancy above quota (reference behavior, see tests).
func (s *FairService) UpdateFair(ctx context.Context, id int, patch FairPatch) (domain.Fair, error) {
	var (
		categories []domain.Category
		totalQuota int
		err        error
	)
	if patch.Categories != nil {
		categories, totalQuota, err = normalizeCategories(*patch.Categories)
		if err != nil {
			return domain.Fair{}, err
		}
	}

	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Fair{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	fair := agg.FindFair(id)
	if fair == nil {
		return domain.Fair{}, fmt.Errorf("%w: fair %v", domain.ErrNotFound, id)
	}

	if patch.Name != nil {
		fair.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.StartDate != nil {
		fair.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		fair.EndDate = *patch.EndDate
	}
	if patch.Preferences != nil {
		fair.Preferences = *patch.Preferences
	}
	if patch.Categories != nil {
		fair.Categories = categories
		fair.TotalQuota = totalQuota
	}

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Fair{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return *fair, nil
}

// DeleteFair removes the fair and cascades removal of every artisan and
// application referencing it. Deleting an unknown id is a no-op.
func (s *FairService) DeleteFair(ctx context.Context, id int) error {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("s.store.Load -> %w", err)
	}

	if agg.FindFair(id) == nil {
		return nil
	}

	fairs := agg.Fairs[:0]
	for _, f := range agg.Fairs {
		if f.ID != id {
			fairs = append(fairs, f)
		}
	}
	agg.Fairs = fairs

	artisans := agg.Artisans[:0]
	for _, a := range agg.Artisans {
		if a.FairID != id {
			artisans = append(artisans, a)
		}
	}
	agg.Artisans = artisans

	applications := agg.Applications[:0]
	for _, app := range agg.Applications {
		if app.FairID != id {
			applications = append(applications, app)
		}
	}
	agg.Applications = applications

	recomputeOccupancy(&agg)

	if err = s.store.Save(ctx, agg); err != nil {
		return fmt.Errorf("s.store.Save -> %w", err)
	}

	return nil
}

func (s *FairService) GetFair(ctx context.Context, id int) (domain.FairDetail, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.FairDetail{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	fair := agg.FindFair(id)
	if fair == nil {
		return domain.FairDetail{}, fmt.Errorf("%w: fair %v", domain.ErrNotFound, id)
	}

	return fairDetail(&agg, *fair), nil
}

// ListFairs returns every fair decorated with fair-wide and per-category
// occupancy, the shape the panels and the public catalogue render.
func (s *FairService) ListFairs(ctx context.Context) ([]domain.FairDetail, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	details := make([]domain.FairDetail, 0, len(agg.Fairs))
	for _, f := range agg.Fairs {
		details = append(details, fairDetail(&agg, f))
	}

	return details, nil
}

// CategoryOptions maps fair id to its categories with current occupation,
// used to populate the application form selects.
func (s *FairService) CategoryOptions(ctx context.Context) (map[int][]domain.CategoryOccupancy, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	options := make(map[int][]domain.CategoryOccupancy, len(agg.Fairs))
	for _, f := range agg.Fairs {
		options[f.ID] = categoryOccupancies(&agg, f)
	}

	return options, nil
}

func fairDetail(agg *domain.Aggregate, fair domain.Fair) domain.FairDetail {
	fair.Occupied = agg.CountArtisans(fair.ID)

	return domain.FairDetail{
		Fair:                fair,
		CategoryOccupancies: categoryOccupancies(agg, fair),
	}
}

func categoryOccupancies(agg *domain.Aggregate, fair domain.Fair) []domain.CategoryOccupancy {
	occupancies := make([]domain.CategoryOccupancy, 0, len(fair.Categories))
	for _, c := range fair.Categories {
		occupancies = append(occupancies, domain.CategoryOccupancy{
			Name:     c.Name,
			Quota:    c.Quota,
			Occupied: agg.CountArtisansInCategory(fair.ID, c.Name),
		})
	}

	return occupancies
}

// normalizeCategories trims names, drops empties, rejects negative quotas
// and duplicate names, and sums the total quota.
func normalizeCategories(categories []domain.Category) ([]domain.Category, int, error) {
	normalized := make([]domain.Category, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	totalQuota := 0

	for _, c := range categories {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		if c.Quota < 0 {
			return nil, 0, fmt.Errorf("%w: category %q has negative quota %v", domain.ErrValidation, c.Name, c.Quota)
		}
		if seen[c.Name] {
			return nil, 0, fmt.Errorf("%w: duplicate category %q", domain.ErrValidation, c.Name)
		}
		seen[c.Name] = true

		normalized = append(normalized, c)
		totalQuota += c.Quota
	}

	return normalized, totalQuota, nil
}
