package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/artesania/feria-api/internal/domain"
)

// ApplicationService runs the pending → accepted/rejected state machine,
// delegating admission to the allocation engine on approval.
type ApplicationService struct {
	store Store
	alloc *AllocationService
}

func NewApplicationService(store Store, alloc *AllocationService) *ApplicationService {
	return &ApplicationService{
		store: store,
		alloc: alloc,
	}
}

// Submit records a pending application. Capacity is not checked here;
// admission happens at approval against the state current at that moment.
func (s *ApplicationService) Submit(ctx context.Context, userID, fairID int, category, name, description string) (domain.Application, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Application{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	application := domain.Application{
		ID:          agg.NextApplicationID(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		FairID:      fairID,
		Category:    category,
		State:       domain.ApplicationPending,
	}
	agg.Applications = append(agg.Applications, application)

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Application{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return application, nil
}

// Approve accepts an application by allocating its slot. Approving an
// already-accepted application is a no-op success; engine failures
// propagate unchanged and leave the application pending, so it can be
// retried once capacity frees up.
func (s *ApplicationService) Approve(ctx context.Context, id int) (domain.Application, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Application{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	application := agg.FindApplication(id)
	if application == nil {
		return domain.Application{}, fmt.Errorf("%w: application %v", domain.ErrNotFound, id)
	}

	switch application.State {
	case domain.ApplicationAccepted:
		return *application, nil
	case domain.ApplicationRejected:
		return domain.Application{}, fmt.Errorf("%w: application %v was rejected", domain.ErrValidation, id)
	}

	if _, err = s.alloc.allocate(&agg, application.FairID, application.Category, application.Name, application.Description); err != nil {
		return domain.Application{}, err
	}

	application.State = domain.ApplicationAccepted

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Application{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return *application, nil
}

// Reject unconditionally marks the application rejected, even from
// accepted; the allocated slot, if any, stays in place. Rejecting an
// unknown id is a no-op.
func (s *ApplicationService) Reject(ctx context.Context, id int) error {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("s.store.Load -> %w", err)
	}

	application := agg.FindApplication(id)
	if application == nil {
		return nil
	}

	application.State = domain.ApplicationRejected

	if err = s.store.Save(ctx, agg); err != nil {
		return fmt.Errorf("s.store.Save -> %w", err)
	}

	return nil
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.Application, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	return agg.Applications, nil
}

func (s *ApplicationService) ListByUser(ctx context.Context, userID int) ([]domain.Application, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	applications := make([]domain.Application, 0)
	for _, app := range agg.Applications {
		if app.UserID == userID {
			applications = append(applications, app)
		}
	}

	return applications, nil
}
