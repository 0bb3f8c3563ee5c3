package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/artesania/feria-api/internal/domain"
)

// UserPatch carries the admin-editable account fields; nil means keep.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

type UserService struct {
	store Store
}

func NewUserService(store Store) *UserService {
	return &UserService{
		store: store,
	}
}

func (s *UserService) GetUser(ctx context.Context, id int) (domain.User, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUser(id)
	if user == nil {
		return domain.User{}, fmt.Errorf("%w: user %v", domain.ErrNotFound, id)
	}

	return *user, nil
}

// UpdateUser edits an account's name, email and role. Demoting the last
// administrator is refused, as is reusing another account's email.
func (s *UserService) UpdateUser(ctx context.Context, id int, patch UserPatch) (domain.User, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUser(id)
	if user == nil {
		return domain.User{}, fmt.Errorf("%w: user %v", domain.ErrNotFound, id)
	}

	if patch.Role != nil && *patch.Role != user.Role {
		switch *patch.Role {
		case domain.RoleAdmin, domain.RoleUser, domain.RoleArtisan:
		default:
			return domain.User{}, fmt.Errorf("%w: role %q", domain.ErrValidation, *patch.Role)
		}
		if user.Role == domain.RoleAdmin && countAdmins(&agg) <= 1 {
			return domain.User{}, fmt.Errorf("%w: cannot demote the last administrator", domain.ErrValidation)
		}
		user.Role = *patch.Role
		if user.Role == domain.RoleArtisan && user.Profile == nil {
			user.Profile = &domain.Profile{Name: user.Name, Products: []domain.Product{}}
		}
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if other := agg.FindUserByEmail(email); other != nil && other.ID != id {
			return domain.User{}, ErrEmailExists
		}
		user.Email = email
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.User{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return *user, nil
}

// DeleteUser removes an account and its applications. Self-deletion and
// deleting the last administrator are refused.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID int) error {
	if id == actorID {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrValidation)
	}

	agg, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("s.store.Load -> %w", err)
	}

	target := agg.FindUser(id)
	if target == nil {
		return fmt.Errorf("%w: user %v", domain.ErrNotFound, id)
	}

	if target.Role == domain.RoleAdmin && countAdmins(&agg) <= 1 {
		return fmt.Errorf("%w: cannot delete the last administrator", domain.ErrValidation)
	}

	users := agg.Users[:0]
	for _, u := range agg.Users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	agg.Users = users

	applications := agg.Applications[:0]
	for _, app := range agg.Applications {
		if app.UserID != id {
			applications = append(applications, app)
		}
	}
	agg.Applications = applications

	if err = s.store.Save(ctx, agg); err != nil {
		return fmt.Errorf("s.store.Save -> %w", err)
	}

	return nil
}

func countAdmins(agg *domain.Aggregate) int {
	n := 0
	for _, u := range agg.Users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}

	return n
}

// ToggleFavorite flips a fair in the user's favorites and reports whether
// it ended up added.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, fairID int) (bool, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUser(userID)
	if user == nil {
		return false, fmt.Errorf("%w: user %v", domain.ErrNotFound, userID)
	}
	if agg.FindFair(fairID) == nil {
		return false, fmt.Errorf("%w: fair %v", domain.ErrNotFound, fairID)
	}

	added := true
	favorites := make([]int, 0, len(user.FavoriteFairs)+1)
	for _, id := range user.FavoriteFairs {
		if id == fairID {
			added = false
			continue
		}
		favorites = append(favorites, id)
	}
	if added {
		favorites = append(favorites, fairID)
	}
	user.FavoriteFairs = favorites

	if err = s.store.Save(ctx, agg); err != nil {
		return false, fmt.Errorf("s.store.Save -> %w", err)
	}

	return added, nil
}

// ListFavorites resolves the user's favorite fairs. Ids whose fair has
// been deleted since are skipped; the list itself is never pruned.
func (s *UserService) ListFavorites(ctx context.Context, userID int) ([]domain.FairDetail, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUser(userID)
	if user == nil {
		return nil, fmt.Errorf("%w: user %v", domain.ErrNotFound, userID)
	}

	favorites := make([]domain.FairDetail, 0, len(user.FavoriteFairs))
	for _, fairID := range user.FavoriteFairs {
		fair := agg.FindFair(fairID)
		if fair == nil {
			continue
		}
		favorites = append(favorites, fairDetail(&agg, *fair))
	}

	return favorites, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (domain.Profile, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUser(userID)
	if user == nil {
		return domain.Profile{}, fmt.Errorf("%w: user %v", domain.ErrNotFound, userID)
	}
	if user.Profile == nil {
		return domain.Profile{}, fmt.Errorf("%w: user %v has no artisan profile", domain.ErrNotFound, userID)
	}

	return *user.Profile, nil
}

// UpdateProfile replaces an artisan user's public profile and product
// list.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, profile domain.Profile) (domain.Profile, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUser(userID)
	if user == nil {
		return domain.Profile{}, fmt.Errorf("%w: user %v", domain.ErrNotFound, userID)
	}
	if user.Role != domain.RoleArtisan {
		return domain.Profile{}, fmt.Errorf("%w: user %v is not an artisan", domain.ErrValidation, userID)
	}

	if profile.Products == nil {
		profile.Products = []domain.Product{}
	}
	user.Profile = &profile

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.Profile{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return profile, nil
}
