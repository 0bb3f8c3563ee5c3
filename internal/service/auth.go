package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/artesania/feria-api/internal/domain"
)

var (
	ErrEmailExists   = fmt.Errorf("%w: email already registered", domain.ErrValidation)
	ErrWrongPassword = errors.New("wrong password")
	ErrUserNotFound  = fmt.Errorf("%w: user", domain.ErrNotFound)
)

type AuthService struct {
	store Store
}

func NewAuthService(store Store) *AuthService {
	return &AuthService{
		store: store,
	}
}

// Signup registers a user. Only the user and artisan roles can be
// created this way; the admin account is seeded from configuration.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Role != domain.RoleUser && user.Role != domain.RoleArtisan {
		return domain.User{}, fmt.Errorf("%w: role %q", domain.ErrValidation, user.Role)
	}

	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if agg.FindUserByEmail(user.Email) != nil {
		return domain.User{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	user.ID = agg.NextUserID()
	user.Password = string(hash)
	user.Name = strings.TrimSpace(user.Name)
	user.FavoriteFairs = []int{}
	user.CreatedAt = time.Now().UTC()
	if user.Role == domain.RoleArtisan && user.Profile == nil {
		user.Profile = &domain.Profile{Name: user.Name, Products: []domain.Product{}}
	}

	agg.Users = append(agg.Users, user)

	if err = s.store.Save(ctx, agg); err != nil {
		return domain.User{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	agg, err := s.store.Load(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.store.Load -> %w", err)
	}

	user := agg.FindUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if user == nil {
		return domain.User{}, ErrUserNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return *user, nil
}

// EnsureAdmin seeds the administrator account from configuration when
// it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	agg, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("s.store.Load -> %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if agg.FindUserByEmail(email) != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	agg.Users = append(agg.Users, domain.User{
		ID:            agg.NextUserID(),
		Email:         email,
		Password:      string(hash),
		Name:          "Administrator",
		Role:          domain.RoleAdmin,
		FavoriteFairs: []int{},
		CreatedAt:     time.Now().UTC(),
	})

	if err = s.store.Save(ctx, agg); err != nil {
		return fmt.Errorf("s.store.Save -> %w", err)
	}

	return nil
}
