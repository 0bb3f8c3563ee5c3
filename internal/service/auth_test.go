package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesania/feria-api/internal/domain"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a user with a hashed password", func(t *testing.T) {
		store := newStore(t)
		svc := NewAuthService(store)

		user, err := svc.Signup(ctx, domain.User{
			Email:    " Ana@Example.com ",
			Password: "Secret123",
			Name:     "Ana",
			Role:     domain.RoleUser,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.NotEqual(t, "Secret123", user.Password)
		assert.Nil(t, user.Profile)
	})

	t.Run("seeds an empty profile for artisans", func(t *testing.T) {
		store := newStore(t)
		svc := NewAuthService(store)

		user, err := svc.Signup(ctx, domain.User{
			Email:    "ana@example.com",
			Password: "Secret123",
			Name:     "Ana",
			Role:     domain.RoleArtisan,
		})
		require.NoError(t, err)

		require.NotNil(t, user.Profile)
		assert.Equal(t, "Ana", user.Profile.Name)
		assert.Empty(t, user.Profile.Products)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		store := newStore(t)
		svc := NewAuthService(store)

		_, err := svc.Signup(ctx, domain.User{Email: "ana@example.com", Password: "Secret123", Name: "Ana", Role: domain.RoleUser})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, domain.User{Email: "ANA@example.com", Password: "Other1234", Name: "Ana", Role: domain.RoleUser})
		require.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("rejects the admin role", func(t *testing.T) {
		store := newStore(t)
		svc := NewAuthService(store)

		_, err := svc.Signup(ctx, domain.User{Email: "eve@example.com", Password: "Secret123", Name: "Eve", Role: domain.RoleAdmin})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	store := newStore(t)
	svc := NewAuthService(store)

	_, err := svc.Signup(ctx, domain.User{Email: "ana@example.com", Password: "Secret123", Name: "Ana", Role: domain.RoleUser})
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		user, err := svc.Login(ctx, "ana@example.com", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
	})

	t.Run("refuses a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ana@example.com", "nope")
		require.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("refuses an unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "Secret123")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	store := newStore(t)
	svc := NewAuthService(store)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "Secret123"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "Secret123"))

	agg := loadAggregate(t, store)
	require.Len(t, agg.Users, 1)
	assert.Equal(t, domain.RoleAdmin, agg.Users[0].Role)

	admin, err := svc.Login(ctx, "admin@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	// Blank seed config is ignored.
	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))
}
