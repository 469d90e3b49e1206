package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onemeal-app/onemeal-backend/internal/auth/domain"
)

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (s *fakeUserStore) GetByUID(_ context.Context, uid string) (*domain.User, error) {
	u, ok := s.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	cp := *user
	s.users[user.UID] = &cp
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	cp := *user
	s.users[user.UID] = &cp
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, uid string) error {
	return nil
}

func TestAuthService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("first sign-in creates the user with the selected role", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, nil)

		user, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleDonor})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDonor, user.Role)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.Banned)
	})

	t.Run("first sign-in without a role is rejected", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore(), nil)

		_, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Asha", Email: "asha@example.com"})
		assert.ErrorIs(t, err, domain.ErrRoleRequired)
	})

	t.Run("made-up role is rejected", func(t *testing.T) {
		svc := NewAuthService(newFakeUserStore(), nil)

		_, err := svc.Sync(ctx, SyncRequest{UID: "u1", Email: "asha@example.com", Role: "superuser"})
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("allowlisted email becomes admin regardless of selection", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, []string{"Ops@OneMeal.example"})

		user, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Ops", Email: "ops@onemeal.example", Role: domain.RoleReceiver})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("re-sync refreshes profile but keeps the role", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, nil)

		created, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleReceiver})
		require.NoError(t, err)

		again, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Asha K", Email: "asha.k@example.com", Role: domain.RoleDonor})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleReceiver, again.Role, "role sticks after first sign-in")
		assert.Equal(t, "Asha K", again.Name)
		assert.Equal(t, "asha.k@example.com", again.Email)
		assert.False(t, again.LastLogin.Before(created.LastLogin))
	})

	t.Run("re-sync does not clear a ban", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, nil)

		_, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleDonor})
		require.NoError(t, err)
		store.users["u1"].Banned = true

		user, err := svc.Sync(ctx, SyncRequest{UID: "u1", Name: "Asha", Email: "asha@example.com"})
		require.NoError(t, err)
		assert.True(t, user.Banned)
	})
}
