package service

import (
	"context"
	"strings"
	"time"

	"github.com/onemeal-app/onemeal-backend/internal/auth/domain"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, uid string) error
}

// AuthService syncs Firebase identities into user documents. The role picked
// on first sign-in sticks; later syncs only refresh profile data and the
// last-login stamp.
type AuthService struct {
	userStore   UserStore
	adminEmails map[string]struct{}
}

func NewAuthService(userStore UserStore, adminEmails []string) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(e)] = struct{}{}
	}
	return &AuthService{
		userStore:   userStore,
		adminEmails: admins,
	}
}

// SyncRequest carries the verified identity plus the role selected in the
// sign-in UI. Role is only consulted on first sign-in.
type SyncRequest struct {
	UID   string
	Name  string
	Email string
	Role  string
}

// Sync creates the user on first successful sign-in and refreshes profile
// fields afterwards. Sign-in emails listed in the admin allowlist get the
// admin role regardless of the selected one.
func (s *AuthService) Sync(ctx context.Context, req SyncRequest) (*domain.User, error) {
	existing, err := s.userStore.GetByUID(ctx, req.UID)
	if err == nil {
		existing.Name = req.Name
		existing.Email = req.Email
		existing.LastLogin = time.Now().UTC()
		if err := s.userStore.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != domain.ErrUserNotFound {
		return nil, err
	}

	role := req.Role
	if s.isAdminEmail(req.Email) {
		role = domain.RoleAdmin
	}
	if role == "" {
		return nil, domain.ErrRoleRequired
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user := &domain.User{
		UID:       req.UID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		LastLogin: time.Now().UTC(),
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user profile.
func (s *AuthService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	return s.userStore.GetByUID(ctx, uid)
}

// RecordLogin updates the last login timestamp.
func (s *AuthService) RecordLogin(ctx context.Context, uid string) error {
	return s.userStore.UpdateLastLogin(ctx, uid)
}

func (s *AuthService) isAdminEmail(email string) bool {
	_, ok := s.adminEmails[strings.ToLower(email)]
	return ok
}
