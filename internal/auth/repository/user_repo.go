package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onemeal-app/onemeal-backend/internal/auth/domain"
)

const usersCollection = "users"

// UserRepository persists user profiles in the users/{uid} collection.
type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

// GetByUID retrieves a user by their Firebase UID.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	snap, err := r.doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return decode(snap)
}

// Create inserts a new user document.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.doc(user.UID).Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update overwrites the user document.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, err := r.doc(user.UID).Set(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps the last-login time without touching other fields.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, uid string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "lastLogin", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// SetBanned toggles the banned flag.
func (r *UserRepository) SetBanned(ctx context.Context, uid string, banned bool) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "banned", Value: banned},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}
	return nil
}

// SetRole applies an administrative role override.
func (r *UserRepository) SetRole(ctx context.Context, uid, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// ListAll returns every registered user, for the admin console.
func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	it := r.client.Collection(usersCollection).Documents(ctx)
	defer it.Stop()

	var out []*domain.User
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate users: %w", err)
		}

		u, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
}

func decode(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
	}
	u.UID = snap.Ref.ID
	return &u, nil
}
