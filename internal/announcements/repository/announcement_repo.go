package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onemeal-app/onemeal-backend/internal/announcements/domain"
)

const (
	systemCollection = "system"
	globalDoc        = "global"
)

// AnnouncementRepository owns the system/global singleton document.
type AnnouncementRepository struct {
	client *firestore.Client
}

func NewAnnouncementRepository(client *firestore.Client) *AnnouncementRepository {
	return &AnnouncementRepository{client: client}
}

func (r *AnnouncementRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(systemCollection).Doc(globalDoc)
}

// Get returns the current announcement. A missing document reads as an
// inactive, empty announcement rather than an error.
func (r *AnnouncementRepository) Get(ctx context.Context) (*domain.Announcement, error) {
	snap, err := r.doc().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &domain.Announcement{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}

	var a domain.Announcement
	if err := snap.DataTo(&a); err != nil {
		return nil, fmt.Errorf("decode announcement: %w", err)
	}
	return &a, nil
}

// Set overwrites the announcement wholesale. An empty message deactivates
// the banner.
func (r *AnnouncementRepository) Set(ctx context.Context, message string, active bool) (*domain.Announcement, error) {
	a := &domain.Announcement{
		Message:   message,
		Active:    active && message != "",
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.doc().Set(ctx, a); err != nil {
		return nil, fmt.Errorf("set announcement: %w", err)
	}
	return a, nil
}
