package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onemeal-app/onemeal-backend/internal/donations/domain"
)

type fakeOpenStore struct {
	byStatus map[string][]*domain.Donation
}

func (s *fakeOpenStore) ListByStatus(_ context.Context, status string) ([]*domain.Donation, error) {
	return s.byStatus[status], nil
}

func don(id string, loc *domain.Coordinate, age time.Duration) *domain.Donation {
	return &domain.Donation{
		ID:        id,
		FoodItem:  "Dal Rice",
		Status:    domain.StatusAvailable,
		Location:  loc,
		CreatedAt: time.Now().UTC().Add(-age),
	}
}

func TestListingService_Open(t *testing.T) {
	pune := &domain.Coordinate{Lat: 18.5204, Lng: 73.8567}
	mumbai := &domain.Coordinate{Lat: 19.0760, Lng: 72.8777}
	nearby := &domain.Coordinate{Lat: 18.53, Lng: 73.86}

	t.Run("only the available set is projected", func(t *testing.T) {
		store := &fakeOpenStore{byStatus: map[string][]*domain.Donation{
			domain.StatusAvailable: {don("a", nil, 0)},
			domain.StatusClaimed:   {don("b", nil, 0)},
		}}
		svc := NewListingService(store)

		listings, err := svc.Open(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "a", listings[0].ID)
	})

	t.Run("distance annotated nearest-first when a position is given", func(t *testing.T) {
		store := &fakeOpenStore{byStatus: map[string][]*domain.Donation{
			domain.StatusAvailable: {
				don("far", mumbai, 0),
				don("near", nearby, 0),
				don("nowhere", nil, 0),
			},
		}}
		svc := NewListingService(store)

		listings, err := svc.Open(context.Background(), pune)
		require.NoError(t, err)
		require.Len(t, listings, 3)

		assert.Equal(t, "near", listings[0].ID)
		assert.Equal(t, "far", listings[1].ID)
		require.NotNil(t, listings[0].DistanceKm)
		require.NotNil(t, listings[1].DistanceKm)
		assert.Less(t, *listings[0].DistanceKm, *listings[1].DistanceKm)

		// No coordinates: listed, but unannotated and last.
		assert.Equal(t, "nowhere", listings[2].ID)
		assert.Nil(t, listings[2].DistanceKm)
	})

	t.Run("no position degrades to newest-first with no annotation", func(t *testing.T) {
		store := &fakeOpenStore{byStatus: map[string][]*domain.Donation{
			domain.StatusAvailable: {
				don("old", pune, 2*time.Hour),
				don("new", mumbai, time.Minute),
			},
		}}
		svc := NewListingService(store)

		listings, err := svc.Open(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, "new", listings[0].ID)
		assert.Nil(t, listings[0].DistanceKm)
		assert.Nil(t, listings[1].DistanceKm)
	})

	t.Run("empty set is fine", func(t *testing.T) {
		svc := NewListingService(&fakeOpenStore{byStatus: map[string][]*domain.Donation{}})
		listings, err := svc.Open(context.Background(), pune)
		require.NoError(t, err)
		assert.Empty(t, listings)
	})
}
