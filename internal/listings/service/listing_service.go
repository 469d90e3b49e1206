package service

import (
	"context"
	"sort"

	"github.com/onemeal-app/onemeal-backend/internal/donations/domain"
	"github.com/onemeal-app/onemeal-backend/internal/listings/geo"
)

// OpenStore reads the open-listing set.
type OpenStore interface {
	ListByStatus(ctx context.Context, status string) ([]*domain.Donation, error)
}

// Listing is an available donation annotated with the distance from the
// recipient's position when both positions are known.
type Listing struct {
	*domain.Donation
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// ListingService is the recipient-facing read projection over available
// donations. It is stateless: every call folds over the store.
type ListingService struct {
	store OpenStore
}

func NewListingService(store OpenStore) *ListingService {
	return &ListingService{store: store}
}

// Open returns every available donation. With a reference position the
// result is sorted nearest-first and distance-annotated; donations without
// coordinates keep no annotation and sort after annotated ones. Without a
// position the newest listing comes first.
func (s *ListingService) Open(ctx context.Context, from *domain.Coordinate) ([]Listing, error) {
	donations, err := s.store.ListByStatus(ctx, domain.StatusAvailable)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(donations))
	for _, d := range donations {
		l := Listing{Donation: d}
		if from != nil && d.Location != nil {
			km := geo.DistanceKm(from.Lat, from.Lng, d.Location.Lat, d.Location.Lng)
			l.DistanceKm = &km
		}
		listings = append(listings, l)
	}

	if from != nil {
		sort.SliceStable(listings, func(i, j int) bool {
			di, dj := listings[i].DistanceKm, listings[j].DistanceKm
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return *di < *dj
			}
		})
	} else {
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	}

	return listings, nil
}
