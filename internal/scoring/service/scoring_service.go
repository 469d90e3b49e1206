package service

import (
	"context"
	"log"
	"sort"

	ddomain "github.com/onemeal-app/onemeal-backend/internal/donations/domain"
	"github.com/onemeal-app/onemeal-backend/internal/scoring/domain"
)

// leaderboardSize is how many donors the public leaderboard surfaces.
const leaderboardSize = 3

// DonationReader is the read-side view of the donation store the aggregator
// folds over.
type DonationReader interface {
	ListByStatus(ctx context.Context, status string) ([]*ddomain.Donation, error)
	ListByDonor(ctx context.Context, donorID string) ([]*ddomain.Donation, error)
}

// LeaderboardCache holds the latest computed leaderboard. Get returns
// domain.ErrCacheMiss when nothing usable is cached.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Set(ctx context.Context, entries []domain.LeaderboardEntry) error
}

// ScoringService derives karma totals and the leaderboard. Both are pure
// read-time aggregates over donation records; nothing is stored on the user.
type ScoringService struct {
	donations DonationReader
	cache     LeaderboardCache
}

func NewScoringService(donations DonationReader, cache LeaderboardCache) *ScoringService {
	return &ScoringService{
		donations: donations,
		cache:     cache,
	}
}

// Leaderboard returns the cached top donors, computing and caching on a
// miss. A broken cache degrades to a direct computation.
func (s *ScoringService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if s.cache != nil {
		entries, err := s.cache.Get(ctx)
		if err == nil {
			return entries, nil
		}
		if err != domain.ErrCacheMiss {
			log.Printf("[scoring] leaderboard cache read failed: %v", err)
		}
	}
	return s.RefreshLeaderboard(ctx)
}

// RefreshLeaderboard recomputes the leaderboard from the store and updates
// the cache. The cron job calls this on a schedule.
func (s *ScoringService) RefreshLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := s.computeLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			log.Printf("[scoring] leaderboard cache write failed: %v", err)
		}
	}
	return entries, nil
}

func (s *ScoringService) computeLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	completed, err := s.donations.ListByStatus(ctx, ddomain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*domain.LeaderboardEntry)
	for _, d := range completed {
		if d.DonorID == "" {
			continue
		}
		e, ok := totals[d.DonorID]
		if !ok {
			e = &domain.LeaderboardEntry{DonorID: d.DonorID, Name: d.DonorName}
			totals[d.DonorID] = e
		}
		e.Karma += domain.PointsPerCompleted
	}

	entries := make([]domain.LeaderboardEntry, 0, len(totals))
	for _, e := range totals {
		e.Badge = domain.BadgeFor(e.Karma)
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Karma != entries[j].Karma {
			return entries[i].Karma > entries[j].Karma
		}
		return entries[i].DonorID < entries[j].DonorID
	})

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}

// SelfKarma computes the authenticated donor's own running total.
func (s *ScoringService) SelfKarma(ctx context.Context, donorID string) (*domain.Karma, error) {
	donations, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	k := &domain.Karma{}
	for _, d := range donations {
		switch d.Status {
		case ddomain.StatusCompleted:
			k.Completed++
		case ddomain.StatusReported:
			k.Reported++
		}
	}
	k.Points = k.Completed*domain.PointsPerCompleted - k.Reported*domain.PenaltyPerReported
	return k, nil
}
