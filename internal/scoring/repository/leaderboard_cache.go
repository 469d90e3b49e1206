package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onemeal-app/onemeal-backend/internal/scoring/domain"
)

const leaderboardKey = "onemeal:leaderboard"

// LeaderboardRepository caches the computed leaderboard in Redis so the
// public landing endpoint does not rescan the donation collection on every
// hit.
type LeaderboardRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardRepository(client *redis.Client, ttl time.Duration) *LeaderboardRepository {
	return &LeaderboardRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached leaderboard or domain.ErrCacheMiss.
func (r *LeaderboardRepository) Get(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	data, err := r.client.Get(ctx, leaderboardKey).Result()
	if err == redis.Nil {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("unmarshal leaderboard: %w", err)
	}
	return entries, nil
}

// Set replaces the cached leaderboard.
func (r *LeaderboardRepository) Set(ctx context.Context, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}

	if err := r.client.Set(ctx, leaderboardKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set leaderboard: %w", err)
	}
	return nil
}
