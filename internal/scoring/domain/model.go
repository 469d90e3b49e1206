package domain

import "errors"

// Karma accounting. Completed donations earn points, reported ones cost
// five times as much.
const (
	PointsPerCompleted = 10
	PenaltyPerReported = 50
)

// Badge tiers. Boundaries are strictly-greater: 51 points is a Hunger
// Slayer, 50 is still a Food Ninja.
const (
	BadgeHungerSlayer = "Hunger Slayer"
	BadgeFoodNinja    = "Food Ninja"
	BadgeFoodHero     = "Food Hero"
)

var ErrCacheMiss = errors.New("leaderboard not cached")

// LeaderboardEntry keys by donor id; the display name rides along only for
// rendering, so two donors sharing a name never pool their karma.
type LeaderboardEntry struct {
	DonorID string `json:"donor_id"`
	Name    string `json:"name"`
	Karma   int    `json:"karma"`
	Badge   string `json:"badge"`
}

// Karma is a donor's self-view score. Points may be negative; nothing
// automatic follows from that beyond display.
type Karma struct {
	Completed int `json:"completed"`
	Reported  int `json:"reported"`
	Points    int `json:"points"`
}

func BadgeFor(karma int) string {
	switch {
	case karma > 50:
		return BadgeHungerSlayer
	case karma > 20:
		return BadgeFoodNinja
	default:
		return BadgeFoodHero
	}
}
