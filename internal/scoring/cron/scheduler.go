package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/onemeal-app/onemeal-backend/internal/scoring/service"
)

// Scheduler keeps the leaderboard cache warm so the cache TTL expiring never
// puts a full collection scan on a request path.
type Scheduler struct {
	scoring *service.ScoringService
	spec    string
	c       *cron.Cron
}

func NewScheduler(scoring *service.ScoringService, spec string) *Scheduler {
	return &Scheduler{
		scoring: scoring,
		spec:    spec,
	}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	_, err := s.c.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.scoring.RefreshLeaderboard(ctx); err != nil {
			log.Printf("Leaderboard refresh failed: %v", err)
			return
		}
		log.Println("Leaderboard cache refreshed")
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Printf("Cron scheduler started (leaderboard refresh: %q)", s.spec)
	s.c.Start()
}

// Stop halts the scheduler, waiting for a running refresh to finish.
func (s *Scheduler) Stop() {
	if s.c != nil {
		<-s.c.Stop().Done()
	}
}
