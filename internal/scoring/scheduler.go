package scoring

import (
	"context"
	"log"
	"time"
)

// Scheduler periodically refreshes stored scores so cached totals
// converge even when profiles change without an explicit recompute
type Scheduler struct {
	service  Service
	interval time.Duration
}

func NewScheduler(service Service, interval time.Duration) *Scheduler {
	return &Scheduler{service: service, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.service.RecomputeAll(ctx); err != nil {
				log.Printf("Batch score recompute failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
