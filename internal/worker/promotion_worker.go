// Package worker runs background jobs.
package worker

import (
	"context"
	"log"
	"time"
)

// Sweeper clears expired promotions and reports how many it cleared.
type Sweeper interface {
	SweepExpiredPromotions(ctx context.Context) (int64, error)
}

// PromotionWorker periodically expires restaurant promotions.
type PromotionWorker struct {
	sweeper  Sweeper
	interval time.Duration
}

func NewPromotionWorker(sweeper Sweeper, interval time.Duration) *PromotionWorker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &PromotionWorker{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Run sweeps once per interval until ctx is cancelled.
func (w *PromotionWorker) Run(ctx context.Context) {
	log.Printf("Starting promotion worker, interval %s", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Promotion worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *PromotionWorker) sweep(ctx context.Context) {
	cleared, err := w.sweeper.SweepExpiredPromotions(ctx)
	if err != nil {
		log.Printf("Error sweeping expired promotions: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("Expired %d restaurant promotion(s)", cleared)
	}
}
