// Package scheduler keeps cached forecasts fresh in the background.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Warmer recomputes cached results.
type Warmer interface {
	WarmCache(ctx context.Context) error
}

// CacheWarmer runs a Warmer on a fixed interval.
type CacheWarmer struct {
	warmer   Warmer
	interval time.Duration
}

func NewCacheWarmer(warmer Warmer, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{warmer: warmer, interval: interval}
}

// RunOnce warms the cache a single time.
func (c *CacheWarmer) RunOnce(ctx context.Context) error {
	start := time.Now()
	if err := c.warmer.WarmCache(ctx); err != nil {
		return err
	}
	log.Printf("Cache warmed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Start schedules the warmer (first run immediately) and blocks until ctx is
// cancelled.
func (c *CacheWarmer) Start(ctx context.Context) error {
	if c.interval <= 0 {
		return fmt.Errorf("warm interval must be positive, got %v", c.interval)
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	_, err := s.Every(c.interval).Do(func() {
		if err := c.RunOnce(ctx); err != nil {
			log.Printf("Warning: scheduled cache warm failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling cache warmer: %w", err)
	}

	log.Printf("Cache warmer running every %v", c.interval)
	s.StartAsync()

	<-ctx.Done()

	s.Stop()
	log.Println("Cache warmer stopped")
	return nil
}
