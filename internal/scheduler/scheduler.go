// Package scheduler wires up the cron job that periodically triggers a
// scrape cycle over the configured sources.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"scholarmate/discovery-service/internal/model"
	"scholarmate/discovery-service/internal/scraper"
)

// Scheduler wraps robfig/cron and manages the scrape loop.
type Scheduler struct {
	cron    *cron.Cron
	worker  *scraper.Worker
	sources []model.SourceEndpoint
	spec    string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(worker *scraper.Worker, sources []model.SourceEndpoint, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		worker:  worker,
		sources: sources,
		spec:    fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one scrape
// immediately so listings are populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScrape(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runScrape(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runScrape executes one worker cycle over all configured sources.
func (s *Scheduler) runScrape(ctx context.Context) {
	if len(s.sources) == 0 {
		log.Println("[scheduler] No sources configured — nothing to scrape")
		return
	}

	log.Printf("[scheduler] Scrape cycle started for %d source(s)", len(s.sources))
	if err := s.worker.Run(ctx, s.sources); err != nil {
		log.Printf("[scheduler] Worker error: %v", err)
	}
	log.Println("[scheduler] Scrape cycle complete")
}
