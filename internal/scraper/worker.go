package scraper

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"scholarmate/discovery-service/internal/model"
	"scholarmate/discovery-service/internal/store"
)

// Worker runs a full scrape cycle: collect from every configured source,
// upsert the results (deduplicated by source_url + title), and publish an
// update event for downstream consumers.
type Worker struct {
	store     *store.Store
	rdb       *redis.Client
	collector *Collector
}

// NewWorker constructs a Worker.
func NewWorker(st *store.Store, rdb *redis.Client, collector *Collector) *Worker {
	return &Worker{store: st, rdb: rdb, collector: collector}
}

// Run executes one scrape cycle over the given sources. Failed sources have
// already been logged and skipped by the collector; Run only returns an
// error when the batch produced nothing storable at all.
func (w *Worker) Run(ctx context.Context, sources []model.SourceEndpoint) error {
	log.Printf("[worker] Starting scrape cycle for %d source(s)", len(sources))

	records, failures := w.collector.Collect(ctx, sources)

	var inserted, dupes, failed int
	for _, rec := range records {
		_, ok, err := w.store.Upsert(ctx, rec, model.EligibilityCriteria{})
		if err != nil {
			log.Printf("[worker] Upsert error for %q: %v", rec.Title, err)
			failed++
			continue
		}
		if ok {
			inserted++
		} else {
			dupes++
		}
	}

	log.Printf("[worker] Cycle done — sources=%d failedSources=%d inserted=%d duplicates=%d insertErrors=%d",
		len(sources), len(failures), inserted, dupes, failed)

	// Notify listeners so cached listings refresh (non-fatal).
	if inserted > 0 && w.rdb != nil {
		event, _ := json.Marshal(map[string]interface{}{
			"type":     "EVENT_SCHOLARSHIPS_UPDATED",
			"inserted": inserted,
			"sources":  len(sources),
		})
		if err := w.rdb.Publish(ctx, "EVENT_SCHOLARSHIPS_UPDATED", event).Err(); err != nil {
			slog.Warn("publish EVENT_SCHOLARSHIPS_UPDATED failed", "err", err)
		}
	}

	return nil
}
