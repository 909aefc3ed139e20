// Package scraper implements scholarship fetching, extraction,
// normalisation, classification and ingestion.
package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scholarmate/discovery-service/internal/model"
)

const (
	defaultSourceDelay    = 2 * time.Second
	defaultSensitiveDelay = 3 * time.Second // institutional pages get more headroom
	defaultFetchTimeout   = 15 * time.Second
	defaultMaxWorkers     = 3
)

// SourceError records one failed source within a collection batch.
type SourceError struct {
	URL string
	Err error
}

func (e SourceError) Error() string { return fmt.Sprintf("%s: %v", e.URL, e.Err) }

// Options tunes one collection batch. Zero values fall back to the
// conservative defaults above.
type Options struct {
	SourceDelay    time.Duration // politeness delay between consecutive requests on one lane
	SensitiveDelay time.Duration // delay used for high-sensitivity sources
	FetchTimeout   time.Duration // per-source fetch deadline
	MaxWorkers     int           // number of concurrent source lanes
	RecordSelector string        // record boundary selector passed to Extract
}

func (o Options) withDefaults() Options {
	if o.SourceDelay <= 0 {
		o.SourceDelay = defaultSourceDelay
	}
	if o.SensitiveDelay <= 0 {
		o.SensitiveDelay = defaultSensitiveDelay
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = defaultFetchTimeout
	}
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = defaultMaxWorkers
	}
	if o.RecordSelector == "" {
		o.RecordSelector = DefaultRecordSelector
	}
	return o
}

// Collector runs the fetch → extract → normalise → classify pass over a
// batch of sources.
type Collector struct {
	fetcher *Fetcher
	opts    Options
}

// NewCollector constructs a Collector. opts fields left zero take defaults.
func NewCollector(fetcher *Fetcher, opts Options) *Collector {
	return &Collector{fetcher: fetcher, opts: opts.withDefaults()}
}

// Collect scrapes every source and returns the canonical records plus one
// SourceError per failed source. Sources are spread across bounded lane
// workers; each lane waits the politeness delay between its own consecutive
// requests, so parallelism never bypasses politeness. No single source
// failure is fatal — a broken source is recorded and the batch continues.
func (c *Collector) Collect(ctx context.Context, sources []model.SourceEndpoint) ([]model.ScrapedScholarship, []SourceError) {
	var (
		mu       sync.Mutex
		records  []model.ScrapedScholarship
		failures []SourceError
	)

	lanes := c.opts.MaxWorkers
	if lanes > len(sources) {
		lanes = len(sources)
	}
	if lanes == 0 {
		return nil, nil
	}

	feed := make(chan model.SourceEndpoint)
	var g errgroup.Group

	for i := 0; i < lanes; i++ {
		g.Go(func() error {
			first := true
			for src := range feed {
				if !first {
					select {
					case <-time.After(c.delayFor(src)):
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				first = false

				recs, err := c.collectSource(ctx, src)
				mu.Lock()
				if err != nil {
					failures = append(failures, SourceError{URL: src.URL, Err: err})
					log.Printf("[collector] Source %s failed: %v — continuing", src.URL, err)
				} else {
					records = append(records, recs...)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	go func() {
		defer close(feed)
		for _, src := range sources {
			select {
			case feed <- src:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := g.Wait(); err != nil {
		log.Printf("[collector] Batch interrupted: %v", err)
	}

	return records, failures
}

// collectSource runs one full pass for a single source under a fetch
// deadline. A timeout counts as a source failure like any other.
func (c *Collector) collectSource(ctx context.Context, src model.SourceEndpoint) ([]model.ScrapedScholarship, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	doc, err := c.fetcher.FetchDocument(fetchCtx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	sets := Extract(doc, c.opts.RecordSelector)
	records := make([]model.ScrapedScholarship, 0, len(sets))
	for _, fs := range sets {
		records = append(records, buildRecord(fs, src.URL))
	}
	return records, nil
}

// delayFor picks the politeness delay for the source about to be fetched.
func (c *Collector) delayFor(src model.SourceEndpoint) time.Duration {
	if src.HighSensitivity || isInstitutional(src.URL) {
		return c.opts.SensitiveDelay
	}
	return c.opts.SourceDelay
}

// isInstitutional flags university-style hosts so they get the longer delay
// even when not explicitly marked in configuration.
func isInstitutional(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return strings.HasSuffix(host, ".edu") || strings.Contains(host, ".edu.") || strings.Contains(host, ".ac.")
}

// buildRecord normalises one RawFieldSet into the canonical record shape.
// Title and description are guaranteed non-empty by Extract; everything
// else degrades to a default instead of rejecting the record.
func buildRecord(fs RawFieldSet, sourceURL string) model.ScrapedScholarship {
	applyURL := fs.ApplyLink
	if applyURL == "" {
		applyURL = sourceURL
	}

	organization := fs.Organization
	if organization == "" {
		organization = "Unknown Organization"
	}

	return model.ScrapedScholarship{
		Title:          fs.Title,
		Description:    fs.Description,
		Amount:         NormalizeAmount(fs.AmountText),
		Deadline:       NormalizeDeadline(fs.DeadlineText),
		Organization:   organization,
		ApplicationURL: applyURL,
		SourceURL:      sourceURL,
		Requirements:   Dedupe(fs.Requirements),
		Eligibility:    Dedupe(fs.Eligibility),
		Categories:     Classify(fs.Tags, fs.Title, fs.Description),
	}
}
