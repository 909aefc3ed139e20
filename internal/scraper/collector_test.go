package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scholarmate/discovery-service/internal/model"
	"scholarmate/discovery-service/internal/scraper"
)

const fixturePage = `
	<html><body>
	<div class="scholarship-card">
		<h2>Tech Innovators Scholarship</h2>
		<div class="description">Supporting technology students.</div>
		<span class="amount">$25,000</span>
		<span class="deadline">12/31/2024</span>
	</div>
	</body></html>`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(fixturePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fastOptions() scraper.Options {
	return scraper.Options{
		SourceDelay:    time.Millisecond,
		SensitiveDelay: time.Millisecond,
		FetchTimeout:   time.Second,
		MaxWorkers:     2,
	}
}

// ── Failure isolation ──────────────────────────────────────────────────────

func TestCollect_FailingSourceDoesNotAbortBatch(t *testing.T) {
	good := fixtureServer(t)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)

	c := scraper.NewCollector(scraper.NewFetcher(), fastOptions())
	records, failures := c.Collect(context.Background(), []model.SourceEndpoint{
		{URL: bad.URL},
		{URL: good.URL},
	})

	if len(records) != 1 {
		t.Fatalf("Collect returned %d records, want 1 from the healthy source", len(records))
	}
	if len(failures) != 1 {
		t.Fatalf("Collect recorded %d failures, want 1", len(failures))
	}
	if failures[0].URL != bad.URL {
		t.Errorf("failure URL = %q, want %q", failures[0].URL, bad.URL)
	}
}

func TestCollect_TimedOutSourceIsFailed(t *testing.T) {
	good := fixtureServer(t)
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(fixturePage))
	}))
	t.Cleanup(slow.Close)

	opts := fastOptions()
	opts.FetchTimeout = 50 * time.Millisecond

	c := scraper.NewCollector(scraper.NewFetcher(), opts)
	records, failures := c.Collect(context.Background(), []model.SourceEndpoint{
		{URL: slow.URL},
		{URL: good.URL},
	})

	if len(records) != 1 {
		t.Errorf("Collect returned %d records, want 1 (slow source skipped)", len(records))
	}
	if len(failures) != 1 || failures[0].URL != slow.URL {
		t.Errorf("failures = %v, want exactly the slow source", failures)
	}
}

// ── Record building ────────────────────────────────────────────────────────

func TestCollect_NormalisesAndDefaultsFields(t *testing.T) {
	srv := fixtureServer(t)

	c := scraper.NewCollector(scraper.NewFetcher(), fastOptions())
	records, failures := c.Collect(context.Background(), []model.SourceEndpoint{{URL: srv.URL}})

	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(records) != 1 {
		t.Fatalf("Collect returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Title != "Tech Innovators Scholarship" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Amount != 25000 {
		t.Errorf("Amount = %d, want 25000", rec.Amount)
	}
	if rec.Deadline != "2024-12-31T00:00:00Z" {
		t.Errorf("Deadline = %q, want RFC 3339", rec.Deadline)
	}
	if rec.Organization != "Unknown Organization" {
		t.Errorf("Organization = %q, want the unknown sentinel", rec.Organization)
	}
	if rec.ApplicationURL != srv.URL {
		t.Errorf("ApplicationURL = %q, want fallback to the source URL", rec.ApplicationURL)
	}
	if rec.SourceURL != srv.URL {
		t.Errorf("SourceURL = %q, want %q", rec.SourceURL, srv.URL)
	}

	foundSTEM := false
	for _, cat := range rec.Categories {
		if cat == "STEM" {
			foundSTEM = true
		}
	}
	if !foundSTEM {
		t.Errorf("Categories = %v, want STEM inferred from description", rec.Categories)
	}
}

// ── Politeness ─────────────────────────────────────────────────────────────

func TestCollect_LaneDelayBetweenConsecutiveRequests(t *testing.T) {
	srv := fixtureServer(t)

	opts := fastOptions()
	opts.MaxWorkers = 1
	opts.SourceDelay = 60 * time.Millisecond

	sources := []model.SourceEndpoint{
		{URL: srv.URL + "/a"},
		{URL: srv.URL + "/b"},
		{URL: srv.URL + "/c"},
	}

	c := scraper.NewCollector(scraper.NewFetcher(), opts)
	start := time.Now()
	records, failures := c.Collect(context.Background(), sources)
	elapsed := time.Since(start)

	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(records) != 3 {
		t.Fatalf("Collect returned %d records, want 3", len(records))
	}
	// Three requests on one lane → two inter-request delays.
	if elapsed < 120*time.Millisecond {
		t.Errorf("Collect finished in %v, want at least 120ms of politeness delay", elapsed)
	}
}

func TestCollect_CancelledContextStopsBatch(t *testing.T) {
	srv := fixtureServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := scraper.NewCollector(scraper.NewFetcher(), fastOptions())
	records, _ := c.Collect(ctx, []model.SourceEndpoint{{URL: srv.URL}})

	if len(records) != 0 {
		t.Errorf("Collect returned %d records under a cancelled context, want 0", len(records))
	}
}

func TestCollect_NoSources(t *testing.T) {
	c := scraper.NewCollector(scraper.NewFetcher(), fastOptions())
	records, failures := c.Collect(context.Background(), nil)
	if len(records) != 0 || len(failures) != 0 {
		t.Errorf("Collect(nil) = %d records, %d failures; want none", len(records), len(failures))
	}
}
