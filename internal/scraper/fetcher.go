package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const httpTimeout = 15 * time.Second

// userAgent mimics a desktop browser; several scholarship boards serve an
// empty shell to unknown clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves and parses a single HTML page per source. It owns a
// shared HTTP client; callers bound each fetch with a context deadline.
type Fetcher struct {
	client *http.Client
}

// NewFetcher constructs a Fetcher with a shared HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: httpTimeout}}
}

// FetchDocument performs one GET against url and parses the response body.
// Any network error, context cancellation, or non-2xx status is returned as
// an error — the collector records it and moves on to the next source.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return doc, nil
}
