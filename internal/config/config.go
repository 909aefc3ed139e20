// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// defaultSources are the public scholarship boards scraped when
// SCRAPE_SOURCES is not set.
var defaultSources = []string{
	"https://www.scholarships.com",
	"https://www.fastweb.com",
	"https://www.college-scholarships.com",
}

// Config holds all runtime configuration for the discovery service.
type Config struct {
	Port                string
	DatabaseURL         string
	RedisURL            string
	Sources             []string // general scholarship boards
	UniversitySources   []string // institutional pages, scraped with a longer delay
	ScrapeIntervalHours int      // how often the cron job fires
	ScrapeWorkers       int      // bounded number of concurrent source lanes
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	workers := 3
	if s := os.Getenv("SCRAPE_WORKERS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCRAPE_WORKERS must be a positive integer, got %q", s)
		}
		workers = v
	}

	sources := splitList(os.Getenv("SCRAPE_SOURCES"))
	if len(sources) == 0 {
		sources = defaultSources
	}

	port := os.Getenv("DISCOVERY_PORT")
	if port == "" {
		port = "8081"
	}

	return &Config{
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            redisURL,
		Sources:             sources,
		UniversitySources:   splitList(os.Getenv("UNIVERSITY_SOURCES")),
		ScrapeIntervalHours: interval,
		ScrapeWorkers:       workers,
	}, nil
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
