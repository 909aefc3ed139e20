// scholarmate-discovery-service
//
// Ingests scholarship listings from configured external sources
// (fetch → extract → normalise → classify → dedupe → store) on a cron
// schedule, and serves the match-scored listing API consumed by the
// dashboard.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scholarmate/discovery-service/internal/config"
	"scholarmate/discovery-service/internal/db"
	"scholarmate/discovery-service/internal/listing"
	"scholarmate/discovery-service/internal/model"
	"scholarmate/discovery-service/internal/scheduler"
	"scholarmate/discovery-service/internal/scraper"
	"scholarmate/discovery-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[discovery-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[discovery-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[discovery-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[discovery-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[discovery-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[discovery-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[discovery-service] Redis connected ✓")

	// ── Scrape pipeline ──────────────────────────────────────────────────────
	st := store.New(pool)
	collector := scraper.NewCollector(scraper.NewFetcher(), scraper.Options{
		MaxWorkers: cfg.ScrapeWorkers,
	})
	worker := scraper.NewWorker(st, rdb, collector)

	sched := scheduler.New(worker, endpoints(cfg), cfg.ScrapeIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[discovery-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	listing.NewHandler(st).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[discovery-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[discovery-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[discovery-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[discovery-service] Shutdown error: %v", err)
	}
	log.Println("[discovery-service] Stopped.")
}

// endpoints merges the general and university source lists; university pages
// are flagged high-sensitivity so the collector uses the longer delay.
func endpoints(cfg *config.Config) []model.SourceEndpoint {
	out := make([]model.SourceEndpoint, 0, len(cfg.Sources)+len(cfg.UniversitySources))
	for _, u := range cfg.Sources {
		out = append(out, model.SourceEndpoint{URL: u})
	}
	for _, u := range cfg.UniversitySources {
		out = append(out, model.SourceEndpoint{URL: u, HighSensitivity: true})
	}
	return out
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "discovery-service",
		"version": version,
	})
}
