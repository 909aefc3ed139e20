// Package listing implements the HTTP query surface over stored
// scholarships.
//
// Routes:
//
//	GET  /scholarships  → filtered listing; when a userProfile query param is
//	                      present, each entry is match-scored and the result
//	                      is sorted descending by score
//	POST /scholarships  → ingest one scholarship out-of-band (same dedupe
//	                      path as the scrape worker)
package listing

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"scholarmate/discovery-service/internal/model"
	"scholarmate/discovery-service/internal/store"
)

// Handler holds shared dependencies for the listing routes.
type Handler struct {
	store *store.Store
}

// NewHandler returns a configured Handler.
func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes mounts the listing routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/scholarships", h.handleScholarships)
}

func (h *Handler) handleScholarships(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listScholarships(w, r)
	case http.MethodPost:
		h.createScholarship(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── GET /scholarships ───────────────────────────────────────────────────────

func (h *Handler) listScholarships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := Filters{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}

	var err error
	if filters.MinAmount, err = optionalInt(q.Get("minAmount")); err != nil {
		jsonError(w, "minAmount must be an integer", http.StatusBadRequest)
		return
	}
	if filters.MaxAmount, err = optionalInt(q.Get("maxAmount")); err != nil {
		jsonError(w, "maxAmount must be an integer", http.StatusBadRequest)
		return
	}

	var profile *model.UserProfile
	if raw := q.Get("userProfile"); raw != "" {
		profile = &model.UserProfile{}
		if err := json.Unmarshal([]byte(raw), profile); err != nil {
			jsonError(w, "userProfile must be valid JSON", http.StatusBadRequest)
			return
		}
	}

	items, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("[listing] List query error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	items = Apply(items, filters)

	var results []Scored
	if profile != nil {
		results = Rank(items, *profile)
	} else {
		results = Wrap(items)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scholarships": results,
		"total":        len(results),
		"message":      "Scholarships retrieved successfully",
	})
}

// ─── POST /scholarships ──────────────────────────────────────────────────────

// ingestPayload is the POST body: a scraped record plus optional criteria.
type ingestPayload struct {
	model.ScrapedScholarship
	EligibilityCriteria model.EligibilityCriteria `json:"eligibilityCriteria"`
}

func (h *Handler) createScholarship(w http.ResponseWriter, r *http.Request) {
	var payload ingestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	payload.Title = strings.TrimSpace(payload.Title)
	payload.Description = strings.TrimSpace(payload.Description)
	if payload.Title == "" || payload.Description == "" {
		jsonError(w, "title and description are required", http.StatusBadRequest)
		return
	}

	id, inserted, err := h.store.Upsert(r.Context(), payload.ScrapedScholarship, payload.EligibilityCriteria)
	if err != nil {
		log.Printf("[listing] Upsert error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	if !inserted {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Scholarship already exists",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Scholarship saved successfully",
		"id":      id,
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[listing] Encode response error: %v", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
