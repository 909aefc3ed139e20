// Package store persists scraped scholarships in PostgreSQL.
//
// Schema (see schema.sql):
//
//	scholarships (
//	  id uuid PK, title, description, amount, deadline, organization,
//	  application_url, source_url, requirements text[], eligibility text[],
//	  categories text[], eligibility_criteria jsonb, created_at, updated_at
//	)
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scholarmate/discovery-service/internal/model"
)

// Store wraps the pgx pool with scholarship-specific queries.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Upsert inserts rec unless a row with the same (source_url, title) already
// exists. Returns the new row id and inserted=true on insert, or ("", false)
// when the record was a duplicate.
func (s *Store) Upsert(ctx context.Context, rec model.ScrapedScholarship, criteria model.EligibilityCriteria) (string, bool, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scholarships
		   (title, description, amount, deadline, organization, application_url,
		    source_url, requirements, eligibility, categories, eligibility_criteria)
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		 WHERE NOT EXISTS (
		   SELECT 1 FROM scholarships WHERE source_url = $7 AND title = $1
		 )
		 RETURNING id`,
		rec.Title, rec.Description, rec.Amount, rec.Deadline, rec.Organization,
		rec.ApplicationURL, rec.SourceURL, rec.Requirements, rec.Eligibility,
		rec.Categories, criteria,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("upsert scholarship: %w", err)
	}
	return id, true, nil
}

// List returns every stored scholarship, newest first.
func (s *Store) List(ctx context.Context) ([]model.Scholarship, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, amount, deadline, organization,
		        application_url, source_url, requirements, eligibility,
		        categories, eligibility_criteria
		 FROM scholarships
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	defer rows.Close()

	items := make([]model.Scholarship, 0)
	for rows.Next() {
		var sch model.Scholarship
		if err := rows.Scan(
			&sch.ID, &sch.Title, &sch.Description, &sch.Amount, &sch.Deadline,
			&sch.Organization, &sch.ApplicationURL, &sch.SourceURL,
			&sch.Requirements, &sch.Eligibility, &sch.Categories,
			&sch.EligibilityCriteria,
		); err != nil {
			return nil, fmt.Errorf("scan scholarship: %w", err)
		}
		items = append(items, sch)
	}
	return items, rows.Err()
}
