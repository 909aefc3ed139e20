// Package model defines shared data structures for the discovery service.
package model

// SourceEndpoint is one configured location to scrape scholarships from.
// HighSensitivity sources (university and other institutional pages) are
// fetched with a longer politeness delay.
type SourceEndpoint struct {
	URL             string
	HighSensitivity bool
}

// ScrapedScholarship is a normalised scholarship entry extracted from an
// external source. Title and Description are always non-empty; every other
// field degrades to a default rather than blocking ingestion.
type ScrapedScholarship struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Amount         int      `json:"amount"`   // 0 = unknown/unspecified
	Deadline       string   `json:"deadline"` // RFC 3339 when parseable, else raw source text
	Organization   string   `json:"organization"`
	ApplicationURL string   `json:"applicationUrl"`
	SourceURL      string   `json:"sourceUrl"`
	Requirements   []string `json:"requirements"`
	Eligibility    []string `json:"eligibility"`
	Categories     []string `json:"categories"`
}

// EligibilityCriteria are the structured constraints attached to a
// scholarship and consumed by the match scorer. A nil MinGPA means no GPA
// requirement; an empty RequiredMajors means open to all majors.
type EligibilityCriteria struct {
	MinGPA              *float64 `json:"minGpa,omitempty"`
	RequiredMajors      []string `json:"requiredMajors,omitempty"`
	PreferredActivities []string `json:"preferredActivities,omitempty"`
	DemographicCriteria []string `json:"demographicCriteria,omitempty"`
}

// Scholarship is a stored scholarship row: the scraped record plus its
// eligibility criteria and the database identifier.
type Scholarship struct {
	ID string `json:"id"`
	ScrapedScholarship
	EligibilityCriteria EligibilityCriteria `json:"eligibilityCriteria"`
}

// UserProfile carries the candidate attributes used for match scoring.
// It is read-only to the scorer.
type UserProfile struct {
	GPA          float64  `json:"gpa"`
	Major        string   `json:"major"`
	Activities   []string `json:"activities"`
	Demographics []string `json:"demographics"`
}

// MatchResult is the outcome of scoring one profile against one
// scholarship's criteria. SatisfiedFactors lists, in evaluation order, the
// name of every factor that contributed points.
type MatchResult struct {
	Score            int      `json:"score"`
	SatisfiedFactors []string `json:"satisfiedFactors"`
}
