package listing

import (
	"sort"
	"strings"

	"scholarmate/discovery-service/internal/match"
	"scholarmate/discovery-service/internal/model"
)

// Filters are the optional query constraints accepted by GET /scholarships.
// Nil/empty fields are not applied.
type Filters struct {
	Category  string // case-insensitive substring over categories
	MinAmount *int
	MaxAmount *int
	Search    string // case-insensitive over title, description, organization, categories
}

// Scored is a stored scholarship annotated with its match score when the
// request carried a user profile.
type Scored struct {
	model.Scholarship
	MatchScore       *int     `json:"matchScore,omitempty"`
	SatisfiedFactors []string `json:"satisfiedFactors,omitempty"`
}

// Apply returns the scholarships matching every set filter, preserving the
// input order.
func Apply(items []model.Scholarship, f Filters) []model.Scholarship {
	out := make([]model.Scholarship, 0, len(items))
	for _, item := range items {
		if matches(&item, f) {
			out = append(out, item)
		}
	}
	return out
}

func matches(s *model.Scholarship, f Filters) bool {
	if f.Category != "" && !anyContains(s.Categories, f.Category) {
		return false
	}
	if f.MinAmount != nil && s.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && s.Amount > *f.MaxAmount {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Title), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) &&
			!strings.Contains(strings.ToLower(s.Organization), needle) &&
			!anyContains(s.Categories, needle) {
			return false
		}
	}
	return true
}

func anyContains(items []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}

// Rank scores every scholarship against profile and sorts descending by
// score. The sort is stable, so equally-scored entries keep store order
// (newest first).
func Rank(items []model.Scholarship, profile model.UserProfile) []Scored {
	scored := make([]Scored, 0, len(items))
	for _, item := range items {
		res := match.Score(profile, item.EligibilityCriteria)
		s := res.Score
		scored = append(scored, Scored{
			Scholarship:      item,
			MatchScore:       &s,
			SatisfiedFactors: res.SatisfiedFactors,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].MatchScore > *scored[j].MatchScore
	})
	return scored
}

// Wrap converts unscored scholarships into the response shape used when no
// profile accompanies the request.
func Wrap(items []model.Scholarship) []Scored {
	out := make([]Scored, 0, len(items))
	for _, item := range items {
		out = append(out, Scored{Scholarship: item})
	}
	return out
}
