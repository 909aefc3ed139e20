package scraper

import "strings"

// categoryTaxonomy maps each topical category to the lowercase substrings
// that trigger it. It is built once and shared read-only across concurrent
// collector workers; the slice keeps classification output deterministic.
var categoryTaxonomy = []struct {
	name     string
	triggers []string
}{
	{"STEM", []string{"stem", "science", "technology", "engineering", "math", "computer"}},
	{"Arts", []string{"art", "music", "creative", "design", "theater", "dance"}},
	{"Business", []string{"business", "entrepreneurship", "management", "finance", "economics"}},
	{"Healthcare", []string{"medical", "nursing", "health", "medicine", "healthcare"}},
	{"Education", []string{"teaching", "education", "educator", "teacher"}},
	{"Leadership", []string{"leadership", "leader", "president", "captain"}},
	{"Community Service", []string{"volunteer", "community", "service", "nonprofit"}},
	{"Athletics", []string{"athletic", "sports", "team", "player", "fitness"}},
	{"Diversity", []string{"diversity", "minority", "women", "first-generation", "underrepresented"}},
}

// Classify returns the union of explicit tag text (verbatim, trimmed) and
// every taxonomy category whose trigger substrings appear anywhere in the
// lowercased title + description. The result is deduplicated; same input
// always yields the same output.
func Classify(explicitTags []string, title, description string) []string {
	categories := make([]string, 0, len(explicitTags))
	for _, tag := range explicitTags {
		if t := strings.TrimSpace(tag); t != "" {
			categories = append(categories, t)
		}
	}

	text := strings.ToLower(title + " " + description)
	for _, cat := range categoryTaxonomy {
		for _, trigger := range cat.triggers {
			if strings.Contains(text, trigger) {
				categories = append(categories, cat.name)
				break
			}
		}
	}

	return Dedupe(categories)
}
