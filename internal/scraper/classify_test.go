package scraper_test

import (
	"reflect"
	"testing"

	"scholarmate/discovery-service/internal/scraper"
)

func containsCategory(cats []string, want string) bool {
	for _, c := range cats {
		if c == want {
			return true
		}
	}
	return false
}

func TestClassify_KeywordInference(t *testing.T) {
	got := scraper.Classify(nil,
		"AI Research Scholarship",
		"Supporting computer students pursuing advanced research.",
	)
	if !containsCategory(got, "STEM") {
		t.Errorf("Classify(AI Research Scholarship) = %v, want STEM included", got)
	}
}

func TestClassify_StableAcrossCalls(t *testing.T) {
	first := scraper.Classify(nil, "AI Research Scholarship", "computer science research")
	for i := 0; i < 10; i++ {
		again := scraper.Classify(nil, "AI Research Scholarship", "computer science research")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Classify not stable: first %v, call %d %v", first, i, again)
		}
	}
}

func TestClassify_ExplicitTagsKeptVerbatim(t *testing.T) {
	got := scraper.Classify([]string{"Merit-Based", "  Need-Based  "}, "General Fund", "An award for everyone.")
	if !containsCategory(got, "Merit-Based") {
		t.Errorf("Classify = %v, want explicit tag Merit-Based kept verbatim", got)
	}
	if !containsCategory(got, "Need-Based") {
		t.Errorf("Classify = %v, want trimmed explicit tag Need-Based kept", got)
	}
}

func TestClassify_MultipleCategories(t *testing.T) {
	got := scraper.Classify(nil,
		"Community Leaders in Healthcare",
		"For student leaders volunteering in medical settings.",
	)
	for _, want := range []string{"Healthcare", "Leadership", "Community Service"} {
		if !containsCategory(got, want) {
			t.Errorf("Classify = %v, want %s included", got, want)
		}
	}
}

func TestClassify_NoMatchesYieldsOnlyTags(t *testing.T) {
	got := scraper.Classify([]string{"General"}, "Annual Award", "An award given annually.")
	if !reflect.DeepEqual(got, []string{"General"}) {
		t.Errorf("Classify = %v, want [General] only", got)
	}
}

func TestClassify_DeduplicatesTagAndInference(t *testing.T) {
	// "STEM" arrives both as an explicit tag and via keyword inference;
	// it must appear once.
	got := scraper.Classify([]string{"STEM"}, "Engineering Grant", "For engineering undergraduates.")
	seen := 0
	for _, c := range got {
		if c == "STEM" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Classify = %v, want STEM exactly once, got %d", got, seen)
	}
}
