// Package match implements the eligibility scoring used to rank
// scholarships against a candidate profile.
//
// The score is additive, capped at 100, and auditable: every point awarded
// maps to exactly one named factor in MatchResult.SatisfiedFactors, which is
// what lets the UI answer "why did I match".
package match

import "scholarmate/discovery-service/internal/model"

// Factor labels recorded in MatchResult.SatisfiedFactors, in evaluation order.
const (
	FactorGPA         = "GPA requirement met"
	FactorMajor       = "Major alignment"
	FactorDemographic = "Demographic criteria"
	FactorActivity    = "Activity alignment"
)

const (
	gpaPoints         = 25
	majorPoints       = 30
	demographicPoints = 20
	activityPointsPer = 5
	activityPointsCap = 25
	maxScore          = 100
)

// Score computes the compatibility score for one (profile, criteria) pair.
// It is a pure function, total over any well-formed input, and safe for
// concurrent use.
func Score(profile model.UserProfile, criteria model.EligibilityCriteria) model.MatchResult {
	score := 0
	factors := []string{}

	if criteria.MinGPA != nil && profile.GPA >= *criteria.MinGPA {
		score += gpaPoints
		factors = append(factors, FactorGPA)
	}

	// Empty RequiredMajors means "open to all majors" and contributes
	// nothing — it is not a default pass.
	if len(criteria.RequiredMajors) > 0 && contains(criteria.RequiredMajors, profile.Major) {
		score += majorPoints
		factors = append(factors, FactorMajor)
	}

	// Non-empty on both sides is the whole check — no intersection is
	// computed. Rankings already shipped to clients depend on this, so it
	// stays until product says otherwise.
	if len(criteria.DemographicCriteria) > 0 && len(profile.Demographics) > 0 {
		score += demographicPoints
		factors = append(factors, FactorDemographic)
	}

	if overlap := intersectionSize(profile.Activities, criteria.PreferredActivities); overlap > 0 {
		points := overlap * activityPointsPer
		if points > activityPointsCap {
			points = activityPointsCap
		}
		score += points
		factors = append(factors, FactorActivity)
	}

	if score > maxScore {
		score = maxScore
	}

	return model.MatchResult{Score: score, SatisfiedFactors: factors}
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func intersectionSize(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, item := range b {
		set[item] = struct{}{}
	}
	n := 0
	for _, item := range a {
		if _, ok := set[item]; ok {
			n++
			delete(set, item) // count each preferred activity once
		}
	}
	return n
}
