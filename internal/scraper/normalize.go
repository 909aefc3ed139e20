package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonAmountRunes = regexp.MustCompile(`[^0-9.,]`)

// ParseAmount converts a raw monetary string ("$25,000", "Award: 1,500.50")
// into a whole-dollar amount. The second return value is false when the text
// carries no parseable number — range and "full tuition" style phrasing
// collapses to (0, false) so callers can distinguish "zero dollars" from
// "amount unknown".
func ParseAmount(s string) (int, bool) {
	clean := nonAmountRunes.ReplaceAllString(s, "")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return int(v), true
}

// NormalizeAmount is ParseAmount with the unknown sentinel collapsed to 0,
// matching the stored record shape.
func NormalizeAmount(s string) int {
	v, _ := ParseAmount(s)
	return v
}

// deadlinePatterns are tried in order; the first pattern that matches AND
// parses to a valid calendar date wins. Order matters — it mirrors how often
// each textual form shows up in source markup.
var deadlinePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`), "1/2/2006"},            // MM/DD/YYYY
	{regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`), "1-2-2006"},            // MM-DD-YYYY
	{regexp.MustCompile(`[A-Za-z]+ \d{1,2}, \d{4}`), "January 2, 2006"},  // Month DD, YYYY
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},              // ISO 8601
}

// NormalizeDeadline converts raw deadline text into an RFC 3339 UTC instant
// when one of the supported date forms appears anywhere in it. Unrecognised
// text is returned unchanged, so a deadline is always "RFC 3339 or opaque
// string" — callers must handle both. Running the result through again is a
// no-op either way.
func NormalizeDeadline(s string) string {
	for _, p := range deadlinePatterns {
		match := p.re.FindString(s)
		if match == "" {
			continue
		}
		t, err := time.Parse(p.layout, match)
		if err != nil {
			continue
		}
		return t.UTC().Format(time.RFC3339)
	}
	return s
}

// Dedupe removes exact (case-sensitive) duplicates, keeping the first
// occurrence of each item.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
