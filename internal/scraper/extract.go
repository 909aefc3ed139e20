package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultRecordSelector matches the markup shapes scholarship boards most
// commonly use to delimit one listing.
const DefaultRecordSelector = ".scholarship-item, .scholarship-card, .award-item, [data-scholarship]"

// Per-field fallback locators, tried in order — the first locator yielding
// non-empty text wins. The ordering encodes which markup patterns have
// proven most reliable across sources; do not reorder casually.
var (
	titleLocators        = []string{"h1", "h2", "h3", ".title", ".scholarship-title", "[data-title]"}
	descriptionLocators  = []string{".description", ".summary", ".scholarship-description", "p"}
	amountLocators       = []string{".amount", ".award", ".scholarship-amount", "[data-amount]"}
	deadlineLocators     = []string{".deadline", ".due-date", ".application-deadline", "[data-deadline]"}
	organizationLocators = []string{".organization", ".sponsor", ".provider", "[data-organization]"}
	applyLinkLocators    = []string{`a[href*="apply"]`, ".apply-link", "[data-apply-url]"}
	requirementLocators  = []string{".requirements li", ".criteria li", ".eligibility li", "[data-requirements] li"}
	eligibilityLocators  = []string{".eligibility li", ".qualification li", ".criteria li"}
	tagLocators          = []string{".tag", ".category", ".label", ".badge"}
)

// RawFieldSet holds the untyped text pulled for one record boundary, before
// normalisation. List fields may contain duplicates; the collector dedupes
// them when building the canonical record.
type RawFieldSet struct {
	Title        string
	Description  string
	AmountText   string
	DeadlineText string
	Organization string
	ApplyLink    string
	Requirements []string
	Eligibility  []string
	Tags         []string
}

// Extract pulls one RawFieldSet per record boundary found in doc.
// Field sets whose title or description is empty after trimming are
// discarded here, so nothing downstream ever sees a titleless record.
func Extract(doc *goquery.Document, recordSelector string) []RawFieldSet {
	var sets []RawFieldSet

	doc.Find(recordSelector).Each(func(_ int, sel *goquery.Selection) {
		fs := RawFieldSet{
			Title:        firstText(sel, titleLocators),
			Description:  firstText(sel, descriptionLocators),
			AmountText:   firstText(sel, amountLocators),
			DeadlineText: firstText(sel, deadlineLocators),
			Organization: firstText(sel, organizationLocators),
			ApplyLink:    firstHref(sel, applyLinkLocators),
			Requirements: itemTexts(sel, requirementLocators),
			Eligibility:  itemTexts(sel, eligibilityLocators),
			Tags:         itemTexts(sel, tagLocators),
		}
		if fs.Title == "" || fs.Description == "" {
			return
		}
		sets = append(sets, fs)
	})

	return sets
}

// firstText returns the trimmed text of the first locator that matches a
// non-empty element under sel.
func firstText(sel *goquery.Selection, locators []string) string {
	for _, loc := range locators {
		if text := strings.TrimSpace(sel.Find(loc).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstHref returns the href of the first locator matching an anchor with a
// non-empty href under sel.
func firstHref(sel *goquery.Selection, locators []string) string {
	for _, loc := range locators {
		if href, ok := sel.Find(loc).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

// itemTexts collects trimmed item text from every locator, in locator order.
// Overlapping locators (e.g. ".criteria li" under both requirement and
// eligibility lists) can repeat items — duplicates survive here on purpose.
func itemTexts(sel *goquery.Selection, locators []string) []string {
	var items []string
	for _, loc := range locators {
		sel.Find(loc).Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				items = append(items, text)
			}
		})
	}
	return items
}
