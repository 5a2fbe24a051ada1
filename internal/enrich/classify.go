package enrich

import "strings"

// Classify maps extracted text plus title to one document category via
// keyword scoring. Each keyword of a category contributes one point when
// it appears as a substring of the case-normalized text; the strictly
// highest score wins, ties keep the earlier-declared category, and a
// zero maximum yields the fallback category.
func Classify(text, title string) string {
	haystack := strings.ToLower(text) + " " + strings.ToLower(title)

	best := rules.FallbackCategory
	maxScore := 0
	for _, category := range rules.Categories {
		score := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(haystack, keyword) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = category.Name
		}
	}
	return best
}
