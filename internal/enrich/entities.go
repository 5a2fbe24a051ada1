package enrich

import (
	"regexp"
	"strings"
)

// OwnerName extracts the owner name from a labeled field in the text.
// The first matching pattern wins; an empty result means no match.
func OwnerName(text string) string {
	return firstCapture(ownerRegexps, text)
}

// Location extracts the location from a labeled field in the text.
func Location(text string) string {
	return firstCapture(locationRegexps, text)
}

// LandType returns the first land-type category whose any keyword occurs
// in the text, in table-declared order. Empty result means no match.
func LandType(text string) string {
	haystack := strings.ToLower(text)
	for _, landType := range rules.LandTypes {
		for _, keyword := range landType.Keywords {
			if strings.Contains(haystack, keyword) {
				return landType.Name
			}
		}
	}
	return ""
}

func firstCapture(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		match := re.FindStringSubmatch(text)
		if len(match) > 1 {
			if captured := strings.TrimSpace(match[1]); captured != "" {
				return captured
			}
		}
	}
	return ""
}
