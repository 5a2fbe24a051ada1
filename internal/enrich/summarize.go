package enrich

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxSummaryLen   = 150
	maxSummaryParts = 3
)

// Summarize derives a bounded human-readable summary from text. Short or
// empty text yields a templated string embedding the title; otherwise the
// first up-to-three sentence spans are joined and truncated to 150
// characters with an ellipsis marker.
func Summarize(text, title string) string {
	if utf8.RuneCountInString(text) < 20 {
		return "وثيقة بعنوان: " + title
	}

	var sentences []string
	for _, span := range splitSentences(text) {
		trimmed := strings.TrimSpace(span)
		if utf8.RuneCountInString(trimmed) > 10 {
			sentences = append(sentences, trimmed)
		}
	}

	if len(sentences) == 0 {
		return fmt.Sprintf("وثيقة %s تحتوي على %d كلمة", title, len(strings.Fields(text)))
	}

	n := len(sentences)
	if n > maxSummaryParts {
		n = maxSummaryParts
	}
	summary := strings.Join(sentences[:n], ". ")

	if utf8.RuneCountInString(summary) > maxSummaryLen {
		summary = string([]rune(summary)[:maxSummaryLen-3]) + "..."
	}
	return summary
}

// splitSentences splits on Latin, Arabic and Devanagari sentence
// terminators.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '۔', '।', '!', '؟':
			return true
		}
		return false
	})
}
