package enrich

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const maxKeywords = 7

var keywordPunct = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "", "(", "", ")", "",
)

// Keywords derives a ranked keyword list from text: whitespace tokens,
// punctuation-stripped, stop words and short tokens removed, ordered by
// descending frequency with first-appearance tie-break, capped at 7.
// Input shorter than 10 characters yields no keywords.
func Keywords(text string) []string {
	if utf8.RuneCountInString(text) < 10 {
		return nil
	}

	type entry struct {
		word  string
		count int
	}
	index := make(map[string]*entry)
	var order []*entry

	for _, token := range strings.Fields(text) {
		word := strings.TrimSpace(keywordPunct.Replace(token))
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, stop := stopWords[strings.ToLower(word)]; stop {
			continue
		}
		e, ok := index[word]
		if !ok {
			e = &entry{word: word}
			index[word] = e
			order = append(order, e)
		}
		e.count++
	}

	// Stable sort keeps first-appearance order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	n := len(order)
	if n > maxKeywords {
		n = maxKeywords
	}
	out := make([]string, 0, n)
	for _, e := range order[:n] {
		out = append(out, e.word)
	}
	return out
}
