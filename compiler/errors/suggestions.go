package errors

import (
	"strings"

	"github.com/adrg/strutil/metrics"
)

// SuggestionThreshold is the Jaro-Winkler similarity a keyword must exceed to
// be offered as a suggestion.
const SuggestionThreshold = 0.8

// Keywords is the vocabulary offered as "did you mean" suggestions. It is
// broader than the parsed grammar so that common SQL words still get hints.
var Keywords = []string{
	"SELECT", "FROM", "WHERE", "WITH", "RECURSIVE",
	"INSERT", "UPDATE", "DELETE", "UNION", "ALL",
	"AND", "OR", "AS", "JOIN", "LEFT",
	"RIGHT", "INNER", "OUTER", "ON", "GROUP",
	"ORDER", "BY", "HAVING", "LIMIT", "OFFSET",
}

var jaroWinkler = newJaroWinkler()

func newJaroWinkler() *metrics.JaroWinkler {
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = true
	return jw
}

// SuggestKeyword returns the keyword most similar to word, or "" if no keyword
// scores above SuggestionThreshold or the best score is shared by two keywords.
func SuggestKeyword(word string) string {
	if word == "" {
		return ""
	}

	upper := strings.ToUpper(word)
	best, bestScore, tied := "", 0.0, false

	for _, keyword := range Keywords {
		score := jaroWinkler.Compare(upper, keyword)
		switch {
		case score > bestScore:
			best, bestScore, tied = keyword, score, false
		case score == bestScore:
			tied = true
		}
	}

	if bestScore <= SuggestionThreshold || tied {
		return ""
	}
	return best
}
