package presentation

import (
	"strings"
	"unicode/utf8"
)

const (
	maxSuggestions     = 5
	minSuggestionQuery = 3
)

var cities = []string{
	"London, UK",
	"New York, US",
	"Tokyo, JP",
	"Paris, FR",
	"Sydney, AU",
	"Berlin, DE",
	"Moscow, RU",
	"Beijing, CN",
	"Mumbai, IN",
	"Cairo, EG",
	"Los Angeles, US",
	"Chicago, US",
	"Toronto, CA",
	"Mexico City, MX",
	"São Paulo, BR",
	"Buenos Aires, AR",
	"Lagos, NG",
	"Istanbul, TR",
}

type Suggestion struct {
	Label string `json:"label"`
	City  string `json:"city"`
}

// Suggest matches query against the built-in city list. Queries shorter than
// three characters yield nothing.
func Suggest(query string) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < minSuggestionQuery {
		return nil
	}

	var out []Suggestion
	for _, city := range cities {
		if !strings.Contains(strings.ToLower(city), query) {
			continue
		}

		name, _, _ := strings.Cut(city, ",")
		out = append(out, Suggestion{Label: city, City: name})
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}
