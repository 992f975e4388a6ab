// Package altquery turns one search phrase into alternate phrasings using a
// language model.
package altquery

import (
	"context"
	"strings"
)

// MaxAlternates caps how many alternate phrasings a generator may return.
const MaxAlternates = 3

// Generator produces alternate phrasings for a search query. An empty slice
// means the backend produced nothing usable; it is a recognized empty state,
// not an error. Errors are reserved for transport or backend failures.
type Generator interface {
	Generate(ctx context.Context, query string) ([]string, error)
}

// ParseAlternates extracts alternate queries from raw model output: one
// candidate per line, surrounding whitespace trimmed, blank lines dropped,
// capped at MaxAlternates. Returns nil when nothing usable remains.
func ParseAlternates(text string) []string {
	var alternates []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		alternates = append(alternates, line)
		if len(alternates) == MaxAlternates {
			break
		}
	}
	return alternates
}
