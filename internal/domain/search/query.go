// Package search holds the validated fuzzy-search query and scored results.
package search

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// MaxQueryLength is the maximum search term length in runes.
const MaxQueryLength = 256

// Query is a validated, trimmed search term.
type Query struct {
	term string
}

// NewQuery trims raw and rejects empty or oversized terms.
func NewQuery(raw string) (Query, error) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return Query{}, domain.NewInvalidInput("name_or_term", "is required")
	}
	if utf8.RuneCountInString(term) > MaxQueryLength {
		return Query{}, domain.NewInvalidInput("name_or_term",
			"too long (max "+strconv.Itoa(MaxQueryLength)+" characters)")
	}
	return Query{term: term}, nil
}

// Term returns the search term.
func (q Query) Term() string { return q.term }

// IsZero reports whether q was not built by NewQuery.
func (q Query) IsZero() bool { return q.term == "" }
