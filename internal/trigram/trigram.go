// Package trigram computes pg_trgm compatible trigram sets and similarity.
//
// Text is lower-cased and split into words of letters and digits. Each word is
// padded with two leading blanks and one trailing blank, and every three-rune
// window of the padded word is a trigram. Similarity is the number of shared
// trigrams divided by the number of distinct trigrams in either set.
package trigram

import (
	"strings"
	"unicode"
)

// Set is a set of distinct trigrams.
type Set map[string]struct{}

// Trigrams returns the distinct trigrams of s.
func Trigrams(s string) Set {
	set := make(Set)
	for _, word := range words(s) {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity returns the trigram similarity of a and b in [0, 1].
// Either side without trigrams yields 0.
func Similarity(a, b string) float64 {
	return SetSimilarity(Trigrams(a), Trigrams(b))
}

// SetSimilarity compares two precomputed sets.
func SetSimilarity(a, b Set) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
