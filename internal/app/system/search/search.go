// Package search provides the accent and case insensitive text match
// used by the list endpoints' ?q= filter.
package search

import (
	"strings"

	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
)

// Matches reports whether every word of query occurs in at least one of
// the fields. Comparison is folded, so "Café" matches "cafe". An empty
// query matches everything.
func Matches(query string, fields ...string) bool {
	words := strings.Fields(normalize.Fold(query))
	if len(words) == 0 {
		return true
	}

	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = normalize.Fold(f)
	}

	for _, w := range words {
		found := false
		for _, f := range folded {
			if strings.Contains(f, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
