// Package suggest derives autocomplete suggestions from catalog results.
package suggest

import (
	"strings"

	"github.com/skoskinen/biblio/internal/catalog"
)

// MaxSuggestions caps the suggestion list length.
const MaxSuggestions = 5

// Derive produces a deduplicated list of at most MaxSuggestions titles from
// books, keeping only titles whose lowercase form contains the lowercase
// query. First-occurrence order is preserved.
func Derive(books []catalog.Book, query string) []string {
	needle := strings.ToLower(query)

	seen := make(map[string]bool, len(books))
	suggestions := make([]string, 0, MaxSuggestions)

	for _, book := range books {
		if len(suggestions) >= MaxSuggestions {
			break
		}
		title := book.Title
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		if !strings.Contains(strings.ToLower(title), needle) {
			continue
		}
		suggestions = append(suggestions, title)
	}

	return suggestions
}

// Changed reports whether next differs from prev as an ordered sequence.
// The controller uses this to skip replacing the suggestion list when a
// stale in-flight response resolves with identical content.
func Changed(prev, next []string) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if prev[i] != next[i] {
			return true
		}
	}
	return false
}
