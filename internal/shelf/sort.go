package shelf

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering for a shelf listing.
type SortKey string

const (
	SortTitleAsc      SortKey = "title-asc"
	SortTitleDesc     SortKey = "title-desc"
	SortAuthorAsc     SortKey = "author-asc"
	SortAuthorDesc    SortKey = "author-desc"
	SortDateAddedAsc  SortKey = "date-added-asc"
	SortDateAddedDesc SortKey = "date-added-desc"
)

var sortKeys = map[SortKey]bool{
	SortTitleAsc:      true,
	SortTitleDesc:     true,
	SortAuthorAsc:     true,
	SortAuthorDesc:    true,
	SortDateAddedAsc:  true,
	SortDateAddedDesc: true,
}

// ParseSortKey converts user input to a SortKey.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(raw)
	if !sortKeys[key] {
		return "", fmt.Errorf("invalid sort key %q", raw)
	}
	return key, nil
}

// SortBooks returns a new slice ordered by key; the input is never mutated.
// Title and author comparisons are locale-aware; a missing author sorts as
// the empty string, so first in ascending order.
func SortBooks(books []SavedBook, key SortKey) []SavedBook {
	out := append([]SavedBook(nil), books...)

	coll := collate.New(language.English)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortTitleAsc:
			return coll.CompareString(a.Title, b.Title) < 0
		case SortTitleDesc:
			return coll.CompareString(b.Title, a.Title) < 0
		case SortAuthorAsc:
			return coll.CompareString(a.PrimaryAuthor(), b.PrimaryAuthor()) < 0
		case SortAuthorDesc:
			return coll.CompareString(b.PrimaryAuthor(), a.PrimaryAuthor()) < 0
		case SortDateAddedAsc:
			return a.DateAdded.Before(b.DateAdded)
		case SortDateAddedDesc:
			return b.DateAdded.Before(a.DateAdded)
		default:
			return false
		}
	})

	return out
}
