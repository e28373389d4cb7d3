package catalog

import (
	"strings"

	"github.com/auchitya/recengine/internal/api"
)

// MinQueryLen is the shortest query (exclusive) that produces
// suggestions. At 2 characters or fewer the dropdown stays closed.
const MinQueryLen = 2

// DefaultSuggestionLimit caps how many suggestions Suggest returns.
const DefaultSuggestionLimit = 6

// Index is an immutable in-memory view of the catalog used for local
// substring autocomplete. It is read-only after construction and safe
// to share; building a new Index is how the catalog gets replaced.
type Index struct {
	entries []api.CatalogEntry
	limit   int
}

// NewIndex builds an index over the given entries. A limit <= 0 falls
// back to DefaultSuggestionLimit.
func NewIndex(entries []api.CatalogEntry, limit int) *Index {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return &Index{entries: entries, limit: limit}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Suggest returns up to the configured limit of entries whose name
// contains the query case-insensitively, in catalog order. Queries of
// MinQueryLen characters or fewer return nil — the local filter is
// cheap but two-character substrings match half the catalog.
func (ix *Index) Suggest(query string) []api.CatalogEntry {
	if ix == nil || len(query) <= MinQueryLen {
		return nil
	}

	q := strings.ToLower(query)
	var out []api.CatalogEntry
	for _, e := range ix.entries {
		if strings.Contains(strings.ToLower(e.ProductName), q) {
			out = append(out, e)
			if len(out) >= ix.limit {
				break
			}
		}
	}
	return out
}
