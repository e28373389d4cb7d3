// Package ui provides the Bubble Tea TUI for RecEngine.
package ui

import "github.com/auchitya/recengine/internal/api"

// CatalogLoaded is sent when the product catalog has been fetched (or
// read back from the local cache after a fetch failure).
type CatalogLoaded struct {
	Entries   []api.CatalogEntry
	FromCache bool
	Err       error
}

// RecommendationsLoaded is sent when a recommendation call resolves.
// Query is the canonical query the call was issued for; the orchestrator
// compares it against the current query and drops stale results.
type RecommendationsLoaded struct {
	Query  string // originating query (stale-check tag)
	Result *api.Recommendation
	Err    error
}

// ProductLoaded is sent when a product detail fetch resolves. Similar
// items ride along because the detail view requests both together.
type ProductLoaded struct {
	ID      string // originating product (stale-check tag)
	Product *api.Product
	Similar []api.Product
	Err     error
}

// LivePriceChecked is sent when a live price check resolves.
type LivePriceChecked struct {
	ProductID string // originating product (stale-check tag)
	Quote     *api.PriceQuote
	Err       error
}
