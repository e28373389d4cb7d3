// Package api is the HTTP client for the RecEngine recommendation
// service. It covers the endpoints the client depends on: the product
// catalog, name/id recommendations, product detail, and the live price
// check.
//
// All calls take a context and return wrapped errors; callers decide
// how failures map to UI state. The live-price endpoint is rate limited
// because the backend scrapes Amazon per request.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the service reports 404 for a product
// or a search with no matching seed.
var ErrNotFound = errors.New("api: not found")

// Client talks to the recommendation service.
type Client struct {
	baseURL  string
	client   *http.Client
	priceLim *rate.Limiter
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		priceLim: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Health probes GET /health. Used at startup for a log line only;
// the client works (degraded) without it.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("api: unexpected health status %q", out.Status)
	}
	return nil
}

// Catalog fetches the lightweight product list from GET /meta/products.
// The service caps the list at 2000 entries.
func (c *Client) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := c.get(ctx, "/meta/products", nil, &entries); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return entries, nil
}

// RecommendByName fetches ranked recommendations for a free-text query
// from GET /recommend/by_name. A query that matches no seed product
// returns ErrNotFound.
func (c *Client) RecommendByName(ctx context.Context, query string, topN int) (*Recommendation, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("top_n", strconv.Itoa(topN))

	var rec Recommendation
	if err := c.get(ctx, "/recommend/by_name", params, &rec); err != nil {
		return nil, fmt.Errorf("recommend by name %q: %w", query, err)
	}
	return &rec, nil
}

// RecommendByID fetches recommendations seeded by a known product from
// GET /recommend/by_id. Used for "similar items" on the detail view.
func (c *Client) RecommendByID(ctx context.Context, productID string, topN int) (*Recommendation, error) {
	params := url.Values{}
	params.Set("product_id", productID)
	params.Set("top_n", strconv.Itoa(topN))

	var rec Recommendation
	if err := c.get(ctx, "/recommend/by_id", params, &rec); err != nil {
		return nil, fmt.Errorf("recommend by id %q: %w", productID, err)
	}
	return &rec, nil
}

// Product fetches the full record for one product from
// GET /product/{id}, including review samples and sentiment splits.
func (c *Client) Product(ctx context.Context, productID string) (*Product, error) {
	var p Product
	if err := c.get(ctx, "/product/"+url.PathEscape(productID), nil, &p); err != nil {
		return nil, fmt.Errorf("product %q: %w", productID, err)
	}
	return &p, nil
}

// LivePrice asks the service to scrape a fresh price for the product
// via GET /product/live_price/{id}. The returned status is "live" on a
// successful scrape and "cached" when the service fell back to its
// stored price. Calls are rate limited client-side; the limiter wait
// respects ctx.
func (c *Client) LivePrice(ctx context.Context, productID string) (*PriceQuote, error) {
	if err := c.priceLim.Wait(ctx); err != nil {
		return nil, fmt.Errorf("live price %q: %w", productID, err)
	}

	var q PriceQuote
	if err := c.get(ctx, "/product/live_price/"+url.PathEscape(productID), nil, &q); err != nil {
		return nil, fmt.Errorf("live price %q: %w", productID, err)
	}
	return &q, nil
}

// get performs a GET request against the service and decodes the JSON
// response into out. 404 maps to ErrNotFound.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "RecEngine-TUI/0.1")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
