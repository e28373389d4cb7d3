package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(server.URL, 5*time.Second), server
}

func TestCatalog(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meta/products" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"product_id":"p1","product_name":"iPhone Case"},{"product_id":"p2","product_name":"Headphones"}]`))
	}))
	defer server.Close()

	entries, err := c.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ProductID != "p1" || entries[0].ProductName != "iPhone Case" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}

func TestRecommendByName(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend/by_name" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Headphones" {
			t.Errorf("expected q=Headphones, got %q", got)
		}
		if got := r.URL.Query().Get("top_n"); got != "8" {
			t.Errorf("expected top_n=8, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"seed_product_id": "p2",
			"seed_product_name": "Wireless Headphones",
			"match_score": 87,
			"recommendations": [
				{"product_id":"p3","product_name":"Earbuds","category":"Audio","rating":4.5,"discounted_price":1999}
			]
		}`))
	}))
	defer server.Close()

	rec, err := c.RecommendByName(context.Background(), "Headphones", 8)
	if err != nil {
		t.Fatalf("RecommendByName failed: %v", err)
	}
	if rec.MatchScore != 87 {
		t.Errorf("expected match score 87, got %v", rec.MatchScore)
	}
	if rec.SeedProductName != "Wireless Headphones" {
		t.Errorf("unexpected seed name: %s", rec.SeedProductName)
	}
	if len(rec.Recommendations) != 1 || rec.Recommendations[0].ProductID != "p3" {
		t.Errorf("unexpected recommendations: %+v", rec.Recommendations)
	}
}

func TestRecommendByNameNotFound(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"No matching product found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := c.RecommendByName(context.Background(), "zzz", 8)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProduct(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/p1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"product_id": "p1",
			"product_name": "iPhone Case",
			"category": "Accessories",
			"rating": 4.2,
			"discounted_price": 499,
			"percent_positive": 72.5,
			"percent_negative": 10.0,
			"reviews_sample": ["Great case", "Solid grip"]
		}`))
	}))
	defer server.Close()

	p, err := c.Product(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Product failed: %v", err)
	}
	if p.ProductName != "iPhone Case" {
		t.Errorf("unexpected name: %s", p.ProductName)
	}
	if len(p.ReviewsSample) != 2 {
		t.Errorf("expected 2 reviews, got %d", len(p.ReviewsSample))
	}
	if got := p.PercentNeutral(); got != 17.5 {
		t.Errorf("expected 17.5%% neutral, got %v", got)
	}
}

func TestProductNotFound(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Product not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := c.Product(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLivePrice(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/live_price/p1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": 499, "status": "live"}`))
	}))
	defer server.Close()

	q, err := c.LivePrice(context.Background(), "p1")
	if err != nil {
		t.Fatalf("LivePrice failed: %v", err)
	}
	if q.Price != 499 {
		t.Errorf("expected price 499, got %v", q.Price)
	}
	if q.Status != PriceStatusLive {
		t.Errorf("expected live status, got %q", q.Status)
	}
}

func TestLivePriceCachedFallback(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": 450, "status": "cached"}`))
	}))
	defer server.Close()

	q, err := c.LivePrice(context.Background(), "p1")
	if err != nil {
		t.Fatalf("LivePrice failed: %v", err)
	}
	if q.Status != PriceStatusCached {
		t.Errorf("expected cached status, got %q", q.Status)
	}
}

func TestServerError(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := c.Catalog(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
	if _, err := c.RecommendByName(context.Background(), "x", 8); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestHealth(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","artifacts_loaded":true}`))
	}))
	defer server.Close()

	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Catalog(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
