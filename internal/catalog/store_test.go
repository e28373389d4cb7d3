package catalog

import (
	"path/filepath"
	"testing"

	"github.com/auchitya/recengine/internal/api"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	entries := []api.CatalogEntry{
		{ProductID: "p1", ProductName: "iPhone Case"},
		{ProductID: "p2", ProductName: "Headphones"},
	}
	if err := store.ReplaceAll(entries); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	got, err := store.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// All() orders by name
	if got[0].ProductID != "p2" {
		t.Errorf("expected p2 first (name order), got %s", got[0].ProductID)
	}
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	first := []api.CatalogEntry{
		{ProductID: "p1", ProductName: "Old Product"},
		{ProductID: "p2", ProductName: "Another Old Product"},
	}
	if err := store.ReplaceAll(first); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	second := []api.CatalogEntry{
		{ProductID: "p3", ProductName: "New Product"},
	}
	if err := store.ReplaceAll(second); err != nil {
		t.Fatalf("second ReplaceAll failed: %v", err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry after replace, got %d", n)
	}

	got, err := store.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if got[0].ProductID != "p3" {
		t.Errorf("expected p3, got %s", got[0].ProductID)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	got, err := store.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty store, got %d entries", len(got))
	}
}
