// RecEngine — terminal client for the product recommendation service.
//
// Architecture overview:
//
//	internal/api     - HTTP client for the recommendation service
//	internal/catalog - catalog index cache (memory + SQLite fallback)
//	internal/nav     - canonical search location (deep-linkable)
//	internal/ui      - Bubble Tea views and the fetch orchestrator
//
// The UI never talks to the network directly: main wires tea.Cmd
// factories that resolve to messages, and every async completion
// carries the query/product it was issued for so stale responses can
// be dropped.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/auchitya/recengine/internal/api"
	"github.com/auchitya/recengine/internal/catalog"
	"github.com/auchitya/recengine/internal/config"
	"github.com/auchitya/recengine/internal/logging"
	"github.com/auchitya/recengine/internal/nav"
	"github.com/auchitya/recengine/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	queryFlag := flag.String("q", "", "start with a search for this query")
	apiFlag := flag.String("api", "", "recommendation service base URL (overrides config)")
	flag.Parse()

	// Optional .env next to the binary; real env vars still win.
	_ = godotenv.Load()

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *apiFlag != "" {
		cfg.API.BaseURL = *apiFlag
	}
	timeout := time.Duration(cfg.API.TimeoutMs) * time.Millisecond
	logging.Info("Config loaded", "api", cfg.API.BaseURL)

	client := api.New(cfg.API.BaseURL, timeout)

	// Quick reachability probe, log only; the client degrades fine.
	probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := client.Health(probeCtx); err != nil {
		logging.Warn("Service health probe failed", "error", err)
	} else {
		logging.Info("Service reachable")
	}
	cancel()

	// Catalog cache survives restarts so autocomplete still works when
	// the service is down at startup. Losing it is not fatal.
	var store *catalog.Store
	if homeDir, err := os.UserHomeDir(); err == nil {
		dataDir := filepath.Join(homeDir, ".recengine")
		if err := os.MkdirAll(dataDir, 0755); err == nil {
			store, err = catalog.NewStore(filepath.Join(dataDir, "catalog.db"))
			if err != nil {
				logging.Warn("Catalog cache unavailable", "error", err)
				store = nil
			}
		}
	}
	if store != nil {
		defer store.Close()
	}

	// Deep link: -q flag, or a location argument like '/?q=Headphones'.
	initial := nav.Location{Query: *queryFlag}
	if initial.IsZero() && flag.NArg() > 0 {
		initial = nav.Parse(flag.Arg(0))
	}

	loadCatalog := func() tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			entries, err := client.Catalog(ctx)
			if err == nil {
				if store != nil {
					if serr := store.ReplaceAll(entries); serr != nil {
						logging.Warn("Failed to persist catalog", "error", serr)
					}
				}
				return ui.CatalogLoaded{Entries: entries}
			}
			logging.Warn("Catalog fetch failed, trying cache", "error", err)
			if store != nil {
				if cached, cerr := store.All(); cerr == nil && len(cached) > 0 {
					return ui.CatalogLoaded{Entries: cached, FromCache: true}
				}
			}
			return ui.CatalogLoaded{Err: err}
		}
	}

	recommend := func(query string) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			rec, err := client.RecommendByName(ctx, query, cfg.UI.ResultLimit)
			return ui.RecommendationsLoaded{Query: query, Result: rec, Err: err}
		}
	}

	loadProduct := func(id string) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			product, err := client.Product(ctx, id)
			if err != nil {
				return ui.ProductLoaded{ID: id, Err: err}
			}
			// Similar items are best-effort; the detail view is
			// complete without them.
			var similar []api.Product
			if rec, rerr := client.RecommendByID(ctx, id, cfg.UI.SimilarLimit); rerr == nil {
				similar = rec.Recommendations
			} else {
				logging.Warn("Similar items unavailable", "product", id, "error", rerr)
			}
			return ui.ProductLoaded{ID: id, Product: product, Similar: similar}
		}
	}

	checkPrice := func(id string) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			quote, err := client.LivePrice(ctx, id)
			return ui.LivePriceChecked{ProductID: id, Quote: quote, Err: err}
		}
	}

	app := ui.NewApp(initial, loadCatalog, recommend, loadProduct, checkPrice)

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logging.Info("Starting UI", "initial", initial.String())
	if _, err := p.Run(); err != nil {
		logging.Error("Application error", "error", err)
		fatal("Error: %v", err)
	}

	logging.Info("RecEngine exiting normally")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
