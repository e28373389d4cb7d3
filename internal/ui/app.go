package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/auchitya/recengine/internal/api"
	"github.com/auchitya/recengine/internal/catalog"
	"github.com/auchitya/recengine/internal/logging"
	"github.com/auchitya/recengine/internal/nav"
	"github.com/auchitya/recengine/internal/ui/detail"
	"github.com/auchitya/recengine/internal/ui/searchbar"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewKind int

const (
	viewHome viewKind = iota
	viewDetail
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// fetchPhase is the recommendation fetch state machine.
type fetchPhase int

const (
	fetchIdle    fetchPhase = iota // no active search
	fetchLoading                   // call in flight for fetchQuery
	fetchSuccess                   // result (possibly empty) for fetchQuery
	fetchFailed                    // call for fetchQuery failed
)

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT hold the API client. It receives data via
// messages produced by the injected command factories.
type App struct {
	loadCatalog func() tea.Cmd
	recommend   func(query string) tea.Cmd
	loadProduct func(id string) tea.Cmd
	checkPrice  func(id string) tea.Cmd

	// Canonical location. Written only by submit/openLocation; the
	// fetch orchestrator below is its reader.
	loc nav.Location

	// Orchestrator state. fetchQuery is the tag of the displayed
	// phase; a resolving call whose tag differs from loc.Query is
	// stale and gets dropped.
	phase      fetchPhase
	fetchQuery string
	result     *api.Recommendation
	fetchErr   error

	// scrolledTo remembers the last query the view auto-jumped to the
	// results anchor for, so the jump happens once per Success
	// transition and not on every render.
	scrolledTo string

	search       searchbar.Model
	detail       detail.Model
	view         viewKind
	focus        focusArea
	spinner      spinner.Model
	catalogSize  int
	resultCursor int
	width        int
	height       int
	ready        bool
}

// NewApp creates the root model. The initial location supports deep
// links: a non-zero location triggers a fetch on first observation.
func NewApp(
	initial nav.Location,
	loadCatalog func() tea.Cmd,
	recommend func(query string) tea.Cmd,
	loadProduct func(id string) tea.Cmd,
	checkPrice func(id string) tea.Cmd,
) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	app := App{
		loadCatalog: loadCatalog,
		recommend:   recommend,
		loadProduct: loadProduct,
		checkPrice:  checkPrice,
		loc:         initial,
		search:      searchbar.New(),
		detail:      detail.New(),
		spinner:     s,
	}

	// A deep-linked location is "observed" at construction: Init only
	// returns commands, so the Loading transition has to happen here.
	if !initial.IsZero() {
		app.phase = fetchLoading
		app.fetchQuery = initial.Query
	}
	return app
}

// Init loads the catalog once for the session and issues the fetch for
// a deep-linked initial location.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.loadCatalog != nil {
		cmds = append(cmds, a.loadCatalog())
	}
	if a.phase == fetchLoading && a.recommend != nil {
		cmds = append(cmds, a.recommend(a.fetchQuery))
	}
	return tea.Batch(cmds...)
}

// observeLocation reacts to the canonical location: empty means Idle,
// anything else enters Loading and issues the remote call tagged with
// the query. This is the only place a recommendation fetch starts.
func (a *App) observeLocation() tea.Cmd {
	if a.loc.IsZero() {
		a.phase = fetchIdle
		a.fetchQuery = ""
		a.result = nil
		a.fetchErr = nil
		return nil
	}
	q := a.loc.Query
	a.phase = fetchLoading
	a.fetchQuery = q
	a.result = nil
	a.fetchErr = nil
	if a.recommend == nil {
		return nil
	}
	return a.recommend(q)
}

// submit applies a search submission. Empty input is a no-op. An
// unchanged query normally needs no new fetch — except after a
// failure, which is never cached: the same query then re-enters
// Loading with a fresh call.
func (a *App) submit(query string) tea.Cmd {
	next, changed := nav.Submit(a.loc, query)
	if !changed {
		if query != "" && query == a.loc.Query && a.phase == fetchFailed {
			return a.observeLocation()
		}
		return nil
	}
	a.loc = next
	return a.observeLocation()
}

// openProduct navigates to a product detail view.
func (a *App) openProduct(id string) tea.Cmd {
	a.view = viewDetail
	a.detail.Reset(id)
	if a.loadProduct == nil {
		return nil
	}
	return a.loadProduct(id)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		// Any interaction outside the search bar region dismisses the
		// dropdown unconditionally.
		if msg.Action == tea.MouseActionPress && a.view == viewHome {
			if msg.Y > a.searchRegionHeight() {
				a.search.Blur()
				a.focus = focusResults
			} else {
				a.focus = focusSearch
				return a, a.search.Focus()
			}
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.SetWidth(min(msg.Width-4, 72))
		a.detail.SetSize(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.detail.UpdateSpinner(a.spinner)
		return a, cmd

	case CatalogLoaded:
		if msg.Err != nil {
			// Autocomplete silently degrades to no suggestions.
			logging.Warn("Catalog unavailable", "error", msg.Err)
			return a, nil
		}
		a.catalogSize = len(msg.Entries)
		a.search.SetIndex(catalog.NewIndex(msg.Entries, catalog.DefaultSuggestionLimit))
		logging.Info("Catalog loaded", "entries", len(msg.Entries), "from_cache", msg.FromCache)
		return a, nil

	case RecommendationsLoaded:
		return a.handleRecommendations(msg)

	case ProductLoaded:
		a.detail.HandleProductLoaded(msg.ID, msg.Product, msg.Similar, msg.Err)
		return a, nil

	case LivePriceChecked:
		a.detail.HandlePriceChecked(msg.ProductID, msg.Quote, msg.Err)
		return a, nil
	}

	if a.view == viewHome && a.focus == focusSearch {
		var cmd tea.Cmd
		a.search, cmd, _ = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleRecommendations commits a resolved recommendation call —
// unless it is stale. The call's originating query is compared against
// the canonical query at resolution time; most-recent-request wins, not
// most-recent-resolution.
func (a App) handleRecommendations(msg RecommendationsLoaded) (tea.Model, tea.Cmd) {
	if msg.Query != a.loc.Query {
		logging.Debug("Dropping stale result", "for", msg.Query, "current", a.loc.Query)
		return a, nil
	}

	if msg.Err != nil {
		// The service 404s a query with no matching seed product;
		// that is "no results", not a failure.
		if errors.Is(msg.Err, api.ErrNotFound) {
			a.phase = fetchSuccess
			a.fetchQuery = msg.Query
			a.result = nil
			a.fetchErr = nil
			return a, nil
		}
		a.phase = fetchFailed
		a.fetchQuery = msg.Query
		a.result = nil
		a.fetchErr = msg.Err
		logging.Error("Recommendation fetch failed", "query", msg.Query, "error", msg.Err)
		return a, nil
	}

	a.phase = fetchSuccess
	a.fetchQuery = msg.Query
	a.result = msg.Result
	a.fetchErr = nil

	// Jump to the results anchor once per Success transition.
	if a.scrolledTo != msg.Query {
		a.scrolledTo = msg.Query
		a.resultCursor = 0
		if a.view == viewHome {
			a.search.Blur()
			a.focus = focusResults
		}
	}
	return a, nil
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.view == viewDetail {
		return a.handleDetailKey(msg)
	}
	return a.handleHomeKey(msg)
}

func (a App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.focus == focusSearch {
		// Tab moves focus out of the search bar; that counts as an
		// outside interaction and closes the dropdown.
		if msg.String() == "tab" {
			a.search.Blur()
			a.focus = focusResults
			return a, nil
		}

		var cmd tea.Cmd
		var ev searchbar.Event
		a.search, cmd, ev = a.search.Update(msg)
		switch {
		case ev.ProductID != "":
			return a, a.openProduct(ev.ProductID)
		case ev.Submit != "":
			return a, a.submit(ev.Submit)
		}
		return a, cmd
	}

	// Results focus
	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "/", "tab":
		a.focus = focusSearch
		return a, a.search.Focus()

	case "j", "down":
		if n := a.resultCount(); a.resultCursor < n-1 {
			a.resultCursor++
		}
		return a, nil

	case "k", "up":
		if a.resultCursor > 0 {
			a.resultCursor--
		}
		return a, nil

	case "enter":
		if p := a.selectedResult(); p != nil {
			return a, a.openProduct(p.ProductID)
		}
		return a, nil
	}
	return a, nil
}

func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		// Back to home; any in-flight search keeps its context.
		a.view = viewHome
		return a, nil

	case "q":
		return a, tea.Quit

	case "j", "down":
		a.detail.MoveDown()
		return a, nil

	case "k", "up":
		a.detail.MoveUp()
		return a, nil

	case "p":
		// Guarded: no call is issued while one is already checking,
		// or after the price resolved.
		if a.detail.BeginPriceCheck() && a.checkPrice != nil {
			return a, a.checkPrice(a.detail.ProductID())
		}
		return a, nil

	case "enter":
		if p := a.detail.SelectedSimilar(); p != nil {
			return a, a.openProduct(p.ProductID)
		}
		return a, nil
	}
	return a, nil
}

func (a App) resultCount() int {
	if a.result == nil {
		return 0
	}
	return len(a.result.Recommendations)
}

func (a App) selectedResult() *api.Product {
	if a.result == nil || a.resultCursor < 0 || a.resultCursor >= len(a.result.Recommendations) {
		return nil
	}
	return &a.result.Recommendations[a.resultCursor]
}

// searchRegionHeight is the number of rows the search bar (and its
// dropdown, when open) occupies at the top of the home view.
func (a App) searchRegionHeight() int {
	h := 5 // banner + input box
	if a.search.Open() {
		h += len(a.search.Suggestions()) + 3
	}
	return h
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.view == viewDetail {
		return a.detail.View() + "\n" + a.statusBar()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("RecEngine"))
	b.WriteString(DimStyle.Render("  — discover your next obsession"))
	b.WriteString("\n\n")

	b.WriteString(a.search.View())
	b.WriteString("\n\n")

	b.WriteString(a.renderResults())
	b.WriteString("\n")
	b.WriteString(a.statusBar())

	return b.String()
}

func (a App) renderResults() string {
	switch a.phase {
	case fetchIdle:
		return DimStyle.Render("Search for a product above to see recommendations.") + "\n" +
			FaintStyle.Render("Try searching for: iPhone Case, Headphones")

	case fetchLoading:
		return DimStyle.Render(fmt.Sprintf("%s Analyzing products for %q...", a.spinner.View(), a.fetchQuery))

	case fetchFailed:
		return ErrorStyle.Render("Search failed: "+a.fetchErr.Error()) + "\n" +
			FaintStyle.Render("press enter to retry")

	case fetchSuccess:
		if a.result == nil || len(a.result.Recommendations) == 0 {
			return DimStyle.Render(fmt.Sprintf("No matches found for %q.", a.fetchQuery))
		}
		return a.renderResultList()
	}
	return ""
}

func (a App) renderResultList() string {
	var b strings.Builder

	b.WriteString(FaintStyle.Render("RESULTS FOR"))
	b.WriteString("\n")
	b.WriteString(HeadingStyle.Render(a.result.SeedProductName))
	b.WriteString(" ")
	b.WriteString(MatchBadgeStyle.Render(fmt.Sprintf("Match %.0f%%", a.result.MatchScore)))
	b.WriteString("\n\n")

	maxName := a.width - 24
	if maxName < 20 {
		maxName = 20
	}
	for i, rec := range a.result.Recommendations {
		name := rec.ProductName
		if len(name) > maxName {
			name = name[:maxName-2] + ".."
		}
		meta := DimStyle.Render(fmt.Sprintf("  ₹%.0f · ★%.1f", rec.DiscountedPrice, rec.Rating))
		if i == a.resultCursor && a.focus == focusResults {
			b.WriteString(SelectedRowStyle.Render("▶ " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString(meta)
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) statusBar() string {
	left := a.loc.String()
	var right string
	switch {
	case a.view == viewDetail:
		right = "esc back · p live price · q quit"
	case a.focus == focusSearch:
		right = fmt.Sprintf("%d products indexed · tab results · ctrl+c quit", a.catalogSize)
	default:
		right = "/ search · ↑↓ select · enter open · q quit"
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

// Test hooks

// Location returns the canonical location (for testing).
func (a App) Location() nav.Location {
	return a.loc
}

// Phase returns the fetch phase name (for testing).
func (a App) Phase() string {
	switch a.phase {
	case fetchLoading:
		return "loading"
	case fetchSuccess:
		return "success"
	case fetchFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Result returns the displayed recommendation result (for testing).
func (a App) Result() *api.Recommendation {
	return a.result
}

// Detail returns the detail view model (for testing).
func (a App) Detail() detail.Model {
	return a.detail
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
