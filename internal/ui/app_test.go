package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/auchitya/recengine/internal/api"
	"github.com/auchitya/recengine/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
)

// recommendSpy records every query the app asks to fetch. The returned
// command is nil: tests deliver RecommendationsLoaded by hand so they
// control resolution order.
type recommendSpy struct {
	queries []string
}

func (s *recommendSpy) factory(q string) tea.Cmd {
	s.queries = append(s.queries, q)
	return nil
}

func newTestApp(initial nav.Location, spy *recommendSpy) App {
	return NewApp(initial, nil, spy.factory, nil, nil)
}

func deliver(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next
}

func successFor(query string, n int) RecommendationsLoaded {
	recs := make([]api.Product, n)
	for i := range recs {
		recs[i] = api.Product{
			ProductID:   fmt.Sprintf("p%d", i+1),
			ProductName: fmt.Sprintf("Product %d", i+1),
		}
	}
	return RecommendationsLoaded{
		Query: query,
		Result: &api.Recommendation{
			SeedProductID:   "seed1",
			SeedProductName: query,
			MatchScore:      87,
			Recommendations: recs,
		},
	}
}

func TestSubmitEntersLoading(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("Headphones")

	if got := app.Phase(); got != "loading" {
		t.Fatalf("Phase() = %q, want loading", got)
	}
	if got := app.Location().Query; got != "Headphones" {
		t.Errorf("Location().Query = %q, want Headphones", got)
	}
	if len(spy.queries) != 1 || spy.queries[0] != "Headphones" {
		t.Errorf("recommend calls = %v, want [Headphones]", spy.queries)
	}
}

func TestSuccessCommitsResult(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)
	app.submit("Headphones")

	app = deliver(t, app, successFor("Headphones", 8))

	if got := app.Phase(); got != "success" {
		t.Fatalf("Phase() = %q, want success", got)
	}
	res := app.Result()
	if res == nil {
		t.Fatal("Result() = nil after success")
	}
	if res.MatchScore != 87 {
		t.Errorf("MatchScore = %v, want 87", res.MatchScore)
	}
	if len(res.Recommendations) != 8 {
		t.Errorf("len(Recommendations) = %d, want 8", len(res.Recommendations))
	}
}

func TestStaleResultDropped(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("A")
	app.submit("AB")

	// The first call resolves after the location already moved on. Its
	// payload must not be shown.
	app = deliver(t, app, successFor("A", 3))

	if got := app.Phase(); got != "loading" {
		t.Fatalf("Phase() after stale result = %q, want loading", got)
	}
	if app.Result() != nil {
		t.Fatal("stale result was committed")
	}

	app = deliver(t, app, successFor("AB", 5))
	if got := app.Phase(); got != "success" {
		t.Fatalf("Phase() = %q, want success", got)
	}
	if got := app.Result().SeedProductName; got != "AB" {
		t.Errorf("SeedProductName = %q, want AB", got)
	}
}

func TestResubmitUnchangedQueryNoFetch(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("Headphones")
	app = deliver(t, app, successFor("Headphones", 2))

	app.submit("Headphones")

	if len(spy.queries) != 1 {
		t.Fatalf("recommend calls = %v, want exactly one", spy.queries)
	}
	if got := app.Phase(); got != "success" {
		t.Errorf("Phase() = %q, want success preserved", got)
	}
}

func TestEmptySubmitNoOp(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("")

	if got := app.Phase(); got != "idle" {
		t.Errorf("Phase() = %q, want idle", got)
	}
	if !app.Location().IsZero() {
		t.Errorf("Location() = %v, want zero", app.Location())
	}
	if len(spy.queries) != 0 {
		t.Errorf("recommend calls = %v, want none", spy.queries)
	}
}

func TestFailureThenRetrySameQuery(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("Headphones")
	app = deliver(t, app, RecommendationsLoaded{Query: "Headphones", Err: errors.New("connection refused")})

	if got := app.Phase(); got != "failed" {
		t.Fatalf("Phase() = %q, want failed", got)
	}
	if app.Result() != nil {
		t.Fatal("failed fetch left a result behind")
	}

	// Failures are not cached: the identical query fetches again.
	app.submit("Headphones")

	if got := app.Phase(); got != "loading" {
		t.Errorf("Phase() after retry = %q, want loading", got)
	}
	if len(spy.queries) != 2 {
		t.Errorf("recommend calls = %v, want two", spy.queries)
	}
}

func TestNoMatchingSeedIsEmptySuccess(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("zzzz")
	app = deliver(t, app, RecommendationsLoaded{
		Query: "zzzz",
		Err:   fmt.Errorf("recommendations for \"zzzz\": %w", api.ErrNotFound),
	})

	if got := app.Phase(); got != "success" {
		t.Fatalf("Phase() = %q, want success (no matches is not a failure)", got)
	}
	if app.Result() != nil {
		t.Error("no-match success should carry no result")
	}
}

func TestDeepLinkStartsLoading(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{Query: "iPhone Case"}, spy)

	if got := app.Phase(); got != "loading" {
		t.Fatalf("Phase() = %q, want loading for deep link", got)
	}

	app.Init()

	if len(spy.queries) != 1 || spy.queries[0] != "iPhone Case" {
		t.Errorf("recommend calls = %v, want [iPhone Case]", spy.queries)
	}
}

func TestClearedLocationGoesIdle(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)
	app.submit("Headphones")
	app = deliver(t, app, successFor("Headphones", 2))

	app.loc = nav.Location{}
	app.observeLocation()

	if got := app.Phase(); got != "idle" {
		t.Errorf("Phase() = %q, want idle", got)
	}
	if app.Result() != nil {
		t.Error("idle state kept a stale result")
	}
	if len(spy.queries) != 1 {
		t.Errorf("recommend calls = %v, clearing must not fetch", spy.queries)
	}
}

func TestResultJumpHappensOncePerSuccess(t *testing.T) {
	spy := &recommendSpy{}
	app := newTestApp(nav.Location{}, spy)

	app.submit("Headphones")
	app = deliver(t, app, successFor("Headphones", 6))

	if app.resultCursor != 0 {
		t.Fatalf("resultCursor = %d, want 0 after first success", app.resultCursor)
	}

	// The user moves the cursor; a redelivery of the same resolved
	// query must not yank them back to the top.
	app.resultCursor = 3
	app = deliver(t, app, successFor("Headphones", 6))

	if app.resultCursor != 3 {
		t.Errorf("resultCursor = %d, want 3 preserved", app.resultCursor)
	}

	// A new query is a new Success transition and jumps again.
	app.submit("Speakers")
	app = deliver(t, app, successFor("Speakers", 4))
	if app.resultCursor != 0 {
		t.Errorf("resultCursor = %d, want 0 after new query", app.resultCursor)
	}
}
