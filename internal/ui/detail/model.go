// Package detail implements the product detail view: the full product
// record, sentiment breakdown, review highlights, similar items, and
// the cached-vs-live price reconciliation.
package detail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/auchitya/recengine/internal/api"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// PriceState is the live-price check state for the viewed product.
type PriceState int

const (
	// PriceNotChecked is the initial state; the cached price shows and
	// the check action is offered.
	PriceNotChecked PriceState = iota
	// PriceChecking means a live price call is in flight. Repeated
	// check requests are no-ops in this state.
	PriceChecking
	// PriceResolved means a price came back (live or cached status).
	// The check action is no longer offered; there is no auto-recheck.
	PriceResolved
)

// Model is the product detail view.
type Model struct {
	productID string

	loading  bool
	notFound bool
	err      error
	product  *api.Product
	similar  []api.Product
	cursor   int // similar-items cursor

	price       PriceState
	livePrice   float64
	priceStatus string
	notice      string // transient notice after a failed check

	spinner spinner.Model
	width   int
	height  int
}

// New creates an empty detail view.
func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#0ea5a4"))
	return Model{spinner: s}
}

// Reset points the view at a new product and discards all prior state,
// including any price check result. The price state always returns to
// PriceNotChecked when the viewed product changes.
func (m *Model) Reset(productID string) {
	m.productID = productID
	m.loading = true
	m.notFound = false
	m.err = nil
	m.product = nil
	m.similar = nil
	m.cursor = 0
	m.price = PriceNotChecked
	m.livePrice = 0
	m.priceStatus = ""
	m.notice = ""
}

// ProductID returns the product this view is showing.
func (m Model) ProductID() string {
	return m.productID
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// HandleProductLoaded applies a resolved product fetch. Results for any
// other product are ignored — the user already navigated away.
func (m *Model) HandleProductLoaded(id string, product *api.Product, similar []api.Product, err error) {
	if id != m.productID {
		return
	}
	m.loading = false
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			m.notFound = true
		} else {
			m.err = err
		}
		return
	}
	m.product = product
	m.similar = similar
}

// PriceState returns the current price check state.
func (m Model) PriceState() PriceState {
	return m.price
}

// CanCheckPrice reports whether the check action is currently offered.
func (m Model) CanCheckPrice() bool {
	return m.price == PriceNotChecked && m.product != nil
}

// BeginPriceCheck transitions NotChecked -> Checking and reports
// whether the caller should issue the remote call. While Checking, and
// after Resolved, this is a no-op returning false, so duplicate
// concurrent checks are impossible.
func (m *Model) BeginPriceCheck() bool {
	if !m.CanCheckPrice() {
		return false
	}
	m.price = PriceChecking
	m.notice = ""
	return true
}

// HandlePriceChecked applies a resolved live-price call. A result for
// another product (the user navigated while it was in flight) is
// dropped. On failure the state returns to NotChecked: the cached
// price stays on screen, a transient notice explains, and the user may
// try again.
func (m *Model) HandlePriceChecked(productID string, quote *api.PriceQuote, err error) {
	if productID != m.productID || m.price != PriceChecking {
		return
	}
	if err != nil {
		m.price = PriceNotChecked
		m.notice = "Could not reach the store right now. Showing last known price."
		return
	}
	m.price = PriceResolved
	m.livePrice = quote.Price
	m.priceStatus = quote.Status
}

// ResolvedPrice returns the checked price and its status. Valid only
// when PriceState() is PriceResolved.
func (m Model) ResolvedPrice() (float64, string) {
	return m.livePrice, m.priceStatus
}

// SelectedSimilar returns the highlighted similar item, if any.
func (m Model) SelectedSimilar() *api.Product {
	if m.cursor >= 0 && m.cursor < len(m.similar) {
		return &m.similar[m.cursor]
	}
	return nil
}

// MoveUp moves the similar-items cursor.
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the similar-items cursor.
func (m *Model) MoveDown() {
	if m.cursor < len(m.similar)-1 {
		m.cursor++
	}
}

// UpdateSpinner advances the spinner.
func (m *Model) UpdateSpinner(s spinner.Model) {
	m.spinner = s
}

// Spinner returns the spinner model.
func (m Model) Spinner() spinner.Model {
	return m.spinner
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
		content := fmt.Sprintf("%s Loading product...", m.spinner.View())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, style.Render(content))
	}

	if m.notFound {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			style.Render("Product not found.  (esc to go back)"))
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#f85149")).
			Padding(0, 1)
		return errStyle.Render("Error: "+m.err.Error()) + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")).Render("esc to go back")
	}

	if m.product == nil {
		return ""
	}

	var b strings.Builder
	p := m.product

	catStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58")).Bold(true)
	b.WriteString(catStyle.Render(strings.ToUpper(p.Category)))
	b.WriteString("\n")

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9")).Bold(true)
	b.WriteString(nameStyle.Render(p.ProductName))
	b.WriteString("\n\n")

	b.WriteString(m.renderPriceLine())
	b.WriteString("\n")

	ratingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#e3b341"))
	b.WriteString(ratingStyle.Render(fmt.Sprintf("★ %.1f / 5", p.Rating)))
	b.WriteString("\n\n")

	b.WriteString(m.renderSentiment())

	if len(p.ReviewsSample) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderReviews())
	}

	if len(m.similar) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderSimilar())
	}

	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(lipgloss.Color("#d29922")).
			Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑↓ similar items  enter open  esc back"))

	return b.String()
}

// renderPriceLine shows the price with live/cached reconciliation:
// the cached price until a check resolves, then the resolved value with
// a LIVE badge when the scrape succeeded.
func (m Model) renderPriceLine() string {
	priceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))

	switch m.price {
	case PriceResolved:
		line := priceStyle.Render(fmt.Sprintf("₹%.0f", m.livePrice))
		if m.priceStatus == api.PriceStatusLive {
			liveBadge := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0d1117")).
				Background(lipgloss.Color("#3fb950")).
				Bold(true).
				Padding(0, 1).
				Render("● LIVE")
			line += " " + liveBadge
		} else {
			line += " " + dimStyle.Render("(cached)")
		}
		return line

	case PriceChecking:
		return priceStyle.Render(fmt.Sprintf("₹%.0f", m.product.DiscountedPrice)) +
			"  " + dimStyle.Render(m.spinner.View()+" Checking live price...")

	default:
		return priceStyle.Render(fmt.Sprintf("₹%.0f", m.product.DiscountedPrice)) +
			"  " + dimStyle.Render("press p to check live price")
	}
}

func (m Model) renderSentiment() string {
	p := m.product
	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")).Bold(true)

	barWidth := 30
	pos := int(p.PercentPositive / 100 * float64(barWidth))
	neg := int(p.PercentNegative / 100 * float64(barWidth))
	if pos+neg > barWidth {
		neg = barWidth - pos
	}
	neu := barWidth - pos - neg

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("#3fb950")).Render(strings.Repeat("█", pos)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58")).Render(strings.Repeat("█", neu)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")).Render(strings.Repeat("█", neg))

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9"))
	return headStyle.Render("SENTIMENT") + "\n" +
		bar + "\n" +
		textStyle.Render(fmt.Sprintf("%.1f%% positive · %.1f%% neutral · %.1f%% negative",
			p.PercentPositive, p.PercentNeutral(), p.PercentNegative)) + "\n"
}

func (m Model) renderReviews() string {
	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")).Bold(true)
	reviewStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")).Italic(true)

	var b strings.Builder
	b.WriteString(headStyle.Render("REVIEW HIGHLIGHTS"))
	b.WriteString("\n")
	limit := 3
	for i, r := range m.product.ReviewsSample {
		if i >= limit {
			break
		}
		text := r
		if len(text) > 160 {
			text = text[:160] + "..."
		}
		b.WriteString(reviewStyle.Render("“" + text + "”"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSimilar() string {
	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#c9d1d9"))
	_ = itemStyle
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color("#1f3a5f")).
		Bold(true)
	priceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))

	var b strings.Builder
	b.WriteString(headStyle.Render("SIMILAR ITEMS"))
	b.WriteString("\n")
	for i, rec := range m.similar {
		name := rec.ProductName
		if len(name) > 60 {
			name = name[:58] + ".."
		}
		line := fmt.Sprintf("  %s  %s", name, priceStyle.Render(fmt.Sprintf("₹%.0f · ★%.1f", rec.DiscountedPrice, rec.Rating)))
		if i == m.cursor {
			line = selectedStyle.Render("▶ " + name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
