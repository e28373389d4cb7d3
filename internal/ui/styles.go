package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Teal primary and purple accent, matching the brand.
var (
	colorPrimary = lipgloss.Color("#0ea5a4")
	colorAccent  = lipgloss.Color("#7c3aed")
	colorText    = lipgloss.Color("#c9d1d9")
	colorDim     = lipgloss.Color("#8b949e")
	colorFaint   = lipgloss.Color("#484f58")
	colorGood    = lipgloss.Color("#3fb950")
	colorBad     = lipgloss.Color("#f85149")
	colorWarn    = lipgloss.Color("#d29922")
	colorGold    = lipgloss.Color("#e3b341")
)

var (
	// TitleStyle renders the app banner
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// HeadingStyle renders section headings
	HeadingStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	// DimStyle renders secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// FaintStyle renders hints and chrome
	FaintStyle = lipgloss.NewStyle().
			Foreground(colorFaint)

	// ErrorStyle renders the error bar
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorBad).
			Padding(0, 1)

	// NoticeStyle renders transient notices (e.g. a failed price check)
	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(colorWarn).
			Padding(0, 1)

	// MatchBadgeStyle renders the seed match score pill
	MatchBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(colorPrimary).
			Padding(0, 1)

	// LiveBadgeStyle marks a live (freshly scraped) price
	LiveBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d1117")).
			Background(colorGood).
			Bold(true).
			Padding(0, 1)

	// PriceStyle renders prices
	PriceStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	// RatingStyle renders star ratings
	RatingStyle = lipgloss.NewStyle().
			Foreground(colorGold)

	// SelectedRowStyle highlights the cursor row in result lists
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color("#1f3a5f")).
				Bold(true)

	// StatusBarStyle renders the bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Background(lipgloss.Color("#161b22")).
			Padding(0, 1)

	// SentimentPosStyle / SentimentNegStyle / SentimentNeuStyle color
	// the sentiment breakdown bar on the detail view
	SentimentPosStyle = lipgloss.NewStyle().Foreground(colorGood)
	SentimentNegStyle = lipgloss.NewStyle().Foreground(colorBad)
	SentimentNeuStyle = lipgloss.NewStyle().Foreground(colorFaint)

	// ReviewStyle renders review highlight cards
	ReviewStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)
)
