package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor    = lipgloss.Color("#6c6c6c")
	TextColor   = lipgloss.Color("#e0e0e0")
	AccentColor = lipgloss.Color("#7aa2f7")
	ErrorColor  = lipgloss.Color("#f7768e")
	OkColor     = lipgloss.Color("#9ece6a")
	WarnColor   = lipgloss.Color("#e0af68")
	BorderColor = lipgloss.Color("#3b4261")
)

// Pane styles
var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPaneStyle = PaneStyle.
				BorderForeground(AccentColor)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(AccentColor).
			Padding(1, 2)
)

// List and tab styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Underline(true).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	MethodStyles = map[string]lipgloss.Style{
		"GET":  lipgloss.NewStyle().Foreground(OkColor).Bold(true),
		"POST": lipgloss.NewStyle().Foreground(WarnColor).Bold(true),
	}
)

// Status and footer styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	NormalModeStyle = lipgloss.NewStyle().
			Background(AccentColor).
			Foreground(lipgloss.Color("#1a1b26")).
			Bold(true).
			Padding(0, 1)

	InsertModeStyle = NormalModeStyle.
			Background(OkColor)

	StatusOkStyle = lipgloss.NewStyle().
			Foreground(OkColor).
			Bold(true)

	StatusErrStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SecretStyle = lipgloss.NewStyle().
			Foreground(DimColor).
			Italic(true)
)

const (
	selectPaneWidth = 32
	pulseDot        = "●"
)
