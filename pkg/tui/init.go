package tui

import (
	"time"

	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/blackcoderx/pigeon/pkg/httpclient"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const animFPS = 30

// newSpinner creates a spinner with the dots animation.
func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{
			".   ",
			"..  ",
			"... ",
			"....",
		},
		FPS: time.Second / 5,
	}
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)
	return sp
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(AccentColor)
	h.Styles.ShortDesc = HelpStyle
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(AccentColor)
	h.Styles.FullDesc = HelpStyle
	return h
}

// NewModel creates the TUI model around a built App.
func NewModel(a *app.App, client *httpclient.Client) Model {
	return Model{
		app:        a,
		client:     client,
		keys:       newKeyMap(),
		help:       newHelp(),
		response:   viewport.New(0, 0),
		logs:       viewport.New(0, 0),
		spinner:    newSpinner(),
		animSpring: harmonica.NewSpring(harmonica.FPS(animFPS), 6.0, 0.3),
		animTarget: 1,
	}
}

// Init emits the Start message that loads or creates the collection.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return app.Start{}
	}
}

func animTick() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}
