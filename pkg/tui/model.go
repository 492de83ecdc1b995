package tui

import (
	"time"

	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/blackcoderx/pigeon/pkg/httpclient"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/harmonica"
)

// Model is the Bubble Tea model. It renders the App and translates terminal
// events into app messages; the App itself is only mutated through app.Dispatch.
type Model struct {
	app    *app.App
	client *httpclient.Client

	keys     keyMap
	help     help.Model
	response viewport.Model // response body or headers
	logs     viewport.Model // debug log overlay
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	// highlighted caches the rendered body of highlightedFor.
	highlighted    string
	highlightedFor *httpclient.Response

	// err is the fatal error that ended the program, if any.
	err error

	// Animation state (harmonica spring for the pulsing dot while a request is in flight)
	animSpring harmonica.Spring
	animPos    float64
	animVel    float64
	animTarget float64
}

// animTickMsg drives the harmonica spring animation
type animTickMsg time.Time

// Err returns the error that stopped the program.
func (m Model) Err() error {
	return m.err
}
