// Package tui provides the terminal user interface.
// It uses Bubble Tea for the event loop; all state changes go through app.Dispatch.
//
// File organization:
// - app.go: Entry point (Run function)
// - model.go: Model struct and message types
// - init.go: Model initialization and widgets
// - update.go: Event handling and dispatch into the App
// - view.go: Rendering and display logic
// - keys.go: Keymaps and key translation
// - styles.go: Visual styling (colors, borders, etc.)
// - highlight.go: JSON syntax highlighting
package tui

import (
	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/blackcoderx/pigeon/pkg/errdef"
	"github.com/blackcoderx/pigeon/pkg/httpclient"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits or a fatal error occurs.
// The terminal is restored before Run returns either way.
func Run(a *app.App, client *httpclient.Client) error {
	prog := tea.NewProgram(NewModel(a, client), tea.WithAltScreen())

	final, err := prog.Run()
	if err != nil {
		return errdef.Wrap(errdef.CodeUI, err, "run terminal ui")
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
