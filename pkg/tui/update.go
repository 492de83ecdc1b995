package tui

import (
	"context"
	"strings"

	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/blackcoderx/pigeon/pkg/httpclient"
	"github.com/blackcoderx/pigeon/pkg/storage"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// executeRequest runs req off the update goroutine and reports back with a ResponseReceived.
func executeRequest(client *httpclient.Client, req storage.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Execute(context.Background(), req)
		return app.ResponseReceived{Response: resp, Err: err}
	}
}

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, ok := m.handleViewKey(msg); ok {
			return next, cmd
		}
		msgs, cmd := m.translateKey(msg)
		return m.dispatch(cmd, msgs...)

	case app.Message:
		return m.dispatch(nil, msg)

	case tea.WindowSizeMsg:
		m = m.handleWindowResize(msg)

	case spinner.TickMsg:
		if m.app.Sending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animTickMsg:
		if m.app.Sending {
			m = m.stepAnimation()
			cmds = append(cmds, animTick())
		}
	}

	return m, tea.Batch(cmds...)
}

// handleViewKey handles keys that only affect widgets owned by the view:
// help expansion and scrolling. It reports false when the key is for the App.
func (m Model) handleViewKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.app.Mode == app.ModeInsert || m.app.Window.Modal != app.ModalNone {
		return m, nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Normal.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	case key.Matches(msg, m.keys.Normal.Scroll):
		var cmd tea.Cmd
		if m.app.ShowDebug {
			m.logs, cmd = m.logs.Update(msg)
		} else {
			m.response, cmd = m.response.Update(msg)
		}
		return m, cmd, true
	}
	return m, nil, false
}

// dispatch applies msgs to the App in order. A dispatch error is fatal: it is
// kept on the model and the program quits.
func (m Model) dispatch(cmd tea.Cmd, msgs ...app.Message) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}
	for _, msg := range msgs {
		if err := app.Dispatch(m.app, msg); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	if !m.app.Running {
		return m, tea.Quit
	}

	if req, ok := m.app.TakePending(); ok {
		m.animPos, m.animVel, m.animTarget = 0, 0, 1
		cmds = append(cmds, executeRequest(m.client, req), m.spinner.Tick, animTick())
	}

	m.refreshViewports()
	return m, tea.Batch(cmds...)
}

// handleWindowResize adjusts the layout when the terminal is resized.
func (m Model) handleWindowResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	mainWidth := max(m.width-selectPaneWidth-4, 20)
	// url bar (3) + footer (1) + request pane, the response pane takes the rest
	responseHeight := max((m.height-4)/2-4, 3)

	m.response.Width = mainWidth - 4
	m.response.Height = responseHeight
	m.logs.Width = max(m.width-4, 20)
	m.logs.Height = max(m.height/3, 5)
	m.ready = true
	m.highlightedFor = nil

	m.refreshViewports()
	return m
}

func (m *Model) refreshViewports() {
	if resp := m.app.Response; resp != nil && m.highlightedFor != resp {
		m.highlighted = HighlightJSON(resp.Body, m.response.Width)
		m.highlightedFor = resp
	}
	m.response.SetContent(m.responseContent())

	if m.app.ShowDebug {
		atBottom := m.logs.AtBottom()
		m.logs.SetContent(strings.Join(m.app.Logs.DisplayLogs(), "\n"))
		if atBottom {
			m.logs.GotoBottom()
		}
	}
}

func (m Model) stepAnimation() Model {
	m.animPos, m.animVel = m.animSpring.Update(m.animPos, m.animVel, m.animTarget)
	if m.animTarget == 1 && m.animPos > 0.95 {
		m.animTarget = 0
	} else if m.animTarget == 0 && m.animPos < 0.05 {
		m.animTarget = 1
	}
	return m
}
