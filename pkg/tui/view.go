package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/blackcoderx/pigeon/pkg/storage"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI to a string.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSelectPane(), m.renderMain())
	if m.app.ShowDebug {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderLogs())
	}

	switch m.app.Window.Modal {
	case app.ModalLoadCollection:
		body = m.overlay(m.renderLoadModal())
	case app.ModalEnvironment:
		body = m.overlay(m.renderEnvModal())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) paneStyle(p app.Pane) lipgloss.Style {
	if m.app.Window.Modal == app.ModalNone && m.app.Window.FocusedPane == p {
		return FocusedPaneStyle
	}
	return PaneStyle
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderSelectPane() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Requests"))
	b.WriteString("\n")

	selected, hasSelection := m.app.Window.SelectList.Selected()
	if m.app.Collection == nil || len(m.app.Collection.Requests) == 0 {
		b.WriteString(HelpStyle.Render("no requests"))
	} else {
		for i, req := range m.app.Collection.Requests {
			line := renderMethod(req.Method) + " " + req.Name
			if hasSelection && i == selected {
				b.WriteString(SelectedItemStyle.Render("> " + line))
			} else {
				b.WriteString(ItemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(PaneTitleStyle.Render("Environment"))
	b.WriteString("\n")
	if env, ok := m.app.ActiveEnvironment(); ok {
		b.WriteString(ItemStyle.Render(env.Name))
	} else {
		b.WriteString(HelpStyle.Render("none"))
	}

	return m.paneStyle(app.PaneSelect).
		Width(selectPaneWidth).
		Height(max(m.height-3, 3)).
		Render(b.String())
}

func renderMethod(method storage.Method) string {
	verb := method.String()
	if style, ok := MethodStyles[verb]; ok {
		return style.Render(fmt.Sprintf("%-4s", verb))
	}
	return fmt.Sprintf("%-4s", verb)
}

func (m Model) renderMain() string {
	width := max(m.width-selectPaneWidth-4, 20)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderURLBar(width),
		m.renderRequestPane(width),
		m.renderResponsePane(width),
	)
}

func (m Model) renderURLBar(width int) string {
	req, ok := m.app.SelectedRequest()
	var line string
	switch {
	case m.app.Mode == app.ModeInsert && m.app.Window.Modal == app.ModalNone:
		line = m.app.InputBuf + "█"
	case ok:
		line = renderMethod(req.Method) + " " + req.URL
	default:
		line = HelpStyle.Render("select a request")
	}
	return m.paneStyle(app.PaneURL).Width(width - 2).Render(line)
}

func (m Model) renderRequestPane(width int) string {
	current := m.app.Window.Request.SelectedTab
	var tabs []string
	for _, tab := range app.RequestTabs() {
		tabs = append(tabs, renderTab(tab.String(), tab == current))
	}

	var content string
	if req, ok := m.app.SelectedRequest(); ok {
		content = requestTabContent(req, current)
	}

	height := max((m.height-4)/2-2, 3)
	return m.paneStyle(app.PaneRequest).
		Width(width - 2).
		Height(height).
		Render(strings.Join(tabs, "  ") + "\n\n" + content)
}

func requestTabContent(req *storage.Request, tab app.RequestTab) string {
	switch tab {
	case app.RequestBody:
		if req.Body == nil {
			return HelpStyle.Render("no body")
		}
		return *req.Body
	case app.RequestHeaders:
		if len(req.Headers) == 0 {
			return HelpStyle.Render("no headers")
		}
		lines := make([]string, len(req.Headers))
		for i, h := range req.Headers {
			lines[i] = h.Name + ": " + h.Value
		}
		return strings.Join(lines, "\n")
	case app.RequestPathParams:
		return renderParams(req.PathParams)
	case app.RequestQueryParams:
		return renderParams(req.QueryParams)
	}
	return ""
}

func renderParams(params map[string]string) string {
	if len(params) == 0 {
		return HelpStyle.Render("none")
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + " = " + params[k]
	}
	return strings.Join(lines, "\n")
}

func renderTab(label string, active bool) string {
	if active {
		return ActiveTabStyle.Render(label)
	}
	return TabStyle.Render(label)
}

func (m Model) renderResponsePane(width int) string {
	current := m.app.Window.ResponseTab
	var tabs []string
	for _, tab := range app.ResponseTabs() {
		tabs = append(tabs, renderTab(tab.String(), tab == current))
	}

	header := strings.Join(tabs, "  ") + "  " + m.renderStatus()
	return m.paneStyle(app.PaneResponse).
		Width(width - 2).
		Render(header + "\n\n" + m.response.View())
}

// renderStatus shows the in-flight indicator, the last error or the response status.
func (m Model) renderStatus() string {
	switch {
	case m.app.Sending:
		dot := lipgloss.NewStyle().Foreground(DimColor).Render(pulseDot)
		if m.animPos > 0.5 {
			dot = lipgloss.NewStyle().Foreground(AccentColor).Render(pulseDot)
		}
		return dot + " " + m.spinner.View()
	case m.app.LastError != nil:
		return StatusErrStyle.Render(m.app.LastError.Error())
	case m.app.Response != nil:
		resp := m.app.Response
		style := StatusOkStyle
		if resp.StatusCode >= 400 {
			style = StatusErrStyle
		}
		return style.Render(resp.Status) + HelpStyle.Render(fmt.Sprintf(" %dms", resp.Duration.Milliseconds()))
	}
	return ""
}

// responseContent is the text shown in the response viewport for the current tab.
func (m Model) responseContent() string {
	resp := m.app.Response
	if resp == nil {
		return HelpStyle.Render("no response yet")
	}
	if m.app.Window.ResponseTab == app.ResponseHeaders {
		lines := make([]string, len(resp.Headers))
		for i, h := range resp.Headers {
			lines[i] = h.Name + ": " + h.Value
		}
		return strings.Join(lines, "\n")
	}
	if m.highlightedFor == resp {
		return m.highlighted
	}
	return HighlightJSON(resp.Body, m.response.Width)
}

func (m Model) renderLogs() string {
	return PaneStyle.Width(max(m.width-2, 20)).Render(PaneTitleStyle.Render("Logs") + "\n" + m.logs.View())
}

func (m Model) renderLoadModal() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Load collection"))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("current: "))
	b.WriteString(m.app.WorkDir)
	b.WriteString("\n\npath: ")
	if m.app.Mode == app.ModeInsert {
		b.WriteString(m.app.InputBuf + "█")
	} else {
		b.WriteString(HelpStyle.Render("press i to type a path"))
	}
	if m.app.LastError != nil {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(m.app.LastError.Error()))
	}
	return ModalStyle.Render(b.String())
}

func (m Model) renderEnvModal() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Environments"))
	b.WriteString("\n\n")

	if m.app.Collection == nil || len(m.app.Collection.Environments) == 0 {
		b.WriteString(HelpStyle.Render("no environments"))
		return ModalStyle.Render(b.String())
	}

	cursor, hasCursor := m.app.Window.EnvList.Selected()
	for i, env := range m.app.Collection.Environments {
		label := env.Name
		if i == m.app.ActiveEnv {
			label += " (active)"
		}
		if hasCursor && i == cursor {
			b.WriteString(SelectedItemStyle.Render("> " + label))
		} else {
			b.WriteString(ItemStyle.Render("  " + label))
		}
		b.WriteString("\n")

		if hasCursor && i == cursor {
			for _, k := range env.Keys() {
				_, resolved := env.Resolve(k, m.app.Global)
				b.WriteString("    " + k + " = " + renderEnvValue(env.Values[k], resolved))
				b.WriteString("\n")
			}
		}
	}
	return ModalStyle.Render(b.String())
}

// renderEnvValue masks secrets. A reference to a secret that is not stored is flagged.
func renderEnvValue(v storage.EnvironmentValue, resolved bool) string {
	if v.Kind != storage.KindSecret {
		return v.Data
	}
	if !resolved {
		return ErrorStyle.Render("secret:" + v.Data + " (not set)")
	}
	return SecretStyle.Render("secret:" + v.Data + " ••••••")
}

func (m Model) renderFooter() string {
	modeStyle := NormalModeStyle
	if m.app.Mode == app.ModeInsert {
		modeStyle = InsertModeStyle
	}
	badge := modeStyle.Render(m.app.Mode.String())

	var keys help.KeyMap = m.keys.Normal
	switch {
	case m.app.Mode == app.ModeInsert:
		keys = m.keys.Insert
	case m.app.Window.Modal == app.ModalLoadCollection:
		keys = m.keys.Load
	case m.app.Window.Modal == app.ModalEnvironment:
		keys = m.keys.Env
	}

	return badge + " " + m.help.View(keys)
}
