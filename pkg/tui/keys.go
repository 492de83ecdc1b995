package tui

import (
	"github.com/atotto/clipboard"
	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// normalKeys are active when no modal is open and the app is in normal mode.
type normalKeys struct {
	Up, Down, Left, Right key.Binding
	NextPane              key.Binding
	SelectPane            key.Binding
	RequestPane           key.Binding
	ResponsePane          key.Binding
	URLPane               key.Binding
	Insert                key.Binding
	Send                  key.Binding
	Environments          key.Binding
	Open                  key.Binding
	Save                  key.Binding
	CopyURL               key.Binding
	CopyResponse          key.Binding
	Scroll                key.Binding
	Debug                 key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func (k normalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Insert, k.Send, k.Environments, k.Open, k.Help, k.Quit}
}

func (k normalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Scroll},
		{k.NextPane, k.SelectPane, k.RequestPane, k.ResponsePane, k.URLPane},
		{k.Insert, k.Send, k.Save, k.CopyURL, k.CopyResponse},
		{k.Environments, k.Open, k.Debug, k.Help, k.Quit},
	}
}

// insertKeys are active while text is being typed.
type insertKeys struct {
	Commit    key.Binding
	Backspace key.Binding
	Cancel    key.Binding
}

func (k insertKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Backspace, k.Cancel}
}

func (k insertKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// loadKeys drive the load-collection modal.
type loadKeys struct {
	Create key.Binding
	Type   key.Binding
	Load   key.Binding
	Close  key.Binding
	Quit   key.Binding
}

func (k loadKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Type, k.Load, k.Close, k.Quit}
}

func (k loadKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// envKeys drive the environment modal.
type envKeys struct {
	Up, Down key.Binding
	Choose   key.Binding
	Close    key.Binding
}

func (k envKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Close}
}

func (k envKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type keyMap struct {
	Normal normalKeys
	Insert insertKeys
	Load   loadKeys
	Env    envKeys
}

func newKeyMap() keyMap {
	return keyMap{
		Normal: normalKeys{
			Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
			Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
			Left:         key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev tab")),
			Right:        key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next tab")),
			NextPane:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
			SelectPane:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "requests")),
			RequestPane:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "request")),
			ResponsePane: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "response")),
			URLPane:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "url")),
			Insert:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "edit")),
			Send:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			Environments: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "env")),
			Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
			Save:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
			CopyURL:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
			CopyResponse: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy response")),
			Scroll:       key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
			Debug:        key.NewBinding(key.WithKeys("f12"), key.WithHelp("f12", "logs")),
			Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
			Quit:         key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		Insert: insertKeys{
			Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
			Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		},
		Load: loadKeys{
			Create: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new collection")),
			Type:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "type path")),
			Load:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reload")),
			Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
			Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		Env: envKeys{
			Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
			Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use")),
			Close:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
		},
	}
}

var panes = []app.Pane{app.PaneSelect, app.PaneRequest, app.PaneResponse, app.PaneURL}

func nextPane(p app.Pane) app.Pane {
	for i, candidate := range panes {
		if candidate == p {
			return panes[(i+1)%len(panes)]
		}
	}
	return app.PaneSelect
}

// translateKey maps a key press to app messages. Insert mode and open modals
// take all key input before the normal keymap is consulted.
func (m Model) translateKey(msg tea.KeyMsg) ([]app.Message, tea.Cmd) {
	a := m.app

	if a.Mode == app.ModeInsert {
		k := m.keys.Insert
		switch {
		case key.Matches(msg, k.Commit):
			return one(app.CommitInput{}), nil
		case key.Matches(msg, k.Backspace):
			return one(app.Backspace{}), nil
		case key.Matches(msg, k.Cancel):
			return one(app.ModeRequest{Mode: app.ModeNormal}), nil
		case msg.Type == tea.KeySpace:
			return one(app.Input{Char: ' '}), nil
		case msg.Type == tea.KeyRunes:
			// Pasted text arrives as several runes in one event.
			msgs := make([]app.Message, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				msgs = append(msgs, app.Input{Char: r})
			}
			return msgs, nil
		}
		return nil, nil
	}

	switch a.Window.Modal {
	case app.ModalLoadCollection:
		k := m.keys.Load
		switch {
		case key.Matches(msg, k.Create):
			return one(app.NewCollection{}), nil
		case key.Matches(msg, k.Type):
			return one(app.ModeRequest{Mode: app.ModeInsert}), nil
		case key.Matches(msg, k.Load):
			return one(app.LoadCollection{Path: a.WorkDir}), nil
		case key.Matches(msg, k.Close):
			return one(app.CloseModal{}), nil
		case key.Matches(msg, k.Quit):
			return one(app.Quit{}), nil
		}
		return nil, nil

	case app.ModalEnvironment:
		k := m.keys.Env
		switch {
		case key.Matches(msg, k.Up):
			return one(app.SelectUp{}), nil
		case key.Matches(msg, k.Down):
			return one(app.SelectDown{}), nil
		case key.Matches(msg, k.Choose):
			return one(app.SelectEnvironment{Index: -1}), nil
		case key.Matches(msg, k.Close):
			return one(app.CloseModal{}), nil
		}
		return nil, nil
	}

	k := m.keys.Normal
	switch {
	case key.Matches(msg, k.Quit):
		return one(app.Quit{}), nil
	case key.Matches(msg, k.Debug):
		return one(app.ToggleDebug{}), nil
	case key.Matches(msg, k.Up):
		return one(app.SelectUp{}), nil
	case key.Matches(msg, k.Down):
		return one(app.SelectDown{}), nil
	case key.Matches(msg, k.Left):
		return one(app.SelectLeft{}), nil
	case key.Matches(msg, k.Right):
		return one(app.SelectRight{}), nil
	case key.Matches(msg, k.NextPane):
		return one(app.RequestPane{Pane: nextPane(a.Window.FocusedPane)}), nil
	case key.Matches(msg, k.SelectPane):
		return one(app.RequestPane{Pane: app.PaneSelect}), nil
	case key.Matches(msg, k.RequestPane):
		return one(app.RequestPane{Pane: app.PaneRequest}), nil
	case key.Matches(msg, k.ResponsePane):
		return one(app.RequestPane{Pane: app.PaneResponse}), nil
	case key.Matches(msg, k.URLPane):
		return one(app.RequestPane{Pane: app.PaneURL}), nil
	case key.Matches(msg, k.Insert):
		return []app.Message{app.RequestPane{Pane: app.PaneURL}, app.ModeRequest{Mode: app.ModeInsert}}, nil
	case key.Matches(msg, k.Send):
		return one(app.SendRequest{}), nil
	case key.Matches(msg, k.Environments):
		return one(app.OpenModal{Modal: app.ModalEnvironment}), nil
	case key.Matches(msg, k.Open):
		return one(app.OpenModal{Modal: app.ModalLoadCollection}), nil
	case key.Matches(msg, k.Save):
		return one(app.SaveCollection{}), nil
	case key.Matches(msg, k.CopyURL):
		return nil, m.copySelectedURL()
	case key.Matches(msg, k.CopyResponse):
		return nil, m.copyResponse()
	}
	return nil, nil
}

func one(msg app.Message) []app.Message {
	return []app.Message{msg}
}

func (m Model) copySelectedURL() tea.Cmd {
	req, ok := m.app.SelectedRequest()
	if !ok {
		return nil
	}
	url := req.URL
	logger := m.app.Logger
	return func() tea.Msg {
		if err := clipboard.WriteAll(url); err != nil {
			logger.Warn("copy to clipboard failed", "error", err)
		}
		return nil
	}
}

func (m Model) copyResponse() tea.Cmd {
	if m.app.Response == nil {
		return nil
	}
	body := m.app.Response.Body
	logger := m.app.Logger
	return func() tea.Msg {
		if err := clipboard.WriteAll(body); err != nil {
			logger.Warn("copy to clipboard failed", "error", err)
		}
		return nil
	}
}
