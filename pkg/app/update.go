package app

import (
	"unicode/utf8"

	"github.com/blackcoderx/pigeon/pkg/errdef"
	"github.com/blackcoderx/pigeon/pkg/global"
	"github.com/blackcoderx/pigeon/pkg/storage"
)

// maxChain bounds how many follow-up messages a single Dispatch may chase.
const maxChain = 32

// Dispatch applies msg and every follow-up message it produces, in order.
func Dispatch(a *App, msg Message) error {
	for i := 0; msg != nil; i++ {
		if i == maxChain {
			return errdef.New(errdef.CodeCrash, "message chain exceeded %d steps", maxChain)
		}
		next, err := Update(a, msg)
		if err != nil {
			return err
		}
		msg = next
	}
	return nil
}

// Update applies a single message and returns the follow-up message, if any.
// A non-nil error is fatal for the loop.
func Update(a *App, msg Message) (Message, error) {
	switch m := msg.(type) {
	case Crash:
		return nil, errdef.New(errdef.CodeCrash, "%s", m.Reason)

	case Start:
		a.Running = true
		if a.store(a.WorkDir).Exists() {
			return LoadCollection{Path: a.WorkDir}, nil
		}
		a.Logger.Info("no collection found, creating one", "dir", a.WorkDir)
		return NewCollection{}, nil

	case LoadCollection:
		return a.loadCollection(m.Path)

	case NewCollection:
		c := storage.DefaultCollection(a.WorkDir)
		a.setCollection(&c)
		a.closeModal()
		return SaveCollection{}, nil

	case Input:
		if a.Mode == ModeInsert {
			a.InputBuf += string(m.Char)
		}
		return nil, nil

	case Backspace:
		if a.Mode == ModeInsert && a.InputBuf != "" {
			_, size := utf8.DecodeLastRuneInString(a.InputBuf)
			a.InputBuf = a.InputBuf[:len(a.InputBuf)-size]
		}
		return nil, nil

	case CommitInput:
		if a.Mode != ModeInsert {
			return nil, nil
		}
		return a.commitInput(), nil

	case ModeRequest:
		a.setMode(m.Mode)
		return nil, nil

	case RequestPane:
		a.Window.FocusedPane = m.Pane
		return nil, nil

	case SelectDown:
		a.moveVertical(true)
		return nil, nil

	case SelectUp:
		a.moveVertical(false)
		return nil, nil

	case SelectLeft:
		a.moveHorizontal(false)
		return nil, nil

	case SelectRight:
		a.moveHorizontal(true)
		return nil, nil

	case OpenModal:
		a.openModal(m.Modal)
		return nil, nil

	case CloseModal:
		a.closeModal()
		return nil, nil

	case SelectEnvironment:
		a.selectEnvironment(m.Index)
		return nil, nil

	case SaveCollection:
		if err := a.saveCollection(); err != nil {
			return nil, err
		}
		if !a.Running {
			return SaveGlobal{}, nil
		}
		return nil, nil

	case SaveGlobal:
		a.saveGlobal()
		return nil, nil

	case Quit:
		a.Running = false
		return SaveCollection{}, nil

	case ToggleDebug:
		a.ShowDebug = !a.ShowDebug
		return nil, nil

	case SendRequest:
		a.queueSelected()
		return nil, nil

	case ResponseReceived:
		a.Sending = false
		if m.Err != nil {
			a.LastError = m.Err
			a.Logger.Warn("request failed", "error", m.Err)
			return nil, nil
		}
		a.Response = m.Response
		a.LastError = nil
		if m.Response != nil {
			a.Logger.Info("response received", "status", m.Response.StatusCode, "duration", m.Response.Duration)
		}
		return nil, nil

	default:
		return nil, errdef.New(errdef.CodeUI, "unhandled message %T", msg)
	}
}

func (a *App) loadCollection(path string) (Message, error) {
	if path == "" {
		path = a.WorkDir
	}
	store := a.store(path)
	if !store.Exists() {
		// Typed into the modal; keep it open so the path can be corrected.
		a.LastError = errdef.New(errdef.CodeFilesystem, "no collection at %s", path)
		a.Logger.Warn("collection not found", "path", path)
		return nil, nil
	}

	c, err := store.Load()
	if err != nil {
		return nil, err
	}
	a.WorkDir = path
	a.setCollection(c)
	a.closeModal()
	a.Logger.Info("collection loaded", "path", path, "requests", len(c.Requests), "environments", len(c.Environments))
	return nil, nil
}

func (a *App) setCollection(c *storage.Collection) {
	a.Collection = c
	a.Window.SelectList.Reset(len(c.Requests))
	a.Window.EnvList.Clear()
	a.ActiveEnv = -1
	a.Response = nil
	a.LastError = nil
}

func (a *App) setMode(mode Mode) {
	a.Mode = mode
	a.InputBuf = ""
	if mode != ModeInsert {
		return
	}
	// Editing the URL starts from its current value.
	if a.Window.Modal == ModalNone && a.Window.FocusedPane == PaneURL {
		if req, ok := a.SelectedRequest(); ok {
			a.InputBuf = req.URL
		}
	}
}

func (a *App) commitInput() Message {
	input := a.InputBuf
	a.setMode(ModeNormal)

	switch {
	case a.Window.Modal == ModalLoadCollection:
		return LoadCollection{Path: input}
	case a.Window.Modal == ModalNone && a.Window.FocusedPane == PaneURL:
		req, ok := a.SelectedRequest()
		if !ok {
			a.Logger.Warn("no request selected")
			return nil
		}
		req.URL = input
		a.Logger.Debug("request url updated", "request", req.Name, "url", input)
	}
	return nil
}

func (a *App) moveVertical(down bool) {
	if a.Window.Modal == ModalEnvironment {
		n := 0
		if a.Collection != nil {
			n = len(a.Collection.Environments)
		}
		if down {
			a.Window.EnvList.Next(n)
		} else {
			a.Window.EnvList.Prev(n)
		}
		return
	}
	if a.Window.FocusedPane != PaneSelect {
		return
	}
	n := 0
	if a.Collection != nil {
		n = len(a.Collection.Requests)
	}
	if down {
		a.Window.SelectList.Next(n)
	} else {
		a.Window.SelectList.Prev(n)
	}
}

func (a *App) moveHorizontal(right bool) {
	switch a.Window.FocusedPane {
	case PaneRequest:
		tab := &a.Window.Request.SelectedTab
		if right {
			*tab = tab.Next()
		} else {
			*tab = tab.Prev()
		}
	case PaneResponse:
		tab := &a.Window.ResponseTab
		if right {
			*tab = tab.Next()
		} else {
			*tab = tab.Prev()
		}
	}
}

func (a *App) openModal(modal Modal) {
	a.Window.Modal = modal
	a.setMode(ModeNormal)
	if modal == ModalEnvironment {
		n := 0
		if a.Collection != nil {
			n = len(a.Collection.Environments)
		}
		a.Window.EnvList.Reset(n)
		if a.ActiveEnv >= 0 && a.ActiveEnv < n {
			a.Window.EnvList.Select(a.ActiveEnv)
		}
	}
}

func (a *App) closeModal() {
	a.Window.Modal = ModalNone
	a.setMode(ModeNormal)
}

func (a *App) selectEnvironment(idx int) {
	if idx < 0 {
		selected, ok := a.Window.EnvList.Selected()
		if !ok {
			return
		}
		idx = selected
	}
	env, ok := a.Collection.Environment(idx)
	if !ok {
		a.Logger.Warn("no such environment", "index", idx)
		return
	}
	a.ActiveEnv = idx
	a.closeModal()
	a.Logger.Info("environment selected", "name", env.Name)
}

func (a *App) saveCollection() error {
	if a.Collection == nil {
		return nil
	}
	dir := a.Collection.SaveLocation
	if dir == "" {
		dir = a.WorkDir
	}
	return a.store(dir).Save(a.Collection)
}

func (a *App) saveGlobal() {
	if a.GlobalDir == "" {
		return
	}
	if err := global.Save(a.GlobalDir, a.Global); err != nil {
		a.LastError = err
		a.Logger.Warn("failed to save global state", "error", err)
	}
}

func (a *App) queueSelected() {
	if a.Sending {
		return
	}
	req, ok := a.SelectedRequest()
	if !ok {
		a.Logger.Warn("no request selected")
		return
	}
	queued := *req
	a.pending = &queued
	a.Sending = true
	a.Logger.Info("sending request", "request", req.Name, "method", req.Method.String(), "url", req.URL)
}
