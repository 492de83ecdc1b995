// Package app holds the root application state and the message-driven update step.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blackcoderx/pigeon/pkg/global"
	"github.com/blackcoderx/pigeon/pkg/httpclient"
	"github.com/blackcoderx/pigeon/pkg/logging"
	"github.com/blackcoderx/pigeon/pkg/storage"
)

// Mode gates how key input is interpreted.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

func (m Mode) String() string {
	if m == ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// ErrMissingField is returned by Builder.Build when a required field was not supplied.
var ErrMissingField = errors.New("missing required field")

// App is the single mutable root the update loop operates on.
type App struct {
	Mode       Mode
	Window     WindowState
	Collection *storage.Collection
	Running    bool
	WorkDir    string
	GlobalDir  string
	Global     *global.State
	InputBuf   string
	Logs       *logging.RecordBuffer
	ShowDebug  bool
	Logger     *slog.Logger

	// ActiveEnv indexes Collection.Environments; -1 means none.
	ActiveEnv int
	Response  *httpclient.Response
	LastError error
	Sending   bool

	pending *storage.Request
}

// SelectedRequest returns the request under the list cursor.
func (a *App) SelectedRequest() (*storage.Request, bool) {
	idx, ok := a.Window.SelectList.Selected()
	if !ok {
		return nil, false
	}
	return a.Collection.Request(idx)
}

// ActiveEnvironment returns the environment chosen in the environment modal.
func (a *App) ActiveEnvironment() (*storage.Environment, bool) {
	return a.Collection.Environment(a.ActiveEnv)
}

// TakePending returns the request queued by SendRequest and clears it.
func (a *App) TakePending() (storage.Request, bool) {
	if a.pending == nil {
		return storage.Request{}, false
	}
	req := *a.pending
	a.pending = nil
	return req, true
}

func (a *App) store(dir string) *storage.Store {
	return storage.NewStore(dir, a.Logger)
}

// Builder assembles an App. Logs, Global and WorkDir are required.
type Builder struct {
	logs      *logging.RecordBuffer
	global    *global.State
	workDir   string
	globalDir string
	logger    *slog.Logger
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Logs(logs *logging.RecordBuffer) *Builder {
	b.logs = logs
	return b
}

func (b *Builder) Global(state *global.State) *Builder {
	b.global = state
	return b
}

func (b *Builder) WorkDir(dir string) *Builder {
	b.workDir = dir
	return b
}

// GlobalDir sets where SaveGlobal writes. Without it global state is never written.
func (b *Builder) GlobalDir(dir string) *Builder {
	b.globalDir = dir
	return b
}

// Logger sets the structured logger. It defaults to one writing into Logs at info level.
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

func (b *Builder) Build() (*App, error) {
	switch {
	case b.logs == nil:
		return nil, fmt.Errorf("app: %w: logs", ErrMissingField)
	case b.global == nil:
		return nil, fmt.Errorf("app: %w: global state", ErrMissingField)
	case b.workDir == "":
		return nil, fmt.Errorf("app: %w: work dir", ErrMissingField)
	}

	logger := b.logger
	if logger == nil {
		logger = logging.New(b.logs, slog.LevelInfo)
	}

	return &App{
		Mode:      ModeNormal,
		Running:   true,
		WorkDir:   b.workDir,
		GlobalDir: b.globalDir,
		Global:    b.global,
		Logs:      b.logs,
		Logger:    logger,
		ActiveEnv: -1,
	}, nil
}
