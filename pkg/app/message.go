package app

import "github.com/blackcoderx/pigeon/pkg/httpclient"

// Message is an event applied to the App by Update.
type Message interface {
	isMessage()
}

type (
	// Crash aborts the loop with Reason.
	Crash struct{ Reason string }
	// Start decides between loading the work directory and creating a new collection.
	Start struct{}
	// LoadCollection replaces the current collection with the one stored at Path.
	LoadCollection struct{ Path string }
	// NewCollection replaces the current collection with the default one and saves it.
	NewCollection struct{}
	Input         struct{ Char rune }
	Backspace     struct{}
	// CommitInput applies the input buffer to whatever is being edited.
	CommitInput struct{}
	ModeRequest struct{ Mode Mode }
	RequestPane struct{ Pane Pane }
	SelectDown  struct{}
	SelectUp    struct{}
	SelectLeft  struct{}
	SelectRight struct{}
	OpenModal   struct{ Modal Modal }
	CloseModal  struct{}
	// SelectEnvironment activates the environment at Index. A negative Index uses the modal cursor.
	SelectEnvironment struct{ Index int }
	SaveCollection    struct{}
	SaveGlobal        struct{}
	Quit              struct{}
	ToggleDebug       struct{}
	// SendRequest queues the selected request for execution.
	SendRequest struct{}
	// ResponseReceived carries the outcome of an executed request.
	ResponseReceived struct {
		Response *httpclient.Response
		Err      error
	}
)

func (Crash) isMessage()             {}
func (Start) isMessage()             {}
func (LoadCollection) isMessage()    {}
func (NewCollection) isMessage()     {}
func (Input) isMessage()             {}
func (Backspace) isMessage()         {}
func (CommitInput) isMessage()       {}
func (ModeRequest) isMessage()       {}
func (RequestPane) isMessage()       {}
func (SelectDown) isMessage()        {}
func (SelectUp) isMessage()          {}
func (SelectLeft) isMessage()        {}
func (SelectRight) isMessage()       {}
func (OpenModal) isMessage()         {}
func (CloseModal) isMessage()        {}
func (SelectEnvironment) isMessage() {}
func (SaveCollection) isMessage()    {}
func (SaveGlobal) isMessage()        {}
func (Quit) isMessage()              {}
func (ToggleDebug) isMessage()       {}
func (SendRequest) isMessage()       {}
func (ResponseReceived) isMessage()  {}
