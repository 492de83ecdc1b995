package app

// Pane is the region that receives directional input.
type Pane int

const (
	PaneSelect Pane = iota
	PaneRequest
	PaneResponse
	PaneURL
)

func (p Pane) String() string {
	switch p {
	case PaneSelect:
		return "Select"
	case PaneRequest:
		return "Request"
	case PaneResponse:
		return "Response"
	case PaneURL:
		return "Url"
	default:
		return "Unknown"
	}
}

// Modal is an overlay drawn above the panes. While one is open it receives all key input.
type Modal int

const (
	ModalNone Modal = iota
	ModalLoadCollection
	ModalEnvironment
)

func (m Modal) String() string {
	switch m {
	case ModalNone:
		return "None"
	case ModalLoadCollection:
		return "LoadCollection"
	case ModalEnvironment:
		return "Environment"
	default:
		return "Unknown"
	}
}

// ListCursor tracks the selected row of a list. No row is selected at first.
type ListCursor struct {
	selected int
	valid    bool
}

// Selected returns the selected index and whether there is one.
func (c ListCursor) Selected() (int, bool) {
	return c.selected, c.valid
}

// Select moves the cursor to idx.
func (c *ListCursor) Select(idx int) {
	c.selected = idx
	c.valid = true
}

// Clear removes the selection.
func (c *ListCursor) Clear() {
	c.selected = 0
	c.valid = false
}

// Next moves down one row in a list of n rows, stopping at the last row.
func (c *ListCursor) Next(n int) {
	if n <= 0 {
		c.Clear()
		return
	}
	if !c.valid {
		c.Select(0)
		return
	}
	c.Select(min(c.selected+1, n-1))
}

// Prev moves up one row in a list of n rows, stopping at the first row.
func (c *ListCursor) Prev(n int) {
	if n <= 0 {
		c.Clear()
		return
	}
	if !c.valid {
		c.Select(0)
		return
	}
	c.Select(max(min(c.selected-1, n-1), 0))
}

// Reset selects the first row of a list of n rows, or nothing when it is empty.
func (c *ListCursor) Reset(n int) {
	if n <= 0 {
		c.Clear()
		return
	}
	c.Select(0)
}

// RequestState is the request pane's own view state.
type RequestState struct {
	SelectedTab RequestTab
}

// WindowState is the navigation state of the UI.
type WindowState struct {
	Modal       Modal
	FocusedPane Pane
	Request     RequestState
	ResponseTab ResponseTab
	SelectList  ListCursor
	// EnvList is the cursor inside the environment modal.
	EnvList ListCursor
}
