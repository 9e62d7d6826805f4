package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/logging/events"
)

// Result reports the outcome of an action back to the UI.
type Result struct {
	ID   string
	Info string
	Err  error
}

// Action performs the work behind an activated item and describes what
// happened.
type Action func() (string, error)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Action
}

// Bus coordinates the execution of activated menu items.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		info, err := req.Handler()
		res := Result{ID: req.ID, Info: info, Err: err}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res))
		return res
	}
}
