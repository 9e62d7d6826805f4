package menu

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/atomicstack/a11yfy/internal/names"
)

// Platform selects focus-handling quirks.
type Platform int

const (
	PlatformDefault Platform = iota
	// PlatformTouch resets focus to the document body and defers the real
	// focus request by TouchFocusDelay.
	PlatformTouch
)

func (p Platform) String() string {
	if p == PlatformTouch {
		return "touch"
	}
	return "default"
}

// ParsePlatform maps a configuration value onto a Platform.
func ParsePlatform(value string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default", "desktop", "other", "osx", "windows":
		return PlatformDefault, nil
	case "touch", "ios":
		return PlatformTouch, nil
	default:
		return PlatformDefault, fmt.Errorf("unknown platform %q", value)
	}
}

// Activator performs a leaf item's primary action.
type Activator func(Node)

// Option customizes a Widget at initialization.
type Option func(*Widget)

func WithNames(n names.Names) Option {
	return func(w *Widget) { w.names = n }
}

func WithPlatform(p Platform) Option {
	return func(w *Widget) { w.platform = p }
}

func WithScheduler(s Scheduler) Option {
	return func(w *Widget) {
		if s != nil {
			w.sched = s
		}
	}
}

func WithActivator(a Activator) Option {
	return func(w *Widget) { w.activate = a }
}

func WithInstanceID(id string) Option {
	return func(w *Widget) {
		if id != "" {
			w.id = id
		}
	}
}

// Widget is one initialized menubar. All state is owned by the instance.
type Widget struct {
	id       string
	tree     *Tree
	names    names.Names
	platform Platform
	sched    Scheduler
	activate Activator
	// elements holds each node's <li>, indexed by NodeID.
	elements []Element

	tabbable NodeID
	focused  NodeID
	hasFocus bool

	pendingFocus *Task
	pendingExit  *Task
}

func newWidget(opts []Option) *Widget {
	w := &Widget{
		id:       uuid.NewString(),
		tree:     &Tree{},
		names:    names.Default(),
		tabbable: NoNode,
		focused:  NoNode,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.sched == nil {
		w.sched = NewQueue()
	}
	return w
}

func (w *Widget) ID() string { return w.id }

func (w *Widget) Tree() *Tree { return w.tree }

func (w *Widget) Names() names.Names { return w.names }

func (w *Widget) Platform() Platform { return w.platform }

// Scheduler returns the scheduler deferred tasks are queued on.
func (w *Widget) Scheduler() Scheduler { return w.sched }

// Tabbable returns the node currently reachable by Tab.
func (w *Widget) Tabbable() NodeID { return w.tabbable }

// Focused returns the node holding input focus, or NoNode while focus sits
// outside the widget.
func (w *Widget) Focused() NodeID { return w.focused }

func (w *Widget) HasFocus() bool { return w.hasFocus }

// SetActivator replaces the leaf action after initialization, for hosts
// that are built around an already initialized widget.
func (w *Widget) SetActivator(a Activator) { w.activate = a }

// Current is the node key events act on.
func (w *Widget) Current() NodeID {
	if w.focused != NoNode {
		return w.focused
	}
	return w.tabbable
}

func (w *Widget) label(id NodeID) string {
	if n, ok := w.tree.Node(id); ok {
		return n.Label
	}
	return ""
}

// Click handles a pointer activation on id: the item takes focus, a
// has-submenu item toggles open, a leaf activates.
func (w *Widget) Click(id NodeID) bool {
	if !w.tree.Visible(id) {
		return false
	}
	// A click is a re-entry at the clicked item, so a pending tab-exit
	// cleanup no longer applies.
	w.pendingExit.supersede()
	w.pendingExit = nil
	w.hasFocus = true
	w.MoveFocusTo(id)
	if w.tree.at(id).HasSubmenu {
		w.Toggle(id)
		return true
	}
	w.Activate(id)
	return true
}
