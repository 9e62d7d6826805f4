package ui

import (
	"reflect"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/announce"
	"github.com/atomicstack/a11yfy/internal/backend"
	"github.com/atomicstack/a11yfy/internal/data/dispatcher"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/metric"
	"github.com/atomicstack/a11yfy/internal/table"
	"github.com/atomicstack/a11yfy/internal/theme"
	"github.com/atomicstack/a11yfy/internal/ui/command"
	uistate "github.com/atomicstack/a11yfy/internal/ui/state"
)

type level = uistate.Level

// Region is the part of the screen that receives key events.
type Region int

const (
	RegionMenu Region = iota
	RegionContent
)

func (r Region) String() string {
	if r == RegionContent {
		return "content"
	}
	return "menu"
}

const liveLogLines = 3

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Config wires the model to an initialized widget and its collaborators.
// Only Widget is required.
type Config struct {
	Widget     *menu.Widget
	Table      *table.Table
	Announcer  *announce.Announcer
	Watcher    *backend.Watcher
	Metrics    *metric.Set
	// Strings resolves user-visible messages; nil means i18n.Defaults.
	Strings    i18n.Strings
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Status is shown on the status line until another message replaces it.
	Status string
	// Error is shown on the status line until the first key press.
	Error string
}

// Model implements the Bubble Tea model hosting one menubar widget and a
// table content pane.
type Model struct {
	widget *menu.Widget
	queue  *menu.Queue
	region Region

	table       *table.Table
	pane        *level
	headers     []string
	column      int
	filterIndex map[int]int

	announcer *announce.Announcer
	liveMu    sync.Mutex
	live      []announce.Message

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	backend        *backend.Watcher
	backendLastErr string
	dispatcher     *dispatcher.Dispatcher

	metrics *metric.Set
	strs    i18n.Strings
	bus     *command.Bus
	keys    keyMap
	help    help.Model
	tick    tickFunc

	// pending collects commands produced by widget callbacks during Update.
	pending []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel takes over the widget's activation callback and gives it input
// focus.
func NewModel(cfg Config) *Model {
	m := &Model{
		widget:      cfg.Widget,
		table:       cfg.Table,
		announcer:   cfg.Announcer,
		backend:     cfg.Watcher,
		dispatcher:  dispatcher.New(cfg.Widget.Tree()),
		metrics:     cfg.Metrics,
		strs:        cfg.Strings,
		bus:         command.New(),
		keys:        newKeyMap(),
		help:        help.New(),
		tick:        tea.Tick,
		showFooter:  cfg.ShowFooter,
		verbose:     cfg.Verbose,
		infoMsg:     cfg.Status,
		errMsg:      cfg.Error,
		filterIndex: make(map[int]int),
	}
	if m.announcer == nil {
		m.announcer = announce.Default()
	}
	if m.strs == nil {
		m.strs = i18n.Defaults()
	}
	m.announcer.Subscribe(m.observeAnnouncement)
	if q, ok := cfg.Widget.Scheduler().(*menu.Queue); ok {
		m.queue = q
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.widget.SetActivator(m.activate)
	m.pane = uistate.NewLevel("table", "Table", nil)
	if m.table != nil && m.table.Options().Responsive == nil {
		m.pane.Match = m.matchRows
	}
	m.refreshPane()
	m.widget.Enter()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := m.drainTasks(nil)
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(taskDueMsg{}):        m.handleTaskDueMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	cmds = m.drainTasks(cmds)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Widget exposes the hosted menubar.
func (m *Model) Widget() *menu.Widget { return m.widget }

// Region reports which part of the screen has focus.
func (m *Model) Region() Region { return m.region }

func (m *Model) switchRegion(to Region) {
	if m.region == to {
		return
	}
	events.UI.Region(m.region.String(), to.String())
	m.region = to
	m.keys.region = to
}
