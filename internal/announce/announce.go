// Package announce keeps the polite and assertive live regions that assistive
// technology reads without moving focus.
package announce

import (
	"io"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/names"
)

// Politeness is the aria-live level of a region.
type Politeness string

const (
	Polite    Politeness = "polite"
	Assertive Politeness = "assertive"
)

// Message is one announcement as delivered to subscribers.
type Message struct {
	Politeness Politeness
	Text       string
	Time       time.Time
}

type region struct {
	id       string
	level    Politeness
	messages []string
}

// Announcer owns one polite and one assertive region. Regions come into
// existence on the first announcement.
type Announcer struct {
	names names.Names

	once      sync.Once
	mu        sync.Mutex
	polite    *region
	assertive *region
	subs      []func(Message)
}

func New(n names.Names) *Announcer {
	return &Announcer{names: n}
}

var (
	stdMu sync.Mutex
	std   = New(names.Default())
)

// Default returns the process-wide announcer.
func Default() *Announcer {
	stdMu.Lock()
	defer stdMu.Unlock()
	return std
}

// SetDefault replaces the process-wide announcer, typically once at startup
// after configuration has been loaded.
func SetDefault(a *Announcer) {
	if a == nil {
		return
	}
	stdMu.Lock()
	std = a
	stdMu.Unlock()
}

// AnnouncePolite appends msg to the process-wide polite region.
func AnnouncePolite(msg string) { Default().Polite(msg) }

// AnnounceAssertive appends msg to the process-wide assertive region.
func AnnounceAssertive(msg string) { Default().Assertive(msg) }

func (a *Announcer) Polite(msg string) { a.announce(Polite, msg) }

func (a *Announcer) Assertive(msg string) { a.announce(Assertive, msg) }

func (a *Announcer) create() {
	a.once.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.polite = &region{id: a.names.PoliteID, level: Polite}
		a.assertive = &region{id: a.names.AssertiveID, level: Assertive}
	})
}

func (a *Announcer) announce(level Politeness, msg string) {
	a.create()
	a.mu.Lock()
	r := a.polite
	if level == Assertive {
		r = a.assertive
	}
	r.messages = append(r.messages, msg)
	subs := append([]func(Message){}, a.subs...)
	a.mu.Unlock()

	events.Announce.Message(string(level), msg)
	m := Message{Politeness: level, Text: msg, Time: time.Now()}
	for _, fn := range subs {
		fn(m)
	}
}

// Subscribe registers fn to observe every later announcement.
func (a *Announcer) Subscribe(fn func(Message)) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.subs = append(a.subs, fn)
	a.mu.Unlock()
}

// Created reports whether the regions exist yet.
func (a *Announcer) Created() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.polite != nil
}

// Messages returns the text appended to the region of the given level.
func (a *Announcer) Messages(level Politeness) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.polite
	if level == Assertive {
		r = a.assertive
	}
	if r == nil {
		return nil
	}
	return append([]string(nil), r.messages...)
}

// Nodes builds the markup for both regions, or nil before first use.
func (a *Announcer) Nodes() []*html.Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.polite == nil {
		return nil
	}
	return []*html.Node{a.polite.node(), a.assertive.node()}
}

// Render writes both regions as HTML.
func (a *Announcer) Render(w io.Writer) error {
	for _, n := range a.Nodes() {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *region) node() *html.Node {
	div := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "id", Val: r.id},
			{Key: "role", Val: "log"},
			{Key: "aria-live", Val: string(r.level)},
			{Key: "aria-relevant", Val: "additions"},
			{Key: "class", Val: "offscreen"},
		},
	}
	for _, msg := range r.messages {
		p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		p.AppendChild(&html.Node{Type: html.TextNode, Data: msg})
		div.AppendChild(p)
	}
	return div
}
