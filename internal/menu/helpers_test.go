package menu

import (
	"strings"
	"testing"
)

type fakeElement struct {
	tag      string
	text     string
	hidden   bool
	attrs    map[string]string
	classes  []string
	children []*fakeElement
}

func el(tag, text string, children ...*fakeElement) *fakeElement {
	return &fakeElement{tag: tag, text: text, children: children}
}

// item builds an <li> labelled label, with an optional nested <ul>.
func item(label string, sub ...*fakeElement) *fakeElement {
	li := el("li", label)
	if len(sub) > 0 {
		li.children = append(li.children, el("ul", "", sub...))
	}
	return li
}

func link(label, href string) *fakeElement {
	a := el("a", label)
	a.attrs = map[string]string{"href": href}
	li := el("li", label, a)
	return li
}

func hidden(e *fakeElement) *fakeElement {
	e.hidden = true
	return e
}

func (e *fakeElement) Tag() string  { return e.tag }
func (e *fakeElement) Text() string { return e.text }
func (e *fakeElement) Hidden() bool { return e.hidden }

func (e *fakeElement) Children() []Element {
	out := make([]Element, 0, len(e.children))
	for _, c := range e.children {
		out = append(out, c)
	}
	return out
}

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

func (e *fakeElement) AddClass(class string) {
	if !e.hasClass(class) {
		e.classes = append(e.classes, class)
	}
}

func (e *fakeElement) RemoveClass(class string) {
	kept := e.classes[:0]
	for _, c := range e.classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.classes = kept
}

func (e *fakeElement) SetHidden(hidden bool) { e.hidden = hidden }

func (e *fakeElement) hasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

// fileMenu is the fixture most tests share:
//
//	File > New, Open, Recent > One, Two
//	Edit > Cut, Copy
//	View
//	Help
func fileMenu() *fakeElement {
	return el("ul", "",
		item("File",
			link("New", "#new"),
			link("Open", "#open"),
			item("Recent", link("One", "#one"), link("Two", "#two")),
		),
		item("Edit", link("Cut", "#cut"), link("Copy", "#copy")),
		link("View", "#view"),
		link("Help", "#help"),
	)
}

func mustInit(t *testing.T, root Element, opts ...Option) *Widget {
	t.Helper()
	w, err := Init(root, opts...)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return w
}

func find(t *testing.T, w *Widget, label string) NodeID {
	t.Helper()
	found := NoNode
	w.Tree().Walk(func(n Node) {
		if found == NoNode && strings.EqualFold(n.Label, label) {
			found = n.ID
		}
	})
	if found == NoNode {
		t.Fatalf("no item labelled %q", label)
	}
	return found
}

func labelOf(w *Widget, id NodeID) string {
	n, ok := w.Tree().Node(id)
	if !ok {
		return "<none>"
	}
	return n.Label
}

func press(w *Widget, code KeyCode) bool {
	return w.HandleKey(Key{Code: code})
}

func typeRune(w *Widget, r rune) bool {
	return w.HandleKey(Key{Code: KeyRune, Rune: r})
}

// assertRoving checks that exactly one node is tabbable, that it is the one
// the widget tracks, and that it is visible.
func assertRoving(t *testing.T, w *Widget) {
	t.Helper()
	var zero []NodeID
	w.Tree().Walk(func(n Node) {
		if n.TabIndex == 0 {
			zero = append(zero, n.ID)
		}
	})
	if len(zero) != 1 {
		t.Fatalf("expected exactly one tabbable node, got %v", zero)
	}
	if zero[0] != w.Tabbable() {
		t.Fatalf("expected tabbable %d, tree says %d", w.Tabbable(), zero[0])
	}
	if !w.Tree().Visible(zero[0]) {
		t.Fatalf("expected tabbable node %q to be visible", labelOf(w, zero[0]))
	}
}
