package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/a11yfy/internal/logging/events"
)

// ErrNotList is returned when a widget is initialized on anything but an
// unordered list.
var ErrNotList = errors.New("the menu container must be an unordered list")

// OpenClass marks the <li> of an open submenu.
const OpenClass = "open"

// Element is the markup node the annotator reads and decorates.
type Element interface {
	Tag() string
	Children() []Element
	// Text is the element's label, excluding any nested lists.
	Text() string
	Hidden() bool
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	AddClass(class string)
	RemoveClass(class string)
	// SetHidden shows or hides the element in layout.
	SetHidden(hidden bool)
}

// Init annotates root with menubar semantics and returns the widget that
// drives it. Nothing is touched when root is not a <ul>.
func Init(root Element, opts ...Option) (*Widget, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: got nothing", ErrNotList)
	}
	if tag := strings.ToLower(root.Tag()); tag != "ul" {
		return nil, fmt.Errorf("%w: got <%s>", ErrNotList, tag)
	}

	w := newWidget(opts)
	if err := w.names.Validate(); err != nil {
		return nil, err
	}
	root.SetAttr("role", string(RoleMenubar))
	root.AddClass(w.names.MenuLevel1)
	w.tree.top = w.annotateItems([]Element{root}, NoNode, 1, nil)

	if len(w.tree.top) > 0 {
		w.setTabbable(w.tree.top[0])
	}
	w.Sync()
	events.Menu.Init(w.id, w.tree.Len(), len(w.tree.top))
	return w, nil
}

// MustInit is Init for callers that treat a misplaced widget as fatal.
func MustInit(root Element, opts ...Option) *Widget {
	w, err := Init(root, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// annotateItems decorates the <li> children of lists, which share one
// sibling sequence, and records them under parent.
func (w *Widget) annotateItems(lists []Element, parent NodeID, level int, path []int) []NodeID {
	var ids []NodeID
	for _, list := range lists {
		for _, li := range childrenTagged(list, "li") {
			ids = append(ids, w.annotateItem(li, parent, level, path, len(ids)))
		}
	}
	return ids
}

func (w *Widget) annotateItem(li Element, parent NodeID, level int, path []int, index int) NodeID {
	itemPath := append(append([]int(nil), path...), index)
	label := strings.Join(strings.Fields(li.Text()), " ")
	node := Node{
		Role:     RoleMenuItem,
		TabIndex: -1,
		Level:    level,
		Hidden:   li.Hidden(),
		Label:    label,
		Text:     strings.ToLower(label),
		Parent:   parent,
		Path:     itemPath,
	}
	li.SetAttr("role", string(RoleMenuItem))
	li.SetAttr("tabindex", "-1")
	forEachLink(li, func(a Element) {
		a.SetAttr("tabindex", "-1")
		if !node.HasLink {
			node.Href, _ = a.Attr("href")
			node.HasLink = true
		}
	})

	subs := childrenTagged(li, "ul")
	if len(subs) > 0 && level < MaxLevel {
		node.HasSubmenu = true
		node.HasPopup = true
		node.Classes = []string{w.names.HasSubClass}
		li.AddClass(w.names.HasSubClass)
		li.SetAttr("aria-haspopup", "true")
	}
	for _, sub := range subs {
		sub.SetAttr("role", string(RoleMenu))
		if level < MaxLevel {
			sub.AddClass(w.names.MenuLevel(level + 1))
		}
	}

	id := w.tree.add(node)
	w.elements = append(w.elements, li)
	children := w.annotateItems(subs, id, level+1, itemPath)
	w.tree.at(id).Children = children
	return id
}

// Sync writes the tree's roving tabindex, open submenus and revealed items
// back onto the markup Init annotated.
func (w *Widget) Sync() {
	for i, el := range w.elements {
		n := w.tree.at(NodeID(i))
		el.SetAttr("tabindex", strconv.Itoa(n.TabIndex))
		if n.Open {
			el.AddClass(OpenClass)
		} else {
			el.RemoveClass(OpenClass)
		}
		if el.Hidden() != n.Hidden {
			el.SetHidden(n.Hidden)
		}
	}
}

func childrenTagged(el Element, tag string) []Element {
	var out []Element
	for _, child := range el.Children() {
		if strings.EqualFold(child.Tag(), tag) {
			out = append(out, child)
		}
	}
	return out
}

// forEachLink visits the anchors that belong to li itself, skipping nested
// lists which are annotated with their own items.
func forEachLink(el Element, fn func(Element)) {
	for _, child := range el.Children() {
		switch strings.ToLower(child.Tag()) {
		case "ul":
			continue
		case "a":
			fn(child)
		}
		forEachLink(child, fn)
	}
}
