package menu

import "github.com/atomicstack/a11yfy/internal/logging/events"

// Open expands a has-submenu item and moves focus to its first visible
// child. If every child is hidden the submenu opens but focus stays put.
func (w *Widget) Open(id NodeID) bool {
	if !w.tree.valid(id) || !w.tree.at(id).HasSubmenu {
		return false
	}
	w.tree.at(id).Open = true
	events.Menu.Open(w.id, int(id))
	first := w.tree.firstVisible(w.tree.at(id).Children)
	if first == NoNode {
		return true
	}
	w.MoveFocusTo(first)
	w.tree.at(id).TabIndex = -1
	return true
}

// Close collapses id and every submenu beneath it.
func (w *Widget) Close(id NodeID) bool {
	if !w.tree.valid(id) || !w.tree.at(id).Open {
		return false
	}
	w.tree.closeSubtree(id)
	events.Menu.Close(w.id, int(id))
	return true
}

// CloseToParent collapses the submenu containing id and returns focus to
// the item that owns it. Top-level items have nothing to close.
func (w *Widget) CloseToParent(id NodeID) bool {
	parent := w.tree.Parent(id)
	if parent == NoNode || !w.MoveFocusTo(parent) {
		return false
	}
	w.Close(parent)
	w.tree.at(id).TabIndex = -1
	return true
}

// Toggle flips the open state of a has-submenu item without moving focus.
func (w *Widget) Toggle(id NodeID) bool {
	if !w.tree.valid(id) || !w.tree.at(id).HasSubmenu {
		return false
	}
	if w.tree.at(id).Open {
		return w.Close(id)
	}
	w.tree.at(id).Open = true
	events.Menu.Open(w.id, int(id))
	return true
}

// Activate runs a leaf's primary action; has-submenu items open instead.
func (w *Widget) Activate(id NodeID) bool {
	if !w.tree.valid(id) {
		return false
	}
	n := w.tree.at(id)
	if n.HasSubmenu {
		return w.Open(id)
	}
	events.Menu.Activate(w.id, int(id), n.Label, n.Href)
	if w.activate != nil {
		w.activate(*n)
	}
	return true
}
