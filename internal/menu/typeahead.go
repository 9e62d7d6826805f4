package menu

import (
	"strings"
	"unicode"

	"github.com/atomicstack/a11yfy/internal/logging/events"
)

// TypeAhead moves focus from id to the next visible item whose label starts
// with r, wrapping to the start of the widget. Open submenus of the origin
// that do not contain the match are closed. It returns the match or NoNode.
func (w *Widget) TypeAhead(id NodeID, r rune) NodeID {
	if r == '\t' || !unicode.IsPrint(r) {
		return NoNode
	}
	prefix := string(unicode.ToLower(r))
	items := w.tree.VisibleItems()
	current := -1
	for i, item := range items {
		if item == id {
			current = i
			break
		}
	}

	match := NoNode
	matches := func(item NodeID) bool {
		return strings.HasPrefix(w.tree.at(item).Text, prefix)
	}
	for i := current + 1; i < len(items) && match == NoNode; i++ {
		if matches(items[i]) {
			match = items[i]
		}
	}
	for i := 0; i < current && match == NoNode; i++ {
		if matches(items[i]) {
			match = items[i]
		}
	}
	if match == NoNode {
		return NoNode
	}

	w.MoveFocusTo(match)
	events.Menu.TypeAhead(w.id, prefix, int(match))
	if !w.tree.valid(id) {
		return match
	}
	for cur := id; cur != NoNode; cur = w.tree.at(cur).Parent {
		if w.tree.at(cur).Open && !w.tree.isAncestorOrSelf(cur, match) {
			w.Close(cur)
		}
	}
	return match
}
