package menu

import "github.com/atomicstack/a11yfy/internal/logging/events"

// Direction is the sense of a sibling move.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// Move focuses the nearest visible sibling of id in direction d, wrapping
// at either end of the parent's children. When no other sibling is visible
// focus stays on id. The scan covers at most one full cycle.
func (w *Widget) Move(id NodeID, d Direction) NodeID {
	if !w.tree.valid(id) {
		return NoNode
	}
	sibs := w.tree.Siblings(id)
	origin := w.tree.siblingIndex(id)
	count := len(sibs)
	for step := 1; step < count; step++ {
		j := (origin + step) % count
		if d == Prev {
			j = (origin - step + count) % count
		}
		if w.tree.Visible(sibs[j]) {
			w.MoveFocusTo(sibs[j])
			events.Menu.Move(w.id, int(id), int(sibs[j]), d.String())
			return sibs[j]
		}
	}
	return id
}
