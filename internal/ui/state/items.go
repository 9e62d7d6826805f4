package state

// Item is one row of the content pane. Label is the text the filter
// matches against; Cells hold the column values shown on screen.
type Item struct {
	ID    string
	Label string
	Cells []string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
