package state

// Matcher narrows items to those matching a non-empty query, in ranked
// order.
type Matcher func(items []Item, query string) []Item

// Level encapsulates pane state such as cursor position, filter, and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int

	// Match overrides FilterItems when set.
	Match Matcher
}

// NewLevel constructs a Level using the provided items.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems refreshes the level items, keeping the cursor on the same
// item when it survives.
func (l *Level) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	var keep string
	if item, ok := l.Current(); ok {
		keep = item.ID
	}
	l.Full = CloneItems(items)
	l.applyFilter()
	if idx := l.IndexOf(keep); idx >= 0 {
		l.Cursor = idx
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
