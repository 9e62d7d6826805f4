package ui

import (
	"strconv"
	"strings"

	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/table"
	uistate "github.com/atomicstack/a11yfy/internal/ui/state"
)

// refreshPane rebuilds the pane's rows from the table's current sort,
// filter and layout.
func (m *Model) refreshPane() {
	if m.table == nil {
		m.headers = nil
		m.pane.UpdateItems(nil)
		return
	}
	if m.table.Options().Responsive != nil {
		layout := m.table.Layout(m.width)
		m.headers = layout.Header
		items := make([]uistate.Item, len(layout.Rows))
		for i, cells := range layout.Rows {
			items[i] = uistate.Item{ID: strconv.Itoa(i), Label: strings.Join(cells, " "), Cells: cells}
		}
		m.pane.UpdateItems(items)
		return
	}
	m.headers = m.table.Headers()
	m.pane.UpdateItems(rowItems(m.table.VisibleRows()))
	if m.column >= len(m.headers) {
		m.column = 0
	}
}

func rowItems(rows []table.Row) []uistate.Item {
	items := make([]uistate.Item, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = c.Text
		}
		items[i] = uistate.Item{ID: strconv.Itoa(row.Index), Label: strings.Join(cells, " "), Cells: cells}
	}
	return items
}

// matchRows ranks rows with the table's own query so the pane and the
// table agree on what matches.
func (m *Model) matchRows(items []uistate.Item, query string) []uistate.Item {
	byID := make(map[string]uistate.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	rows := m.table.Query(query)
	out := make([]uistate.Item, 0, len(rows))
	for _, row := range rows {
		if item, ok := byID[strconv.Itoa(row.Index)]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (m *Model) clearFilter() {
	if m.pane.Filter == "" {
		return
	}
	m.pane.SetFilter("", 0)
	events.Filter.Cleared(m.pane.ID)
}
