package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/table"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	m.errMsg = ""
	if m.region == RegionMenu {
		m.handleMenuKey(keyMsg)
		return nil
	}
	m.handlePaneKey(keyMsg)
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) {
	k, ok := translateKey(msg)
	if !ok {
		events.UI.Key(m.region.String(), msg.String(), false)
		return
	}
	before := m.widget.Current()
	handled := m.widget.HandleKey(k)
	events.UI.Key(m.region.String(), msg.String(), handled)
	if m.metrics != nil {
		m.metrics.Keys.Increment(keyLabel(k), boolLabel(handled))
	}
	m.noteFocus("key", before)
	if k.Code == menu.KeyTab && k.Mods&(menu.ModCtrl|menu.ModAlt|menu.ModMeta) == 0 {
		m.switchRegion(RegionContent)
	}
}

// enterMenu returns focus to the widget, as Tab into it from outside would.
func (m *Model) enterMenu(cause string) {
	before := m.widget.Current()
	m.widget.Enter()
	m.noteFocus(cause, before)
	m.switchRegion(RegionMenu)
}

func (m *Model) handlePaneKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.enterMenu("enter")
		return
	case key.Matches(msg, m.keys.Column):
		m.moveColumn(msg.Type == tea.KeyShiftRight)
		return
	case key.Matches(msg, m.keys.Sort):
		m.applyColumnAction()
		return
	case key.Matches(msg, m.keys.Clear):
		m.clearFilter()
		return
	}
	maxRows := m.maxVisibleRows()
	switch msg.String() {
	case "up":
		m.pane.MoveCursorBy(-1)
	case "down":
		m.pane.MoveCursorBy(1)
	case "pgup":
		m.pane.MoveCursorPageUp(maxRows)
	case "pgdown":
		m.pane.MoveCursorPageDown(maxRows)
	case "home":
		m.pane.MoveCursorHome()
	case "end":
		m.pane.MoveCursorEnd()
	default:
		m.handleTextInput(msg)
		return
	}
	m.pane.EnsureCursorVisible(maxRows)
}

func (m *Model) moveColumn(forward bool) {
	count := len(m.headers)
	if count == 0 {
		return
	}
	if forward {
		m.column = (m.column + 1) % count
	} else {
		m.column = (m.column - 1 + count) % count
	}
}

// applyColumnAction sorts the selected column, or steps its filter through
// All and each distinct value.
func (m *Model) applyColumnAction() {
	if m.table == nil || m.column >= len(m.table.Columns()) {
		return
	}
	col := m.table.Columns()[m.column]
	switch {
	case col.Sortable:
		if _, err := m.table.Sort(m.column); err != nil {
			m.errMsg = err.Error()
		}
	case col.Filterable:
		values := m.table.FilterValues(m.column)
		next := (m.filterIndex[m.column] + 1) % (len(values) + 1)
		m.filterIndex[m.column] = next
		value := table.FilterAll
		if next > 0 {
			value = values[next-1]
		}
		if err := m.table.Filter(m.column, value); err != nil {
			m.errMsg = err.Error()
		}
	default:
		return
	}
	m.refreshPane()
}

func (m *Model) noteFocus(cause string, before menu.NodeID) {
	if m.widget.Current() == before || m.metrics == nil {
		return
	}
	m.metrics.FocusMoves.Increment(cause)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
