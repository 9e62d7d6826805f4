package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/logging/events"
)

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.pane
	switch msg.String() {
	case "ctrl+u":
		if current.Filter == "" {
			return false
		}
		current.SetFilter("", 0)
		events.Filter.Cleared(current.ID)
		return true
	case "ctrl+w":
		if !current.DeleteFilterWordBackward() {
			return false
		}
		events.Filter.WordBackspace(current.ID, current.Filter)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !current.DeleteFilterRuneBackward() {
			return false
		}
		events.Filter.Backspace(current.ID, current.Filter)
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		if !current.MoveFilterCursorRuneBackward() {
			return false
		}
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	case tea.KeyRight:
		if !current.MoveFilterCursorRuneForward() {
			return false
		}
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if !m.pane.InsertFilterText(text) {
		return false
	}
	m.forceClearInfo()
	events.Filter.Append(m.pane.ID, m.pane.Filter)
	return true
}

func (m *Model) filterPrompt() string {
	prompt := render(styles.FilterPrompt, "» ")
	text := []rune(m.pane.Filter)
	if len(text) == 0 {
		placeholder := "(type to search rows)"
		if m.region != RegionContent {
			return prompt + render(styles.FilterPlaceholder, placeholder)
		}
		runes := []rune(placeholder)
		return prompt + m.renderFilterCursor(string(runes[0])) + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	if m.region != RegionContent {
		return prompt + render(styles.Filter, string(text))
	}
	pos := m.pane.FilterCursorPos()
	caret := " "
	var after string
	if pos < len(text) {
		caret = string(text[pos])
		after = string(text[pos+1:])
	}
	return prompt + render(styles.Filter, string(text[:pos])) + m.renderFilterCursor(caret) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	if styles.Cursor != nil {
		return styles.Cursor.Inline(true).Render(char)
	}
	return char
}
