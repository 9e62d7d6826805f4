package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/menu"
)

type keyMap struct {
	region Region

	Move     key.Binding
	Activate key.Binding
	Close    key.Binding
	Tab      key.Binding
	Rows     key.Binding
	Column   key.Binding
	Sort     key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move: key.NewBinding(
			key.WithKeys("left", "right", "up", "down"),
			key.WithHelp("←↑↓→", "move"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("↵/space", "activate"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Rows: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown", "home", "end"),
			key.WithHelp("↑/↓", "rows"),
		),
		Column: key.NewBinding(
			key.WithKeys("shift+left", "shift+right"),
			key.WithHelp("⇧←/⇧→", "column"),
		),
		Sort: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "sort/filter column"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.region == RegionContent {
		return []key.Binding{k.Rows, k.Column, k.Sort, k.Clear, k.Tab, k.Quit}
	}
	return []key.Binding{k.Move, k.Activate, k.Close, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// translateKey maps a terminal key press onto the widget's key model.
func translateKey(msg tea.KeyMsg) (menu.Key, bool) {
	var k menu.Key
	switch msg.Type {
	case tea.KeyTab:
		k.Code = menu.KeyTab
	case tea.KeyShiftTab:
		k = menu.Key{Code: menu.KeyTab, Mods: menu.ModShift}
	case tea.KeyEnter:
		k.Code = menu.KeyEnter
	case tea.KeySpace:
		k.Code = menu.KeySpace
	case tea.KeyLeft:
		k.Code = menu.KeyLeft
	case tea.KeyRight:
		k.Code = menu.KeyRight
	case tea.KeyUp:
		k.Code = menu.KeyUp
	case tea.KeyDown:
		k.Code = menu.KeyDown
	case tea.KeyEsc:
		k.Code = menu.KeyEscape
	case tea.KeyShiftLeft:
		k = menu.Key{Code: menu.KeyLeft, Mods: menu.ModShift}
	case tea.KeyShiftRight:
		k = menu.Key{Code: menu.KeyRight, Mods: menu.ModShift}
	case tea.KeyShiftUp:
		k = menu.Key{Code: menu.KeyUp, Mods: menu.ModShift}
	case tea.KeyShiftDown:
		k = menu.Key{Code: menu.KeyDown, Mods: menu.ModShift}
	case tea.KeyCtrlLeft:
		k = menu.Key{Code: menu.KeyLeft, Mods: menu.ModCtrl}
	case tea.KeyCtrlRight:
		k = menu.Key{Code: menu.KeyRight, Mods: menu.ModCtrl}
	case tea.KeyCtrlUp:
		k = menu.Key{Code: menu.KeyUp, Mods: menu.ModCtrl}
	case tea.KeyCtrlDown:
		k = menu.Key{Code: menu.KeyDown, Mods: menu.ModCtrl}
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return menu.Key{}, false
		}
		k = menu.Key{Code: menu.KeyRune, Rune: msg.Runes[0]}
	default:
		return menu.Key{}, false
	}
	if msg.Alt {
		k.Mods |= menu.ModAlt
	}
	return k, true
}

// keyLabel names a key for metrics without leaking typed text.
func keyLabel(k menu.Key) string {
	switch k.Code {
	case menu.KeyTab:
		return "tab"
	case menu.KeyEnter:
		return "enter"
	case menu.KeySpace:
		return "space"
	case menu.KeyLeft:
		return "left"
	case menu.KeyRight:
		return "right"
	case menu.KeyUp:
		return "up"
	case menu.KeyDown:
		return "down"
	case menu.KeyEscape:
		return "escape"
	case menu.KeyRune:
		return "rune"
	default:
		return "other"
	}
}
