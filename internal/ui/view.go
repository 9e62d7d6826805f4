package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/a11yfy/internal/announce"
	fmttable "github.com/atomicstack/a11yfy/internal/format/table"
	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/table"
	uistate "github.com/atomicstack/a11yfy/internal/ui/state"
)

const maxCellWidth = 24

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// menuCell is one drawn menu item and doubles as its mouse hit box.
type menuCell struct {
	id    menu.NodeID
	x, y  int
	width int
	text  string
	style *lipgloss.Style
}

func (c menuCell) contains(x, y int) bool {
	return y == c.y && x >= c.x && x < c.x+c.width
}

// View implements tea.Model.
func (m *Model) View() string {
	menuLines, _ := m.menuRows()
	lines := make([]styledLine, 0, 24)
	lines = append(lines, menuLines...)
	if m.table != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, m.paneLines()...)
	}
	if live := m.liveLog(); len(live) > 0 {
		lines = append(lines, styledLine{})
		for _, msg := range live {
			style := styles.LiveRegion
			if msg.Politeness == announce.Assertive {
				style = styles.LiveAssertive
			}
			lines = append(lines, styledLine{text: fmt.Sprintf("%s: %s", msg.Politeness, msg.Text), style: style})
		}
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottom := []styledLine{m.statusLine()}
	if m.table != nil {
		bottom = append(bottom, styledLine{text: m.filterPrompt(), raw: true})
	}
	lines = append(lines, applyWidth(bottom, m.width)...)
	return renderLines(lines)
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendLastErr != "":
		return styledLine{text: fmt.Sprintf("Watch: %s", m.backendLastErr), style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	return styledLine{}
}

// menuRows draws the menubar on row 0 and every open submenu as a column
// below or beside its parent. Cells that would overlap an earlier cell on
// the same row are dropped and get no hit box.
func (m *Model) menuRows() ([]styledLine, []menuCell) {
	tree := m.widget.Tree()
	var cells []menuCell
	x := 0
	for _, id := range tree.TopLevelItems() {
		if !tree.Visible(id) {
			continue
		}
		n, _ := tree.Node(id)
		text := m.itemText(n)
		width := ansi.StringWidth(text)
		cells = append(cells, menuCell{id: id, x: x, y: 0, width: width, text: text, style: m.itemStyle(n)})
		if n.Open {
			cells = m.dropdown(cells, n.Children, x, 1)
		}
		x += width + 1
	}

	rows := make(map[int][]menuCell)
	maxRow := 0
	for _, c := range cells {
		rows[c.y] = append(rows[c.y], c)
		if c.y > maxRow {
			maxRow = c.y
		}
	}
	lines := make([]styledLine, 0, maxRow+1)
	drawn := make([]menuCell, 0, len(cells))
	for y := 0; y <= maxRow; y++ {
		row := rows[y]
		sort.SliceStable(row, func(i, j int) bool { return row[i].x < row[j].x })
		var b strings.Builder
		cur := 0
		for _, c := range row {
			if c.x < cur {
				continue
			}
			gap := strings.Repeat(" ", c.x-cur)
			if y == 0 {
				gap = render(styles.MenuBar, gap)
			}
			b.WriteString(gap)
			b.WriteString(render(c.style, c.text))
			cur = c.x + c.width
			drawn = append(drawn, c)
		}
		lines = append(lines, styledLine{text: b.String(), raw: true})
	}
	return lines, drawn
}

func (m *Model) dropdown(cells []menuCell, ids []menu.NodeID, x, y int) []menuCell {
	tree := m.widget.Tree()
	visible := make([]menu.Node, 0, len(ids))
	width := 0
	for _, id := range ids {
		if !tree.Visible(id) {
			continue
		}
		n, _ := tree.Node(id)
		visible = append(visible, n)
		if w := ansi.StringWidth(m.itemText(n)); w > width {
			width = w
		}
	}
	for i, n := range visible {
		text := m.itemText(n)
		text += strings.Repeat(" ", width-ansi.StringWidth(text))
		cells = append(cells, menuCell{id: n.ID, x: x, y: y + i, width: width, text: text, style: m.itemStyle(n)})
		if n.Open {
			cells = m.dropdown(cells, n.Children, x+width+1, y+i)
		}
	}
	return cells
}

func (m *Model) itemText(n menu.Node) string {
	marker := " "
	if m.focusedOn(n.ID) {
		marker = "›"
	}
	label := n.Label
	if label == "" {
		label = n.Text
	}
	suffix := ""
	if n.HasSubmenu {
		suffix = " ▸"
		if n.Level == 1 {
			suffix = " ▾"
		}
	}
	return marker + label + suffix + " "
}

func (m *Model) itemStyle(n menu.Node) *lipgloss.Style {
	switch {
	case m.focusedOn(n.ID):
		return styles.MenuFocused
	case n.Open:
		return styles.MenuOpen
	case n.TabIndex == 0:
		return styles.MenuTabbable
	case n.Level == 1:
		return styles.MenuItem
	}
	return styles.Dropdown
}

func (m *Model) focusedOn(id menu.NodeID) bool {
	return m.widget.HasFocus() && m.widget.Focused() == id
}

func (m *Model) paneLines() []styledLine {
	titleStyle := styles.PaneTitle
	if m.region == RegionContent {
		titleStyle = styles.PaneTitleActive
	}
	total := len(m.table.Rows())
	title := fmt.Sprintf("%s (%d of %d rows)", m.pane.Title, len(m.pane.Items), total)
	lines := []styledLine{{text: title, style: titleStyle}}

	if len(m.pane.Items) == 0 {
		msg := "(no rows)"
		if m.pane.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.pane.Filter)
		}
		if len(m.headers) > 0 {
			lines = append(lines, styledLine{text: strings.Join(m.headerLabels(), "  "), style: styles.TableHeader})
		}
		return append(lines, styledLine{text: msg, style: styles.Info})
	}

	items, start := m.pane.Window(m.maxVisibleRows())
	grid := make([][]string, 0, len(items)+1)
	hasHeader := len(m.headers) > 0
	if hasHeader {
		grid = append(grid, m.headerLabels())
	}
	for _, item := range items {
		grid = append(grid, item.Cells)
	}
	formatted := fmttable.Format(grid, columnAlignments(items), maxCellWidth)
	for i, text := range formatted {
		if hasHeader && i == 0 {
			lines = append(lines, styledLine{text: text, style: styles.TableHeader})
			continue
		}
		idx := start + i
		if hasHeader {
			idx--
		}
		style := styles.TableRow
		if idx == m.pane.Cursor && m.region == RegionContent {
			style = styles.TableSelected
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	return lines
}

func (m *Model) headerLabels() []string {
	columns := m.table.Columns()
	out := make([]string, len(m.headers))
	for i, h := range m.headers {
		label := h
		if i < len(columns) {
			switch columns[i].Sorted {
			case table.Ascending:
				label += " ▲"
			case table.Descending:
				label += " ▼"
			}
		}
		if i == m.column && m.region == RegionContent {
			label = "[" + label + "]"
		}
		out[i] = label
	}
	return out
}

// columnAlignments right-aligns columns whose every cell is numeric.
func columnAlignments(items []uistate.Item) []fmttable.Alignment {
	width := 0
	for _, item := range items {
		if len(item.Cells) > width {
			width = len(item.Cells)
		}
	}
	out := make([]fmttable.Alignment, width)
	for col := 0; col < width; col++ {
		numeric := false
		for _, item := range items {
			if col >= len(item.Cells) {
				continue
			}
			if table.ParseCell(item.Cells[col]).Kind == table.String {
				numeric = false
				break
			}
			numeric = true
		}
		if numeric {
			out[col] = fmttable.AlignRight
		}
	}
	return out
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.region != RegionMenu {
		// Flush a pending tab-exit so the click lands on the settled tree.
		m.enterMenu("enter")
	}
	_, cells := m.menuRows()
	for _, c := range cells {
		if !c.contains(ev.X, ev.Y) {
			continue
		}
		events.UI.Click(ev.X, ev.Y, int(c.id))
		before := m.widget.Current()
		m.widget.Click(c.id)
		m.noteFocus("click", before)
		return nil
	}
	events.UI.Click(ev.X, ev.Y, int(menu.NoNode))
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.refreshPane()
	m.pane.EnsureCursorVisible(m.maxVisibleRows())
	return nil
}

// maxVisibleRows is how many table rows fit below the menu and above the
// bottom bar.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	menuLines, _ := m.menuRows()
	used := 2 + len(menuLines) + 3 // bottom bar, menu, blank + title + header
	if live := m.liveLog(); len(live) > 0 {
		used += 1 + len(live)
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		out[i] = render(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
