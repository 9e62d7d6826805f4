// Package table makes HTML data tables sortable, filterable and responsive.
package table

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/logging/events"
)

// FilterAll is the filter value that shows every row.
const FilterAll = "__none__"

var (
	ErrNotTable      = errors.New("target must be a table")
	ErrColumn        = errors.New("no such column")
	ErrNotSortable   = errors.New("column is not sortable")
	ErrNotFilterable = errors.New("column is not filterable")
)

// Kind is the type a cell's text parses as.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

// Cell is one data cell with its parsed value.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
}

// ParseCell types text the way the table compares it: canonical integers
// and floats are numbers, anything else is a string.
func ParseCell(text string) Cell {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil && strconv.FormatInt(n, 10) == text {
		return Cell{Kind: Int, Text: text, Num: float64(n)}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == text {
		return Cell{Kind: Float, Text: text, Num: f}
	}
	return Cell{Kind: String, Text: text}
}

func (c Cell) String() string { return c.Text }

// Direction is a column's sort state.
type Direction string

const (
	Unsorted   Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type Column struct {
	Header     string
	Sortable   bool
	Filterable bool
	Sorted     Direction
}

type Row struct {
	// Index is the row's position in document order.
	Index  int
	Cells  []Cell
	Hidden bool
	sel    *goquery.Selection
}

// Announcer receives sort and filter announcements.
type Announcer interface {
	Polite(msg string)
}

type Option func(*Table)

func WithStrings(s i18n.Strings) Option {
	return func(t *Table) { t.strings = s }
}

func WithCSS(s i18n.Strings) Option {
	return func(t *Table) { t.css = s }
}

func WithAnnouncer(a Announcer) Option {
	return func(t *Table) { t.announcer = a }
}

// Table is the live state of one HTML table.
type Table struct {
	sel       *goquery.Selection
	opts      Options
	strings   i18n.Strings
	css       i18n.Strings
	announcer Announcer
	columns   []Column
	rows      []*Row
}

// New reads sel (a <table>) and applies the initial sort when sorting is on.
func New(sel *goquery.Selection, opts Options, options ...Option) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tbl := sel.First()
	if tbl.Length() == 0 || goquery.NodeName(tbl) != "table" {
		return nil, ErrNotTable
	}
	if r := opts.Responsive; r != nil && !r.RowBased {
		if tbl.Find("tbody").Length() == 0 {
			return nil, fmt.Errorf("%w: tbody", ErrMissingSection)
		}
		if tbl.Find("thead").Length() == 0 {
			return nil, fmt.Errorf("%w: thead", ErrMissingSection)
		}
	}

	t := &Table{sel: tbl, opts: opts, strings: i18n.Defaults(), css: i18n.DefaultCSS()}
	for _, opt := range options {
		opt(t)
	}

	mode := opts.Mode()
	tbl.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		col := Column{Header: strings.TrimSpace(th.Text())}
		if _, ok := th.Attr("data-filter"); ok {
			col.Filterable = mode.filters()
		} else {
			col.Sortable = mode.sorts()
		}
		t.columns = append(t.columns, col)
	})
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := &Row{Index: len(t.rows), sel: tr}
		cells.Each(func(_ int, td *goquery.Selection) {
			row.Cells = append(row.Cells, ParseCell(td.Text()))
		})
		t.rows = append(t.rows, row)
	})

	if mode.sorts() {
		for i, col := range t.columns {
			if col.Sortable {
				t.SortBy(i, Ascending)
				break
			}
		}
	}
	return t, nil
}

// Extract returns the header texts and typed cells of a table.
func Extract(sel *goquery.Selection) ([]string, [][]Cell, error) {
	t, err := New(sel, Options{SortFilter: None})
	if err != nil {
		return nil, nil, err
	}
	var rows [][]Cell
	for _, r := range t.rows {
		rows = append(rows, r.Cells)
	}
	return t.Headers(), rows, nil
}

func (t *Table) Options() Options { return t.opts }

func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

func (t *Table) Headers() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Header
	}
	return out
}

// Rows returns every row in display order, hidden ones included.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = *r
	}
	return out
}

// VisibleRows returns rows not removed by a filter, in display order.
func (t *Table) VisibleRows() []Row {
	var out []Row
	for _, r := range t.rows {
		if !r.Hidden {
			out = append(out, *r)
		}
	}
	return out
}

func (t *Table) column(col int) (*Column, error) {
	if col < 0 || col >= len(t.columns) {
		return nil, fmt.Errorf("%w: %d", ErrColumn, col)
	}
	return &t.columns[col], nil
}

// Sort orders the table by col, ascending first and toggling on repeat.
func (t *Table) Sort(col int) (Direction, error) {
	c, err := t.column(col)
	if err != nil {
		return Unsorted, err
	}
	if !c.Sortable {
		return Unsorted, fmt.Errorf("%w: %q", ErrNotSortable, c.Header)
	}
	dir := Ascending
	if c.Sorted == Ascending {
		dir = Descending
	}
	t.SortBy(col, dir)
	return dir, nil
}

// SortBy orders rows by col in dir and announces the new order.
func (t *Table) SortBy(col int, dir Direction) {
	if col < 0 || col >= len(t.columns) {
		return
	}
	compare := func(a, b Cell) int {
		if (a.Kind == String) != (b.Kind == String) {
			if a.Kind == String {
				return -1
			}
			return 1
		}
		if a.Kind == String {
			return strings.Compare(a.Text, b.Text)
		}
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	}
	cell := func(r *Row) Cell {
		if col < len(r.Cells) {
			return r.Cells[col]
		}
		return Cell{}
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		cmp := compare(cell(t.rows[i]), cell(t.rows[j]))
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	for i := range t.columns {
		t.columns[i].Sorted = Unsorted
	}
	t.columns[col].Sorted = dir

	key := i18n.TableSortedAscending
	if dir == Descending {
		key = i18n.TableSortedDescending
	}
	events.Table.Sort(col, string(dir))
	t.announce(t.strings.Lookup(key, i18n.Values{"column": t.columns[col].Header}))
}

// Filter hides rows whose cell in col differs from value. FilterAll or an
// empty value shows every row.
func (t *Table) Filter(col int, value string) error {
	c, err := t.column(col)
	if err != nil {
		return err
	}
	if !c.Filterable {
		return fmt.Errorf("%w: %q", ErrNotFilterable, c.Header)
	}
	all := value == "" || value == FilterAll
	for _, r := range t.rows {
		r.Hidden = !all && (col >= len(r.Cells) || r.Cells[col].Text != value)
	}
	shown := value
	if all {
		shown = t.strings.Lookup(i18n.All, nil)
	}
	events.Table.Filter(col, value)
	t.announce(t.strings.Lookup(i18n.TableFilteredOnAndBy, i18n.Values{"column": c.Header, "value": shown}))
	return nil
}

// FilterValues lists the distinct values of col in display order.
func (t *Table) FilterValues(col int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		if col >= len(r.Cells) {
			continue
		}
		v := r.Cells[col].Text
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Query ranks visible rows by fuzzy match against their joined cell text.
func (t *Table) Query(query string) []Row {
	visible := t.VisibleRows()
	query = strings.TrimSpace(query)
	if query == "" {
		return visible
	}
	targets := make([]string, len(visible))
	for i, r := range visible {
		parts := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			parts[j] = c.Text
		}
		targets[i] = strings.Join(parts, " ")
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)
	out := make([]Row, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, visible[rank.OriginalIndex])
	}
	events.Table.Query(query, len(out))
	return out
}

// SortedText is the offscreen description of col's sort state.
func (t *Table) SortedText(col int) string {
	c, err := t.column(col)
	if err != nil {
		return ""
	}
	switch c.Sorted {
	case Ascending:
		return t.strings.Lookup(i18n.SortableSortedAscending, nil)
	case Descending:
		return t.strings.Lookup(i18n.SortableSortedDescending, nil)
	}
	return t.strings.Lookup(i18n.SortableNotSorted, nil)
}

// HeaderLabel is the header text plus its accessible state suffix.
func (t *Table) HeaderLabel(col int) string {
	c, err := t.column(col)
	if err != nil {
		return ""
	}
	switch {
	case c.Sortable:
		return c.Header + t.SortedText(col)
	case c.Filterable:
		return c.Header + t.strings.Lookup(i18n.Filterable, nil)
	}
	return c.Header
}

func (t *Table) announce(msg string) {
	if t.announcer != nil && msg != "" {
		t.announcer.Polite(msg)
	}
}

// Layout is a table drawn for a given viewport width.
type Layout struct {
	// Smartphone is the transposed layout: one row per column, headers
	// leading each row.
	Smartphone bool
	Header     []string
	Rows       [][]string
}

// Layout draws the visible rows. Columnar responsive tables switch to the
// transposed layout at or below the break point.
func (t *Table) Layout(width int) Layout {
	rows := t.VisibleRows()
	r := t.opts.Responsive
	if r == nil || r.RowBased || width > r.BreakPoint {
		out := Layout{Header: t.Headers()}
		for _, row := range rows {
			cells := make([]string, len(row.Cells))
			for i, c := range row.Cells {
				cells[i] = c.Text
			}
			out.Rows = append(out.Rows, cells)
		}
		return out
	}

	out := Layout{Smartphone: true}
	width0 := 0
	if len(rows) > 0 {
		width0 = len(rows[0].Cells)
	}
	for i := 0; i < width0; i++ {
		var line []string
		if i < len(t.columns) {
			line = append(line, t.columns[i].Header)
		}
		for _, row := range rows {
			if i < len(row.Cells) {
				line = append(line, row.Cells[i].Text)
			}
		}
		out.Rows = append(out.Rows, line)
	}
	return out
}

// HTML renders a layout as table inner markup.
func (l Layout) HTML() string {
	var b strings.Builder
	if l.Smartphone {
		b.WriteString("<thead></thead>")
		for _, row := range l.Rows {
			b.WriteString("<tr>")
			for i, cell := range row {
				if i == 0 {
					fmt.Fprintf(&b, `<th scope="row">%s</th>`, html.EscapeString(cell))
					continue
				}
				fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
			}
			b.WriteString("</tr>")
		}
		return b.String()
	}
	if len(l.Header) > 0 {
		b.WriteString("<tr>")
		for _, h := range l.Header {
			fmt.Fprintf(&b, `<th scope="col">%s</th>`, html.EscapeString(h))
		}
		b.WriteString("</tr>")
	}
	for _, row := range l.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	return b.String()
}

// Stylesheet returns the responsive CSS, or "" when none was requested.
func (t *Table) Stylesheet() string {
	r := t.opts.Responsive
	if r == nil || !r.CSS {
		return ""
	}
	return i18n.Lookup(i18n.CSSString, i18n.Values{"breakPoint": strconv.Itoa(r.BreakPoint)}, t.css)
}

// Apply writes the current state back into the markup for the given
// viewport width.
func (t *Table) Apply(width int) {
	mode := t.opts.Mode()
	r := t.opts.Responsive
	switch {
	case r == nil && mode != None:
		t.applyHeaders()
		t.applyRows()
	case r != nil && !r.RowBased:
		t.sel.SetHtml(t.Layout(width).HTML())
	case r != nil && r.RowBased:
		if t.sel.Find("thead").Length() == 0 {
			t.sel.PrependHtml("<thead></thead>")
		}
		if t.sel.Find("tbody").Length() == 0 {
			t.sel.Find("thead").AfterHtml("<tbody></tbody>")
			t.sel.Find("tbody").AppendSelection(t.sel.Find("tr"))
		}
	}
}

func (t *Table) applyHeaders() {
	t.sel.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if i >= len(t.columns) {
			return
		}
		c := t.columns[i]
		if !c.Sortable && !c.Filterable {
			return
		}
		a := th.ChildrenFiltered("a")
		if a.Length() == 0 {
			if c.Filterable {
				th.WrapInnerHtml(`<a href="#" data-filter="true"></a>`)
			} else {
				th.WrapInnerHtml(`<a href="#"></a>`)
			}
			a = th.ChildrenFiltered("a")
		}
		if c.Sorted != Unsorted {
			a.SetAttr("data-sorted", string(c.Sorted))
		} else {
			a.RemoveAttr("data-sorted")
		}
	})
}

func (t *Table) applyRows() {
	body := t.sel.Find("tbody").First()
	for _, r := range t.rows {
		if r.sel == nil {
			continue
		}
		body.AppendSelection(r.sel)
		if r.Hidden {
			r.sel.SetAttr("hidden", "")
		} else {
			r.sel.RemoveAttr("hidden")
		}
	}
}
