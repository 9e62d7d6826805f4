package ui

import (
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/announce"
	"github.com/atomicstack/a11yfy/internal/backend"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/logging"
	"github.com/atomicstack/a11yfy/internal/markup"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/metric"
	"github.com/atomicstack/a11yfy/internal/names"
	"github.com/atomicstack/a11yfy/internal/table"
)

const testPage = `<ul id="nav">
<li>File<ul><li><a href="/new">New</a></li><li><a href="/open">Open</a></li></ul></li>
<li>Edit<ul><li>Undo</li></ul></li>
<li><a href="/help">Help</a></li>
</ul>
<table id="data">
<thead><tr><th>Name</th><th>Size</th><th data-filter>Kind</th></tr></thead>
<tbody>
<tr><td>beta</td><td>20</td><td>doc</td></tr>
<tr><td>alpha</td><td>3</td><td>img</td></tr>
<tr><td>gamma</td><td>100</td><td>doc</td></tr>
</tbody>
</table>`

// Node ids follow document order.
const (
	nodeFile menu.NodeID = iota
	nodeNew
	nodeOpen
	nodeEdit
	nodeUndo
	nodeHelp
)

type testOptions struct {
	platform menu.Platform
	metrics  *metric.Set
	status   string
}

func newTestModel(t *testing.T, opts testOptions) (*Model, *announce.Announcer) {
	t.Helper()
	doc, err := markup.ParseString(testPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := doc.Element("#nav")
	if err != nil {
		t.Fatalf("element: %v", err)
	}
	widget, err := menu.Init(root, menu.WithPlatform(opts.platform))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	ann := announce.New(names.Default())
	tbl, err := table.New(doc.Find("#data"), table.DefaultOptions(), table.WithAnnouncer(ann))
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	m := NewModel(Config{
		Widget:    widget,
		Table:     tbl,
		Announcer: ann,
		Metrics:   opts.metrics,
		Width:     80,
		Height:    24,
		Status:    opts.status,
	})
	return m, ann
}

func keyPress(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func firstCells(m *Model) []string {
	out := make([]string, len(m.pane.Items))
	for i, item := range m.pane.Items {
		out[i] = item.Cells[0]
	}
	return out
}

func TestNewModelFocusesFirstMenubarItem(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	if m.Region() != RegionMenu {
		t.Fatalf("expected menu region, got %v", m.Region())
	}
	if got := m.Widget().Focused(); got != nodeFile {
		t.Fatalf("expected File focused, got %d", got)
	}
	view := m.View()
	if !strings.Contains(view, "›File ▾") {
		t.Fatalf("expected focus marker on File, view =\n%s", view)
	}
}

func TestDownOpensSubmenuAndEnterActivates(t *testing.T) {
	m, ann := newTestModel(t, testOptions{})
	h := NewHarness(m)

	h.Send(keyPress(tea.KeyDown))
	if got := m.Widget().Focused(); got != nodeNew {
		t.Fatalf("expected New focused, got %d", got)
	}
	if view := h.View(); !strings.Contains(view, "›New") || !strings.Contains(view, "Open") {
		t.Fatalf("expected dropdown to be drawn, view =\n%s", view)
	}

	h.Send(keyPress(tea.KeyEnter))
	view := h.View()
	if !strings.Contains(view, "Activated New (/new)") {
		t.Fatalf("expected activation info, view =\n%s", view)
	}
	if !strings.Contains(view, "polite: Activated New (/new)") {
		t.Fatalf("expected live region log line, view =\n%s", view)
	}
	msgs := ann.Messages(announce.Polite)
	if len(msgs) == 0 || msgs[len(msgs)-1] != "Activated New (/new)" {
		t.Fatalf("expected polite announcement, got %v", msgs)
	}
}

func TestActivationWithoutHrefOmitsParentheses(t *testing.T) {
	if got := activationInfo(i18n.Defaults(), "Undo", ""); got != "Activated Undo" {
		t.Fatalf("expected bare label, got %q", got)
	}
	if got := activationInfo(i18n.Defaults(), "Help", "/help"); got != "Activated Help (/help)" {
		t.Fatalf("expected href suffix, got %q", got)
	}
	custom := i18n.Defaults().Merge(i18n.Strings{i18n.MenuActivated: "${label} gewählt"})
	if got := activationInfo(custom, "Datei", ""); got != "Datei gewählt" {
		t.Fatalf("expected configured string, got %q", got)
	}
}

func TestTabLeavesMenuAndDeferredExitRestoresTopLevel(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)

	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyTab))

	if m.Region() != RegionContent {
		t.Fatalf("expected content region after tab, got %v", m.Region())
	}
	if m.Widget().HasFocus() {
		t.Fatalf("expected widget to lose focus")
	}
	if got := m.Widget().Tabbable(); got != nodeFile {
		t.Fatalf("expected File tabbable after exit cleanup, got %d", got)
	}
	if n, _ := m.Widget().Tree().Node(nodeFile); n.Open {
		t.Fatalf("expected File closed after exit cleanup")
	}

	h.Send(keyPress(tea.KeyTab))
	if m.Region() != RegionMenu {
		t.Fatalf("expected menu region after second tab, got %v", m.Region())
	}
	if got := m.Widget().Focused(); got != nodeFile {
		t.Fatalf("expected File focused on re-entry, got %d", got)
	}
}

func TestReenteringMenuFlushesPendingTabExit(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})

	// Update alone never runs the returned timers.
	m.Update(keyPress(tea.KeyDown))
	m.Update(keyPress(tea.KeyTab))
	if n, _ := m.Widget().Tree().Node(nodeFile); !n.Open {
		t.Fatalf("expected cleanup to still be pending")
	}

	m.Update(keyPress(tea.KeyTab))
	if n, _ := m.Widget().Tree().Node(nodeFile); n.Open {
		t.Fatalf("expected re-entry to flush the pending cleanup")
	}
	if got := m.Widget().Focused(); got != nodeFile {
		t.Fatalf("expected File focused, got %d", got)
	}
}

func TestPaneSortsAndFiltersSelectedColumn(t *testing.T) {
	m, ann := newTestModel(t, testOptions{})
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyTab))

	if got := firstCells(m); strings.Join(got, ",") != "alpha,beta,gamma" {
		t.Fatalf("expected initial ascending sort, got %v", got)
	}
	before := len(ann.Messages(announce.Polite))

	h.Send(keyPress(tea.KeyEnter))
	if got := firstCells(m); strings.Join(got, ",") != "gamma,beta,alpha" {
		t.Fatalf("expected descending sort, got %v", got)
	}
	if !strings.Contains(h.View(), "[Name ▼]") {
		t.Fatalf("expected selected descending header, view =\n%s", h.View())
	}
	if after := len(ann.Messages(announce.Polite)); after != before+1 {
		t.Fatalf("expected sort announcement, got %d messages (was %d)", after, before)
	}

	h.Send(keyPress(tea.KeyShiftRight))
	h.Send(keyPress(tea.KeyShiftRight))
	h.Send(keyPress(tea.KeyEnter))
	if got := firstCells(m); strings.Join(got, ",") != "gamma,beta" {
		t.Fatalf("expected doc rows, got %v", got)
	}
	h.Send(keyPress(tea.KeyEnter))
	if got := firstCells(m); strings.Join(got, ",") != "alpha" {
		t.Fatalf("expected img rows, got %v", got)
	}
	h.Send(keyPress(tea.KeyEnter))
	if got := len(m.pane.Items); got != 3 {
		t.Fatalf("expected all rows after cycling filter, got %d", got)
	}
}

func TestPaneSearchNarrowsRows(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyTab))

	h.Send(runes("alp"))
	if got := firstCells(m); strings.Join(got, ",") != "alpha" {
		t.Fatalf("expected alpha only, got %v", got)
	}
	if !strings.Contains(h.View(), "(1 of 3 rows)") {
		t.Fatalf("expected row count in title, view =\n%s", h.View())
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	h.Send(runes("zzz"))
	if !strings.Contains(h.View(), `No matches for "zzz"`) {
		t.Fatalf("expected empty state, view =\n%s", h.View())
	}

	h.Send(keyPress(tea.KeyEsc))
	if m.pane.Filter != "" || len(m.pane.Items) != 3 {
		t.Fatalf("expected esc to clear the search, filter=%q rows=%d", m.pane.Filter, len(m.pane.Items))
	}
}

func TestRowCursorMovesInContentRegion(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyTab))
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyDown))
	if m.pane.Cursor != 2 {
		t.Fatalf("expected cursor on third row, got %d", m.pane.Cursor)
	}
	h.Send(keyPress(tea.KeyHome))
	if m.pane.Cursor != 0 {
		t.Fatalf("expected cursor home, got %d", m.pane.Cursor)
	}
	if got := m.Widget().Tabbable(); got != nodeFile {
		t.Fatalf("expected arrows in the pane to leave the menu alone, got %d", got)
	}
}

func TestClickOpensSubmenuAndActivatesLeaf(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)

	// "›File ▾ " spans columns 0-7; Edit starts after a one column gap.
	h.Send(tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Widget().Focused(); got != nodeEdit {
		t.Fatalf("expected Edit focused, got %d", got)
	}
	if n, _ := m.Widget().Tree().Node(nodeEdit); !n.Open {
		t.Fatalf("expected click to open Edit")
	}

	h.Send(tea.MouseMsg{X: 10, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	view := h.View()
	if !strings.Contains(view, "Activated Undo") || strings.Contains(view, "Activated Undo (") {
		t.Fatalf("expected bare activation info, view =\n%s", view)
	}
}

func TestClickFromContentRegionReturnsToMenu(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyTab))

	h.Send(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Region() != RegionMenu {
		t.Fatalf("expected menu region after click, got %v", m.Region())
	}
	if n, _ := m.Widget().Tree().Node(nodeFile); !n.Open {
		t.Fatalf("expected File open after click")
	}
}

func TestClickOutsideMenuIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)
	h.Send(tea.MouseMsg{X: 70, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Widget().Focused(); got != nodeFile {
		t.Fatalf("expected focus to stay on File, got %d", got)
	}
}

func TestTouchFocusWaitsForDeferredTask(t *testing.T) {
	m, _ := newTestModel(t, testOptions{platform: menu.PlatformTouch})

	m.Update(keyPress(tea.KeyRight))
	if got := m.Widget().Tabbable(); got != nodeEdit {
		t.Fatalf("expected Edit tabbable, got %d", got)
	}
	if got := m.Widget().Focused(); got != menu.NoNode {
		t.Fatalf("expected focus to be deferred, got %d", got)
	}

	h := NewHarness(m)
	h.Send(keyPress(tea.KeyRight))
	if got := m.Widget().Focused(); got != nodeHelp {
		t.Fatalf("expected Help focused once the task fired, got %d", got)
	}
}

func TestBackendVisibilityEventHidesItem(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)

	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindVisibility,
		Data: []menu.Visibility{{Path: []int{1}, Hidden: true}},
	}})
	if view := h.View(); strings.Contains(view, "Edit") {
		t.Fatalf("expected Edit hidden, view =\n%s", view)
	}

	h.Send(keyPress(tea.KeyRight))
	if got := m.Widget().Focused(); got != nodeHelp {
		t.Fatalf("expected navigation to skip hidden Edit, got %d", got)
	}
}

func TestBackendErrorShownUntilNextSnapshot(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "a11yfy.log"))
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)

	h.Send(backendEventMsg{event: backend.Event{Err: errors.New("read failed")}})
	if view := h.View(); !strings.Contains(view, "Watch: read failed") {
		t.Fatalf("expected watch error, view =\n%s", view)
	}
	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindVisibility,
		Data: []menu.Visibility{{Path: []int{1}, Hidden: false}},
	}})
	if view := h.View(); strings.Contains(view, "Watch:") {
		t.Fatalf("expected watch error cleared, view =\n%s", view)
	}
}

func TestStatusShownOnStartup(t *testing.T) {
	m, _ := newTestModel(t, testOptions{status: "Loaded 6 items"})
	if view := m.View(); !strings.Contains(view, "Loaded 6 items") {
		t.Fatalf("expected status line, view =\n%s", view)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, testOptions{})
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyCtrlC))
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}

func TestMetricsCountKeysAndFocusMoves(t *testing.T) {
	set := metric.NewSet()
	m, _ := newTestModel(t, testOptions{metrics: set})
	h := NewHarness(m)
	h.Send(keyPress(tea.KeyRight))
	h.Send(keyPress(tea.KeyTab))

	rec := httptest.NewRecorder()
	set.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`a11yfy_keys_total{handled="true",key="right"} 1`,
		`a11yfy_keys_total{handled="false",key="tab"} 1`,
		`a11yfy_focus_moves_total{cause="key"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in metrics output:\n%s", want, body)
		}
	}
}
