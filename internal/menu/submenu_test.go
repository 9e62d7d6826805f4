package menu

import "testing"

func TestOpenFocusesFirstVisibleChild(t *testing.T) {
	root := el("ul", "",
		item("Parent", hidden(item("Ghost")), item("X"), item("Y")),
	)
	w := mustInit(t, root)
	w.Enter()
	parent := find(t, w, "Parent")

	if !w.Open(parent) {
		t.Fatalf("expected Parent to open")
	}
	if labelOf(w, w.Focused()) != "X" {
		t.Fatalf("expected X focused, got %q", labelOf(w, w.Focused()))
	}
	if n, _ := w.Tree().Node(parent); !n.Open || n.TabIndex != -1 {
		t.Fatalf("expected open parent with tabindex -1, got %+v", n)
	}
	assertRoving(t, w)
}

func TestOpenWithOnlyHiddenChildrenKeepsFocus(t *testing.T) {
	root := el("ul", "", item("Parent", hidden(item("Ghost"))))
	w := mustInit(t, root)
	parent := w.Enter()
	w.Open(parent)
	if w.Focused() != parent {
		t.Fatalf("expected focus to stay on Parent, got %q", labelOf(w, w.Focused()))
	}
	assertRoving(t, w)
}

func TestOpenRejectsLeaf(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	if w.Open(find(t, w, "View")) {
		t.Fatalf("expected leaf to refuse opening")
	}
}

func TestEscapeFromSecondTierReturnsToParent(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	press(w, KeyRight)
	press(w, KeyDown)
	cut := w.Focused()
	if labelOf(w, cut) != "Cut" {
		t.Fatalf("expected Cut focused, got %q", labelOf(w, cut))
	}

	if !press(w, KeyEscape) {
		t.Fatalf("expected Escape to be consumed inside a submenu")
	}
	edit := find(t, w, "Edit")
	if w.Focused() != edit {
		t.Fatalf("expected Edit focused, got %q", labelOf(w, w.Focused()))
	}
	e, _ := w.Tree().Node(edit)
	c, _ := w.Tree().Node(cut)
	if e.Open || e.TabIndex != 0 || c.TabIndex != -1 {
		t.Fatalf("expected closed Edit at 0 and Cut at -1, got %+v / %+v", e, c)
	}
	assertRoving(t, w)
}

func TestLeftClosesThirdTierOneLevel(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	press(w, KeyDown)
	press(w, KeyUp)
	if labelOf(w, w.Focused()) != "Recent" {
		t.Fatalf("expected Recent, got %q", labelOf(w, w.Focused()))
	}
	press(w, KeyRight)
	if labelOf(w, w.Focused()) != "One" {
		t.Fatalf("expected Right to open Recent, got %q", labelOf(w, w.Focused()))
	}
	press(w, KeyLeft)
	if labelOf(w, w.Focused()) != "Recent" {
		t.Fatalf("expected Left to return to Recent, got %q", labelOf(w, w.Focused()))
	}
	if n, _ := w.Tree().Node(find(t, w, "File")); !n.Open {
		t.Fatalf("expected File to stay open")
	}
	if n, _ := w.Tree().Node(find(t, w, "Recent")); n.Open {
		t.Fatalf("expected Recent to close")
	}
	assertRoving(t, w)
}

func TestLeftAndEscapeAtMenubar(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	if press(w, KeyEscape) != true {
		t.Fatalf("expected Escape to be consumed")
	}
	if labelOf(w, w.Focused()) != "File" {
		t.Fatalf("expected Escape to do nothing at the menubar, got %q", labelOf(w, w.Focused()))
	}
	press(w, KeyLeft)
	if labelOf(w, w.Focused()) != "Help" {
		t.Fatalf("expected Left to wrap to Help, got %q", labelOf(w, w.Focused()))
	}
	assertRoving(t, w)
}

func TestEnterActivatesLeafAndOpensParent(t *testing.T) {
	var activated []Node
	w := mustInit(t, fileMenu(), WithActivator(func(n Node) { activated = append(activated, n) }))
	w.Enter()

	press(w, KeySpace)
	if labelOf(w, w.Focused()) != "New" {
		t.Fatalf("expected Space to open File, got %q", labelOf(w, w.Focused()))
	}
	press(w, KeyEnter)
	if len(activated) != 1 || activated[0].Href != "#new" {
		t.Fatalf("expected New to be activated, got %+v", activated)
	}
	if labelOf(w, w.Focused()) != "New" {
		t.Fatalf("activation must not move focus, got %q", labelOf(w, w.Focused()))
	}
}

func TestClickTogglesAndActivates(t *testing.T) {
	var activated []string
	w := mustInit(t, fileMenu(), WithActivator(func(n Node) { activated = append(activated, n.Label) }))
	edit := find(t, w, "Edit")

	if !w.Click(edit) {
		t.Fatalf("expected click on Edit to be handled")
	}
	if n, _ := w.Tree().Node(edit); !n.Open {
		t.Fatalf("expected Edit open after click")
	}
	if w.Focused() != edit {
		t.Fatalf("expected click to focus Edit, got %q", labelOf(w, w.Focused()))
	}
	w.Click(find(t, w, "Copy"))
	if len(activated) != 1 || activated[0] != "Copy" {
		t.Fatalf("expected Copy activated, got %v", activated)
	}
	w.Click(edit)
	if n, _ := w.Tree().Node(edit); n.Open {
		t.Fatalf("expected second click to close Edit")
	}
	if w.Click(find(t, w, "Cut")) {
		t.Fatalf("expected click on hidden item to be ignored")
	}
	assertRoving(t, w)
}

func TestCloseCollapsesDescendants(t *testing.T) {
	w := mustInit(t, fileMenu())
	file := w.Enter()
	w.Open(file)
	w.Open(find(t, w, "Recent"))
	w.MoveFocusTo(file)
	w.Close(file)
	if open := w.Tree().OpenItems(); len(open) != 0 {
		t.Fatalf("expected everything closed, got %v", open)
	}
}
