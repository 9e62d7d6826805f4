package menu

import (
	"math/rand"
	"testing"
)

func TestModifiedKeysAreIgnored(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	for _, mod := range []Modifiers{ModShift, ModCtrl, ModAlt, ModMeta} {
		if w.HandleKey(Key{Code: KeyRight, Mods: mod}) {
			t.Fatalf("expected key with modifier %d to be ignored", mod)
		}
	}
	if w.HandleKey(Key{Code: KeyRune, Rune: 'e', Mods: ModCtrl}) {
		t.Fatalf("expected ctrl+rune to be ignored")
	}
	if labelOf(w, w.Focused()) != "File" {
		t.Fatalf("expected focus unchanged, got %q", labelOf(w, w.Focused()))
	}
}

func TestKeysIgnoredWithoutFocus(t *testing.T) {
	w := mustInit(t, fileMenu())
	if press(w, KeyRight) {
		t.Fatalf("expected keys to be ignored before the widget is entered")
	}
}

func TestUpOpensFromMenubar(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	press(w, KeyUp)
	if labelOf(w, w.Focused()) != "New" {
		t.Fatalf("expected Up to open File, got %q", labelOf(w, w.Focused()))
	}
}

func TestRightOnLeafInSubmenuDoesNothing(t *testing.T) {
	w := mustInit(t, fileMenu())
	w.Enter()
	press(w, KeyDown)
	if !press(w, KeyRight) {
		t.Fatalf("expected Right to be consumed")
	}
	if labelOf(w, w.Focused()) != "New" {
		t.Fatalf("expected focus to stay on New, got %q", labelOf(w, w.Focused()))
	}
}

// TestRovingInvariantUnderRandomInput drives the widget with arbitrary key
// and pointer input and checks the single-tabbable rule after each step.
func TestRovingInvariantUnderRandomInput(t *testing.T) {
	root := el("ul", "",
		item("File",
			link("New", "#new"),
			hidden(link("Hidden", "#hidden")),
			item("Recent", link("One", "#one"), link("Two", "#two")),
		),
		item("Edit", link("Cut", "#cut"), link("Copy", "#copy")),
		hidden(link("Ghost", "#ghost")),
		link("View", "#view"),
	)
	queue := NewQueue()
	w := mustInit(t, root, WithScheduler(queue))
	w.Enter()

	codes := []KeyCode{KeyEnter, KeySpace, KeyLeft, KeyRight, KeyUp, KeyDown, KeyEscape, KeyRune, KeyTab}
	runes := []rune("fnhrotecgv")
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 5000; step++ {
		switch rng.Intn(10) {
		case 0:
			visible := w.Tree().VisibleItems()
			w.Click(visible[rng.Intn(len(visible))])
		case 1:
			queue.RunAll()
		default:
			code := codes[rng.Intn(len(codes))]
			w.HandleKey(Key{Code: code, Rune: runes[rng.Intn(len(runes))]})
			if code == KeyTab {
				if rng.Intn(2) == 0 {
					queue.RunAll()
				}
				w.Enter()
				if n, _ := w.Tree().Node(w.Tabbable()); n.Level != 1 {
					t.Fatalf("step %d: re-entry landed on level %d item %q", step, n.Level, n.Label)
				}
			}
		}
		assertRoving(t, w)
		if w.Focused() != w.Tabbable() {
			t.Fatalf("step %d: focused %q differs from tabbable %q", step, labelOf(w, w.Focused()), labelOf(w, w.Tabbable()))
		}
	}
}
