package state

import (
	"reflect"
	"testing"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))

	if level.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}
	if len(level.Items) != 1 || level.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", level.Items)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	level.FilterCursor = 1
	if !level.InsertFilterText("z") || level.Filter != "azb" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	if !level.DeleteFilterRuneBackward() || level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() || level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if level.InsertFilterText("") {
		t.Fatal("expected empty insert to fail")
	}
}

func TestFilterCursorRuneMovement(t *testing.T) {
	level := newTestLevel("one")
	level.SetFilter("ab", 2)
	if level.MoveFilterCursorRuneForward() {
		t.Fatal("expected no movement past the end")
	}
	if !level.MoveFilterCursorRuneBackward() || level.FilterCursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorRuneForward() || level.FilterCursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", level.FilterCursor)
	}
}

func TestFilterItemsRanksAndFallsBackToID(t *testing.T) {
	items := []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}, {ID: "oslo-3", Label: "Gamma"}}
	if got := FilterItems(items, "alp"); len(got) != 1 || got[0].Label != "Alpha" {
		t.Fatalf("unexpected filtered results %#v", got)
	}
	if got := FilterItems(items, "ta"); len(got) != 1 || got[0].Label != "Beta" {
		t.Fatalf("expected fuzzy match for Beta, got %#v", got)
	}
	if got := FilterItems(items, "oslo"); len(got) != 1 || got[0].ID != "oslo-3" {
		t.Fatalf("expected id fallback, got %#v", got)
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}

	clone := CloneItems(items)
	clone[0].Label = "changed"
	if items[0].Label != "Alpha" {
		t.Fatal("expected original slice to remain unchanged")
	}
}

func TestMatchOverridesFilter(t *testing.T) {
	level := newTestLevel("a", "b", "c")
	level.Match = func(items []Item, query string) []Item {
		return []Item{items[2], items[0]}
	}
	level.SetFilter("anything", 8)
	if !reflect.DeepEqual(level.Items, []Item{{ID: "c", Label: "c"}, {ID: "a", Label: "a"}}) {
		t.Fatalf("expected matcher order, got %#v", level.Items)
	}
	level.SetFilter("", 0)
	if len(level.Items) != 3 {
		t.Fatalf("expected all items after clearing, got %d", len(level.Items))
	}
}
