package menu

// KeyCode identifies the keys the widget reacts to.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyTab
	KeyEnter
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	KeyRune
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Key is a single key press delivered to the widget.
type Key struct {
	Code KeyCode
	Rune rune
	Mods Modifiers
}

// HandleKey applies the menubar keyboard model to the current node. It
// reports whether the key was consumed; Tab is never consumed so the host
// can move focus onward.
func (w *Widget) HandleKey(k Key) bool {
	if !w.hasFocus {
		return false
	}
	if k.Code == KeyTab {
		if k.Mods&(ModCtrl|ModAlt|ModMeta) == 0 {
			w.TabExit()
		}
		return false
	}
	held := k.Mods
	if k.Code == KeyRune {
		held &^= ModShift
	}
	if held != 0 {
		return false
	}
	id := w.Current()
	if !w.tree.valid(id) {
		return false
	}
	topLevel := w.tree.at(id).Level == 1

	switch k.Code {
	case KeyEnter, KeySpace:
		w.Activate(id)
	case KeyLeft:
		if topLevel {
			w.Move(id, Prev)
		} else {
			w.CloseToParent(id)
		}
	case KeyEscape:
		if !topLevel {
			w.CloseToParent(id)
		}
	case KeyUp:
		if topLevel {
			w.Open(id)
		} else {
			w.Move(id, Prev)
		}
	case KeyDown:
		if topLevel {
			w.Open(id)
		} else {
			w.Move(id, Next)
		}
	case KeyRight:
		if topLevel {
			w.Move(id, Next)
		} else {
			w.Open(id)
		}
	case KeyRune:
		w.TypeAhead(id, k.Rune)
	default:
		return false
	}
	return true
}
