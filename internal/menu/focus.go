package menu

import "github.com/atomicstack/a11yfy/internal/logging/events"

// MoveFocusTo makes id the single tabbable node and requests input focus on
// it. Invisible targets are ignored.
func (w *Widget) MoveFocusTo(id NodeID) bool {
	if !w.tree.Visible(id) {
		return false
	}
	w.setTabbable(id)
	w.requestFocus(id)
	return true
}

func (w *Widget) setTabbable(id NodeID) {
	if prev := w.tabbable; prev != NoNode && prev != id {
		w.tree.at(prev).TabIndex = -1
	}
	w.tabbable = id
	if id != NoNode {
		w.tree.at(id).TabIndex = 0
	}
}

func (w *Widget) requestFocus(id NodeID) {
	w.hasFocus = true
	if w.platform != PlatformTouch {
		w.focused = id
		events.Menu.Focus(w.id, int(id), w.label(id), false)
		return
	}
	w.focused = NoNode
	w.pendingFocus = w.sched.Schedule(TaskFocus, TouchFocusDelay, func() {
		w.pendingFocus = nil
		w.focused = id
		events.Menu.Focus(w.id, int(id), w.label(id), true)
	})
}

// Focus is the public focus operation.
func (w *Widget) Focus(id NodeID) bool {
	return w.MoveFocusTo(id)
}

// ShowAndFocus clears the node's hidden flag and then focuses it.
func (w *Widget) ShowAndFocus(id NodeID) bool {
	if !w.tree.valid(id) {
		return false
	}
	w.tree.at(id).Hidden = false
	return w.MoveFocusTo(id)
}

// Blur records that input focus left the widget.
func (w *Widget) Blur() {
	w.hasFocus = false
	w.focused = NoNode
	w.pendingFocus.supersede()
	w.pendingFocus = nil
}
