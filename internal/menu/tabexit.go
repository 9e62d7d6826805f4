package menu

import "github.com/atomicstack/a11yfy/internal/logging/events"

// TabExit handles Tab or Shift+Tab leaving the widget. Focus leaves at once;
// when the tabbable node sits inside a submenu, cleanup runs on the next
// scheduler turn so re-entry lands on a menubar item.
func (w *Widget) TabExit() {
	deep := w.tabbable == NoNode || w.tree.at(w.tabbable).Level > 1
	events.Menu.TabExit(w.id, int(w.tabbable), deep)
	w.Blur()
	if !deep {
		return
	}
	w.pendingExit = w.sched.Schedule(TaskTabExit, 0, w.restoreTopLevel)
}

func (w *Widget) restoreTopLevel() {
	w.pendingExit = nil
	preferred := w.tree.TopLevel(w.tabbable)
	anchor := NoNode
	for i := range w.tree.nodes {
		n := &w.tree.nodes[i]
		if n.Level > 1 && n.TabIndex == 0 {
			n.TabIndex = -1
		}
		if !n.Open {
			continue
		}
		if top := w.tree.TopLevel(n.ID); anchor == NoNode || top == preferred {
			anchor = top
		}
		n.Open = false
		events.Menu.Close(w.id, int(n.ID))
	}
	if anchor == NoNode || !w.tree.Visible(anchor) {
		anchor = w.tree.firstVisible(w.tree.top)
	}
	if w.tabbable != NoNode && w.tree.at(w.tabbable).Level > 1 {
		w.tabbable = NoNode
	}
	w.setTabbable(anchor)
}

// Enter handles focus arriving back on the widget. Any pending tab-exit
// cleanup runs first.
func (w *Widget) Enter() NodeID {
	if w.pendingExit != nil {
		w.pendingExit.Run()
		w.pendingExit = nil
	}
	if !w.tree.Visible(w.tabbable) {
		w.setTabbable(w.tree.firstVisible(w.tree.top))
	}
	w.requestFocus(w.tabbable)
	return w.tabbable
}
