// Package ui contains the Bubble Tea program that hosts an initialized
// menubar widget and a table content pane. The Model type focuses on
// message orchestration, while dedicated helpers own key routing, text
// input, rendering, and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function.
//   - Key presses go to the region that has focus. In the menu region they
//     are translated into menu.Key values and handed to Widget.HandleKey;
//     Tab leaves the widget for the content pane the way Tab leaves a
//     menubar in a page. In the content region they move the row cursor,
//     sort or filter the selected column, or edit the search query
//     (internal/ui/input.go).
//   - Mouse presses are hit-tested against the same cells View draws and
//     handed to Widget.Click.
//
// Deferred work:
//   - The widget schedules tab-exit cleanup and touch focus on a
//     menu.Queue. After every update the model drains the queue into
//     timers; when one fires, taskDueMsg runs the task unless a newer task
//     of the same kind superseded it.
//   - Leaf activation runs inside the widget, so the model queues a
//     command on the internal/ui/command bus and announces the result in
//     the polite live region once it arrives.
//
// Backend interactions:
//   - A backend.Watcher streams visibility snapshots of the source page;
//     Update waits for those events and hands them to the dispatcher, which
//     folds them into the widget's tree.
package ui
