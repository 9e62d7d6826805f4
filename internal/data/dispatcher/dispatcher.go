package dispatcher

import (
	"github.com/atomicstack/a11yfy/internal/backend"
	"github.com/atomicstack/a11yfy/internal/logging"
	"github.com/atomicstack/a11yfy/internal/menu"
)

type Result struct {
	VisibilityUpdated bool
	Applied           int
}

// Dispatcher folds watcher events into the live menu tree without
// rebuilding it.
type Dispatcher struct {
	tree *menu.Tree
}

func New(tree *menu.Tree) *Dispatcher {
	return &Dispatcher{tree: tree}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		logging.Error(evt.Err)
		return res
	}
	switch evt.Kind {
	case backend.KindVisibility:
		if snapshot, ok := evt.Data.([]menu.Visibility); ok && d.tree != nil {
			res.Applied = d.tree.Apply(snapshot)
			res.VisibilityUpdated = true
		}
	}
	return res
}
