package events

import "github.com/atomicstack/a11yfy/internal/logging"

type MenuTracer struct{}

type AnnounceTracer struct{}

type TableTracer struct{}

type WatchTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type UITracer struct{}

type FilterTracer struct{}

var (
	Menu     = MenuTracer{}
	Announce = AnnounceTracer{}
	Table    = TableTracer{}
	Watch    = WatchTracer{}
	Action   = ActionTracer{}
	Command  = CommandTracer{}
	UI       = UITracer{}
	Filter   = FilterTracer{}
)

func (MenuTracer) Init(instance string, nodes, topLevel int) {
	logging.Trace("menu.init", map[string]interface{}{"instance": instance, "nodes": nodes, "top": topLevel})
}

func (MenuTracer) Focus(instance string, node int, label string, deferred bool) {
	logging.Trace("menu.focus", map[string]interface{}{
		"instance": instance,
		"node":     node,
		"label":    label,
		"deferred": deferred,
	})
}

func (MenuTracer) Move(instance string, from, to int, direction string) {
	logging.Trace("menu.move", map[string]interface{}{
		"instance":  instance,
		"from":      from,
		"to":        to,
		"direction": direction,
	})
}

func (MenuTracer) Open(instance string, node int) {
	logging.Trace("menu.open", map[string]interface{}{"instance": instance, "node": node})
}

func (MenuTracer) Close(instance string, node int) {
	logging.Trace("menu.close", map[string]interface{}{"instance": instance, "node": node})
}

func (MenuTracer) TypeAhead(instance string, key string, match int) {
	logging.Trace("menu.typeahead", map[string]interface{}{"instance": instance, "key": key, "match": match})
}

func (MenuTracer) TabExit(instance string, node int, deep bool) {
	logging.Trace("menu.tab-exit", map[string]interface{}{"instance": instance, "node": node, "deep": deep})
}

func (MenuTracer) Activate(instance string, node int, label, href string) {
	logging.Trace("menu.activate", map[string]interface{}{
		"instance": instance,
		"node":     node,
		"label":    label,
		"href":     href,
	})
}

func (MenuTracer) Task(kind, state string) {
	logging.Trace("menu.task", map[string]interface{}{"kind": kind, "state": state})
}

func (AnnounceTracer) Message(politeness, msg string) {
	logging.Trace("announce", map[string]interface{}{"politeness": politeness, "message": msg})
}

func (TableTracer) Sort(column int, direction string) {
	logging.Trace("table.sort", map[string]interface{}{"column": column, "direction": direction})
}

func (TableTracer) Filter(column int, value string) {
	logging.Trace("table.filter", map[string]interface{}{"column": column, "value": value})
}

func (TableTracer) Query(query string, rows int) {
	logging.Trace("table.query", map[string]interface{}{"query": query, "rows": rows})
}

func (WatchTracer) Reload(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("watch.reload", payload)
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (UITracer) Region(from, to string) {
	logging.Trace("ui.region", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Key(region, key string, handled bool) {
	logging.Trace("ui.key", map[string]interface{}{"region": region, "key": key, "handled": handled})
}

func (UITracer) Click(x, y, node int) {
	logging.Trace("ui.click", map[string]interface{}{"x": x, "y": y, "node": node})
}

func (FilterTracer) Append(level, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": level, "filter": filter})
}

func (FilterTracer) Backspace(level, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": level, "filter": filter})
}

func (FilterTracer) WordBackspace(level, filter string) {
	logging.Trace("filter.word_backspace", map[string]interface{}{"level": level, "filter": filter})
}

func (FilterTracer) Cleared(level string) {
	logging.Trace("filter.cleared", map[string]interface{}{"level": level})
}

func (FilterTracer) Cursor(level string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": level, "pos": pos})
}
