package menu

import (
	"time"

	"github.com/atomicstack/a11yfy/internal/logging/events"
)

// TaskKind groups deferred work. A newer task of the same kind supersedes
// any pending one.
type TaskKind string

const (
	TaskFocus   TaskKind = "focus"
	TaskTabExit TaskKind = "tab-exit"
)

// TouchFocusDelay is how long focus requests wait on touch platforms.
const TouchFocusDelay = time.Second

// Task is a one-shot deferred callback.
type Task struct {
	Kind       TaskKind
	Delay      time.Duration
	fn         func()
	superseded bool
	done       bool
}

// Run executes the task unless it already ran or was superseded.
func (t *Task) Run() bool {
	if t == nil || t.done || t.superseded {
		return false
	}
	t.done = true
	events.Menu.Task(string(t.Kind), "run")
	t.fn()
	return true
}

func (t *Task) Superseded() bool { return t != nil && t.superseded }

func (t *Task) Done() bool { return t != nil && t.done }

func (t *Task) supersede() {
	if t == nil || t.done {
		return
	}
	t.superseded = true
	events.Menu.Task(string(t.Kind), "superseded")
}

// Scheduler defers work to a later turn of the host's event loop.
type Scheduler interface {
	Schedule(kind TaskKind, delay time.Duration, fn func()) *Task
}

// Queue collects scheduled tasks until the host drains them.
type Queue struct {
	pending []*Task
	latest  map[TaskKind]*Task
}

func NewQueue() *Queue {
	return &Queue{latest: make(map[TaskKind]*Task)}
}

func (q *Queue) Schedule(kind TaskKind, delay time.Duration, fn func()) *Task {
	if q.latest == nil {
		q.latest = make(map[TaskKind]*Task)
	}
	q.latest[kind].supersede()
	task := &Task{Kind: kind, Delay: delay, fn: fn}
	q.latest[kind] = task
	q.pending = append(q.pending, task)
	events.Menu.Task(string(kind), "scheduled")
	return task
}

// Drain hands over every task scheduled since the previous drain.
func (q *Queue) Drain() []*Task {
	tasks := q.pending
	q.pending = nil
	return tasks
}

// Len reports how many tasks wait to be drained.
func (q *Queue) Len() int { return len(q.pending) }

// RunAll drains and runs tasks, ignoring their delays, until the queue is
// empty. It returns how many tasks actually ran.
func (q *Queue) RunAll() int {
	ran := 0
	for len(q.pending) > 0 {
		for _, task := range q.Drain() {
			if task.Run() {
				ran++
			}
		}
	}
	return ran
}
