package ui

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/a11yfy/internal/announce"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/ui/command"
)

// taskDueMsg fires when a deferred widget task's delay has elapsed.
type taskDueMsg struct {
	task *menu.Task
}

// drainTasks turns every newly scheduled widget task into a timer.
func (m *Model) drainTasks(cmds []tea.Cmd) []tea.Cmd {
	if m.queue == nil {
		return cmds
	}
	for _, task := range m.queue.Drain() {
		task := task
		cmds = append(cmds, m.tick(task.Delay, func(time.Time) tea.Msg {
			return taskDueMsg{task: task}
		}))
	}
	return cmds
}

func (m *Model) handleTaskDueMsg(msg tea.Msg) tea.Cmd {
	due, ok := msg.(taskDueMsg)
	if !ok {
		return nil
	}
	before := m.widget.Current()
	if due.task.Run() {
		m.noteFocus("deferred", before)
	}
	return nil
}

// activate is the widget's leaf action. It runs inside HandleKey or Click,
// so the resulting command is queued for finishUpdate.
func (m *Model) activate(n menu.Node) {
	label, href := n.Label, n.Href
	m.pending = append(m.pending, m.bus.Execute(command.Request{
		ID:    strconv.Itoa(int(n.ID)),
		Label: label,
		Handler: func() (string, error) {
			return activationInfo(m.strs, label, href), nil
		},
	}))
}

func activationInfo(strs i18n.Strings, label, href string) string {
	if href == "" {
		return strs.Lookup(i18n.MenuActivated, i18n.Values{"label": label})
	}
	return strs.Lookup(i18n.MenuActivatedLink, i18n.Values{"label": label, "href": href})
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.setInfo(result.Info)
	m.announcer.Polite(result.Info)
	events.Action.Success(result.Info)
	return nil
}

// observeAnnouncement mirrors live region output into the on-screen log.
func (m *Model) observeAnnouncement(msg announce.Message) {
	m.liveMu.Lock()
	m.live = append(m.live, msg)
	if len(m.live) > liveLogLines {
		m.live = m.live[len(m.live)-liveLogLines:]
	}
	m.liveMu.Unlock()
	if m.metrics != nil {
		m.metrics.Announcements.Increment(string(msg.Politeness))
	}
}

func (m *Model) liveLog() []announce.Message {
	m.liveMu.Lock()
	defer m.liveMu.Unlock()
	return append([]announce.Message(nil), m.live...)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
