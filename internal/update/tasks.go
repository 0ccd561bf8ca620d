package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	tasks := m.visibleTasks()
	switch msg.String() {
	case "up", "k":
		m.Tasks.Cursor = moveCursor(m.Tasks.Cursor, -1, len(tasks))
	case "down", "j":
		m.Tasks.Cursor = moveCursor(m.Tasks.Cursor, 1, len(tasks))
	case "K", "shift+up":
		m.Tasks.Cursor, _ = m.reorderNeighbour(model.KindTask, taskIDs(tasks), m.Tasks.Cursor, -1)
	case "J", "shift+down":
		m.Tasks.Cursor, _ = m.reorderNeighbour(model.KindTask, taskIDs(tasks), m.Tasks.Cursor, 1)
	case " ", "x":
		t, ok := m.selectedTask()
		if !ok {
			return m
		}
		text := "task completed"
		if t.Completed {
			text = "task reopened"
		}
		m.dispatch(engine.ToggleTaskComplete{ID: t.ID}, text)
		m.ensureCursors()
	}
	return m
}

func (m Model) visibleTasks() []model.Task {
	return m.store.Tasks(m.Query)
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Tasks.Cursor], true
}

func taskIDs(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
