package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/analytics"
	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
)

func (m Model) handleHabitKey(msg tea.KeyMsg) Model {
	habits := m.state().Habits
	switch msg.String() {
	case "up", "k":
		m.Habits.Cursor = moveCursor(m.Habits.Cursor, -1, len(habits))
	case "down", "j":
		m.Habits.Cursor = moveCursor(m.Habits.Cursor, 1, len(habits))
	case "K", "shift+up":
		m.Habits.Cursor, _ = m.reorderNeighbour(model.KindHabit, habitIDs(habits), m.Habits.Cursor, -1)
	case "J", "shift+down":
		m.Habits.Cursor, _ = m.reorderNeighbour(model.KindHabit, habitIDs(habits), m.Habits.Cursor, 1)
	case " ", "x":
		h, ok := m.selectedHabit()
		if !ok {
			return m
		}
		m.toggleHabitDay(h, m.today())
	case "enter":
		h, ok := m.selectedHabit()
		if !ok {
			return m
		}
		today := m.today()
		m.Detail = HabitDetailState{HabitID: h.ID, Month: firstOfMonth(today), Selected: today}
		m.CurrentView = ViewHabitDetail
	}
	return m
}

func (m Model) handleHabitDetailKey(msg tea.KeyMsg) Model {
	h, ok := m.state().Habit(m.Detail.HabitID)
	if !ok {
		m.CurrentView = ViewHabits
		return m
	}
	switch msg.String() {
	case "esc", "backspace":
		m.CurrentView = ViewHabits
	case "h":
		m.Detail.Month = shiftMonth(m.Detail.Month, -1)
		m.Detail.Selected = m.Detail.Month
	case "l":
		m.Detail.Month = shiftMonth(m.Detail.Month, 1)
		m.Detail.Selected = m.Detail.Month
	case "left":
		m.moveDetailSelection(-1)
	case "right":
		m.moveDetailSelection(1)
	case "up", "k":
		m.moveDetailSelection(-7)
	case "down", "j":
		m.moveDetailSelection(7)
	case " ", "x", "enter":
		day := m.Detail.Selected
		switch {
		case day.After(m.today()):
			m.Status = StatusBar{Text: fmt.Sprintf("%s is in the future", day), IsError: true}
		case day.Before(h.CreatedOn()):
			m.Status = StatusBar{Text: fmt.Sprintf("%s is before the habit started", day), IsError: true}
		default:
			m.toggleHabitDay(h, day)
		}
	}
	return m
}

func (m *Model) moveDetailSelection(days int) {
	m.Detail.Selected = m.Detail.Selected.AddDays(days)
	m.Detail.Month = firstOfMonth(m.Detail.Selected)
}

func (m *Model) toggleHabitDay(h model.Habit, day model.Date) {
	next := "cleared"
	switch status, _ := h.StatusOn(day); status {
	case "":
		next = "completed"
	case model.HabitCompleted:
		next = "skipped"
	}
	m.dispatch(engine.ToggleHabitCompletion{HabitID: h.ID, Date: day}, fmt.Sprintf("%s %s: %s", h.Title, day, next))
}

func (m Model) selectedHabit() (model.Habit, bool) {
	habits := m.state().Habits
	if m.Habits.Cursor < 0 || m.Habits.Cursor >= len(habits) {
		return model.Habit{}, false
	}
	return habits[m.Habits.Cursor], true
}

// focusedHabit is the habit shown in the detail pane.
func (m Model) focusedHabit() (model.Habit, bool) {
	if m.CurrentView == ViewHabitDetail {
		return m.state().Habit(m.Detail.HabitID)
	}
	return m.selectedHabit()
}

func (m Model) habitStats(h model.Habit) analytics.Stats {
	stats, ok := m.store.HabitStats(h.ID, m.today())
	if !ok {
		return analytics.ComputeStats(h, m.today())
	}
	return stats
}

func habitIDs(habits []model.Habit) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.ID
	}
	return out
}
