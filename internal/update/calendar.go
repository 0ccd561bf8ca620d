package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/calendar"
	"github.com/sandeepkv93/daybook/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h":
		m.shiftCalendarMonth(-1)
	case "l":
		m.shiftCalendarMonth(1)
	case "left":
		m.moveCalendarSelection(-1)
	case "right":
		m.moveCalendarSelection(1)
	case "up", "k":
		m.moveCalendarSelection(-7)
	case "down", "j":
		m.moveCalendarSelection(7)
	case "t":
		m.Calendar.Selected = m.today()
		m.Calendar.Month = firstOfMonth(m.Calendar.Selected)
	case "enter":
		due := m.tasksDueOn(m.Calendar.Selected)
		m.Status = StatusBar{
			Text:    fmt.Sprintf("%d task(s) due on %s", len(due), m.Calendar.Selected),
			IsError: false,
		}
	}
	return m
}

func (m *Model) shiftCalendarMonth(delta int) {
	m.Calendar.Month = shiftMonth(m.Calendar.Month, delta)
	m.Calendar.Selected = m.Calendar.Month
	m.Status = StatusBar{
		Text:    fmt.Sprintf("calendar month: %s", monthLabel(m.Calendar.Month)),
		IsError: false,
	}
}

func (m *Model) moveCalendarSelection(days int) {
	m.Calendar.Selected = m.Calendar.Selected.AddDays(days)
	m.Calendar.Month = firstOfMonth(m.Calendar.Selected)
}

func (m Model) tasksDueOn(day model.Date) []model.Task {
	return m.store.TaskGroups()[day]
}

func (m Model) calendarCells() []calendar.DayCell {
	return calendar.MonthGrid(m.Calendar.Month.Year, m.Calendar.Month.Month, m.Calendar.Selected, m.today(), m.store.TaskGroups())
}
