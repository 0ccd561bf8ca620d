// Package calendar groups tasks by due date for the dashboard calendar.
package calendar

import (
	"time"

	"github.com/sandeepkv93/daybook/internal/model"
)

// GroupByDueDate buckets tasks that have a due date. Tasks keep their list
// order inside each bucket.
func GroupByDueDate(tasks []model.Task) map[model.Date][]model.Task {
	groups := make(map[model.Date][]model.Task)
	for _, t := range tasks {
		due, ok := t.Due()
		if !ok {
			continue
		}
		groups[due] = append(groups[due], t)
	}
	return groups
}

// TasksOn returns the tasks due on day, in list order.
func TasksOn(tasks []model.Task, day model.Date) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if due, ok := t.Due(); ok && due == day {
			out = append(out, t)
		}
	}
	return out
}

type DayCell struct {
	Date     model.Date
	InMonth  bool
	Today    bool
	Selected bool
	HasTasks bool
}

// MonthGrid returns whole Sunday-first weeks covering the month. Only
// in-month cells carry the today, selected and has-tasks flags.
func MonthGrid(year int, month time.Month, selected, today model.Date, groups map[model.Date][]model.Task) []DayCell {
	dates := model.MonthGridDates(year, month)
	first := model.NewDate(year, month, 1)
	out := make([]DayCell, len(dates))
	for i, d := range dates {
		cell := DayCell{Date: d, InMonth: d.Year == first.Year && d.Month == first.Month}
		if cell.InMonth {
			cell.Today = d == today
			cell.Selected = d == selected
			cell.HasTasks = len(groups[d]) > 0
		}
		out[i] = cell
	}
	return out
}

type Summary struct {
	Total     int
	Completed int
	Pending   int
}

func Summarize(tasks []model.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
