package analytics

import (
	"time"

	"github.com/sandeepkv93/daybook/internal/model"
)

// Day is one cell of a habit's month calendar.
type Day struct {
	Date           model.Date
	Status         model.HabitStatus
	InMonth        bool
	Today          bool
	Future         bool
	BeforeCreation bool
}

// Markable reports whether the day can be toggled from the calendar.
func (d Day) Markable() bool {
	return d.InMonth && !d.Future && !d.BeforeCreation
}

// MonthGrid lays out h's records for one month as whole Sunday-first weeks.
// Padding days from neighbouring months carry no status.
func MonthGrid(h model.Habit, year int, month time.Month, today model.Date) []Day {
	dates := model.MonthGridDates(year, month)
	first := model.NewDate(year, month, 1)
	created := h.CreatedOn()
	out := make([]Day, len(dates))
	for i, d := range dates {
		cell := Day{
			Date:           d,
			InMonth:        d.Year == first.Year && d.Month == first.Month,
			Future:         d.After(today),
			BeforeCreation: d.Before(created),
		}
		if cell.InMonth {
			cell.Today = d == today
			cell.Status, _ = h.StatusOn(d)
		}
		out[i] = cell
	}
	return out
}

// RecentDays returns the last n days ending today, newest first.
func RecentDays(today model.Date, n int) []model.Date {
	if n <= 0 {
		return nil
	}
	out := make([]model.Date, n)
	for i := range out {
		out[i] = today.AddDays(-i)
	}
	return out
}
