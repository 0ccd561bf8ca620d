// Package projection filters and searches tasks and notes for display.
package projection

import (
	"slices"
	"strings"

	"github.com/sandeepkv93/daybook/internal/model"
)

// Query holds the session's search and filter selection. The zero value
// matches every note and every open task.
type Query struct {
	SearchTerm    string
	ActiveFilters []string
	ShowCompleted bool
}

// Toggle returns q with filter added to or removed from the active set.
func (q Query) Toggle(filter string) Query {
	filter = model.NormalizeFilter(filter)
	if filter == "" {
		return q
	}
	if slices.Contains(q.ActiveFilters, filter) {
		return q.Without(filter)
	}
	active := make([]string, 0, len(q.ActiveFilters)+1)
	active = append(active, q.ActiveFilters...)
	q.ActiveFilters = append(active, filter)
	return q
}

// Without returns q with filter removed from the active set.
func (q Query) Without(filter string) Query {
	filter = model.NormalizeFilter(filter)
	if !slices.Contains(q.ActiveFilters, filter) {
		return q
	}
	active := make([]string, 0, len(q.ActiveFilters))
	for _, f := range q.ActiveFilters {
		if f != filter {
			active = append(active, f)
		}
	}
	q.ActiveFilters = active
	return q
}

func (q Query) matches(title, body string, filters []string) bool {
	if term := strings.ToLower(q.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(title), term) && !strings.Contains(strings.ToLower(body), term) {
			return false
		}
	}
	for _, f := range q.ActiveFilters {
		if !slices.Contains(filters, f) {
			return false
		}
	}
	return true
}

func Tasks(tasks []model.Task, q Query) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed && !q.ShowCompleted {
			continue
		}
		if q.matches(t.Title, t.Description, t.Filters) {
			out = append(out, t)
		}
	}
	return out
}

func Notes(notes []model.Note, q Query) []model.Note {
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if q.matches(n.Title, n.Content, n.Filters) {
			out = append(out, n)
		}
	}
	return out
}

// Quadrants partitions tasks by the urgent and important filters.
type Quadrants struct {
	Do        []model.Task
	Schedule  []model.Task
	Delegate  []model.Task
	Eliminate []model.Task
}

func Matrix(tasks []model.Task, showCompleted bool) Quadrants {
	var q Quadrants
	for _, t := range tasks {
		if t.Completed && !showCompleted {
			continue
		}
		urgent := slices.Contains(t.Filters, model.FilterUrgent)
		important := slices.Contains(t.Filters, model.FilterImportant)
		switch {
		case urgent && important:
			q.Do = append(q.Do, t)
		case important:
			q.Schedule = append(q.Schedule, t)
		case urgent:
			q.Delegate = append(q.Delegate, t)
		default:
			q.Eliminate = append(q.Eliminate, t)
		}
	}
	return q
}

// AvailableFilters lists the built-in catalog followed by user filters.
func AvailableFilters(user []string) []string {
	out := make([]string, 0, len(model.BuiltinFilters)+len(user))
	out = append(out, model.BuiltinFilters...)
	for _, f := range user {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
