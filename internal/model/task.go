package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFilter      = errors.New("model: invalid filter")
	ErrInvalidHabitStatus = errors.New("model: invalid habit status")
)

type SubTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Filters     []string  `json:"filters"`
	SubTasks    []SubTask `json:"subTasks"`
	CreatedAt   Timestamp `json:"createdAt"`
	DueDate     *Date     `json:"dueDate,omitempty"`
}

// Due reports the task's due date, if one is set.
func (t Task) Due() (Date, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return Date{}, false
	}
	return *t.DueDate, true
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if err := validateFilters(t.Filters); err != nil {
		return err
	}
	for _, sub := range t.SubTasks {
		if strings.TrimSpace(sub.ID) == "" {
			return errors.New("model: sub-task id is required")
		}
	}
	return nil
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Filters   []string  `json:"filters"`
	CreatedAt Timestamp `json:"createdAt"`
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("model: note title is required")
	}
	if n.CreatedAt.IsZero() {
		return errors.New("model: note created_at is required")
	}
	return validateFilters(n.Filters)
}

func validateFilters(filters []string) error {
	seen := make(map[string]bool, len(filters))
	for _, f := range filters {
		if f == "" || f != NormalizeFilter(f) {
			return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
		}
		if seen[f] {
			return fmt.Errorf("%w: duplicate %q", ErrInvalidFilter, f)
		}
		seen[f] = true
	}
	return nil
}
