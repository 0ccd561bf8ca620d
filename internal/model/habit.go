package model

import (
	"errors"
	"fmt"
	"strings"
)

type HabitStatus string

const (
	HabitCompleted HabitStatus = "completed"
	HabitSkipped   HabitStatus = "skipped"
)

func (s HabitStatus) IsValid() bool {
	switch s {
	case HabitCompleted, HabitSkipped:
		return true
	default:
		return false
	}
}

// Habit keeps one record per marked day. A day with no key is unmarked; there
// is no explicit "unmarked" value.
type Habit struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	CreatedAt   Timestamp            `json:"createdAt"`
	Completions map[Date]HabitStatus `json:"completions"`
}

// StatusOn returns the recorded status for day. Unknown stored values read as
// unmarked.
func (h Habit) StatusOn(day Date) (HabitStatus, bool) {
	s, ok := h.Completions[day]
	if !ok || !s.IsValid() {
		return "", false
	}
	return s, true
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		return errors.New("model: habit title is required")
	}
	if h.CreatedAt.IsZero() {
		return errors.New("model: habit created_at is required")
	}
	for day, s := range h.Completions {
		if !s.IsValid() {
			return fmt.Errorf("%w: %q on %s", ErrInvalidHabitStatus, s, day)
		}
	}
	return nil
}

// CreatedOn is the calendar day the habit was created, in the zone of its
// creation timestamp.
func (h Habit) CreatedOn() Date {
	return DateOf(h.CreatedAt.Time)
}
