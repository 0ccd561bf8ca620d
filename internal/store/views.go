package store

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/daybook/internal/analytics"
	"github.com/sandeepkv93/daybook/internal/calendar"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/projection"
)

// Memo returns fn(state) for the committed state, computing it at most once
// per state version and view key.
func Memo[T any](s *Store, view string, fn func(model.State) T) T {
	state, version := s.State()
	key := memoKey{version: version, view: view}
	if v, ok := s.memo.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	out := fn(state)
	s.memo.Add(key, out)
	return out
}

func queryKey(q projection.Query) string {
	return fmt.Sprintf("%q|%q|%t", q.SearchTerm, strings.Join(q.ActiveFilters, ","), q.ShowCompleted)
}

func (s *Store) Tasks(q projection.Query) []model.Task {
	return Memo(s, "tasks|"+queryKey(q), func(st model.State) []model.Task {
		return projection.Tasks(st.Tasks, q)
	})
}

func (s *Store) Notes(q projection.Query) []model.Note {
	return Memo(s, "notes|"+queryKey(q), func(st model.State) []model.Note {
		return projection.Notes(st.Notes, q)
	})
}

func (s *Store) Matrix(showCompleted bool) projection.Quadrants {
	return Memo(s, fmt.Sprintf("matrix|%t", showCompleted), func(st model.State) projection.Quadrants {
		return projection.Matrix(st.Tasks, showCompleted)
	})
}

func (s *Store) HabitStats(habitID string, today model.Date) (analytics.Stats, bool) {
	type result struct {
		stats analytics.Stats
		ok    bool
	}
	r := Memo(s, "stats|"+habitID+"|"+today.String(), func(st model.State) result {
		h, ok := st.Habit(habitID)
		if !ok {
			return result{}
		}
		return result{stats: analytics.ComputeStats(h, today), ok: true}
	})
	return r.stats, r.ok
}

func (s *Store) TaskGroups() map[model.Date][]model.Task {
	return Memo(s, "groups", func(st model.State) map[model.Date][]model.Task {
		return calendar.GroupByDueDate(st.Tasks)
	})
}

func (s *Store) Summary() calendar.Summary {
	return Memo(s, "summary", func(st model.State) calendar.Summary {
		return calendar.Summarize(st.Tasks)
	})
}
