package engine

import (
	"fmt"
	"slices"

	"github.com/sandeepkv93/daybook/internal/model"
)

// mergeFilters returns user extended with every filter not already known to
// either catalog, sorted. user itself is returned when nothing is new.
func mergeFilters(user, filters []string) []string {
	var added []string
	for _, f := range filters {
		f = model.NormalizeFilter(f)
		if f == "" || model.IsBuiltinFilter(f) || slices.Contains(user, f) || slices.Contains(added, f) {
			continue
		}
		added = append(added, f)
	}
	if len(added) == 0 {
		return user
	}
	out := make([]string, 0, len(user)+len(added))
	out = append(out, user...)
	out = append(out, added...)
	slices.Sort(out)
	return out
}

// rewriteFilters applies fn to the filter list of every task and note. Only
// entries whose filters change are copied.
func rewriteFilters(s model.State, fn func([]string) ([]string, bool)) (model.State, bool) {
	tasks, tasksChanged := rewriteEach(s.Tasks, func(t model.Task) (model.Task, bool) {
		next, ok := fn(t.Filters)
		t.Filters = next
		return t, ok
	})
	notes, notesChanged := rewriteEach(s.Notes, func(n model.Note) (model.Note, bool) {
		next, ok := fn(n.Filters)
		n.Filters = next
		return n, ok
	})
	s.Tasks = tasks
	s.Notes = notes
	return s, tasksChanged || notesChanged
}

func rewriteEach[T any](list []T, fn func(T) (T, bool)) ([]T, bool) {
	var out []T
	for i, v := range list {
		next, ok := fn(v)
		if !ok {
			continue
		}
		if out == nil {
			out = slices.Clone(list)
		}
		out[i] = next
	}
	if out == nil {
		return list, false
	}
	return out, true
}

func (a AddFilter) apply(_ *Engine, s model.State) (model.State, bool, error) {
	name := model.NormalizeFilter(a.Name)
	if name == "" || model.IsBuiltinFilter(name) || slices.Contains(s.UserFilters, name) {
		return s, false, nil
	}
	s.UserFilters = mergeFilters(s.UserFilters, []string{name})
	return s, true, nil
}

func (a DeleteFilter) apply(_ *Engine, s model.State) (model.State, bool, error) {
	name := model.NormalizeFilter(a.Name)
	if model.IsBuiltinFilter(name) {
		return s, false, fmt.Errorf("%w: %q", ErrBuiltinFilter, name)
	}
	changed := false
	if i := slices.Index(s.UserFilters, name); i >= 0 {
		s.UserFilters = slices.Delete(slices.Clone(s.UserFilters), i, i+1)
		changed = true
	}
	s, rewritten := rewriteFilters(s, func(filters []string) ([]string, bool) {
		if !slices.Contains(filters, name) {
			return filters, false
		}
		out := make([]string, 0, len(filters)-1)
		for _, f := range filters {
			if f != name {
				out = append(out, f)
			}
		}
		return out, true
	})
	return s, changed || rewritten, nil
}

func (a EditFilter) apply(_ *Engine, s model.State) (model.State, bool, error) {
	oldName := model.NormalizeFilter(a.Old)
	newName := model.NormalizeFilter(a.New)
	if model.IsBuiltinFilter(oldName) {
		return s, false, fmt.Errorf("%w: %q", ErrBuiltinFilter, oldName)
	}
	if newName == "" {
		return s, false, fmt.Errorf("%w: %q", ErrInvalidFilter, a.New)
	}
	if newName == oldName {
		return s, false, nil
	}
	if model.IsBuiltinFilter(newName) || slices.Contains(s.UserFilters, newName) {
		return s, false, fmt.Errorf("%w: %q", ErrFilterConflict, newName)
	}
	changed := false
	if i := slices.Index(s.UserFilters, oldName); i >= 0 {
		user := slices.Clone(s.UserFilters)
		user[i] = newName
		slices.Sort(user)
		s.UserFilters = user
		changed = true
	}
	// Tags missing from the catalog are still renamed on items.
	s, rewritten := rewriteFilters(s, func(filters []string) ([]string, bool) {
		if !slices.Contains(filters, oldName) {
			return filters, false
		}
		out := make([]string, 0, len(filters))
		for _, f := range filters {
			if f == oldName {
				f = newName
			}
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		}
		return out, true
	})
	return s, changed || rewritten, nil
}
