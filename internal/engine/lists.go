package engine

import "github.com/sandeepkv93/daybook/internal/model"

func taskID(t model.Task) string       { return t.ID }
func noteID(n model.Note) string       { return n.ID }
func habitID(h model.Habit) string     { return h.ID }
func subTaskID(s model.SubTask) string { return s.ID }

func indexByID[T any](list []T, id func(T) string, want string) int {
	for i, v := range list {
		if id(v) == want {
			return i
		}
	}
	return -1
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func removeByID[T any](list []T, id func(T) string, want string) ([]T, bool) {
	i := indexByID(list, id, want)
	if i < 0 {
		return list, false
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), true
}

// updateByID copies list with the matching entry replaced by fn's result. The
// original slice is returned untouched when no entry matches or fn declines.
func updateByID[T any](list []T, id func(T) string, want string, fn func(T) (T, bool)) ([]T, bool) {
	i := indexByID(list, id, want)
	if i < 0 {
		return list, false
	}
	next, ok := fn(list[i])
	if !ok {
		return list, false
	}
	out := make([]T, len(list))
	copy(out, list)
	out[i] = next
	return out, true
}

func reorder[T any](list []T, id func(T) string, dragged, target string) ([]T, bool) {
	from := indexByID(list, id, dragged)
	to := indexByID(list, id, target)
	if from < 0 || to < 0 || from == to {
		return list, false
	}
	moved := list[from]
	rest := make([]T, 0, len(list))
	rest = append(rest, list[:from]...)
	rest = append(rest, list[from+1:]...)
	out := make([]T, 0, len(list))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	return append(out, rest[to:]...), true
}
