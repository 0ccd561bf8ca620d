package engine

import (
	"reflect"
	"slices"
	"testing"

	"github.com/sandeepkv93/daybook/internal/model"
	"pgregory.net/rapid"
)

func filterNameGenerator() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"home", "work", "gym", "ideas", "urgent", "important"})
}

func stateGenerator() *rapid.Generator[model.State] {
	return rapid.Custom(func(t *rapid.T) model.State {
		e := newTestEngine()
		s := model.EmptyState()
		for range rapid.IntRange(0, 6).Draw(t, "tasks") {
			filters := rapid.SliceOfNDistinct(filterNameGenerator(), 0, 3, rapid.ID[string]).Draw(t, "taskFilters")
			res, _ := e.Apply(s, AddTask{Title: rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "title"), Filters: filters})
			s = res.State
		}
		for range rapid.IntRange(0, 4).Draw(t, "notes") {
			filters := rapid.SliceOfNDistinct(filterNameGenerator(), 0, 3, rapid.ID[string]).Draw(t, "noteFilters")
			res, _ := e.Apply(s, AddNote{Title: "n", Filters: filters})
			s = res.State
		}
		return s
	})
}

func testEditFilter_Propagation_Properties(t *rapid.T) {
	e := newTestEngine()
	s := stateGenerator().Draw(t, "state")
	if len(s.UserFilters) == 0 {
		t.Skip("no user filters")
	}
	oldName := rapid.SampledFrom(s.UserFilters).Draw(t, "old")
	newName := rapid.StringMatching(`[a-z]{3,8}`).Draw(t, "new")
	if model.IsBuiltinFilter(newName) || slices.Contains(s.UserFilters, newName) {
		t.Skip("conflicting name")
	}

	res, err := e.Apply(s, EditFilter{Old: oldName, New: newName})
	if err != nil {
		t.Fatalf("EditFilter failed: %v", err)
	}
	check := func(id string, before, after []string) {
		if slices.Contains(after, oldName) {
			t.Fatalf("%s still tagged %q: %v", id, oldName, after)
		}
		if slices.Contains(before, oldName) {
			n := 0
			for _, f := range after {
				if f == newName {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("%s expected %q exactly once, got %v", id, newName, after)
			}
		}
	}
	for i := range s.Tasks {
		check(s.Tasks[i].ID, s.Tasks[i].Filters, res.State.Tasks[i].Filters)
	}
	for i := range s.Notes {
		check(s.Notes[i].ID, s.Notes[i].Filters, res.State.Notes[i].Filters)
	}
	if !slices.IsSorted(res.State.UserFilters) {
		t.Fatalf("user filters not sorted: %v", res.State.UserFilters)
	}
}

func TestEditFilter_Propagation_Properties(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testEditFilter_Propagation_Properties)
}

func FuzzEditFilter_Propagation_Properties(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(testEditFilter_Propagation_Properties))
}

func testDeleteFilter_Propagation_Properties(t *rapid.T) {
	e := newTestEngine()
	s := stateGenerator().Draw(t, "state")
	name := rapid.SampledFrom([]string{"home", "work", "gym", "ideas", "unknown"}).Draw(t, "name")

	res, err := e.Apply(s, DeleteFilter{Name: name})
	if err != nil {
		t.Fatalf("DeleteFilter failed: %v", err)
	}
	if slices.Contains(res.State.UserFilters, name) {
		t.Fatalf("user filters still contain %q", name)
	}
	for _, task := range res.State.Tasks {
		if slices.Contains(task.Filters, name) {
			t.Fatalf("task still tagged %q", name)
		}
	}
	for _, note := range res.State.Notes {
		if slices.Contains(note.Filters, name) {
			t.Fatalf("note still tagged %q", name)
		}
	}
}

func TestDeleteFilter_Propagation_Properties(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testDeleteFilter_Propagation_Properties)
}

func testUserFilters_Invariant_Properties(t *rapid.T) {
	e := newTestEngine()
	s := stateGenerator().Draw(t, "state")
	for range rapid.IntRange(0, 10).Draw(t, "steps") {
		var a Action
		switch rapid.IntRange(0, 3).Draw(t, "op") {
		case 0:
			a = AddFilter{Name: rapid.StringMatching(`[ A-Za-z]{0,6}`).Draw(t, "add")}
		case 1:
			a = DeleteFilter{Name: filterNameGenerator().Draw(t, "del")}
		case 2:
			a = EditFilter{Old: filterNameGenerator().Draw(t, "old"), New: rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "new")}
		default:
			a = AddTask{Title: "t", Filters: []string{rapid.StringMatching(`[A-Za-z ]{0,6}`).Draw(t, "tag")}}
		}
		res, _ := e.Apply(s, a)
		s = res.State
		if !slices.IsSorted(s.UserFilters) {
			t.Fatalf("user filters not sorted after %T: %v", a, s.UserFilters)
		}
		seen := map[string]bool{}
		for _, f := range s.UserFilters {
			if f == "" || model.IsBuiltinFilter(f) || seen[f] || f != model.NormalizeFilter(f) {
				t.Fatalf("invalid user filter %q after %T: %v", f, a, s.UserFilters)
			}
			seen[f] = true
		}
	}
}

func TestUserFilters_Invariant_Properties(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testUserFilters_Invariant_Properties)
}

func testReorder_Permutation_Properties(t *rapid.T) {
	e := newTestEngine()
	n := rapid.IntRange(2, 8).Draw(t, "n")
	s := model.EmptyState()
	for i := range n {
		s.Habits = append(s.Habits, model.Habit{ID: string(rune('a' + i))})
	}
	from := rapid.IntRange(0, n-1).Draw(t, "from")
	to := rapid.IntRange(0, n-1).Draw(t, "to")
	dragged, target := s.Habits[from].ID, s.Habits[to].ID

	res, err := e.Apply(s, ReorderItems{List: model.KindHabit, DraggedID: dragged, TargetID: target})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if from == to {
		if res.Changed || !reflect.DeepEqual(res.State, s) {
			t.Fatal("expected no-op for equal ids")
		}
		return
	}
	if len(res.State.Habits) != n {
		t.Fatalf("length changed: %d", len(res.State.Habits))
	}
	if res.State.Habits[to].ID != dragged {
		t.Fatalf("expected %s at %d, got %+v", dragged, to, res.State.Habits)
	}
	var rest []string
	for _, h := range res.State.Habits {
		if h.ID != dragged {
			rest = append(rest, h.ID)
		}
	}
	var want []string
	for _, h := range s.Habits {
		if h.ID != dragged {
			want = append(want, h.ID)
		}
	}
	if !slices.Equal(rest, want) {
		t.Fatalf("relative order changed: %v vs %v", rest, want)
	}
}

func TestReorder_Permutation_Properties(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testReorder_Permutation_Properties)
}
