package store

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/projection"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(model.EmptyState(), Options{Logger: log.New(io.Discard), CacheSize: 16})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestDispatchCommitsAndNotifies(t *testing.T) {
	s := newTestStore(t)
	var commits []Commit
	unsubscribe := s.Subscribe(func(c Commit) { commits = append(commits, c) })

	if _, err := s.Dispatch(engine.AddTask{Title: "first"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if _, err := s.Dispatch(engine.DeleteTask{ID: "missing"}); err != nil {
		t.Fatalf("dispatch no-op: %v", err)
	}
	if len(commits) != 1 || commits[0].Version != 1 || len(commits[0].State.Tasks) != 1 {
		t.Fatalf("expected one commit, got %+v", commits)
	}

	unsubscribe()
	if _, err := s.Dispatch(engine.AddHabit{Title: "walk"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected listener to be removed, got %d commits", len(commits))
	}
	if _, version := s.State(); version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}
}

func TestDispatchRejectionLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	notified := false
	s.Subscribe(func(Commit) { notified = true })

	_, err := s.Dispatch(engine.DeleteFilter{Name: "urgent"})
	if !errors.Is(err, engine.ErrBuiltinFilter) {
		t.Fatalf("expected ErrBuiltinFilter, got %v", err)
	}
	if _, version := s.State(); version != 0 || notified {
		t.Fatalf("expected no commit, version=%d notified=%v", version, notified)
	}
}

func TestMemoizedViewsFollowVersion(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	view := func(st model.State) int {
		calls++
		return len(st.Tasks)
	}
	if got := Memo(s, "count", view); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	Memo(s, "count", view)
	if calls != 1 {
		t.Fatalf("expected cached result, got %d calls", calls)
	}

	if _, err := s.Dispatch(engine.AddTask{Title: "x", Filters: []string{"urgent"}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := Memo(s, "count", view); got != 1 || calls != 2 {
		t.Fatalf("expected recompute after commit, got %d with %d calls", got, calls)
	}

	q := projection.Query{ActiveFilters: []string{"urgent"}}
	if got := s.Tasks(q); len(got) != 1 {
		t.Fatalf("expected filtered task, got %+v", got)
	}
	if got := s.Matrix(false); len(got.Delegate) != 1 {
		t.Fatalf("expected task in delegate quadrant, got %+v", got)
	}
	if got := s.Summary(); got.Total != 1 || got.Pending != 1 {
		t.Fatalf("unexpected summary %+v", got)
	}
}

func TestHabitStatsView(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Dispatch(engine.AddHabit{Title: "walk"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	st, _ := s.State()
	if _, ok := s.HabitStats("missing", model.MustParseDate("2026-03-10")); ok {
		t.Fatal("expected missing habit")
	}
	today := st.Habits[0].CreatedOn()
	if _, err := s.Dispatch(engine.ToggleHabitCompletion{HabitID: st.Habits[0].ID, Date: today}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	stats, ok := s.HabitStats(st.Habits[0].ID, today)
	if !ok || stats.CurrentStreak != 1 || stats.HabitScore != 100 {
		t.Fatalf("unexpected stats %+v %v", stats, ok)
	}
}

func TestConcurrentDispatchIsSerialized(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Dispatch(engine.AddNote{Title: "n"}); err != nil {
				t.Errorf("dispatch: %v", err)
			}
		}()
	}
	wg.Wait()
	st, version := s.State()
	if len(st.Notes) != 50 || version != 50 {
		t.Fatalf("expected 50 notes at version 50, got %d at %d", len(st.Notes), version)
	}
}

func TestConcurrentDispatchDeliversInVersionOrder(t *testing.T) {
	s := newTestStore(t)
	var (
		mu       sync.Mutex
		versions []uint64
	)
	s.Subscribe(func(c Commit) {
		mu.Lock()
		defer mu.Unlock()
		versions = append(versions, c.Version)
		if len(c.State.Notes) != int(c.Version) {
			t.Errorf("commit %d carries %d notes", c.Version, len(c.State.Notes))
		}
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				if _, err := s.Dispatch(engine.AddNote{Title: "n"}); err != nil {
					t.Errorf("dispatch: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if len(versions) == 0 || versions[len(versions)-1] != 200 {
		t.Fatalf("expected the final commit to be delivered last, got %v", versions)
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Fatalf("out of order delivery at %d: %v", i, versions)
		}
	}
}
