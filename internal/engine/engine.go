package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/daybook/internal/model"
)

var (
	ErrFilterConflict = errors.New("engine: filter already exists")
	ErrBuiltinFilter  = errors.New("engine: built-in filter cannot be changed")
	ErrInvalidFilter  = errors.New("engine: invalid filter name")
)

// Result is the outcome of one transition. Changed is false when the action
// was a no-op; State is then the input state.
type Result struct {
	State   model.State
	Changed bool
}

// Engine applies actions to states. It holds no state of its own beyond the
// clock and id source used by Add actions.
type Engine struct {
	now   func() time.Time
	newID func() string
}

func New() *Engine {
	return NewWithClock(time.Now, model.NewID)
}

func NewWithClock(now func() time.Time, newID func() string) *Engine {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = model.NewID
	}
	return &Engine{now: now, newID: newID}
}

// Apply returns the state produced by a. The input state is never written to.
// A rejected action returns the input state together with an error wrapping
// one of the Err* values.
func (e *Engine) Apply(s model.State, a Action) (Result, error) {
	if a == nil {
		return Result{State: s}, errors.New("engine: nil action")
	}
	next, changed, err := a.apply(e, s)
	if err != nil || !changed {
		return Result{State: s}, err
	}
	return Result{State: next, Changed: true}, nil
}

func (a AddTask) apply(e *Engine, s model.State) (model.State, bool, error) {
	filters := model.NormalizeFilters(a.Filters)
	subs := make([]model.SubTask, len(a.SubTasks))
	copy(subs, a.SubTasks)
	for i := range subs {
		if subs[i].ID == "" {
			subs[i].ID = e.newID()
		}
	}
	task := model.Task{
		ID:          e.newID(),
		Title:       a.Title,
		Description: a.Description,
		Filters:     filters,
		SubTasks:    subs,
		CreatedAt:   model.At(e.now()),
	}
	if a.DueDate != nil && !a.DueDate.IsZero() {
		due := *a.DueDate
		task.DueDate = &due
	}
	s.Tasks = prepend(s.Tasks, task)
	s.UserFilters = mergeFilters(s.UserFilters, filters)
	return s, true, nil
}

func (a DeleteTask) apply(_ *Engine, s model.State) (model.State, bool, error) {
	tasks, ok := removeByID(s.Tasks, taskID, a.ID)
	if !ok {
		return s, false, nil
	}
	s.Tasks = tasks
	return s, true, nil
}

func (a ToggleTaskComplete) apply(_ *Engine, s model.State) (model.State, bool, error) {
	tasks, ok := updateByID(s.Tasks, taskID, a.ID, func(t model.Task) (model.Task, bool) {
		t.Completed = !t.Completed
		return t, true
	})
	if !ok {
		return s, false, nil
	}
	s.Tasks = tasks
	return s, true, nil
}

func (a ToggleSubtask) apply(_ *Engine, s model.State) (model.State, bool, error) {
	tasks, ok := updateByID(s.Tasks, taskID, a.TaskID, func(t model.Task) (model.Task, bool) {
		subs, ok := updateByID(t.SubTasks, subTaskID, a.SubTaskID, func(st model.SubTask) (model.SubTask, bool) {
			st.Completed = !st.Completed
			return st, true
		})
		t.SubTasks = subs
		return t, ok
	})
	if !ok {
		return s, false, nil
	}
	s.Tasks = tasks
	return s, true, nil
}

func (a AddNote) apply(e *Engine, s model.State) (model.State, bool, error) {
	filters := model.NormalizeFilters(a.Filters)
	note := model.Note{
		ID:        e.newID(),
		Title:     a.Title,
		Content:   a.Content,
		Filters:   filters,
		CreatedAt: model.At(e.now()),
	}
	s.Notes = prepend(s.Notes, note)
	s.UserFilters = mergeFilters(s.UserFilters, filters)
	return s, true, nil
}

func (a DeleteNote) apply(_ *Engine, s model.State) (model.State, bool, error) {
	notes, ok := removeByID(s.Notes, noteID, a.ID)
	if !ok {
		return s, false, nil
	}
	s.Notes = notes
	return s, true, nil
}

func (a AddHabit) apply(e *Engine, s model.State) (model.State, bool, error) {
	habit := model.Habit{
		ID:          e.newID(),
		Title:       a.Title,
		CreatedAt:   model.At(e.now()),
		Completions: map[model.Date]model.HabitStatus{},
	}
	s.Habits = prepend(s.Habits, habit)
	return s, true, nil
}

func (a DeleteHabit) apply(_ *Engine, s model.State) (model.State, bool, error) {
	habits, ok := removeByID(s.Habits, habitID, a.ID)
	if !ok {
		return s, false, nil
	}
	s.Habits = habits
	return s, true, nil
}

func (a ToggleHabitCompletion) apply(_ *Engine, s model.State) (model.State, bool, error) {
	habits, ok := updateByID(s.Habits, habitID, a.HabitID, func(h model.Habit) (model.Habit, bool) {
		completions := make(map[model.Date]model.HabitStatus, len(h.Completions)+1)
		for day, status := range h.Completions {
			completions[day] = status
		}
		current, _ := h.StatusOn(a.Date)
		switch current {
		case model.HabitCompleted:
			completions[a.Date] = model.HabitSkipped
		case model.HabitSkipped:
			delete(completions, a.Date)
		default:
			completions[a.Date] = model.HabitCompleted
		}
		h.Completions = completions
		return h, true
	})
	if !ok {
		return s, false, nil
	}
	s.Habits = habits
	return s, true, nil
}

func (a UpdateItem) apply(_ *Engine, s model.State) (model.State, bool, error) {
	item := a.Item
	switch item.Kind {
	case model.KindTask:
		next := item.Task
		next.Filters = model.NormalizeFilters(next.Filters)
		tasks, ok := updateByID(s.Tasks, taskID, next.ID, func(stored model.Task) (model.Task, bool) {
			next.CreatedAt = stored.CreatedAt
			if next.SubTasks == nil {
				next.SubTasks = []model.SubTask{}
			}
			return next, true
		})
		if !ok {
			return s, false, nil
		}
		s.Tasks = tasks
		s.UserFilters = mergeFilters(s.UserFilters, next.Filters)
		return s, true, nil
	case model.KindNote:
		next := item.Note
		next.Filters = model.NormalizeFilters(next.Filters)
		notes, ok := updateByID(s.Notes, noteID, next.ID, func(stored model.Note) (model.Note, bool) {
			next.CreatedAt = stored.CreatedAt
			return next, true
		})
		if !ok {
			return s, false, nil
		}
		s.Notes = notes
		s.UserFilters = mergeFilters(s.UserFilters, next.Filters)
		return s, true, nil
	case model.KindHabit:
		next := item.Habit
		habits, ok := updateByID(s.Habits, habitID, next.ID, func(stored model.Habit) (model.Habit, bool) {
			next.CreatedAt = stored.CreatedAt
			if next.Completions == nil {
				next.Completions = stored.Completions
			}
			return next, true
		})
		if !ok {
			return s, false, nil
		}
		s.Habits = habits
		return s, true, nil
	default:
		return s, false, fmt.Errorf("engine: unknown item kind %q", item.Kind)
	}
}

func (a ReorderItems) apply(_ *Engine, s model.State) (model.State, bool, error) {
	if a.DraggedID == a.TargetID {
		return s, false, nil
	}
	var ok bool
	switch a.List {
	case model.KindTask:
		s.Tasks, ok = reorder(s.Tasks, taskID, a.DraggedID, a.TargetID)
	case model.KindNote:
		s.Notes, ok = reorder(s.Notes, noteID, a.DraggedID, a.TargetID)
	case model.KindHabit:
		s.Habits, ok = reorder(s.Habits, habitID, a.DraggedID, a.TargetID)
	}
	return s, ok, nil
}
