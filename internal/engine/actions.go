package engine

import "github.com/sandeepkv93/daybook/internal/model"

// Action is the closed set of state transitions accepted by Apply.
type Action interface {
	apply(e *Engine, s model.State) (model.State, bool, error)
}

type AddTask struct {
	Title       string
	Description string
	Filters     []string
	SubTasks    []model.SubTask
	DueDate     *model.Date
}

type DeleteTask struct {
	ID string
}

type ToggleTaskComplete struct {
	ID string
}

type ToggleSubtask struct {
	TaskID    string
	SubTaskID string
}

type AddNote struct {
	Title   string
	Content string
	Filters []string
}

type DeleteNote struct {
	ID string
}

type AddHabit struct {
	Title string
}

type DeleteHabit struct {
	ID string
}

// ToggleHabitCompletion cycles the habit's record for Date through
// unmarked, completed and skipped.
type ToggleHabitCompletion struct {
	HabitID string
	Date    model.Date
}

// UpdateItem replaces the stored entity with the same kind and id.
type UpdateItem struct {
	Item model.Item
}

type AddFilter struct {
	Name string
}

type DeleteFilter struct {
	Name string
}

type EditFilter struct {
	Old string
	New string
}

// ReorderItems moves DraggedID to the index TargetID held before the move.
type ReorderItems struct {
	List      model.ItemKind
	DraggedID string
	TargetID  string
}
