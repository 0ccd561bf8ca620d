package model

// ItemKind tags the entity carried by an Item and names the list a reorder
// applies to.
type ItemKind string

const (
	KindTask  ItemKind = "tasks"
	KindNote  ItemKind = "notes"
	KindHabit ItemKind = "habits"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case KindTask, KindNote, KindHabit:
		return true
	default:
		return false
	}
}

// Item is an edited entity together with its kind. Only the field matching
// Kind is read.
type Item struct {
	Kind  ItemKind
	Task  Task
	Note  Note
	Habit Habit
}

func TaskItem(t Task) Item   { return Item{Kind: KindTask, Task: t} }
func NoteItem(n Note) Item   { return Item{Kind: KindNote, Note: n} }
func HabitItem(h Habit) Item { return Item{Kind: KindHabit, Habit: h} }

func (i Item) ID() string {
	switch i.Kind {
	case KindTask:
		return i.Task.ID
	case KindNote:
		return i.Note.ID
	case KindHabit:
		return i.Habit.ID
	default:
		return ""
	}
}

// State is the whole application data set. Values are treated as immutable:
// transitions build new slices and never write through shared ones.
type State struct {
	Tasks       []Task   `json:"tasks"`
	Notes       []Note   `json:"notes"`
	Habits      []Habit  `json:"habits"`
	UserFilters []string `json:"userFilters"`
}

func EmptyState() State {
	return State{
		Tasks:       []Task{},
		Notes:       []Note{},
		Habits:      []Habit{},
		UserFilters: []string{},
	}
}

func (s State) Task(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (s State) Note(id string) (Note, bool) {
	for _, n := range s.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

func (s State) Habit(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Preferences are host settings persisted next to the data. The timer fields
// round-trip for the external countdown timer.
type Preferences struct {
	TimerPresetMinutes int   `json:"timerPresetMinutes"`
	TimerPresets       []int `json:"timerPresets"`
	Theme              Theme `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		TimerPresetMinutes: 25,
		TimerPresets:       []int{5, 10, 15, 20, 25, 30},
		Theme:              ThemeDark,
	}
}
