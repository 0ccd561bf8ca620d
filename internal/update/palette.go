package update

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/commands"
	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/projection"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func errNoSelection(what string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no " + what + " selected"}
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m
}

// paletteHandlers binds each palette command to the engine. The handlers
// write through m, so they must be built from the Model being returned.
func (m *Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			if err := m.apply(engine.AddTask{Title: a.Title, Filters: a.Filters, DueDate: a.Due}); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTasks
			m.Tasks.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			if err := m.apply(engine.AddNote{Title: a.Title, Content: a.Content, Filters: a.Filters}); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewNotes
			m.Notes.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("added note: %s", a.Title)}, nil
		},
		Habit: func(a commands.HabitArgs) (commands.Result, error) {
			if err := m.apply(engine.AddHabit{Title: a.Title}); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewHabits
			m.Habits.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("added habit: %s", a.Title)}, nil
		},
		Filter: m.runFilter,
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.Query.SearchTerm = a.Term
			m.Tasks.Cursor, m.Notes.Cursor = 0, 0
			if a.Term == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", a.Term)}, nil
		},
		Show: m.runShow,
		Due: func(a commands.DueArgs) (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok || m.CurrentView != ViewTasks {
				return commands.Result{}, errNoSelection("task")
			}
			t.DueDate = a.Date
			if err := m.apply(engine.UpdateItem{Item: model.TaskItem(t)}); err != nil {
				return commands.Result{}, err
			}
			if a.Date == nil {
				return commands.Result{Message: "due date cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("due %s", a.Date)}, nil
		},
		Sub: func(a commands.SubArgs) (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok || m.CurrentView != ViewTasks {
				return commands.Result{}, errNoSelection("task")
			}
			t.SubTasks = append(slices.Clone(t.SubTasks), model.SubTask{ID: model.NewID(), Text: a.Text})
			if err := m.apply(engine.UpdateItem{Item: model.TaskItem(t)}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added sub-task %d", len(t.SubTasks))}, nil
		},
		SubDone: func(a commands.SubDoneArgs) (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok || m.CurrentView != ViewTasks {
				return commands.Result{}, errNoSelection("task")
			}
			if a.Index < 1 || a.Index > len(t.SubTasks) {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("task has %d sub-task(s)", len(t.SubTasks)),
				}
			}
			sub := t.SubTasks[a.Index-1]
			if err := m.apply(engine.ToggleSubtask{TaskID: t.ID, SubTaskID: sub.ID}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("toggled sub-task: %s", sub.Text)}, nil
		},
		Rename: func(a commands.RenameArgs) (commands.Result, error) {
			item, err := m.selectedItem()
			if err != nil {
				return commands.Result{}, err
			}
			switch item.Kind {
			case model.KindTask:
				item.Task.Title = a.Title
			case model.KindNote:
				item.Note.Title = a.Title
			case model.KindHabit:
				item.Habit.Title = a.Title
			}
			if err := m.apply(engine.UpdateItem{Item: item}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("renamed to %s", a.Title)}, nil
		},
		Desc: func(a commands.DescArgs) (commands.Result, error) {
			item, err := m.selectedItem()
			if err != nil {
				return commands.Result{}, err
			}
			switch item.Kind {
			case model.KindTask:
				item.Task.Description = a.Text
			case model.KindNote:
				item.Note.Content = a.Text
			default:
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "habits have no description"}
			}
			if err := m.apply(engine.UpdateItem{Item: item}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "description updated"}, nil
		},
		Delete: func() (commands.Result, error) {
			item, err := m.selectedItem()
			if err != nil {
				return commands.Result{}, err
			}
			var action engine.Action
			var title string
			switch item.Kind {
			case model.KindTask:
				action, title = engine.DeleteTask{ID: item.Task.ID}, item.Task.Title
			case model.KindNote:
				action, title = engine.DeleteNote{ID: item.Note.ID}, item.Note.Title
			default:
				action, title = engine.DeleteHabit{ID: item.Habit.ID}, item.Habit.Title
			}
			if err := m.apply(action); err != nil {
				return commands.Result{}, err
			}
			if m.CurrentView == ViewHabitDetail {
				m.CurrentView = ViewHabits
			}
			return commands.Result{Message: fmt.Sprintf("deleted: %s", title)}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			next := a.Theme
			if next == "" {
				next = model.ThemeDark
				if m.Prefs.Theme == model.ThemeDark {
					next = model.ThemeLight
				}
			}
			m.Prefs.Theme = next
			if m.sink != nil {
				if err := m.sink.SubmitPreferences(m.Prefs); err != nil {
					return commands.Result{}, fmt.Errorf("save theme: %w", err)
				}
			}
			return commands.Result{Message: fmt.Sprintf("theme: %s", next)}, nil
		},
	}
}

// apply dispatches a. A rejected action is returned as an error; an action
// that changes nothing is not an error.
func (m *Model) apply(a engine.Action) error {
	if _, err := m.store.Dispatch(a); err != nil {
		return err
	}
	m.ensureCursors()
	return nil
}

// applyChanged dispatches a and reports whether the state moved.
func (m *Model) applyChanged(a engine.Action) (bool, error) {
	res, err := m.store.Dispatch(a)
	if err != nil {
		return false, err
	}
	m.ensureCursors()
	return res.Changed, nil
}

func (m *Model) runFilter(a commands.FilterArgs) (commands.Result, error) {
	var (
		action engine.Action
		done   string
	)
	switch a.Op {
	case commands.FilterAdd:
		action = engine.AddFilter{Name: a.Name}
		done = fmt.Sprintf("filter added: %s", a.Name)
	case commands.FilterRemove:
		action = engine.DeleteFilter{Name: a.Name}
		done = fmt.Sprintf("filter removed: %s", a.Name)
	default:
		action = engine.EditFilter{Old: a.Name, New: a.NewName}
		done = fmt.Sprintf("filter renamed: %s -> %s", a.Name, a.NewName)
	}
	changed, err := m.applyChanged(action)
	if err != nil {
		return commands.Result{}, err
	}
	switch {
	case a.Op == commands.FilterRemove:
		m.Query = m.Query.Without(a.Name)
	case a.Op == commands.FilterRename && changed && slices.Contains(m.Query.ActiveFilters, model.NormalizeFilter(a.Name)):
		m.Query = m.Query.Without(a.Name).Toggle(a.NewName)
	}
	if !changed {
		return commands.Result{Message: fmt.Sprintf("no change: %s", a.Name)}, nil
	}
	return commands.Result{Message: done}, nil
}

func (m *Model) runShow(a commands.ShowArgs) (commands.Result, error) {
	switch a.Subject {
	case commands.ShowTag:
		tag := model.NormalizeFilter(a.Tag)
		if !slices.Contains(projection.AvailableFilters(m.state().UserFilters), tag) {
			return commands.Result{}, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: fmt.Sprintf("unknown filter: %s", a.Tag),
			}
		}
		m.Query = m.Query.Toggle(tag)
		m.Tasks.Cursor, m.Notes.Cursor = 0, 0
		return commands.Result{Message: fmt.Sprintf("active filters: %s", strings.Join(m.Query.ActiveFilters, ", "))}, nil
	case commands.ShowDone:
		m.Query.ShowCompleted = !m.Query.ShowCompleted
		return commands.Result{Message: fmt.Sprintf("show completed: %t", m.Query.ShowCompleted)}, nil
	default:
		m.Query = projection.Query{ShowCompleted: m.Query.ShowCompleted}
		m.Tasks.Cursor, m.Notes.Cursor = 0, 0
		return commands.Result{Message: "filters cleared"}, nil
	}
}

// selectedItem returns the item under the cursor of the current view.
func (m Model) selectedItem() (model.Item, error) {
	switch m.CurrentView {
	case ViewTasks:
		if t, ok := m.selectedTask(); ok {
			return model.TaskItem(t), nil
		}
		return model.Item{}, errNoSelection("task")
	case ViewNotes:
		if n, ok := m.selectedNote(); ok {
			return model.NoteItem(n), nil
		}
		return model.Item{}, errNoSelection("note")
	case ViewHabits, ViewHabitDetail:
		if h, ok := m.focusedHabit(); ok {
			return model.HabitItem(h), nil
		}
		return model.Item{}, errNoSelection("habit")
	default:
		return model.Item{}, errNoSelection("item")
	}
}
