package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.ensureCursors()

		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m, nil
		case m.Keys.Habits:
			m.CurrentView = ViewHabits
			return m, nil
		case m.Keys.Matrix:
			m.CurrentView = ViewMatrix
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case "c":
			m.Query.ShowCompleted = !m.Query.ShowCompleted
			m.Status = StatusBar{Text: fmt.Sprintf("show completed: %t", m.Query.ShowCompleted), IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTaskKey(typed), nil
		case ViewNotes:
			return m.handleNoteKey(typed), nil
		case ViewHabits:
			return m.handleHabitKey(typed), nil
		case ViewHabitDetail:
			return m.handleHabitDetailKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTaskView()
		rightPane = m.renderTaskDetail()
	case ViewNotes:
		leftPane = m.renderNoteView()
		rightPane = m.renderNoteDetail()
	case ViewHabits:
		leftPane = m.renderHabitView()
		rightPane = m.renderHabitDetail()
	case ViewHabitDetail:
		leftPane = m.renderHabitDetail()
		rightPane = m.statsTable.View()
	case ViewMatrix:
		leftPane = m.renderMatrixView()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderDayAgenda()
	}
	rightPane += m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Theme:         m.theme(),
		Header:        fmt.Sprintf("daybook | %s | %s | theme: %s", m.today(), m.statusSummary(), m.Prefs.Theme),
		Tabs:          []string{"1 Tasks", "2 Notes", "3 Habits", "4 Matrix", "5 Calendar"},
		ActiveTab:     tabIndex(m.CurrentView),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Palette:       m.renderCommandPalette(),
		Footer:        fmt.Sprintf("keys: %s-%s views | / cmd | c completed | %s help | %s quit", m.Keys.Tasks, m.Keys.Calendar, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewNotes, ViewHabits, ViewHabitDetail, ViewMatrix, ViewCalendar:
		return true
	default:
		return false
	}
}

func tabIndex(v View) int {
	switch v {
	case ViewNotes:
		return 1
	case ViewHabits, ViewHabitDetail:
		return 2
	case ViewMatrix:
		return 3
	case ViewCalendar:
		return 4
	default:
		return 0
	}
}
