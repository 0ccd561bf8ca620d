package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/daybook/internal/analytics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/projection"
	"github.com/sandeepkv93/daybook/internal/views"
)

const previewWidth = 54

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.noteViewport = viewport.New(previewWidth, 14)

	cols := []table.Column{
		{Title: "Metric", Width: 16},
		{Title: "Value", Width: 8},
	}
	m.statsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(8))
}

// syncBubbleData copies the committed state into the bubble components.
func (m *Model) syncBubbleData() {
	m.ensureCursors()
	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	key := ""
	n, hasNote := m.selectedNote()
	if hasNote {
		key = m.theme() + "\x00" + n.ID + "\x00" + n.Content
	}
	if key != m.previewKey {
		content := ""
		if hasNote {
			content = views.RenderMarkdown(n.Content, m.theme(), previewWidth)
		}
		m.noteViewport.SetContent(content)
		m.noteViewport.GotoTop()
		m.previewKey = key
	}

	rows := []table.Row{}
	if h, ok := m.focusedHabit(); ok {
		rows = statsRows(m.habitStats(h))
	}
	m.statsTable.SetRows(rows)
}

func statsRows(s analytics.Stats) []table.Row {
	return []table.Row{
		{"Score", strconv.Itoa(s.HabitScore) + "%"},
		{"Days completed", strconv.Itoa(s.DaysCompleted)},
		{"Current streak", strconv.Itoa(s.CurrentStreak)},
		{"Longest streak", strconv.Itoa(s.LongestStreak)},
		{"Days skipped", strconv.Itoa(s.DaysSkipped)},
		{"Days failed", strconv.Itoa(s.DaysFailed)},
		{"Total days", strconv.Itoa(s.TotalDays)},
	}
}

func (m *Model) ensureCursors() {
	m.Tasks.Cursor = clamp(m.Tasks.Cursor, len(m.visibleTasks()))
	m.Notes.Cursor = clamp(m.Notes.Cursor, len(m.visibleNotes()))
	m.Habits.Cursor = clamp(m.Habits.Cursor, len(m.state().Habits))
}

func (m Model) queryData() views.QueryData {
	return views.QueryData{
		SearchTerm:    m.Query.SearchTerm,
		ActiveFilters: m.Query.ActiveFilters,
		ShowCompleted: m.Query.ShowCompleted,
	}
}

func (m Model) renderTaskView() string {
	tasks := m.visibleTasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t))
	}
	selected := ""
	if t, ok := m.selectedTask(); ok {
		selected = t.ID
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Theme:      m.theme(),
		Rows:       rows,
		SelectedID: selected,
		Query:      m.queryData(),
		Available:  projection.AvailableFilters(m.state().UserFilters),
	})
}

func taskRow(t model.Task) views.TaskRowData {
	row := views.TaskRowData{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Filters:   t.Filters,
		SubTotal:  len(t.SubTasks),
	}
	for _, sub := range t.SubTasks {
		if sub.Completed {
			row.SubDone++
		}
	}
	if due, ok := t.Due(); ok {
		row.Due = due.String()
	}
	return row
}

func (m Model) renderTaskDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	subs := make([]views.SubTaskData, 0, len(t.SubTasks))
	for _, sub := range t.SubTasks {
		subs = append(subs, views.SubTaskData{Text: sub.Text, Completed: sub.Completed})
	}
	data := views.TaskDetailData{
		Theme:       m.theme(),
		Title:       t.Title,
		Description: t.Description,
		Filters:     t.Filters,
		CreatedAt:   t.CreatedAt.DateIn(m.now().Location()).String(),
		Completed:   t.Completed,
		SubTasks:    subs,
	}
	if due, ok := t.Due(); ok {
		data.Due = due.String()
	}
	return views.RenderTaskDetail(data)
}

func (m Model) renderNoteView() string {
	notes := m.visibleNotes()
	rows := make([]views.NoteRowData, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, views.NoteRowData{ID: n.ID, Title: n.Title, Filters: n.Filters})
	}
	selected := ""
	if n, ok := m.selectedNote(); ok {
		selected = n.ID
	}
	return views.RenderNotePanel(views.NotePanelData{
		Theme:      m.theme(),
		Rows:       rows,
		SelectedID: selected,
		Query:      m.queryData(),
	})
}

func (m Model) renderNoteDetail() string {
	n, ok := m.selectedNote()
	if !ok {
		return views.RenderNoteDetail(views.NoteDetailData{})
	}
	return views.RenderNoteDetail(views.NoteDetailData{
		Title:     n.Title,
		Filters:   n.Filters,
		CreatedAt: n.CreatedAt.DateIn(m.now().Location()).String(),
		Preview:   m.noteViewport.View(),
	})
}

func (m Model) renderHabitView() string {
	today := m.today()
	days := analytics.RecentDays(today, m.RecentDays)
	habits := m.state().Habits
	rows := make([]views.HabitRowData, 0, len(habits))
	for _, h := range habits {
		row := views.HabitRowData{ID: h.ID, Title: h.Title, Streak: m.habitStats(h).CurrentStreak}
		// oldest first, so today sits at the right edge
		for i := len(days) - 1; i >= 0; i-- {
			status, _ := h.StatusOn(days[i])
			row.Recent = append(row.Recent, views.DayMarkData{
				Label:  days[i].Weekday().String()[:2],
				Status: string(status),
				Today:  days[i] == today,
			})
		}
		rows = append(rows, row)
	}
	selected := ""
	if h, ok := m.selectedHabit(); ok {
		selected = h.ID
	}
	return views.RenderHabitPanel(views.HabitPanelData{Theme: m.theme(), Rows: rows, SelectedID: selected})
}

func (m Model) renderHabitDetail() string {
	h, ok := m.focusedHabit()
	if !ok {
		return views.RenderHabitDetail(views.HabitDetailData{})
	}
	month := m.Detail.Month
	selected := m.Detail.Selected
	if m.CurrentView != ViewHabitDetail {
		month = firstOfMonth(m.today())
		selected = model.Date{}
	}
	grid := analytics.MonthGrid(h, month.Year, month.Month, m.today())
	cells := make([]views.GridCellData, 0, len(grid))
	for _, day := range grid {
		cells = append(cells, views.GridCellData{
			Day:      day.Date.Day,
			InMonth:  day.InMonth,
			Today:    day.Today,
			Selected: day.InMonth && day.Date == selected,
			Status:   string(day.Status),
			Disabled: !day.Markable(),
		})
	}
	stats := m.habitStats(h)
	statsView := ""
	if m.CurrentView != ViewHabitDetail {
		statsView = m.statsTable.View()
	}
	return views.RenderHabitDetail(views.HabitDetailData{
		Theme:      m.theme(),
		Title:      h.Title,
		MonthLabel: monthLabel(month),
		Cells:      cells,
		StatsView:  statsView,
		Score:      stats.HabitScore,
	})
}

func (m Model) renderMatrixView() string {
	quads := m.store.Matrix(m.Query.ShowCompleted)
	return views.RenderMatrix(views.MatrixData{
		Theme:         m.theme(),
		ShowCompleted: m.Query.ShowCompleted,
		Do:            taskTitles(quads.Do),
		Schedule:      taskTitles(quads.Schedule),
		Delegate:      taskTitles(quads.Delegate),
		Eliminate:     taskTitles(quads.Eliminate),
	})
}

func taskTitles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title += " (done)"
		}
		out = append(out, title)
	}
	return out
}

func (m Model) renderCalendarView() string {
	grid := m.calendarCells()
	cells := make([]views.GridCellData, 0, len(grid))
	for _, c := range grid {
		cells = append(cells, views.GridCellData{
			Day:      c.Date.Day,
			InMonth:  c.InMonth,
			Today:    c.Today,
			Selected: c.Selected,
			HasTasks: c.HasTasks,
		})
	}
	sum := m.store.Summary()
	return views.RenderCalendarPanel(views.CalendarPanelData{
		Theme:      m.theme(),
		MonthLabel: monthLabel(m.Calendar.Month),
		Cells:      cells,
		Total:      sum.Total,
		Completed:  sum.Completed,
		Pending:    sum.Pending,
	})
}

func (m Model) renderDayAgenda() string {
	due := m.tasksDueOn(m.Calendar.Selected)
	rows := make([]views.TaskRowData, 0, len(due))
	for _, t := range due {
		rows = append(rows, taskRow(t))
	}
	return views.RenderDayAgenda(views.DayAgendaData{
		Theme: m.theme(),
		Date:  m.Calendar.Selected.String(),
		Rows:  rows,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) statusSummary() string {
	s := m.store.Summary()
	return fmt.Sprintf("%d/%d tasks done", s.Completed, s.Total)
}
