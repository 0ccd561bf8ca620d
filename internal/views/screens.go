package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	ID        string
	Title     string
	Completed bool
	Filters   []string
	Due       string
	SubDone   int
	SubTotal  int
}

type QueryData struct {
	SearchTerm    string
	ActiveFilters []string
	ShowCompleted bool
}

type TaskPanelData struct {
	Theme      string
	Rows       []TaskRowData
	SelectedID string
	Query      QueryData
	Available  []string
}

type SubTaskData struct {
	Text      string
	Completed bool
}

type TaskDetailData struct {
	Theme       string
	Title       string
	Description string
	Filters     []string
	Due         string
	CreatedAt   string
	Completed   bool
	SubTasks    []SubTaskData
}

type NoteRowData struct {
	ID      string
	Title   string
	Filters []string
}

type NotePanelData struct {
	Theme      string
	Rows       []NoteRowData
	SelectedID string
	Query      QueryData
}

type NoteDetailData struct {
	Title     string
	Filters   []string
	CreatedAt string
	Preview   string
}

// DayMarkData is one day in a habit's recent-days strip.
type DayMarkData struct {
	Label  string
	Status string
	Today  bool
}

type HabitRowData struct {
	ID     string
	Title  string
	Streak int
	Recent []DayMarkData
}

type HabitPanelData struct {
	Theme      string
	Rows       []HabitRowData
	SelectedID string
}

// GridCellData is one cell of a Sunday-first month grid. Status is
// "completed", "skipped" or empty.
type GridCellData struct {
	Day      int
	InMonth  bool
	Today    bool
	Selected bool
	Status   string
	Disabled bool
	HasTasks bool
}

type HabitDetailData struct {
	Theme      string
	Title      string
	MonthLabel string
	Cells      []GridCellData
	StatsView  string
	Score      int
}

type MatrixData struct {
	Theme         string
	ShowCompleted bool
	Do            []string
	Schedule      []string
	Delegate      []string
	Eliminate     []string
}

type CalendarPanelData struct {
	Theme      string
	MonthLabel string
	Cells      []GridCellData
	Total      int
	Completed  int
	Pending    int
}

type DayAgendaData struct {
	Theme string
	Date  string
	Rows  []TaskRowData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	st := stylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(renderQuery(data.Query) + "\n")
	b.WriteString(st.muted.Render("filters: "+strings.Join(data.Available, " ")) + "\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(st, row, row.ID == data.SelectedID) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(st styles, row TaskRowData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Completed {
		check = st.done.Render("[x]")
	}
	line := fmt.Sprintf("%s %s %s", cursor, check, row.Title)
	if row.SubTotal > 0 {
		line += st.muted.Render(fmt.Sprintf(" (%d/%d)", row.SubDone, row.SubTotal))
	}
	if row.Due != "" {
		line += st.accent.Render(" due:" + row.Due)
	}
	if len(row.Filters) > 0 {
		line += st.muted.Render(" #" + strings.Join(row.Filters, " #"))
	}
	return line
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "details:\n(no selection)"
	}
	st := stylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(st.header.Render(data.Title) + "\n")
	state := "open"
	if data.Completed {
		state = "done"
	}
	b.WriteString(fmt.Sprintf("state: %s\n", state))
	b.WriteString(fmt.Sprintf("created: %s\n", data.CreatedAt))
	if data.Due != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.Due))
	}
	if len(data.Filters) > 0 {
		b.WriteString(fmt.Sprintf("filters: %s\n", strings.Join(data.Filters, ", ")))
	}
	if data.Description != "" {
		b.WriteString("\n" + data.Description + "\n")
	}
	if len(data.SubTasks) > 0 {
		b.WriteString("\nsub-tasks:\n")
		for i, sub := range data.SubTasks {
			mark := " "
			if sub.Completed {
				mark = "x"
			}
			b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, mark, sub.Text))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderNotePanel(data NotePanelData) string {
	st := stylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("notes:\n")
	b.WriteString(renderQuery(data.Query) + "\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no notes)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s", cursor, row.Title)
		if len(row.Filters) > 0 {
			line += st.muted.Render(" #" + strings.Join(row.Filters, " #"))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderNoteDetail(data NoteDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "preview:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("preview: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("created: %s\n", data.CreatedAt))
	if len(data.Filters) > 0 {
		b.WriteString(fmt.Sprintf("filters: %s\n", strings.Join(data.Filters, ", ")))
	}
	b.WriteString("\n")
	if strings.TrimSpace(data.Preview) == "" {
		b.WriteString("_empty_")
	} else {
		b.WriteString(data.Preview)
	}
	return strings.TrimSpace(b.String())
}

func RenderHabitPanel(data HabitPanelData) string {
	st := stylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("habits:\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no habits)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		marks := make([]string, 0, len(row.Recent))
		for _, day := range row.Recent {
			marks = append(marks, renderMark(st, day.Status, day.Today))
		}
		b.WriteString(fmt.Sprintf("%s %s %s streak:%d\n", cursor, strings.Join(marks, ""), row.Title, row.Streak))
	}
	if len(data.Rows) > 0 && len(data.Rows[0].Recent) > 0 {
		labels := make([]string, 0, len(data.Rows[0].Recent))
		for _, day := range data.Rows[0].Recent {
			labels = append(labels, day.Label)
		}
		b.WriteString(st.muted.Render("  days: " + strings.Join(labels, " ")))
	}
	return strings.TrimSpace(b.String())
}

func renderMark(st styles, status string, today bool) string {
	var mark string
	switch status {
	case "completed":
		mark = st.done.Render("●")
	case "skipped":
		mark = st.skipped.Render("○")
	default:
		mark = st.muted.Render("·")
	}
	if today {
		return "[" + mark + "]"
	}
	return " " + mark + " "
}

func RenderHabitDetail(data HabitDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "habit:\n(no selection)"
	}
	st := stylesFor(data.Theme)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("habit: %s\n", st.header.Render(data.Title)))
	b.WriteString(fmt.Sprintf("score: %d%%\n", data.Score))
	b.WriteString(RenderMonthGrid(data.Theme, data.MonthLabel, data.Cells) + "\n")
	b.WriteString(data.StatsView)
	return strings.TrimSpace(b.String())
}

// RenderMonthGrid draws whole weeks, Sunday first. Padding cells are blank.
func RenderMonthGrid(theme, label string, cells []GridCellData) string {
	st := stylesFor(theme)
	var b strings.Builder
	b.WriteString(st.header.Render(label) + "\n")
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for i, cell := range cells {
		b.WriteString(renderGridCell(st, cell))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderGridCell(st styles, cell GridCellData) string {
	if !cell.InMonth {
		return "    "
	}
	text := fmt.Sprintf("%3d", cell.Day)
	switch {
	case cell.Status == "completed":
		text = st.done.Render(text)
	case cell.Status == "skipped":
		text = st.skipped.Render(text)
	case cell.Disabled:
		text = st.muted.Render(text)
	case cell.Today:
		text = st.today.Render(text)
	}
	if cell.Selected {
		text = st.selected.Render(text)
	}
	if cell.HasTasks {
		return text + st.accent.Render("•")
	}
	return text + " "
}

func RenderMatrix(data MatrixData) string {
	st := stylesFor(data.Theme)
	quad := func(title string, items []string) string {
		var b strings.Builder
		b.WriteString(st.header.Render(title) + "\n")
		if len(items) == 0 {
			b.WriteString(st.muted.Render("(none)"))
			return b.String()
		}
		for _, item := range items {
			b.WriteString("- " + item + "\n")
		}
		return strings.TrimSuffix(b.String(), "\n")
	}
	cell := st.quadrant
	top := lipgloss.JoinHorizontal(lipgloss.Top, cell.Render(quad("Do (urgent+important)", data.Do)), cell.Render(quad("Schedule (important)", data.Schedule)))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cell.Render(quad("Delegate (urgent)", data.Delegate)), cell.Render(quad("Eliminate", data.Eliminate)))
	completed := "hidden"
	if data.ShowCompleted {
		completed = "shown"
	}
	return fmt.Sprintf("matrix: completed %s\n%s\n%s", completed, top, bottom)
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("tasks: %d total | %d completed | %d pending\n", data.Total, data.Completed, data.Pending))
	b.WriteString(RenderMonthGrid(data.Theme, data.MonthLabel, data.Cells))
	return strings.TrimSpace(b.String())
}

func RenderDayAgenda(data DayAgendaData) string {
	st := stylesFor(data.Theme)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("due %s:\n", data.Date))
	if len(data.Rows) == 0 {
		b.WriteString("(nothing due)")
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(st, row, false) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, view string) string {
	if !active {
		return ""
	}
	return "command: " + view
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help: %s\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderQuery(q QueryData) string {
	parts := make([]string, 0, 3)
	if q.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search=%q", q.SearchTerm))
	}
	if len(q.ActiveFilters) > 0 {
		parts = append(parts, "tags="+strings.Join(q.ActiveFilters, "+"))
	}
	if q.ShowCompleted {
		parts = append(parts, "completed=shown")
	}
	if len(parts) == 0 {
		return "showing: all"
	}
	return "showing: " + strings.Join(parts, " ")
}
