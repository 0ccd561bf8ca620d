package update

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type recordingSink struct {
	prefs []model.Preferences
	err   error
}

func (r *recordingSink) SubmitPreferences(p model.Preferences) error {
	r.prefs = append(r.prefs, p)
	return r.err
}

func newTestModel(t *testing.T) (Model, *store.Store, *recordingSink) {
	t.Helper()
	n := 0
	eng := engine.NewWithClock(
		func() time.Time { return fixedNow },
		func() string { n++; return fmt.Sprintf("id-%d", n) },
	)
	st, err := store.New(model.EmptyState(), store.Options{Engine: eng})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	sink := &recordingSink{}
	m := NewModel(st, Options{
		Preferences: model.DefaultPreferences(),
		Sink:        sink,
		Now:         func() time.Time { return fixedNow },
	})
	return m, st, sink
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func run(t *testing.T, m Model, command string) Model {
	t.Helper()
	return press(t, m, "/", command, "enter")
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected default view %q, got %q", ViewTasks, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Prefs.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme, got %q", m.Prefs.Theme)
	}
	if m.Calendar.Month != model.MustParseDate("2026-03-01") || m.Calendar.Selected != model.MustParseDate("2026-03-10") {
		t.Fatalf("unexpected calendar state: %+v", m.Calendar)
	}
	if m.RecentDays != defaultRecentDays {
		t.Fatalf("expected %d recent days, got %d", defaultRecentDays, m.RecentDays)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _, _ := newTestModel(t)
	cases := []struct {
		key  string
		want View
	}{
		{"2", ViewNotes},
		{"3", ViewHabits},
		{"4", ViewMatrix},
		{"5", ViewCalendar},
		{"1", ViewTasks},
	}
	for _, tc := range cases {
		m = press(t, m, tc.key)
		if m.CurrentView != tc.want {
			t.Fatalf("key %q: expected %q, got %q", tc.key, tc.want, m.CurrentView)
		}
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewCalendar})
	next := updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, cmd := m.Update(keyMsg("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting state")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestPaletteAddTaskAndToggleCompletion(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = press(t, m, "2")
	m = run(t, m, "task Buy milk #Home due:2026-03-12")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tasks view after adding a task, got %q", m.CurrentView)
	}
	state, _ := st.State()
	if len(state.Tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(state.Tasks))
	}
	task := state.Tasks[0]
	if task.Title != "Buy milk" || len(task.Filters) != 1 || task.Filters[0] != "home" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if due, ok := task.Due(); !ok || due != model.MustParseDate("2026-03-12") {
		t.Fatalf("unexpected due date: %v", task.DueDate)
	}
	if len(state.UserFilters) != 1 || state.UserFilters[0] != "home" {
		t.Fatalf("expected user filter home, got %v", state.UserFilters)
	}

	m = press(t, m, " ")
	state, _ = st.State()
	if !state.Tasks[0].Completed {
		t.Fatal("expected task completed")
	}
	if len(m.visibleTasks()) != 0 {
		t.Fatal("expected completed task hidden")
	}
	m = press(t, m, "c")
	if len(m.visibleTasks()) != 1 {
		t.Fatal("expected completed task shown after c")
	}
}

func TestReorderWithShiftKeys(t *testing.T) {
	m, st, _ := newTestModel(t)
	for _, title := range []string{"A", "B", "C"} {
		m = run(t, m, "task "+title)
	}
	titles := func() string {
		state, _ := st.State()
		out := make([]string, 0, len(state.Tasks))
		for _, task := range state.Tasks {
			out = append(out, task.Title)
		}
		return strings.Join(out, ",")
	}
	if got := titles(); got != "C,B,A" {
		t.Fatalf("expected newest first, got %s", got)
	}

	m = press(t, m, "J")
	if got := titles(); got != "B,C,A" {
		t.Fatalf("expected C moved down, got %s", got)
	}
	if m.Tasks.Cursor != 1 {
		t.Fatalf("expected cursor to follow the task, got %d", m.Tasks.Cursor)
	}

	m = press(t, m, "J")
	if got := titles(); got != "B,A,C" {
		t.Fatalf("expected C moved to the end, got %s", got)
	}
	m = press(t, m, "J")
	if got := titles(); got != "B,A,C" {
		t.Fatalf("expected no move past the end, got %s", got)
	}

	m = press(t, m, "K", "K")
	if got := titles(); got != "C,B,A" {
		t.Fatalf("expected C moved back to the top, got %s", got)
	}
	if m.Tasks.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Tasks.Cursor)
	}
}

func TestPaletteFilterRenameAndDelete(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = run(t, m, "task Report #work")
	m = run(t, m, "note Minutes #work | agenda")
	m = run(t, m, "show tag:work")
	if len(m.Query.ActiveFilters) != 1 || m.Query.ActiveFilters[0] != "work" {
		t.Fatalf("expected work filter active, got %v", m.Query.ActiveFilters)
	}

	m = run(t, m, "filter mv work job")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	state, _ := st.State()
	if state.Tasks[0].Filters[0] != "job" || state.Notes[0].Filters[0] != "job" {
		t.Fatalf("expected rename to reach every item: %+v %+v", state.Tasks[0], state.Notes[0])
	}
	if len(m.Query.ActiveFilters) != 1 || m.Query.ActiveFilters[0] != "job" {
		t.Fatalf("expected active filter renamed, got %v", m.Query.ActiveFilters)
	}

	m = run(t, m, "filter rm job")
	state, _ = st.State()
	if len(state.UserFilters) != 0 || len(state.Tasks[0].Filters) != 0 || len(state.Notes[0].Filters) != 0 {
		t.Fatalf("expected filter removed everywhere: %+v", state)
	}
	if len(m.Query.ActiveFilters) != 0 {
		t.Fatalf("expected filter dropped from the selection, got %v", m.Query.ActiveFilters)
	}
}

func TestPaletteFilterReportsNoChange(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = run(t, m, "filter add home")
	if m.Status.Text != "filter added: home" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	_, before := st.State()

	for _, command := range []string{"filter add home", "filter rm garden", "filter mv garden yard"} {
		m = run(t, m, command)
		if m.Status.IsError || !strings.HasPrefix(m.Status.Text, "no change") {
			t.Fatalf("%s: expected no change status, got %+v", command, m.Status)
		}
	}
	if _, after := st.State(); after != before {
		t.Fatalf("expected no commits, version went %d -> %d", before, after)
	}
}

func TestPaletteErrorsGoToStatusBar(t *testing.T) {
	m, st, _ := newTestModel(t)
	_, before := st.State()

	m = run(t, m, "filter mv urgent soon")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "built-in") {
		t.Fatalf("expected built-in filter error, got %+v", m.Status)
	}
	if !errors.Is(m.LastError, engine.ErrBuiltinFilter) {
		t.Fatalf("expected ErrBuiltinFilter, got %v", m.LastError)
	}

	m = run(t, m, "frobnicate")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}

	m = run(t, m, "rename nothing here")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task selected") {
		t.Fatalf("expected selection error, got %+v", m.Status)
	}

	m = run(t, m, "show tag:nope")
	if !m.Status.IsError {
		t.Fatalf("expected unknown filter error, got %+v", m.Status)
	}
	if m.Palette.Active {
		t.Fatal("expected palette closed after a failed command")
	}
	if _, after := st.State(); after != before {
		t.Fatalf("expected no commits, version went %d -> %d", before, after)
	}
}

func TestPaletteEscClosesWithoutRunning(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = press(t, m, "/", "task Never", "esc")
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("expected palette closed and cleared: %+v", m.Palette)
	}
	if state, _ := st.State(); len(state.Tasks) != 0 {
		t.Fatalf("expected no task, got %d", len(state.Tasks))
	}
}

func TestSubTaskCommands(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = run(t, m, "task Ship release")
	m = run(t, m, "sub write notes")
	m = run(t, m, "sub tag build")
	state, _ := st.State()
	subs := state.Tasks[0].SubTasks
	if len(subs) != 2 || subs[1].Text != "tag build" || subs[0].ID == "" {
		t.Fatalf("unexpected sub-tasks: %+v", subs)
	}

	m = run(t, m, "subdone 2")
	state, _ = st.State()
	if !state.Tasks[0].SubTasks[1].Completed || state.Tasks[0].SubTasks[0].Completed {
		t.Fatalf("expected only the second sub-task completed: %+v", state.Tasks[0].SubTasks)
	}

	m = run(t, m, "subdone 3")
	if !m.Status.IsError {
		t.Fatalf("expected out of range error, got %+v", m.Status)
	}

	m = run(t, m, "desc ship **today**")
	m = run(t, m, "due none")
	m = run(t, m, "rename Ship v2")
	state, _ = st.State()
	if state.Tasks[0].Title != "Ship v2" || state.Tasks[0].Description != "ship **today**" {
		t.Fatalf("unexpected task after edits: %+v", state.Tasks[0])
	}
	if !state.Tasks[0].CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected created_at kept, got %v", state.Tasks[0].CreatedAt)
	}
}

func TestHabitToggleAndDetail(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = run(t, m, "habit Read")
	if m.CurrentView != ViewHabits {
		t.Fatalf("expected habits view, got %q", m.CurrentView)
	}
	today := model.MustParseDate("2026-03-10")

	m = press(t, m, " ")
	state, _ := st.State()
	if status, _ := state.Habits[0].StatusOn(today); status != model.HabitCompleted {
		t.Fatalf("expected completed today, got %q", status)
	}

	m = press(t, m, "enter")
	if m.CurrentView != ViewHabitDetail || m.Detail.HabitID != state.Habits[0].ID {
		t.Fatalf("expected habit detail, got %q %+v", m.CurrentView, m.Detail)
	}
	m = press(t, m, " ")
	state, _ = st.State()
	if status, _ := state.Habits[0].StatusOn(today); status != model.HabitSkipped {
		t.Fatalf("expected skipped today, got %q", status)
	}

	m = press(t, m, "left", " ")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "before the habit started") {
		t.Fatalf("expected before-creation error, got %+v", m.Status)
	}

	m = press(t, m, "l")
	if m.Detail.Month != model.MustParseDate("2026-04-01") {
		t.Fatalf("expected April, got %s", m.Detail.Month)
	}
	m = press(t, m, " ")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "future") {
		t.Fatalf("expected future error, got %+v", m.Status)
	}

	m = press(t, m, "esc")
	if m.CurrentView != ViewHabits {
		t.Fatalf("expected habits view, got %q", m.CurrentView)
	}
}

func TestDeleteFromHabitDetailReturnsToList(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = run(t, m, "habit Stretch")
	m = press(t, m, "enter")
	m = run(t, m, "delete")
	if m.CurrentView != ViewHabits {
		t.Fatalf("expected habits view, got %q", m.CurrentView)
	}
	if state, _ := st.State(); len(state.Habits) != 0 {
		t.Fatalf("expected habit deleted, got %d", len(state.Habits))
	}
}

func TestThemeCommandSubmitsPreferences(t *testing.T) {
	m, _, sink := newTestModel(t)
	m = run(t, m, "theme")
	if m.Prefs.Theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %q", m.Prefs.Theme)
	}
	if len(sink.prefs) != 1 || sink.prefs[0].Theme != model.ThemeLight {
		t.Fatalf("expected preferences submitted, got %+v", sink.prefs)
	}
	if sink.prefs[0].TimerPresetMinutes != 25 {
		t.Fatalf("expected other preferences kept, got %+v", sink.prefs[0])
	}

	sink.err = errors.New("disk full")
	m = run(t, m, "theme dark")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "disk full") {
		t.Fatalf("expected sink error in status, got %+v", m.Status)
	}
}

func TestCalendarNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = run(t, m, "task Pay rent due:2026-03-10")
	m = press(t, m, "5", "enter")
	if m.Status.Text != "1 task(s) due on 2026-03-10" {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}

	m = press(t, m, "h")
	if m.Calendar.Month != model.MustParseDate("2026-02-01") || m.Calendar.Selected != model.MustParseDate("2026-02-01") {
		t.Fatalf("unexpected calendar after h: %+v", m.Calendar)
	}
	m = press(t, m, "right", "enter")
	if m.Status.Text != "0 task(s) due on 2026-02-02" {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}

	m = press(t, m, "t")
	if m.Calendar.Selected != model.MustParseDate("2026-03-10") || m.Calendar.Month != model.MustParseDate("2026-03-01") {
		t.Fatalf("expected jump to today: %+v", m.Calendar)
	}
	cells := m.calendarCells()
	found := false
	for _, c := range cells {
		if c.Date == model.MustParseDate("2026-03-10") {
			found = c.HasTasks && c.Today && c.Selected
		}
	}
	if !found {
		t.Fatal("expected today's cell flagged with tasks")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = run(t, m, "task Write report #urgent #important")
	out := m.View()
	for _, want := range []string{"daybook", "Write report", "0/1 tasks done"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	m = press(t, m, "4")
	if out := m.View(); !strings.Contains(out, "Do (urgent+important)") || !strings.Contains(out, "Write report") {
		t.Fatalf("expected matrix quadrant in view:\n%s", out)
	}

	m = press(t, m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "help: matrix") {
		t.Fatalf("expected help panel in view:\n%s", m.View())
	}
}
