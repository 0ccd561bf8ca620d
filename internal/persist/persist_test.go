package persist

import (
	"bytes"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/storage"
)

func openStore(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.Open(storage.BackendFile, "", filepath.Join(t.TempDir(), "daybook.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func sampleState() model.State {
	due := model.MustParseDate("2026-03-12")
	created := model.At(time.UnixMilli(1760000000000))
	s := model.EmptyState()
	s.Tasks = []model.Task{{
		ID: "t1", Title: "Ship", Filters: []string{"urgent", "work"},
		SubTasks: []model.SubTask{{ID: "s1", Text: "tests"}}, CreatedAt: created, DueDate: &due,
	}}
	s.Notes = []model.Note{{ID: "n1", Title: "Ideas", Content: "# heading", Filters: []string{"work"}, CreatedAt: created}}
	s.Habits = []model.Habit{{ID: "h1", Title: "Walk", CreatedAt: created, Completions: map[model.Date]model.HabitStatus{
		model.MustParseDate("2026-03-01"): model.HabitCompleted,
		model.MustParseDate("2026-03-02"): model.HabitSkipped,
	}}}
	s.UserFilters = []string{"work"}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := openStore(t)
	prefs := model.Preferences{TimerPresetMinutes: 45, TimerPresets: []int{15, 45}, Theme: model.ThemeLight}
	if err := Save(t.Context(), kv, sampleState(), prefs); err != nil {
		t.Fatalf("save: %v", err)
	}

	state, gotPrefs := Load(t.Context(), kv, quietLogger())
	want := sampleState()
	if len(state.Tasks) != 1 || state.Tasks[0].Title != "Ship" || *state.Tasks[0].DueDate != *want.Tasks[0].DueDate {
		t.Fatalf("unexpected tasks: %+v", state.Tasks)
	}
	if !state.Tasks[0].CreatedAt.Equal(want.Tasks[0].CreatedAt.Time) {
		t.Fatalf("createdAt changed: %v", state.Tasks[0].CreatedAt)
	}
	if state.Habits[0].Completions[model.MustParseDate("2026-03-02")] != model.HabitSkipped {
		t.Fatalf("unexpected completions: %v", state.Habits[0].Completions)
	}
	if !slices.Equal(state.UserFilters, []string{"work"}) {
		t.Fatalf("unexpected user filters: %v", state.UserFilters)
	}
	if gotPrefs.TimerPresetMinutes != 45 || !slices.Equal(gotPrefs.TimerPresets, []int{15, 45}) || gotPrefs.Theme != model.ThemeLight {
		t.Fatalf("unexpected prefs: %+v", gotPrefs)
	}
}

func TestEncodeLayout(t *testing.T) {
	entries, err := Encode(model.EmptyState(), model.DefaultPreferences())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := map[string]string{
		KeyTasks:              "[]",
		KeyNotes:              "[]",
		KeyHabits:             "[]",
		KeyUserFilters:        "[]",
		KeyTimerPresetMinutes: "25",
		KeyTimerPresets:       "[5,10,15,20,25,30]",
		KeyTheme:              "dark",
	}
	for k, v := range want {
		if entries[k] != v {
			t.Fatalf("%s: expected %q, got %q", k, v, entries[k])
		}
	}

	s := model.EmptyState()
	s.Habits = []model.Habit{{ID: "h", Title: "x"}}
	entries, err = Encode(s, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(entries[KeyHabits], `"completions":{}`) {
		t.Fatalf("expected empty completions object, got %s", entries[KeyHabits])
	}
}

func TestLoadDegradesPerKey(t *testing.T) {
	kv := openStore(t)
	if err := Save(t.Context(), kv, sampleState(), model.DefaultPreferences()); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := kv.SetMany(t.Context(), map[string]string{
		KeyNotes:              "{broken",
		KeyUserFilters:        `["Home","urgent","home","  "]`,
		KeyTimerPresetMinutes: "soon",
		KeyTheme:              "sepia",
	})
	if err != nil {
		t.Fatalf("corrupt keys: %v", err)
	}

	var buf bytes.Buffer
	state, prefs := Load(t.Context(), kv, log.New(&buf))
	if len(state.Tasks) != 1 || len(state.Habits) != 1 {
		t.Fatalf("expected intact keys to load, got %+v", state)
	}
	if state.Notes == nil || len(state.Notes) != 0 {
		t.Fatalf("expected empty notes fallback, got %+v", state.Notes)
	}
	if !slices.Equal(state.UserFilters, []string{"home"}) {
		t.Fatalf("expected normalized filters, got %v", state.UserFilters)
	}
	if prefs.TimerPresetMinutes != 25 || prefs.Theme != model.ThemeDark {
		t.Fatalf("expected default prefs, got %+v", prefs)
	}
	if !strings.Contains(buf.String(), "notes") {
		t.Fatalf("expected warning naming the notes key, got %q", buf.String())
	}
}

func TestLoadEmptyStore(t *testing.T) {
	state, prefs := Load(t.Context(), openStore(t), quietLogger())
	if state.Tasks == nil || len(state.Tasks) != 0 || state.UserFilters == nil {
		t.Fatalf("expected empty state, got %+v", state)
	}
	if prefs.Theme != model.ThemeDark || prefs.TimerPresetMinutes != 25 {
		t.Fatalf("expected default prefs, got %+v", prefs)
	}
}

func TestLoadDropsUnknownHabitStatus(t *testing.T) {
	kv := openStore(t)
	raw := `[{"id":"h","title":"x","createdAt":1760000000000,"completions":{"2026-03-01":"completed","2026-03-02":"maybe"}}]`
	if err := kv.Set(t.Context(), KeyHabits, raw); err != nil {
		t.Fatalf("set: %v", err)
	}
	state, _ := Load(t.Context(), kv, quietLogger())
	if len(state.Habits[0].Completions) != 1 {
		t.Fatalf("expected unknown status dropped, got %v", state.Habits[0].Completions)
	}
}
