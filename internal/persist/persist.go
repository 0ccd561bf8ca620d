// Package persist maps application state onto the key-value medium. Each key
// is decoded on its own so one corrupt entry never loses the others.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/storage"
)

const (
	KeyTasks              = "tasks"
	KeyNotes              = "notes"
	KeyHabits             = "habits"
	KeyUserFilters        = "userFilters"
	KeyTimerPresetMinutes = "timerPresetMinutes"
	KeyTimerPresets       = "timerPresets"
	KeyTheme              = "theme"
)

// Keys lists every persisted key in write order.
var Keys = []string{
	KeyTasks, KeyNotes, KeyHabits, KeyUserFilters,
	KeyTimerPresetMinutes, KeyTimerPresets, KeyTheme,
}

// Load reads state and preferences from kv. Missing keys fall back to empty
// collections or default preferences; undecodable keys do the same and are
// logged at warn level.
func Load(ctx context.Context, kv storage.KV, logger *log.Logger) (model.State, model.Preferences) {
	if logger == nil {
		logger = log.Default()
	}
	state := model.EmptyState()
	prefs := model.DefaultPreferences()
	l := loader{ctx: ctx, kv: kv, logger: logger}

	if raw, ok := l.get(KeyTasks); ok {
		var tasks []model.Task
		if l.decode(KeyTasks, raw, &tasks) {
			state.Tasks = normalizeTasks(tasks, logger)
		}
	}
	if raw, ok := l.get(KeyNotes); ok {
		var notes []model.Note
		if l.decode(KeyNotes, raw, &notes) {
			state.Notes = normalizeNotes(notes, logger)
		}
	}
	if raw, ok := l.get(KeyHabits); ok {
		var habits []model.Habit
		if l.decode(KeyHabits, raw, &habits) {
			state.Habits = normalizeHabits(habits, logger)
		}
	}
	if raw, ok := l.get(KeyUserFilters); ok {
		var filters []string
		if l.decode(KeyUserFilters, raw, &filters) {
			state.UserFilters = normalizeUserFilters(filters)
		}
	}

	if raw, ok := l.get(KeyTimerPresetMinutes); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
			prefs.TimerPresetMinutes = v
		} else {
			logger.Warn("ignoring stored preference", "key", KeyTimerPresetMinutes, "value", raw)
		}
	}
	if raw, ok := l.get(KeyTimerPresets); ok {
		var presets []int
		if l.decode(KeyTimerPresets, raw, &presets) && len(presets) > 0 {
			prefs.TimerPresets = presets
		}
	}
	if raw, ok := l.get(KeyTheme); ok {
		if theme := model.Theme(strings.Trim(strings.TrimSpace(raw), `"`)); theme.IsValid() {
			prefs.Theme = theme
		} else {
			logger.Warn("ignoring stored preference", "key", KeyTheme, "value", raw)
		}
	}
	return state, prefs
}

type loader struct {
	ctx    context.Context
	kv     storage.KV
	logger *log.Logger
}

func (l loader) get(key string) (string, bool) {
	raw, err := l.kv.Get(l.ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Warn("load key failed", "key", key, "err", err)
		}
		return "", false
	}
	return raw, true
}

func (l loader) decode(key, raw string, dst any) bool {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		l.logger.Warn("decode key failed, using default", "key", key, "err", err)
		return false
	}
	return true
}

func normalizeTasks(tasks []model.Task, logger *log.Logger) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		t.Filters = model.NormalizeFilters(t.Filters)
		if t.SubTasks == nil {
			t.SubTasks = []model.SubTask{}
		}
		if err := t.Validate(); err != nil {
			logger.Warn("stored task is incomplete", "id", t.ID, "err", err)
		}
		out = append(out, t)
	}
	return out
}

func normalizeNotes(notes []model.Note, logger *log.Logger) []model.Note {
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		n.Filters = model.NormalizeFilters(n.Filters)
		if err := n.Validate(); err != nil {
			logger.Warn("stored note is incomplete", "id", n.ID, "err", err)
		}
		out = append(out, n)
	}
	return out
}

func normalizeHabits(habits []model.Habit, logger *log.Logger) []model.Habit {
	out := make([]model.Habit, 0, len(habits))
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			logger.Warn("stored habit has invalid records", "id", h.ID, "err", err)
		}
		completions := make(map[model.Date]model.HabitStatus, len(h.Completions))
		for day := range h.Completions {
			if status, ok := h.StatusOn(day); ok {
				completions[day] = status
			}
		}
		h.Completions = completions
		out = append(out, h)
	}
	return out
}

func normalizeUserFilters(filters []string) []string {
	out := make([]string, 0, len(filters))
	for _, f := range model.NormalizeFilters(filters) {
		if !model.IsBuiltinFilter(f) {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}

// Encode renders state and preferences as the persisted key set.
func Encode(state model.State, prefs model.Preferences) (map[string]string, error) {
	out := make(map[string]string, len(Keys))
	habits := make([]model.Habit, len(state.Habits))
	for i, h := range state.Habits {
		if h.Completions == nil {
			h.Completions = map[model.Date]model.HabitStatus{}
		}
		habits[i] = h
	}
	values := map[string]any{
		KeyTasks:        nonNil(state.Tasks),
		KeyNotes:        nonNil(state.Notes),
		KeyHabits:       habits,
		KeyUserFilters:  nonNil(state.UserFilters),
		KeyTimerPresets: nonNil(prefs.TimerPresets),
	}
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("persist: encode %s: %w", key, err)
		}
		out[key] = string(raw)
	}
	out[KeyTimerPresetMinutes] = strconv.Itoa(prefs.TimerPresetMinutes)
	out[KeyTheme] = string(prefs.Theme)
	return out, nil
}

// Save writes every key in one batch.
func Save(ctx context.Context, kv storage.KV, state model.State, prefs model.Preferences) error {
	entries, err := Encode(state, prefs)
	if err != nil {
		return err
	}
	if err := kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("persist: save: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
