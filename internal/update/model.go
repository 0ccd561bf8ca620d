package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/projection"
	"github.com/sandeepkv93/daybook/internal/store"
)

type View string

const (
	ViewTasks       View = "Tasks"
	ViewNotes       View = "Notes"
	ViewHabits      View = "Habits"
	ViewHabitDetail View = "Habit"
	ViewMatrix      View = "Matrix"
	ViewCalendar    View = "Calendar"
)

const defaultRecentDays = 5

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Notes    string
	Habits   string
	Matrix   string
	Calendar string
	Help     string
	Quit     string
}

// PreferenceSink receives preference changes made from the UI.
type PreferenceSink interface {
	SubmitPreferences(model.Preferences) error
}

type Options struct {
	Preferences   model.Preferences
	Sink          PreferenceSink
	Now           func() time.Time
	ShowCompleted bool
	RecentDays    int
}

type ListState struct {
	Cursor int
}

type HabitDetailState struct {
	HabitID  string
	Month    model.Date
	Selected model.Date
}

type CalendarState struct {
	Month    model.Date
	Selected model.Date
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Query       projection.Query
	Tasks       ListState
	Notes       ListState
	Habits      ListState
	Detail      HabitDetailState
	Calendar    CalendarState
	Palette     CommandPaletteState
	Prefs       model.Preferences
	RecentDays  int
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	store *store.Store
	sink  PreferenceSink
	now   func() time.Time

	commandInput textinput.Model
	helpModel    help.Model
	noteViewport viewport.Model
	previewKey   string
	statsTable   table.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(st *store.Store, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RecentDays <= 0 {
		opts.RecentDays = defaultRecentDays
	}
	if !opts.Preferences.Theme.IsValid() {
		opts.Preferences.Theme = model.DefaultPreferences().Theme
	}
	today := model.Today(opts.Now())
	month := firstOfMonth(today)
	m := Model{
		CurrentView: ViewTasks,
		Query:       projection.Query{ShowCompleted: opts.ShowCompleted},
		Detail:      HabitDetailState{Month: month, Selected: today},
		Calendar:    CalendarState{Month: month, Selected: today},
		Prefs:       opts.Preferences,
		RecentDays:  opts.RecentDays,
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Notes:    "2",
			Habits:   "3",
			Matrix:   "4",
			Calendar: "5",
			Help:     "?",
			Quit:     "q",
		},
		store: st,
		sink:  opts.Sink,
		now:   opts.Now,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m Model) today() model.Date {
	return model.Today(m.now())
}

func (m Model) state() model.State {
	s, _ := m.store.State()
	return s
}

func (m Model) theme() string {
	return string(m.Prefs.Theme)
}
