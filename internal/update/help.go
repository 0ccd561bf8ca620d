package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/daybook/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	global := m.bindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global, m.bindings(m.viewBindings())},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Notes, Action: "notes"},
		{Key: m.Keys.Habits, Action: "habits"},
		{Key: m.Keys.Matrix, Action: "matrix"},
		{Key: m.Keys.Calendar, Action: "calendar"},
		{Key: "/", Action: "command palette"},
		{Key: "c", Action: "show/hide completed"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "move task down/up"},
			{Key: "space", Action: "toggle completed"},
			{Key: "/task, /due, /sub, /subdone", Action: "add and edit tasks"},
			{Key: "/rename, /desc, /delete", Action: "edit selected task"},
		}
	case ViewNotes:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "move note down/up"},
			{Key: "pgup/pgdown", Action: "scroll preview"},
			{Key: "/note <title> | <content>", Action: "add note"},
		}
	case ViewHabits:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "move habit down/up"},
			{Key: "space", Action: "cycle today's status"},
			{Key: "enter", Action: "open habit calendar"},
		}
	case ViewHabitDetail:
		return []KeyBinding{
			{Key: "arrows", Action: "move day"},
			{Key: "h/l", Action: "previous/next month"},
			{Key: "space", Action: "cycle day status"},
			{Key: "esc", Action: "back to habits"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "arrows", Action: "move day"},
			{Key: "h/l", Action: "previous/next month"},
			{Key: "t", Action: "jump to today"},
			{Key: "enter", Action: "count tasks due"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) bindings(kbs []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
