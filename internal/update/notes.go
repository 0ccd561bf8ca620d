package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daybook/internal/model"
)

func (m Model) handleNoteKey(msg tea.KeyMsg) Model {
	notes := m.visibleNotes()
	switch msg.String() {
	case "up", "k":
		m.Notes.Cursor = moveCursor(m.Notes.Cursor, -1, len(notes))
	case "down", "j":
		m.Notes.Cursor = moveCursor(m.Notes.Cursor, 1, len(notes))
	case "K", "shift+up":
		m.Notes.Cursor, _ = m.reorderNeighbour(model.KindNote, noteIDs(notes), m.Notes.Cursor, -1)
	case "J", "shift+down":
		m.Notes.Cursor, _ = m.reorderNeighbour(model.KindNote, noteIDs(notes), m.Notes.Cursor, 1)
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		m.noteViewport, _ = m.noteViewport.Update(msg)
	}
	return m
}

func (m Model) visibleNotes() []model.Note {
	return m.store.Notes(m.Query)
}

func (m Model) selectedNote() (model.Note, bool) {
	notes := m.visibleNotes()
	if m.Notes.Cursor < 0 || m.Notes.Cursor >= len(notes) {
		return model.Note{}, false
	}
	return notes[m.Notes.Cursor], true
}

func noteIDs(notes []model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}
