package update

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/daybook/internal/engine"
	"github.com/sandeepkv93/daybook/internal/model"
)

func firstOfMonth(d model.Date) model.Date {
	return model.NewDate(d.Year, d.Month, 1)
}

func shiftMonth(d model.Date, delta int) model.Date {
	return model.NewDate(d.Year, d.Month+time.Month(delta), 1)
}

func monthLabel(d model.Date) string {
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func moveCursor(cursor, delta, n int) int {
	return clamp(cursor+delta, n)
}

// dispatch applies a and reports the outcome in the status bar.
func (m *Model) dispatch(a engine.Action, okText string) bool {
	res, err := m.store.Dispatch(a)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return false
	}
	if !res.Changed {
		m.Status = StatusBar{Text: "no change", IsError: false}
		return false
	}
	m.Status = StatusBar{Text: okText, IsError: false}
	return true
}

// reorderNeighbour moves the item at cursor onto its neighbour delta rows away.
func (m *Model) reorderNeighbour(list model.ItemKind, ids []string, cursor, delta int) (int, bool) {
	target := cursor + delta
	if cursor < 0 || cursor >= len(ids) || target < 0 || target >= len(ids) {
		return cursor, false
	}
	ok := m.dispatch(engine.ReorderItems{List: list, DraggedID: ids[cursor], TargetID: ids[target]}, "moved")
	if !ok {
		return cursor, false
	}
	return target, true
}
