package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
	"go.uber.org/zap"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus(1)
	case "shift+tab":
		m.cycleFocus(-1)
	case "i", "a":
		m.setFocus(FocusText)
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.visibleTasks())-1 {
			m.Cursor++
		}
	case " ", "c":
		return m.dispatchSelected(views.ActionToggle), nil
	case "d", "x":
		return m.dispatchSelected(views.ActionDelete), nil
	default:
		return m.handleGlobalKey(msg)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus(1)
	case "shift+tab":
		m.cycleFocus(-1)
	case "right", "l":
		m.setFilter(m.Filter.Next())
	case "left", "h":
		m.setFilter(m.Filter.Prev())
	case "enter", "esc":
		m.setFocus(FocusList)
	default:
		return m.handleGlobalKey(msg)
	}
	return m, nil
}

// handleGlobalKey covers keys shared by the non-text focus areas.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		m.setFilter(m.Filter.Next())
	case "F":
		m.setFilter(m.Filter.Prev())
	case "/":
		cmd := m.openPalette()
		return m, cmd
	case "?":
		m.HelpVisible = !m.HelpVisible
	case "q":
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setFilter(f model.Filter) {
	if !f.IsValid() {
		return
	}
	m.Filter = f
	m.Cursor = 0
	m.logger.Debug("filter changed", zap.String("filter", string(f)))
}

func (m Model) dispatchSelected(kind views.ActionKind) Model {
	list := views.RenderTaskList(m.Store.Tasks(), m.Filter, m.Cursor)
	act, ok := list.ActionFor(m.Cursor, kind)
	if !ok {
		return m
	}
	return m.dispatch(act)
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}
	screen, list := m.frame()
	line, col := msg.Y-screen.ListTop, msg.X-screen.ListLeft
	if act, ok := list.ActionAt(line, col); ok {
		return m.dispatch(act)
	}
	// A click elsewhere on a row only selects it.
	if idx, ok := list.RowAt(line); ok && col >= 0 && col < views.ListWidth {
		m.setFocus(FocusList)
		m.Cursor = idx
	}
	return m
}

// dispatch runs a list action against the store. Unknown ids are ignored.
func (m Model) dispatch(act views.Action) Model {
	ctx := context.Background()
	var (
		found bool
		err   error
	)
	switch act.Kind {
	case views.ActionToggle:
		found, err = m.Store.ToggleCompleted(ctx, act.TaskID)
	case views.ActionDelete:
		found, err = m.Store.Remove(ctx, act.TaskID)
	default:
		return m
	}
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else if found {
		m.Status = StatusBar{Text: m.statusFor(act)}
	}
	m.clampCursor()
	return m
}

func (m Model) statusFor(act views.Action) string {
	if act.Kind == views.ActionDelete {
		return "task deleted"
	}
	if task, ok := m.Store.Get(act.TaskID); ok && task.Completed {
		return "task completed"
	}
	return "task reopened"
}
