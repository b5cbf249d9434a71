package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/views"
	"go.uber.org/zap"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("tasklist"), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Alert != "" {
			return m.handleAlertKey(typed), nil
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch m.Focus {
		case FocusText, FocusDate:
			return m.handleFormKey(typed)
		case FocusFilter:
			return m.handleFilterKey(typed)
		default:
			return m.handleListKey(typed)
		}
	case tea.MouseMsg:
		if m.Alert != "" || m.Palette.Active {
			return m, nil
		}
		return m.handleMouse(typed), nil
	case SubmitMsg:
		return m.submit(typed.Text, typed.Date), nil
	case FilterChangedMsg:
		m.setFilter(typed.Filter)
		return m, nil
	case ActionMsg:
		return m.dispatch(typed.Action), nil
	case DismissAlertMsg:
		m.Alert = ""
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("app error", zap.Error(typed.Err))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	screen, _ := m.frame()
	return screen.Text
}

// frame renders the screen and the list it contains. Mouse handling uses the
// same call, so hits always match what is drawn.
func (m Model) frame() (views.Screen, views.TaskListView) {
	list := views.RenderTaskList(m.Store.Tasks(), m.Filter, m.listCursor())

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	total, done := m.Store.Counts()
	screen := views.RenderApp(views.AppData{
		Header: fmt.Sprintf("tasklist | filter: %s | %d tasks, %d done | focus: %s", m.Filter, total, done, m.Focus),
		Form: views.RenderForm(views.FormData{
			TextView: m.textInput.View(),
			DateView: m.dateInput.View(),
		}),
		FilterBar:  views.RenderFilterBar(m.Filter, m.Focus == FocusFilter),
		List:       list.String(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Alert:      views.RenderAlert(m.Alert),
		Palette:    m.renderCommandPalette(),
		Help:       m.renderHelpIfVisible(),
		Footer:     m.renderFooter(),
	})
	return screen, list
}

// listCursor hides the cursor while the list is not focused.
func (m Model) listCursor() int {
	if m.Focus != FocusList {
		return -1
	}
	return m.Cursor
}
