package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m *Model) openPalette() tea.Cmd {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if err := validateForm(a.Text, a.Date); err != nil {
				return commands.Result{}, err
			}
			task, err := m.Store.Add(ctx, a.Text, a.Date)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task added: %s (#%d)", task.Text, task.ID)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			if _, ok := m.Store.Get(a.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", a.ID)}, nil
			}
			m = m.dispatch(views.Action{Kind: views.ActionToggle, TaskID: a.ID})
			return commands.Result{Message: m.Status.Text}, m.dispatchError()
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			if _, ok := m.Store.Get(a.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", a.ID)}, nil
			}
			m = m.dispatch(views.Action{Kind: views.ActionDelete, TaskID: a.ID})
			return commands.Result{Message: m.Status.Text}, m.dispatchError()
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			f, err := model.ParseFilter(a.Mode)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.setFilter(f)
			return commands.Result{Message: fmt.Sprintf("filter: %s", f)}, nil
		},
	})
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			m.Alert = alertFor(err)
			return m
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	m.clampCursor()
	return m
}

// dispatchError returns the storage error dispatch recorded, if the status
// shows one.
func (m Model) dispatchError() error {
	if m.Status.IsError {
		return m.LastError
	}
	return nil
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}
