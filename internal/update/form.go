package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"go.uber.org/zap"
)

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "esc":
		m.setFocus(FocusList)
		m.clampCursor()
		return m, nil
	case "enter":
		return m.submit(m.textInput.Value(), m.dateInput.Value()), nil
	}

	var cmd tea.Cmd
	if m.Focus == FocusDate {
		m.dateInput, cmd = m.dateInput.Update(msg)
	} else {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

// validateForm applies the store's creation rules and additionally requires a
// calendar date, which is what a date picker would produce.
func validateForm(text, date string) error {
	if err := model.ValidateInput(text, date); err != nil {
		return err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &model.ValidationError{Field: "date", Err: model.ErrInvalidDate}
	}
	return nil
}

func alertFor(err error) string {
	if errors.Is(err, model.ErrInvalidDate) {
		return alertInvalidDate
	}
	return alertEmptyInput
}

// submit validates, adds, resets the form and leaves the list to be redrawn
// by the next View. Validation failures only raise the alert.
func (m Model) submit(text, date string) Model {
	if err := validateForm(text, date); err != nil {
		m.logger.Debug("task rejected", zap.Error(err))
		m.Alert = alertFor(err)
		return m
	}
	task, err := m.Store.Add(context.Background(), text, date)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			m.Alert = alertFor(err)
			return m
		}
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", task.Text)}
	}
	m.resetForm()
	m.clampCursor()
	return m
}

func (m *Model) resetForm() {
	m.textInput.SetValue("")
	m.dateInput.SetValue("")
	m.setFocus(FocusText)
}

func (m Model) handleAlertKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc", " ":
		m.Alert = ""
	}
	return m
}
