package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/store"
	"github.com/sandeepkv93/tasklist/internal/views"
	"go.uber.org/zap"
)

type Focus string

const (
	FocusText   Focus = "text"
	FocusDate   Focus = "date"
	FocusList   Focus = "list"
	FocusFilter Focus = "filter"
)

var focusOrder = []Focus{FocusText, FocusDate, FocusList, FocusFilter}

const (
	alertEmptyInput  = "Task name and date must not be empty!"
	alertInvalidDate = "Date must be in YYYY-MM-DD format."
	dateLayout       = "2006-01-02"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Model is the controller: it turns key, mouse and command events into store
// calls. The list is re-rendered from the store on every View.
type Model struct {
	Store       *store.Store
	Filter      model.Filter
	Focus       Focus
	Cursor      int
	Status      StatusBar
	Alert       string
	Palette     CommandPaletteState
	HelpVisible bool
	Quitting    bool
	LastError   error

	logger       *zap.Logger
	textInput    textinput.Model
	dateInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

// SubmitMsg submits the form as if the user pressed enter with these values.
type SubmitMsg struct {
	Text string
	Date string
}

type FilterChangedMsg struct {
	Filter model.Filter
}

// ActionMsg activates a list affordance.
type ActionMsg struct {
	Action views.Action
}

type DismissAlertMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Option func(*Model)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithFilter(f model.Filter) Option {
	return func(m *Model) {
		if f.IsValid() {
			m.Filter = f
		}
	}
}

// NewModel expects st to be loaded already.
func NewModel(st *store.Store, opts ...Option) Model {
	m := Model{
		Store:  st,
		Filter: model.FilterAll,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.setFocus(FocusText)
	return m
}

func (m *Model) initBubbleComponents() {
	m.textInput = textinput.New()
	m.textInput.Prompt = "task> "
	m.textInput.Placeholder = "What needs doing?"
	m.textInput.CharLimit = 256
	m.textInput.Width = 48

	m.dateInput = textinput.New()
	m.dateInput.Prompt = "date> "
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = len(dateLayout)
	// The input's width budget includes the prompt.
	m.dateInput.Width = len(m.dateInput.Prompt) + len(dateLayout) + 1

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	m.textInput.Blur()
	m.dateInput.Blur()
	switch f {
	case FocusText:
		m.textInput.Focus()
	case FocusDate:
		m.dateInput.Focus()
	}
}

func (m *Model) cycleFocus(step int) {
	idx := 0
	for i, f := range focusOrder {
		if f == m.Focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(focusOrder)) % len(focusOrder)
	m.setFocus(focusOrder[idx])
}

func (m Model) visibleTasks() []model.Task {
	return model.Apply(m.Store.Tasks(), m.Filter)
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
