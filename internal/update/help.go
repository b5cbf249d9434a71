package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
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

const commandsHelp = `**Commands**

- ` + "`/add YYYY-MM-DD text`" + ` add a task
- ` + "`/done <id>`" + ` toggle a task
- ` + "`/delete <id>`" + ` delete a task
- ` + "`/filter all|completed|uncompleted`" + ` change the filter
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.focusBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Focus:    string(m.Focus),
		Bindings: plain,
		HelpView: strings.Join([]string{
			m.helpModel.View(helpKeyMap{short: bindings, full: [][]key.Binding{bindings}}),
			views.RenderMarkdown(commandsHelp),
		}, "\n"),
	})
}

func (m Model) renderFooter() string {
	return m.helpModel.ShortHelpView(m.helpBindingsFor(m.globalBindings()))
}

func (m Model) globalBindings() []KeyBinding {
	if m.Focus == FocusText || m.Focus == FocusDate {
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "tab", Action: "next field"},
			{Key: "esc", Action: "go to list"},
			{Key: "ctrl+c", Action: "quit"},
		}
	}
	return []KeyBinding{
		{Key: "tab", Action: "next area"},
		{Key: "f", Action: "cycle filter"},
		{Key: "/", Action: "command palette"},
		{Key: "?", Action: "toggle help"},
		{Key: "q", Action: "quit"},
	}
}

func (m Model) focusBindings() []KeyBinding {
	switch m.Focus {
	case FocusText, FocusDate:
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "tab/shift+tab", Action: "move between fields"},
			{Key: "esc", Action: "go to list"},
		}
	case FocusList:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space/c", Action: "toggle completed"},
			{Key: "d/x", Action: "delete task"},
			{Key: "i/a", Action: "new task"},
			{Key: "click", Action: "[✓] toggles, [-] deletes"},
		}
	case FocusFilter:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next filter"},
			{Key: "enter", Action: "go to list"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.globalBindings(), m.focusBindings()...)
	return m.helpBindingsFor(all)
}

func (m Model) helpBindingsFor(kbs []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
