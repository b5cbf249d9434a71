package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sandeepkv93/tasklist/internal/model"
)

type ActionKind int

const (
	ActionToggle ActionKind = iota + 1
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionToggle:
		return "toggle"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Action is what an affordance does when activated. Every affordance gets one
// at row construction, so no caller has to infer it from the layout.
type Action struct {
	Kind   ActionKind
	TaskID int64
}

type Row struct {
	TaskID    int64
	Text      string
	Date      string
	Completed bool
	Selected  bool
	Line      int
}

// Hit is a clickable span on one line of the list. End is exclusive.
type Hit struct {
	Line   int
	Start  int
	End    int
	Action Action
}

type TaskListView struct {
	Filter model.Filter
	Rows   []Row
	Hits   []Hit
	Lines  []string
}

const (
	toggleOpen   = "[ ]"
	toggleDone   = "[✓]"
	deleteButton = "[-]"
	emptyList    = "(no tasks)"
	ellipsis     = "…"
)

var (
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	toggleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deleteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dateStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderTaskList rebuilds the whole list for tasks under filter. cursor indexes
// the filtered rows; out-of-range values select nothing.
func RenderTaskList(tasks []model.Task, filter model.Filter, cursor int) TaskListView {
	visible := model.Apply(tasks, filter)
	out := TaskListView{
		Filter: filter,
		Rows:   make([]Row, 0, len(visible)),
		Hits:   make([]Hit, 0, 2*len(visible)),
		Lines:  make([]string, 0, len(visible)),
	}
	if len(visible) == 0 {
		out.Lines = append(out.Lines, dateStyle.Render(emptyList))
		return out
	}
	for i, task := range visible {
		line := len(out.Lines)
		row := Row{
			TaskID:    task.ID,
			Text:      singleLine(task.Text),
			Date:      task.Date,
			Completed: task.Completed,
			Selected:  i == cursor,
			Line:      line,
		}
		text, hits := renderRow(row)
		out.Rows = append(out.Rows, row)
		out.Hits = append(out.Hits, hits...)
		out.Lines = append(out.Lines, text)
	}
	return out
}

// renderRow draws a row on exactly one line of at most ListWidth cells. The
// text is cut to fit so the panel never wraps a row and hit lines stay true.
func renderRow(row Row) (string, []Hit) {
	prefix := "  "
	if row.Selected {
		prefix = cursorStyle.Render(">") + " "
	}
	toggle := toggleOpen
	if row.Completed {
		toggle = toggleDone
	}

	col := 2
	toggleHit := Hit{Line: row.Line, Start: col, End: col + lipgloss.Width(toggle), Action: Action{Kind: ActionToggle, TaskID: row.TaskID}}
	col = toggleHit.End + 1
	deleteHit := Hit{Line: row.Line, Start: col, End: col + lipgloss.Width(deleteButton), Action: Action{Kind: ActionDelete, TaskID: row.TaskID}}
	col = deleteHit.End + 1

	label := fit(row.Text, ListWidth-col-2-lipgloss.Width(row.Date))
	if row.Completed {
		label = completedStyle.Render(label)
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(toggleStyle.Render(toggle))
	b.WriteString(" ")
	b.WriteString(deleteStyle.Render(deleteButton))
	b.WriteString(" ")
	b.WriteString(label)
	b.WriteString("  ")
	b.WriteString(dateStyle.Render(row.Date))
	return ansi.Truncate(b.String(), ListWidth, ellipsis), []Hit{toggleHit, deleteHit}
}

func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, ellipsis)
}

func (v TaskListView) String() string {
	return strings.Join(v.Lines, "\n")
}

// ActionAt resolves a position inside the list to the affordance under it.
func (v TaskListView) ActionAt(line, col int) (Action, bool) {
	for _, h := range v.Hits {
		if h.Line == line && col >= h.Start && col < h.End {
			return h.Action, true
		}
	}
	return Action{}, false
}

// RowAt returns the index of the row drawn on line.
func (v TaskListView) RowAt(line int) (int, bool) {
	for i, r := range v.Rows {
		if r.Line == line {
			return i, true
		}
	}
	return 0, false
}

// ActionFor returns the action bound to a row's affordance of the given kind.
func (v TaskListView) ActionFor(rowIdx int, kind ActionKind) (Action, bool) {
	if rowIdx < 0 || rowIdx >= len(v.Rows) {
		return Action{}, false
	}
	line := v.Rows[rowIdx].Line
	for _, h := range v.Hits {
		if h.Line == line && h.Action.Kind == kind {
			return h.Action, true
		}
	}
	return Action{}, false
}

// Tabs are expanded by lipgloss at render time, so they go too.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}
