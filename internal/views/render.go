package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Form       string
	FilterBar  string
	List       string
	StatusLine string
	IsError    bool
	Alert      string
	Palette    string
	Help       string
	Footer     string
}

// Screen is a rendered frame. ListTop and ListLeft locate the first cell of
// the list content so terminal coordinates can be mapped onto list hits.
type Screen struct {
	Text     string
	ListTop  int
	ListLeft int
}

const panelWidth = 72

// ListWidth is how many cells a list line may use inside the panel. Longer
// lines would be wrapped by the panel and drift from their hit lines.
const ListWidth = panelWidth - 2

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	alertStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderApp stacks the frame top to bottom. Everything of variable height is
// placed below the list so the list origin only depends on the header, form
// and filter bar.
func RenderApp(data AppData) Screen {
	top := []string{
		headerStyle.Render(data.Header),
		data.Form,
		data.FilterBar,
	}
	topText := strings.Join(top, "\n")

	listPanel := panelStyle.Width(panelWidth).Render(data.List)
	lines := []string{topText, listPanel}

	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Alert != "" {
		lines = append(lines, data.Alert)
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Width(panelWidth).Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}

	border := panelStyle.GetBorderStyle()
	return Screen{
		Text:     strings.Join(lines, "\n"),
		ListTop:  lipgloss.Height(topText) + lipgloss.Height(border.Top),
		ListLeft: lipgloss.Width(border.Left) + panelStyle.GetPaddingLeft(),
	}
}

func RenderAlert(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return ""
	}
	return alertStyle.Render(msg + "\n\n[enter] ok")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
