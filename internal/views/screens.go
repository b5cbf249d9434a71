package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasklist/internal/model"
)

type FormData struct {
	TextView string
	DateView string
}

type HelpPanelData struct {
	Focus    string
	Bindings []string
	HelpView string
}

var (
	activeFilterStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	filterStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderForm(data FormData) string {
	return data.TextView + "\n" + data.DateView
}

// RenderFilterBar shows every filter option with the active one highlighted.
func RenderFilterBar(active model.Filter, focused bool) string {
	parts := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		if f == active {
			parts = append(parts, activeFilterStyle.Render("("+string(f)+")"))
			continue
		}
		parts = append(parts, filterStyle.Render(" "+string(f)+" "))
	}
	label := "filter:"
	if focused {
		label = "filter>"
	}
	return label + " " + strings.Join(parts, " ")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Focus),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
