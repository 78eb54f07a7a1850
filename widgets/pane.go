package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	paneBorderIdle     = lipgloss.Color("#6c7086")
	paneBorderSelected = lipgloss.Color("#89b4fa")
	paneBorderFocused  = lipgloss.Color("#a6e3a1")
	paneTitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)
)

// Pane draws a rounded border with an inline title around a child widget.
// The border color tracks the selected/focused state so the active control
// is visible at a glance.
type Pane struct {
	Title    string
	Child    Widget
	Selected bool
	Focused  bool
}

func (p Pane) Render(width, height int) string {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	border := paneBorderIdle
	prefix := "  "
	if p.Selected {
		border = paneBorderSelected
		prefix = "▶ "
	}
	if p.Focused {
		border = paneBorderFocused
		prefix = "● "
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)

	innerWidth := width - 2
	title := strings.TrimSpace(prefix + p.Title)
	titleText := " " + title + " "
	if ansi.StringWidth(titleText) > innerWidth-2 {
		titleText = " " + ansi.Truncate(title, maxInt(1, innerWidth-4), "") + " "
	}
	titleW := ansi.StringWidth(titleText)

	top := borderStyle.Render("╭─") + paneTitleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", maxInt(0, innerWidth-titleW-1))+"╮")
	bottom := borderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯")

	var body string
	if p.Child != nil {
		body = p.Child.Render(innerWidth-2, height-2)
	}
	bodyLines := strings.Split(body, "\n")

	lines := make([]string, 0, height)
	lines = append(lines, top)
	for i := 0; i < height-2; i++ {
		var content string
		if i < len(bodyLines) {
			content = bodyLines[i]
		}
		content = padRight(content, innerWidth-2)
		lines = append(lines, borderStyle.Render("│")+" "+content+" "+borderStyle.Render("│"))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}
