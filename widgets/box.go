package widgets

import "github.com/charmbracelet/lipgloss"

// Box draws a rounded-border panel with a styled title line.
type Box struct {
	Title      string
	Content    string
	TitleStyle lipgloss.Style
}

func (b Box) Render(width int) string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if width > 2 {
		style = style.Width(width - 2)
	}
	body := b.Content
	if b.Title != "" {
		body = b.TitleStyle.Render(b.Title) + "\n\n" + body
	}
	return style.Render(body)
}
