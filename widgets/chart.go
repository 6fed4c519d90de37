package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChartPoint is one labelled bar.
type ChartPoint struct {
	Label string
	Value float64
}

// BarChart renders horizontal bars scaled to the largest value.
type BarChart struct {
	Title    string
	Data     []ChartPoint
	BarStyle lipgloss.Style
}

func (c BarChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(no data)"
	}
	maxV := 0.0
	labelWidth := 0
	for _, p := range c.Data {
		if p.Value > maxV {
			maxV = p.Value
		}
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	barSpace := max(1, width-labelWidth-12)
	lines := []string{c.Title}
	for _, p := range c.Data {
		w := int((p.Value / maxV) * float64(barSpace))
		if w < 1 && p.Value > 0 {
			w = 1
		}
		bar := c.BarStyle.Render(strings.Repeat("█", w))
		lines = append(lines, fmt.Sprintf("%-*s %s %.2f", labelWidth, p.Label, bar, p.Value))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}
