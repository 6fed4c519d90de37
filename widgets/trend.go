package widgets

import (
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// TrendPoint is a dated value for the spending trend line.
type TrendPoint struct {
	Date  time.Time
	Value float64
}

// TrendChart draws a braille line chart of values over time.
type TrendChart struct {
	Title     string
	Data      []TrendPoint
	LineStyle lipgloss.Style
	AxisStyle lipgloss.Style
}

func (c TrendChart) Render(width, height int) string {
	if width <= 10 || height <= 3 || len(c.Data) < 2 {
		return c.Title + "\n(not enough data for a trend)"
	}
	maxV := 0.0
	for _, p := range c.Data {
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	if maxV <= 0 {
		maxV = 1
	}

	chart := tslc.New(width, height-1)
	chart.SetStyle(c.LineStyle)
	chart.AxisStyle = c.AxisStyle
	chart.SetTimeRange(c.Data[0].Date, c.Data[len(c.Data)-1].Date)
	chart.SetViewTimeRange(c.Data[0].Date, c.Data[len(c.Data)-1].Date)
	chart.SetYRange(0, maxV)
	chart.SetViewYRange(0, maxV)
	for _, p := range c.Data {
		chart.Push(tslc.TimePoint{Time: p.Date, Value: p.Value})
	}
	chart.DrawBraille()
	return c.Title + "\n" + chart.View()
}
