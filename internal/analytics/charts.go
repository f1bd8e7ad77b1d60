package analytics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"studycompanion/internal/session"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no session data to chart")

// RenderDailyFocus writes a bar chart of focused minutes per day.
func RenderDailyFocus(sessions []session.Session, path string) error {
	totals := DailyTotals(sessions)
	if len(totals) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(totals))
	for i, dt := range totals {
		bars[i] = chart.Value{
			Value: float64(dt.Minutes),
			Label: dt.Day.Format("01-02"),
		}
	}

	graph := chart.BarChart{
		Title:    "Daily Total Focused Minutes",
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}
	return renderPNG(path, graph.Render)
}

// RenderStartHours writes a bar chart of session counts per start hour,
// the histogram answering "when do I usually study".
func RenderStartHours(sessions []session.Session, path string) error {
	if len(sessions) == 0 {
		return ErrNoData
	}
	counts := StartHourCounts(sessions)

	bars := make([]chart.Value, 0, 24)
	for h, n := range counts {
		bars = append(bars, chart.Value{
			Value: float64(n),
			Label: strconv.Itoa(h),
		})
	}

	graph := chart.BarChart{
		Title:    "Session Start Hour",
		Height:   400,
		BarWidth: 18,
		Bars:     bars,
	}
	return renderPNG(path, graph.Render)
}

// RenderSessionPie writes a work-vs-break pie for a single session.
func RenderSessionPie(taskName string, workMinutes, breakMinutes int, path string) error {
	var values []chart.Value
	if workMinutes > 0 {
		values = append(values, chart.Value{Value: float64(workMinutes), Label: "Work"})
	}
	if breakMinutes > 0 {
		values = append(values, chart.Value{Value: float64(breakMinutes), Label: "Break"})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	graph := chart.PieChart{
		Title:  "Pomodoro Session: " + taskName,
		Width:  512,
		Height: 512,
		Values: values,
	}
	return renderPNG(path, graph.Render)
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := render(chart.PNG, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
