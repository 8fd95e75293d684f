package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomodoro/internal/session"
	"github.com/sadopc/pomodoro/internal/store"
)

// RenderStats draws finished focus time per day in [from, to) as a bar
// chart in hours, followed by the range totals.
func RenderStats(days []store.DailyFocus, totals store.Totals, from, to time.Time, width int) string {
	chartWidth := width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := barchart.New(chartWidth, 12)

	byDate := make(map[string]store.DailyFocus, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	var bars []barchart.BarData
	for d := from.UTC(); d.Before(to); d = d.AddDate(0, 0, 1) {
		focus := byDate[d.Format("2006-01-02")]
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if focus.FocusSeconds == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "Focus",
				Value: float64(focus.FocusSeconds) / 3600.0,
				Style: style,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()

	dateLabel := mutedStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Focus time"), "  ", dateLabel)

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", chart.View(), "", renderDailyTable(days, width), "", renderTotals(totals),
	)
}

func renderDailyTable(days []store.DailyFocus, w int) string {
	if len(days) == 0 {
		return mutedStyle.Render("  No focus sessions in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %9s", "Date", "Focus", "Sessions")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-6, 33)))))
	for _, d := range days {
		rows = append(rows, fmt.Sprintf("  %-12s %10s %9d", d.Date, formatSeconds(d.FocusSeconds), d.Sessions))
	}
	return strings.Join(rows, "\n")
}

func renderTotals(t store.Totals) string {
	return strings.Join([]string{
		fmt.Sprintf("  Runs            %s", highlightStyle.Render(fmt.Sprintf("%d (%d completed)", t.Runs, t.CompletedRuns))),
		fmt.Sprintf("  Focus sessions  %s", highlightStyle.Render(fmt.Sprintf("%d", t.FocusSessions))),
		fmt.Sprintf("  Focus time      %s", successStyle.Render(formatHours(t.FocusSeconds))),
		fmt.Sprintf("  Break time      %s", secondaryStyle.Render(formatHours(t.BreakSeconds))),
	}, "\n")
}

// RenderHistory lists runs newest first with the focus time each one
// finished. focus maps run ID to finished focus seconds.
func RenderHistory(runs []store.Run, focus map[int64]int64) string {
	if len(runs) == 0 {
		return mutedStyle.Render("No sessions recorded yet. Start one with `pomodoro run`.")
	}

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%-5s %-17s %-12s %-24s %9s", "ID", "Started", "Status", "Plan", "Focus")))
	for _, r := range runs {
		plan := fmt.Sprintf("%dx%dm/%dm (long %dm/%d)",
			r.Config.Cycles, r.Config.FocusMinutes, r.Config.BreakMinutes,
			r.Config.LongBreakMinutes, r.Config.LongBreakEvery)
		rows = append(rows, fmt.Sprintf("%-5d %-17s %s %-24s %9s",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			statusStyle(r.Status).Render(fmt.Sprintf("%-12s", r.Status)),
			plan,
			formatSeconds(focus[r.ID]),
		))
	}
	return strings.Join(rows, "\n")
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case store.StatusCompleted:
		return successStyle
	case store.StatusInterrupted:
		return warningStyle
	default:
		return phaseStyle(session.Focus)
	}
}
