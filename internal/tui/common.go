package tui

import (
	"fmt"
	"time"
)

// --- Messages ---

// tickMsg asks the runner to render tick n of interval index. Messages for
// an interval that has already finished are dropped.
type tickMsg struct {
	index int
	tick  int
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}
