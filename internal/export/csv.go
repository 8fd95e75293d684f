package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/pomodoro/internal/store"
)

var csvHeader = []string{"Run", "Run UID", "Status", "Position", "Session", "Kind", "Label", "Start", "End", "Duration (s)", "Duration"}

// ToCSV writes one row per journaled interval. A run without finished
// intervals still gets a single row with the interval columns left empty.
func ToCSV(runs []store.Run, intervals map[int64][]store.Interval, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range runs {
		runCols := []string{strconv.FormatInt(r.ID, 10), r.UID, r.Status}

		ivs := intervals[r.ID]
		if len(ivs) == 0 {
			row := append(runCols, "", "", "", "", r.StartedAt.Local().Format(time.RFC3339), finishedAt(r), "", "")
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}

		for _, iv := range ivs {
			row := append(append([]string{}, runCols...),
				strconv.Itoa(iv.Position),
				strconv.Itoa(iv.Session),
				iv.Kind,
				iv.Label,
				iv.StartedAt.Local().Format(time.RFC3339),
				iv.FinishedAt.Local().Format(time.RFC3339),
				strconv.FormatInt(iv.Duration, 10),
				formatDuration(iv.Duration),
			)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func finishedAt(r store.Run) string {
	if r.FinishedAt == nil {
		return ""
	}
	return r.FinishedAt.Local().Format(time.RFC3339)
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
