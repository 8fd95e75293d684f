package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomodoro/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Runs       []jsonRun `json:"runs"`
}

type jsonRun struct {
	ID               int64          `json:"id"`
	UID              string         `json:"uid"`
	Status           string         `json:"status"`
	FocusMinutes     int            `json:"focus_minutes"`
	BreakMinutes     int            `json:"break_minutes"`
	Cycles           int            `json:"cycles"`
	LongBreakMinutes int            `json:"long_break_minutes"`
	LongBreakEvery   int            `json:"long_break_every"`
	StartedAt        string         `json:"started_at"`
	FinishedAt       string         `json:"finished_at,omitempty"`
	FocusSeconds     int64          `json:"focus_seconds"`
	Intervals        []jsonInterval `json:"intervals"`
}

type jsonInterval struct {
	Position    int    `json:"position"`
	Session     int    `json:"session"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
}

func ToJSON(runs []store.Run, intervals map[int64][]store.Interval, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(runs),
	}

	for _, r := range runs {
		jr := jsonRun{
			ID:               r.ID,
			UID:              r.UID,
			Status:           r.Status,
			FocusMinutes:     r.Config.FocusMinutes,
			BreakMinutes:     r.Config.BreakMinutes,
			Cycles:           r.Config.Cycles,
			LongBreakMinutes: r.Config.LongBreakMinutes,
			LongBreakEvery:   r.Config.LongBreakEvery,
			StartedAt:        r.StartedAt.Local().Format(time.RFC3339),
			FinishedAt:       finishedAt(r),
			Intervals:        []jsonInterval{},
		}
		for _, iv := range intervals[r.ID] {
			if iv.Kind == store.KindFocus {
				jr.FocusSeconds += iv.Duration
			}
			jr.Intervals = append(jr.Intervals, jsonInterval{
				Position:    iv.Position,
				Session:     iv.Session,
				Kind:        iv.Kind,
				Label:       iv.Label,
				StartedAt:   iv.StartedAt.Local().Format(time.RFC3339),
				FinishedAt:  iv.FinishedAt.Local().Format(time.RFC3339),
				DurationSec: iv.Duration,
				Duration:    formatDuration(iv.Duration),
			})
		}
		export.Runs = append(export.Runs, jr)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
