package store

import "time"

// Run statuses.
const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// Interval kinds, as written by the session package.
const (
	KindFocus      = "focus"
	KindShortBreak = "short_break"
	KindLongBreak  = "long_break"
)

// RunConfig mirrors the options a run was started with.
type RunConfig struct {
	FocusMinutes     int
	BreakMinutes     int
	Cycles           int
	LongBreakMinutes int
	LongBreakEvery   int
}

type Run struct {
	ID         int64
	UID        string
	Config     RunConfig
	Status     string // running, completed, interrupted
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Interval is one finished countdown of a run.
type Interval struct {
	ID         int64
	RunID      int64
	Position   int
	Session    int
	Kind       string
	Label      string
	Duration   int64 // seconds
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunFilter is used to filter runs in queries.
type RunFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// DailyFocus is the focus time finished on one day.
type DailyFocus struct {
	Date         string
	FocusSeconds int64
	Sessions     int
}

// Totals aggregates the journal over a time range.
type Totals struct {
	Runs          int
	CompletedRuns int
	FocusSessions int
	FocusSeconds  int64
	BreakSeconds  int64
}
