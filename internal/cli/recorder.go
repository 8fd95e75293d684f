package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/pomodoro/internal/session"
	"github.com/sadopc/pomodoro/internal/store"
)

var errRunNotStarted = errors.New("run was not started")

// historyRecorder journals a run into the history database.
type historyRecorder struct {
	store *store.Store
	run   *store.Run
}

func (r *historyRecorder) Begin(cfg session.Config, started time.Time) error {
	run, err := r.store.StartRun(store.RunConfig{
		FocusMinutes:     cfg.FocusMinutes,
		BreakMinutes:     cfg.BreakMinutes,
		Cycles:           cfg.Cycles,
		LongBreakMinutes: cfg.LongBreakMinutes,
		LongBreakEvery:   cfg.LongBreakEvery,
	}, started)
	if err != nil {
		return err
	}
	r.run = run
	return nil
}

func (r *historyRecorder) Interval(position int, iv session.Interval, started, finished time.Time) error {
	if r.run == nil {
		return errRunNotStarted
	}
	_, err := r.store.AddInterval(store.Interval{
		RunID:      r.run.ID,
		Position:   position,
		Session:    iv.Session,
		Kind:       iv.Kind.String(),
		Label:      iv.Label,
		Duration:   int64(iv.Seconds),
		StartedAt:  started,
		FinishedAt: finished,
	})
	return err
}

func (r *historyRecorder) End(outcome session.Outcome, finished time.Time) error {
	if r.run == nil {
		return errRunNotStarted
	}
	var status string
	switch outcome {
	case session.OutcomeCompleted:
		status = store.StatusCompleted
	case session.OutcomeInterrupted:
		status = store.StatusInterrupted
	default:
		return fmt.Errorf("unknown outcome %q", outcome)
	}
	return r.store.FinishRun(r.run.ID, status, finished)
}
