package store

import (
	"fmt"
	"time"
)

// AddInterval journals a finished interval of run iv.RunID.
func (s *Store) AddInterval(iv Interval) (*Interval, error) {
	res, err := s.db.Exec(
		`INSERT INTO intervals (run_id, position, session, kind, label, duration, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.RunID, iv.Position, iv.Session, iv.Kind, iv.Label, iv.Duration,
		iv.StartedAt.UTC().Format(time.RFC3339), iv.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("add interval: %w", err)
	}
	iv.ID, _ = res.LastInsertId()
	return &iv, nil
}

func (s *Store) ListIntervals(runID int64) ([]Interval, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, position, session, kind, label, duration, started_at, finished_at
		 FROM intervals WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w", err)
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var iv Interval
		var startedAt, finishedAt string
		if err := rows.Scan(&iv.ID, &iv.RunID, &iv.Position, &iv.Session, &iv.Kind, &iv.Label, &iv.Duration, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		iv.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		iv.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

// GetDailyFocus returns finished focus time per day in [from, to).
func (s *Store) GetDailyFocus(from, to time.Time) ([]DailyFocus, error) {
	rows, err := s.db.Query(`
		SELECT date(started_at) AS day, COALESCE(SUM(duration), 0), COUNT(*)
		FROM intervals
		WHERE kind = ?
		  AND started_at >= ? AND started_at < ?
		GROUP BY day
		ORDER BY day`,
		KindFocus, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily focus: %w", err)
	}
	defer rows.Close()

	var days []DailyFocus
	for rows.Next() {
		var d DailyFocus
		if err := rows.Scan(&d.Date, &d.FocusSeconds, &d.Sessions); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) GetTotals(from, to time.Time) (Totals, error) {
	var t Totals
	fromStr, toStr := from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339)

	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(status = 'completed'), 0)
		FROM runs
		WHERE started_at >= ? AND started_at < ?`,
		fromStr, toStr,
	).Scan(&t.Runs, &t.CompletedRuns)
	if err != nil {
		return t, fmt.Errorf("run totals: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(kind = ?), 0),
		       COALESCE(SUM(CASE WHEN kind = ? THEN duration ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN kind != ? THEN duration ELSE 0 END), 0)
		FROM intervals
		WHERE started_at >= ? AND started_at < ?`,
		KindFocus, KindFocus, KindFocus, fromStr, toStr,
	).Scan(&t.FocusSessions, &t.FocusSeconds, &t.BreakSeconds)
	if err != nil {
		return t, fmt.Errorf("interval totals: %w", err)
	}
	return t, nil
}
