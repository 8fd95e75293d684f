package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *Store) StartRun(cfg RunConfig, startedAt time.Time) (*Run, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (uid, focus_minutes, break_minutes, cycles, long_break_minutes, long_break_every, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, 'running', ?)`,
		uuid.NewString(), cfg.FocusMinutes, cfg.BreakMinutes, cfg.Cycles, cfg.LongBreakMinutes, cfg.LongBreakEvery,
		startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetRun(id)
}

func (s *Store) FinishRun(id int64, status string, finishedAt time.Time) error {
	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, finishedAt.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

const runColumns = `id, uid, focus_minutes, break_minutes, cycles, long_break_minutes, long_break_every, status, started_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var startedAt string
	var finishedAt sql.NullString
	err := row.Scan(&r.ID, &r.UID,
		&r.Config.FocusMinutes, &r.Config.BreakMinutes, &r.Config.Cycles,
		&r.Config.LongBreakMinutes, &r.Config.LongBreakEvery,
		&r.Status, &startedAt, &finishedAt)
	if err != nil {
		return r, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if finishedAt.Valid {
		t, _ := time.Parse(time.RFC3339, finishedAt.String)
		r.FinishedAt = &t
	}
	return r, nil
}

func (s *Store) GetRun(id int64) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	return &r, nil
}

func (s *Store) ListRuns(f RunFilter) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`
	var args []any

	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.From != nil {
		query += ` AND started_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND started_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
