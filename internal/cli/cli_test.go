package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/pomodoro/internal/session"
	"github.com/sadopc/pomodoro/internal/store"
	"github.com/sadopc/pomodoro/internal/tui"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand("test-version")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pomodoro.db")
}

func openDB(t *testing.T, path string) *store.Store {
	t.Helper()
	st, err := store.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRun_ZeroLengthIntervals(t *testing.T) {
	out, _, err := execute(t, "run", "-f", "0", "-b", "0", "-c", "2", "-l", "0", "--no-history")
	require.NoError(t, err)

	want := "Run with focus=0m, break=0m, cycles=2, long-break=0m, long-break-every=4\n" +
		"\n" +
		"=== Session 1/2 ===\n" +
		"\rFocus: 0:00\n" +
		"✅ Focus done\n" +
		"\rBreak: 0:00\n" +
		"☕ Break over\n" +
		"\n" +
		"=== Session 2/2 ===\n" +
		"\rFocus: 0:00\n" +
		"✅ Focus done\n" +
		"\n" +
		"🎉 All sessions done. Nice work.\n"
	assert.Equal(t, want, out)
}

func TestRun_ZeroCycles(t *testing.T) {
	out, _, err := execute(t, "run", "--cycles", "0", "--no-history")
	require.NoError(t, err)
	assert.Equal(t,
		"Run with focus=25m, break=5m, cycles=0, long-break=15m, long-break-every=4\n\n🎉 All sessions done. Nice work.\n",
		out)
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"long break every zero", []string{"-e", "0"}, "long-break-every"},
		{"negative focus", []string{"--focus=-5"}, "focus"},
		{"negative cycles", []string{"--cycles=-1"}, "cycles"},
		{"focus too long", []string{"-f", "153722867280912931", "-c", "1"}, "focus must be at most"},
		{"focus wrapping to seconds", []string{"-f", "307445734561825861"}, "focus must be at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"run", "--no-history"}, tt.args...)
			out, _, err := execute(t, args...)
			require.ErrorIs(t, err, session.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Empty(t, out, "nothing should be printed for an invalid config")
		})
	}
}

func TestRun_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "run", "extra", "--no-history")
	assert.Error(t, err)
}

func TestRun_RecordsHistory(t *testing.T) {
	db := tempDB(t)
	_, _, err := execute(t, "--db", db, "run", "-f", "0", "-b", "0", "-c", "3", "-l", "0", "-e", "2")
	require.NoError(t, err)

	st := openDB(t, db)
	runs, err := st.ListRuns(store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, store.StatusCompleted, runs[0].Status)
	assert.Equal(t, store.RunConfig{Cycles: 3, LongBreakEvery: 2}, runs[0].Config)
	assert.NotNil(t, runs[0].FinishedAt)

	intervals, err := st.ListIntervals(runs[0].ID)
	require.NoError(t, err)
	require.Len(t, intervals, 5)
	kinds := make([]string, len(intervals))
	for i, iv := range intervals {
		kinds[i] = iv.Kind
		assert.Equal(t, i, iv.Position)
	}
	assert.Equal(t, []string{
		store.KindFocus, store.KindShortBreak, store.KindFocus, store.KindLongBreak, store.KindFocus,
	}, kinds)
}

func TestRun_NoHistorySkipsStore(t *testing.T) {
	original := openStoreFunc
	defer func() { openStoreFunc = original }()
	called := false
	openStoreFunc = func(string) (*store.Store, error) {
		called = true
		return store.NewMemory()
	}

	_, _, err := execute(t, "run", "-c", "0", "--no-history")
	require.NoError(t, err)
	assert.False(t, called, "--no-history must not open the database")
}

func TestRun_StoreFailureKeepsRunning(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	out, stderr, err := execute(t, "--db", filepath.Join(blocker, "pomodoro.db"), "run", "-c", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "All sessions done")
	assert.Contains(t, stderr, "history disabled for this run")
}

func TestRun_TUI(t *testing.T) {
	original := runTUIFunc
	defer func() { runTUIFunc = original }()

	var gotCfg session.Config
	var gotOpts tui.Options
	runTUIFunc = func(_ context.Context, cfg session.Config, opts tui.Options) error {
		gotCfg, gotOpts = cfg, opts
		return nil
	}

	out, _, err := execute(t, "run", "--tui", "--no-history", "-f", "50", "-b", "10")
	require.NoError(t, err)
	assert.Empty(t, out, "the line-mode output must not be printed")
	assert.Equal(t, session.Config{FocusMinutes: 50, BreakMinutes: 10, Cycles: 4, LongBreakMinutes: 15, LongBreakEvery: 4}, gotCfg)
	assert.IsType(t, session.NopRecorder{}, gotOpts.Recorder)
	assert.NotNil(t, gotOpts.Logger)
}

func TestRun_TUIWithHistory(t *testing.T) {
	original := runTUIFunc
	defer func() { runTUIFunc = original }()

	var rec session.Recorder
	runTUIFunc = func(_ context.Context, _ session.Config, opts tui.Options) error {
		rec = opts.Recorder
		return nil
	}

	_, _, err := execute(t, "--db", tempDB(t), "run", "--tui")
	require.NoError(t, err)
	assert.IsType(t, &historyRecorder{}, rec)
}

func TestRun_InterruptedTUI(t *testing.T) {
	original := runTUIFunc
	defer func() { runTUIFunc = original }()
	runTUIFunc = func(context.Context, session.Config, tui.Options) error {
		return context.Canceled
	}

	_, _, err := execute(t, "run", "--tui", "--no-history")
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, "interrupted", err.Error())
}

func TestRun_Interactive(t *testing.T) {
	original := editConfigFunc
	defer func() { editConfigFunc = original }()

	var prefilled session.Config
	editConfigFunc = func(_ context.Context, cfg session.Config) (session.Config, error) {
		prefilled = cfg
		return session.Config{Cycles: 1, LongBreakEvery: 1}, nil
	}

	out, _, err := execute(t, "run", "-i", "--no-history", "-c", "6")
	require.NoError(t, err)
	assert.Equal(t, 6, prefilled.Cycles, "the form should start from the flag values")
	assert.True(t, strings.HasPrefix(out, "Run with focus=0m, break=0m, cycles=1, long-break=0m, long-break-every=1\n"))
}

func TestRun_InteractiveAborted(t *testing.T) {
	original := editConfigFunc
	defer func() { editConfigFunc = original }()
	editConfigFunc = func(_ context.Context, cfg session.Config) (session.Config, error) {
		return cfg, huh.ErrUserAborted
	}

	out, _, err := execute(t, "run", "-i", "--no-history")
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Empty(t, out)
}

func TestRun_InteractiveSkippedForInvalidFlags(t *testing.T) {
	original := editConfigFunc
	defer func() { editConfigFunc = original }()
	called := false
	editConfigFunc = func(_ context.Context, cfg session.Config) (session.Config, error) {
		called = true
		return cfg, nil
	}

	_, _, err := execute(t, "run", "-i", "-e", "0", "--no-history")
	assert.ErrorIs(t, err, session.ErrInvalidConfig)
	assert.False(t, called)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "-v", "run", "-c", "0", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, stderr, "starting run")

	_, stderr, err = execute(t, "run", "-c", "0", "--no-history")
	require.NoError(t, err)
	assert.Empty(t, stderr, "debug logs are hidden without --verbose")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
}

func TestHistory(t *testing.T) {
	db := tempDB(t)
	_, _, err := execute(t, "--db", db, "run", "-f", "0", "-b", "0", "-c", "2")
	require.NoError(t, err)

	out, _, err := execute(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "2x0m/0m")
}

func TestHistory_Empty(t *testing.T) {
	out, _, err := execute(t, "--db", tempDB(t), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet")
}

func TestHistory_InvalidLimit(t *testing.T) {
	_, _, err := execute(t, "--db", tempDB(t), "history", "--limit", "0")
	assert.Error(t, err)
}

func TestHistory_StoreFailureIsFatal(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := execute(t, "--db", filepath.Join(blocker, "pomodoro.db"), "history")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	originalNow := nowFunc
	defer func() { nowFunc = originalNow }()
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }

	db := tempDB(t)
	st := openDB(t, db)
	run, err := st.StartRun(store.RunConfig{FocusMinutes: 25, Cycles: 1, LongBreakEvery: 4}, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = st.AddInterval(store.Interval{
		RunID: run.ID, Session: 1, Kind: store.KindFocus, Label: "Focus", Duration: 1500,
		StartedAt: now.Add(-time.Hour), FinishedAt: now.Add(-35 * time.Minute),
	})
	require.NoError(t, err)
	require.NoError(t, st.FinishRun(run.ID, store.StatusCompleted, now.Add(-35*time.Minute)))

	out, _, err := execute(t, "--db", db, "stats", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Focus time")
	assert.Contains(t, out, "2026-03-04")
	assert.Contains(t, out, "00:25:00")
	assert.Contains(t, out, "1 (1 completed)")
}

func TestStats_InvalidDays(t *testing.T) {
	_, _, err := execute(t, "--db", tempDB(t), "stats", "--days", "0")
	assert.Error(t, err)
}

func TestDayRange(t *testing.T) {
	now := time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC)
	from, to := dayRange(now, 7)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), to)
	assert.Equal(t, time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), from)
}

func TestExport(t *testing.T) {
	db := tempDB(t)
	_, _, err := execute(t, "--db", db, "run", "-f", "0", "-b", "0", "-c", "2")
	require.NoError(t, err)

	dir := t.TempDir()

	csvPath := filepath.Join(dir, "history.csv")
	out, _, err := execute(t, "--db", db, "export", "--output", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Exported 1 runs to "+csvPath+"\n", out)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 4, "header plus three intervals")

	jsonPath := filepath.Join(dir, "history.json")
	_, _, err = execute(t, "--db", db, "export", "--format", "json", "-o", jsonPath)
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var doc struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Count)
}

func TestExport_StatusFilter(t *testing.T) {
	db := tempDB(t)
	_, _, err := execute(t, "--db", db, "run", "-c", "0")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	out, _, err := execute(t, "--db", db, "export", "--status", "interrupted", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 0 runs")
}

func TestExport_InvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--db", tempDB(t), "export", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")

	_, _, err = execute(t, "--db", tempDB(t), "export", "--status", "paused")
	assert.ErrorContains(t, err, "unknown status")
}

func TestHistoryRecorder(t *testing.T) {
	st, err := store.NewMemory()
	require.NoError(t, err)
	defer st.Close()

	rec := &historyRecorder{store: st}
	iv := session.Interval{Kind: session.Focus, Seconds: 60, Label: "Focus", Session: 1}
	now := time.Now()

	assert.ErrorIs(t, rec.Interval(0, iv, now, now), errRunNotStarted)
	assert.ErrorIs(t, rec.End(session.OutcomeCompleted, now), errRunNotStarted)

	require.NoError(t, rec.Begin(session.Default(), now))
	require.NoError(t, rec.Interval(0, iv, now, now.Add(time.Minute)))
	require.NoError(t, rec.End(session.OutcomeInterrupted, now.Add(time.Minute)))
	assert.Error(t, rec.End("paused", now))

	run, err := st.GetRun(rec.run.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusInterrupted, run.Status)
	assert.Equal(t, store.RunConfig{FocusMinutes: 25, BreakMinutes: 5, Cycles: 4, LongBreakMinutes: 15, LongBreakEvery: 4}, run.Config)

	intervals, err := st.ListIntervals(run.ID)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, int64(60), intervals[0].Duration)
	assert.Equal(t, store.KindFocus, intervals[0].Kind)
}
