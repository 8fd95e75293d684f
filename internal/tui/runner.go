package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/pomodoro/internal/countdown"
	"github.com/sadopc/pomodoro/internal/session"
)

var phaseNames = map[session.Kind]string{
	session.Focus:      "FOCUS",
	session.ShortBreak: "SHORT BREAK",
	session.LongBreak:  "LONG BREAK",
}

// runModel is the full-screen rendering of a session plan. Ticks follow the
// same schedule as the line-mode engine: tick n of an interval fires at
// intervalStart + n seconds, never "one second after the last render".
type runModel struct {
	cfg      session.Config
	plan     []session.Interval
	recorder session.Recorder
	logger   *zap.Logger
	now      func() time.Time

	index     int
	start     time.Time
	tick      int
	remaining int

	completedFocus int
	done           bool
	interrupted    bool

	width    int
	progress progress.Model
	help     help.Model
}

func newRunModel(cfg session.Config, plan []session.Interval, rec session.Recorder, logger *zap.Logger) runModel {
	return runModel{
		cfg:      cfg,
		plan:     plan,
		recorder: rec,
		logger:   logger,
		now:      time.Now,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
	}
}

func (m runModel) Init() tea.Cmd {
	if len(m.plan) == 0 {
		return func() tea.Msg { return tickMsg{index: 0, tick: 0} }
	}
	return m.startInterval()
}

// startInterval captures the start instant of interval m.index in a
// message; Update stores it and schedules the first tick from there.
func (m runModel) startInterval() tea.Cmd {
	index := m.index
	return func() tea.Msg { return startMsg{index: index, at: m.now()} }
}

type startMsg struct {
	index int
	at    time.Time
}

func (m runModel) scheduleTick() tea.Cmd {
	index, next := m.index, m.tick+1
	target := m.start.Add(time.Duration(next) * time.Second)
	d := target.Sub(m.now())
	if d <= 0 {
		m.logger.Debug("tick behind schedule, catching up",
			zap.Int("interval", index), zap.Int("tick", next), zap.Duration("lag", -d))
		return func() tea.Msg { return tickMsg{index: index, tick: next} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{index: index, tick: next}
	})
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(msg.Width-12, 60))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.interrupted = true
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case startMsg:
		if msg.index != m.index || m.done {
			return m, nil
		}
		m.start = msg.at
		m.tick = 0
		m.remaining = m.plan[m.index].Seconds
		return m.advance()

	case tickMsg:
		if len(m.plan) == 0 {
			return m.finish()
		}
		if msg.index != m.index || m.done || msg.tick <= m.tick {
			return m, nil
		}
		m.tick = msg.tick
		m.remaining = max(0, m.plan[m.index].Seconds-m.tick)
		return m.advance()
	}
	return m, nil
}

// advance either schedules the next tick or closes the current interval.
func (m runModel) advance() (tea.Model, tea.Cmd) {
	if m.remaining > 0 {
		return m, m.scheduleTick()
	}

	iv := m.plan[m.index]
	if err := m.recorder.Interval(m.index, iv, m.start, m.now()); err != nil {
		m.logger.Warn("history journal failed", zap.String("op", "record interval"), zap.Error(err))
	}
	if !iv.Kind.IsBreak() {
		m.completedFocus++
	}

	m.index++
	if m.index >= len(m.plan) {
		return m.finish()
	}
	return m, m.startInterval()
}

func (m runModel) finish() (tea.Model, tea.Cmd) {
	m.done = true
	if err := m.recorder.End(session.OutcomeCompleted, m.now()); err != nil {
		m.logger.Warn("history journal failed", zap.String("op", "end run"), zap.Error(err))
	}
	return m, tea.Quit
}

func (m runModel) current() (session.Interval, bool) {
	if m.done || m.index >= len(m.plan) {
		return session.Interval{}, false
	}
	return m.plan[m.index], true
}

func (m runModel) View() string {
	w := max(m.width-4, 30)

	title := titleStyle.Render("Pomodoro")

	var timeDisplay, phaseLabel, bar string
	iv, ok := m.current()
	switch {
	case !ok:
		timeDisplay = timerStyle.Foreground(colorSuccess).Width(w - 6).Render("Done!")
		phaseLabel = successStyle.Bold(true).Render("🎉 All sessions done. Nice work.")
	default:
		timeDisplay = timerStyle.Foreground(phaseColors[iv.Kind]).Width(w - 6).Render(countdown.Format(m.remaining))
		phaseLabel = phaseStyle(iv.Kind).Render(phaseNames[iv.Kind])
		bar = m.progress.ViewAs(m.fraction())
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		mutedStyle.Render(m.cfg.String()),
		"",
		timeDisplay,
		phaseLabel,
		"",
		bar,
		"",
		m.renderSessions(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(content),
		footerStyle.Render(m.help.View(keys)),
	)
}

// fraction is how much of the current interval has elapsed.
func (m runModel) fraction() float64 {
	iv, ok := m.current()
	if !ok || iv.Seconds == 0 {
		return 1
	}
	return float64(iv.Seconds-m.remaining) / float64(iv.Seconds)
}

func (m runModel) renderSessions() string {
	var parts []string
	iv, running := m.current()
	for i := 0; i < m.cfg.Cycles; i++ {
		switch {
		case i < m.completedFocus:
			parts = append(parts, successStyle.Render("●"))
		case running && i == m.completedFocus && iv.Kind == session.Focus:
			parts = append(parts, phaseStyle(session.Focus).Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", m.completedFocus, m.cfg.Cycles))
	return strings.Join(parts, " ") + counter
}

// Options configures RunPlan.
type Options struct {
	Recorder session.Recorder
	Logger   *zap.Logger
	// Program is appended to the default program options, e.g. to swap
	// the terminal for other input and output.
	Program  []tea.ProgramOption
}

// RunPlan runs cfg's plan in a full-screen program. Like the line-mode
// sequencer it rejects an invalid config before drawing anything and
// returns context.Canceled when the user stops the session early.
func RunPlan(ctx context.Context, cfg session.Config, opts Options) error {
	plan, err := session.BuildPlan(cfg)
	if err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = session.NopRecorder{}
	}

	if err := rec.Begin(cfg, time.Now()); err != nil {
		logger.Warn("history journal failed", zap.String("op", "begin run"), zap.Error(err))
	}

	popts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts.Program...)
	p := tea.NewProgram(newRunModel(cfg, plan, rec, logger), popts...)
	final, runErr := p.Run()

	if m, ok := final.(runModel); ok && m.done {
		return nil
	}
	if err := rec.End(session.OutcomeInterrupted, time.Now()); err != nil {
		logger.Warn("history journal failed", zap.String("op", "end run"), zap.Error(err))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return context.Canceled
}
