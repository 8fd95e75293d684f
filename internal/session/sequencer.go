// Package session turns a run configuration into a plan of focus and break
// intervals and runs them one after another.
package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Countdown runs a single interval and blocks until it reaches zero.
type Countdown interface {
	Run(ctx context.Context, seconds int, label string) error
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeInterrupted Outcome = "interrupted"
)

// Recorder journals a run as it happens. Its errors never stop the timer.
type Recorder interface {
	Begin(cfg Config, started time.Time) error
	Interval(position int, iv Interval, started, finished time.Time) error
	End(outcome Outcome, finished time.Time) error
}

// NopRecorder discards the journal.
type NopRecorder struct{}

func (NopRecorder) Begin(Config, time.Time) error                     { return nil }
func (NopRecorder) Interval(int, Interval, time.Time, time.Time) error { return nil }
func (NopRecorder) End(Outcome, time.Time) error                      { return nil }

type flusher interface {
	Flush() error
}

// Sequencer drives a Countdown through every interval of a plan.
type Sequencer struct {
	out      io.Writer
	timer    Countdown
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time

	bannerStyle lipgloss.Style
	doneStyle   lipgloss.Style
	breakStyle  lipgloss.Style
	finalStyle  lipgloss.Style
}

// Option configures a Sequencer.
type Option func(*Sequencer)

func WithRecorder(r Recorder) Option {
	return func(s *Sequencer) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNow sets the time source for journal timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

// NewSequencer writes announcements to out and runs intervals on timer.
// Styles are resolved against out, so piped output stays plain text.
func NewSequencer(out io.Writer, timer Countdown, opts ...Option) *Sequencer {
	r := lipgloss.NewRenderer(out)
	s := &Sequencer{
		out:      out,
		timer:    timer,
		recorder: NopRecorder{},
		logger:   zap.NewNop(),
		now:      time.Now,

		bannerStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C63FF")),
		doneStyle:   r.NewStyle().Foreground(lipgloss.Color("#2ECC71")),
		breakStyle:  r.NewStyle().Foreground(lipgloss.Color("#7AA2F7")),
		finalStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2EC4B6")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run validates cfg, then runs its plan to completion. An invalid config is
// rejected before anything is written. When ctx is cancelled mid-interval
// the run is journaled as interrupted and the context error is returned.
func (s *Sequencer) Run(ctx context.Context, cfg Config) error {
	plan, err := BuildPlan(cfg)
	if err != nil {
		return err
	}

	s.journal("begin run", s.recorder.Begin(cfg, s.now()))
	s.println("Run with " + cfg.String())

	for i, iv := range plan {
		if iv.Kind == Focus {
			s.println("")
			s.println(s.bannerStyle.Render(fmt.Sprintf("=== Session %d/%d ===", iv.Session, cfg.Cycles)))
		}

		started := s.now()
		if err := s.timer.Run(ctx, iv.Seconds, iv.Label); err != nil {
			s.journal("end run", s.recorder.End(OutcomeInterrupted, s.now()))
			return fmt.Errorf("%s of session %d: %w", iv.Kind, iv.Session, err)
		}
		s.journal("record interval", s.recorder.Interval(i, iv, started, s.now()))
		s.println(s.completion(iv.Kind))
	}

	s.println("")
	s.println(s.finalStyle.Render("🎉 All sessions done. Nice work."))
	s.journal("end run", s.recorder.End(OutcomeCompleted, s.now()))
	return nil
}

func (s *Sequencer) completion(k Kind) string {
	switch k {
	case ShortBreak:
		return s.breakStyle.Render("☕ Break over")
	case LongBreak:
		return s.breakStyle.Render("🌴 Long break over")
	default:
		return s.doneStyle.Render("✅ Focus done")
	}
}

func (s *Sequencer) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
	if f, ok := s.out.(flusher); ok {
		_ = f.Flush()
	}
}

func (s *Sequencer) journal(op string, err error) {
	if err != nil {
		s.logger.Warn("history journal failed", zap.String("op", op), zap.Error(err))
	}
}
