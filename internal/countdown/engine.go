// Package countdown renders a per-second countdown to a terminal line.
//
// Every wake-up is scheduled at start + n seconds rather than "now + 1s", so
// rendering and scheduling jitter never accumulates across ticks.
package countdown

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// flusher is satisfied by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Engine drives one countdown at a time. It is not safe for concurrent use.
type Engine struct {
	out    io.Writer
	clock  Clock
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger used for late-tick diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(out io.Writer, opts ...Option) *Engine {
	e := &Engine{
		out:    out,
		clock:  SystemClock{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run counts down from seconds to zero, rewriting "label: M:SS" in place
// once per second, and returns once zero has been rendered. A negative
// duration is treated as zero. The only error is ctx.Err() when the
// countdown is interrupted.
func (e *Engine) Run(ctx context.Context, seconds int, label string) error {
	if seconds < 0 {
		seconds = 0
	}

	start := e.clock.Now()
	tick := 0

	for {
		remaining := max(0, seconds-tick)
		e.write(fmt.Sprintf("\r%s: %s", label, Format(remaining)))

		if remaining == 0 {
			e.write("\n")
			return nil
		}

		tick++
		target := start.Add(time.Duration(tick) * time.Second)
		if now := e.clock.Now(); now.Before(target) {
			if err := e.clock.SleepUntil(ctx, target); err != nil {
				e.write("\n")
				return err
			}
		} else {
			e.logger.Debug("tick behind schedule, catching up",
				zap.String("label", label),
				zap.Int("tick", tick),
				zap.Duration("lag", now.Sub(target)))
			if err := ctx.Err(); err != nil {
				e.write("\n")
				return err
			}
		}
	}
}

// write is best-effort: the process has no useful recovery from a broken
// stdout, so write and flush errors are only logged.
func (e *Engine) write(s string) {
	if _, err := io.WriteString(e.out, s); err != nil {
		e.logger.Debug("write countdown", zap.Error(err))
		return
	}
	if f, ok := e.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			e.logger.Debug("flush countdown", zap.Error(err))
		}
	}
}

// Format renders seconds as M:SS. Minutes are not padded and may exceed 59.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
