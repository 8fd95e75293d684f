package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/pomodoro/internal/countdown"
	"github.com/sadopc/pomodoro/internal/session"
	"github.com/sadopc/pomodoro/internal/tui"
)

// Function variables for the interactive pieces, allowing them to be mocked in tests.
var (
	runTUIFunc     = tui.RunPlan
	editConfigFunc = tui.EditConfig
)

type runOptions struct {
	cfg         session.Config
	fullScreen  bool
	interactive bool
	noHistory   bool
}

func newRunCommand(g *globals) *cobra.Command {
	opts := runOptions{cfg: session.Default()}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a sequence of focus sessions and breaks",
		Long: `Run counts down each focus session and break in turn, printing the
remaining time once per second. A long break replaces the short break after
every --long-break-every sessions; no break follows the last session.

Press Ctrl+C to stop early. The run is kept in the history as interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := runSessions(ctx, cmd, g, opts)
			if errors.Is(err, context.Canceled) || errors.Is(err, huh.ErrUserAborted) {
				return ErrInterrupted
			}
			return err
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.cfg.FocusMinutes, "focus", "f", opts.cfg.FocusMinutes, "focus session length in minutes")
	f.IntVarP(&opts.cfg.BreakMinutes, "break", "b", opts.cfg.BreakMinutes, "short break length in minutes")
	f.IntVarP(&opts.cfg.Cycles, "cycles", "c", opts.cfg.Cycles, "number of focus sessions")
	f.IntVarP(&opts.cfg.LongBreakMinutes, "long-break", "l", opts.cfg.LongBreakMinutes, "long break length in minutes")
	f.IntVarP(&opts.cfg.LongBreakEvery, "long-break-every", "e", opts.cfg.LongBreakEvery, "take a long break after every N sessions")
	f.BoolVar(&opts.fullScreen, "tui", false, "show the full-screen timer")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "edit the options in a form before starting")
	f.BoolVar(&opts.noHistory, "no-history", false, "do not record this run")

	return cmd
}

func runSessions(ctx context.Context, cmd *cobra.Command, g *globals, opts runOptions) error {
	cfg := opts.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.interactive {
		edited, err := editConfigFunc(ctx, cfg)
		if err != nil {
			return err
		}
		cfg = edited
	}

	var rec session.Recorder = session.NopRecorder{}
	if !opts.noHistory {
		st, err := g.openStore()
		if err != nil {
			g.logger.Warn("history disabled for this run", zap.Error(err))
		} else {
			defer st.Close()
			rec = &historyRecorder{store: st}
		}
	}

	g.logger.Debug("starting run",
		zap.Stringer("config", cfg),
		zap.Bool("tui", opts.fullScreen),
		zap.Bool("history", !opts.noHistory))

	if opts.fullScreen {
		return runTUIFunc(ctx, cfg, tui.Options{Recorder: rec, Logger: g.logger})
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	engine := countdown.New(out, countdown.WithLogger(g.logger))
	seq := session.NewSequencer(out, engine,
		session.WithRecorder(rec),
		session.WithLogger(g.logger),
	)
	return seq.Run(ctx, cfg)
}
