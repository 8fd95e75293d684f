// Package cli provides the command-line interface for pomodoro.
package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sadopc/pomodoro/internal/store"
)

// ErrInterrupted is returned when the user stops a run before it finishes.
var ErrInterrupted = errors.New("interrupted")

// openStoreFunc opens the history database, allowing it to be replaced in tests.
var openStoreFunc = store.New

// globals holds the persistent flags and the logger shared by every command.
type globals struct {
	dbPath  string
	verbose bool
	logger  *zap.Logger
}

func (g *globals) openStore() (*store.Store, error) {
	path := g.dbPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	g.logger.Debug("opening history", zap.String("path", path))
	return openStoreFunc(path)
}

// NewRootCommand creates the root command for pomodoro.
func NewRootCommand(version string) *cobra.Command {
	g := &globals{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "pomodoro",
		Short: "Pomodoro timer for the terminal",
		Long: `pomodoro runs focus sessions separated by short breaks, with a long
break after every few sessions. Finished runs are kept in a local history
that can be listed, charted and exported.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (main handles it)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			g.logger = newLogger(cmd.ErrOrStderr(), g.verbose)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = g.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "history database path (default: <user config dir>/pomodoro/pomodoro.db)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRunCommand(g),
		newHistoryCommand(g),
		newStatsCommand(g),
		newExportCommand(g),
	)

	return root
}

// newLogger writes console-encoded diagnostics to w: warnings and errors by
// default, everything with verbose set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}
