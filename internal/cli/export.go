package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/pomodoro/internal/export"
	"github.com/sadopc/pomodoro/internal/store"
)

func newExportCommand(g *globals) *cobra.Command {
	var (
		format string
		output string
		status string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the run history to a CSV or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write, err := exporter(format)
			if err != nil {
				return err
			}
			switch status {
			case "", store.StatusRunning, store.StatusCompleted, store.StatusInterrupted:
			default:
				return fmt.Errorf("unknown status %q", status)
			}
			if output == "" {
				output = "pomodoro." + format
			}

			st, err := g.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			filter := store.RunFilter{Status: status}
			if days > 0 {
				from, _ := dayRange(nowFunc(), days)
				filter.From = &from
			}
			runs, err := st.ListRuns(filter)
			if err != nil {
				return err
			}
			intervals := make(map[int64][]store.Interval, len(runs))
			for _, r := range runs {
				ivs, err := st.ListIntervals(r.ID)
				if err != nil {
					return err
				}
				intervals[r.ID] = ivs
			}

			if err := write(runs, intervals, output); err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			g.logger.Debug("export written", zap.String("path", output), zap.Int("runs", len(runs)))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d runs to %s\n", len(runs), output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&format, "format", "csv", "output format: csv or json")
	f.StringVarP(&output, "output", "o", "", "output file (default: pomodoro.<format>)")
	f.StringVar(&status, "status", "", "only export runs with this status")
	f.IntVarP(&days, "days", "d", 0, "only export runs from the last N days (0 for all)")
	return cmd
}

func exporter(format string) (func([]store.Run, map[int64][]store.Interval, string) error, error) {
	switch format {
	case "csv":
		return export.ToCSV, nil
	case "json":
		return export.ToJSON, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want csv or json)", format)
	}
}
