package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/pomodoro/internal/store"
	"github.com/sadopc/pomodoro/internal/tui"
)

// nowFunc is the clock for date ranges, allowing it to be fixed in tests.
var nowFunc = time.Now

const statsWidth = 80

func newHistoryCommand(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1, got %d", limit)
			}
			st, err := g.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(store.RunFilter{Limit: limit})
			if err != nil {
				return err
			}
			focus := make(map[int64]int64, len(runs))
			for _, r := range runs {
				intervals, err := st.ListIntervals(r.ID)
				if err != nil {
					return err
				}
				for _, iv := range intervals {
					if iv.Kind == store.KindFocus {
						focus[r.ID] += iv.Duration
					}
				}
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderHistory(runs, focus))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

func newStatsCommand(g *globals) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Chart focus time per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}
			st, err := g.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			from, to := dayRange(nowFunc(), days)
			daily, err := st.GetDailyFocus(from, to)
			if err != nil {
				return err
			}
			totals, err := st.GetTotals(from, to)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStats(daily, totals, from, to, statsWidth))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "number of days to include, ending today")
	return cmd
}

// dayRange returns [from, to) covering the last days UTC days up to and
// including the one containing now.
func dayRange(now time.Time, days int) (time.Time, time.Time) {
	to := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	return to.AddDate(0, 0, -days), to
}
