package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vigor-health/vigor/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show a user's current score, rank, and streaks",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	stats, err := d.Tracker.RecomputeStatistics(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Score: %d (%s)\n", stats.Timeline.CurrentScore, stats.Rank.Tier.Name)
	if stats.Timeline.TrendPct != 0 {
		fmt.Printf("Trend: %+.1f%%\n", stats.Timeline.TrendPct)
	}
	fmt.Printf("Points to next rank: %.0f\n\n", stats.Rank.PointsToNextTier)

	if len(stats.Streaks) == 0 {
		fmt.Println("No active streaks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tSTREAK")
	for taskID, s := range stats.Streaks {
		if s.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d days\n", taskID, s.Count)
	}
	return w.Flush()
}
