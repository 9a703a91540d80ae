package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vigor-health/vigor/internal/domain"
)

func init() {
	rootCmd.AddCommand(tiersCmd)
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the rank tier boundaries",
	RunE:  runTiers,
}

func runTiers(cmd *cobra.Command, args []string) error {
	return printTiers(os.Stdout)
}

func printTiers(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tFROM\tTO")
	for _, t := range domain.Tiers() {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\n", t.Name, t.MinScore, t.MaxScore)
	}
	return w.Flush()
}
