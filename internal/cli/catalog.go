package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vigor-health/vigor/internal/app/catalog"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the tracked habits and their score weights",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tWEIGHT\tDIRECTION")
	for _, def := range cat.All() {
		direction := "do"
		if def.IsDont() {
			direction = "don't"
		}
		if def.DualDirection {
			direction = "dual"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\n",
			def.ID, def.Name, def.Kind, def.ImpactWeight, direction)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal positive impact: %.0f\n", cat.TotalPositiveImpact())
	fmt.Printf("Total negative impact: %.0f\n", cat.TotalNegativeImpact())
	return nil
}
