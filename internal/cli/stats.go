package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exopop/internal/core"
)

func newStatsCommand(a *app) *cobra.Command {
	var (
		columns    []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats <key>",
		Short: "Summarize numeric columns of a subset",
		Long: `Print count, mean, standard deviation, median and range of numeric
columns for a subset. The key "standard" means the whole standard table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if len(columns) == 0 {
				columns = core.NumericColumns()
			}

			svc := a.Service()
			stats := make([]core.ColumnStats, 0, len(columns))
			for _, column := range columns {
				cs, err := svc.Stats(cmd.Context(), key, column)
				if err != nil {
					return err
				}
				stats = append(stats, cs)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tCOUNT\tMISSING\tMEAN\tSTDDEV\tMEDIAN\tMIN\tMAX")
			for _, cs := range stats {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
					cs.Column, cs.Count, cs.Missing,
					formatStat(cs.Mean), formatStat(cs.StdDev), formatStat(cs.Median),
					formatStat(cs.Min), formatStat(cs.Max))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "column", "c", nil, "columns to summarize (default: all numeric columns)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4g", *v)
}
