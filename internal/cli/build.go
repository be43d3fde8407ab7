package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exopop/internal/core"
)

// buildSummary is the JSON output of the build command.
type buildSummary struct {
	Snapshot string              `json:"snapshot"`
	Source   string              `json:"source"`
	Rows     int                 `json:"rows"`
	Columns  []string            `json:"optional_columns,omitempty"`
	Reports  []core.FilterReport `json:"reports,omitempty"`
}

func newBuildCommand(a *app) *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the standard table",
		Long: `Filter the archive snapshot to transiting planets with usable stellar
data and normalize it to the canonical schema. The result is cached; use
--refresh to rebuild from the snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := a.Service()

			master, err := svc.Population(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			summary := buildSummary{
				Snapshot: master.ID.String(),
				Source:   master.Source,
				Rows:     master.Len(),
				Columns:  master.Optional,
				Reports:  svc.Reports(),
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "snapshot\t%s\n", summary.Snapshot)
			fmt.Fprintf(w, "source\t%s\n", summary.Source)
			fmt.Fprintf(w, "rows\t%d\n", summary.Rows)
			for _, r := range summary.Reports {
				fmt.Fprintf(w, "%s\t%d -> %d\n", r.Stage, r.Before, r.After)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild from the archive snapshot instead of the cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}
