package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered subsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := a.Service().ListSubsets()

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tGROUP\tLABEL\tCOLOR")
			for _, info := range infos {
				label := info.Label
				if info.Deprecated {
					label += " (deprecated)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Key, info.Group, label, info.Color)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

// subsetSummary is one line of the subsets command output.
type subsetSummary struct {
	Key      string `json:"key"`
	Group    string `json:"group"`
	Retained int    `json:"retained"`
	Removed  int    `json:"removed"`
}

func newSubsetsCommand(a *app) *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "subsets [key...]",
		Short: "Select subsets of the standard table",
		Long: `Select the named subsets, or every registered subset when no key is
given, and print their sizes. Selected subsets are cached alongside the
standard table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := a.Service().Subsets(cmd.Context(), args, refresh)
			if err != nil {
				return err
			}

			summaries := make([]subsetSummary, len(subs))
			for i, s := range subs {
				summaries[i] = subsetSummary{
					Key:      s.Info.Key,
					Group:    s.Info.Group,
					Retained: s.Retained,
					Removed:  s.Removed,
				}
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tGROUP\tRETAINED\tREMOVED")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", s.Key, s.Group, s.Retained, s.Removed)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild the standard table before selecting")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}
