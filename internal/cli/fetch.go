package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exopop/internal/archive"
)

func newFetchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the archive snapshot",
		Long: `Download the archive query to ARCHIVE_CACHE_PATH, replacing any cached
snapshot. Later commands read the cached file instead of the network.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source := archive.New(a.cfg.Archive)
			if err := source.Fetch(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), source.Path)
			return err
		},
	}
}
