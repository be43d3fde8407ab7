package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/JonMunkholm/exopop/internal/store"
)

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <key> <file.parquet>",
		Short: "Write a subset to a parquet file",
		Long: `Write a subset, or the standard table for the key "standard", to a
parquet file. Missing values are written as nulls and the snapshot ID is
kept in the file metadata.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, path := args[0], args[1]
			svc := a.Service()

			var table *core.MasterTable
			if key == core.StandardKey {
				master, err := svc.Population(cmd.Context(), false)
				if err != nil {
					return err
				}
				table = master
			} else {
				sub, err := svc.Subset(cmd.Context(), key, false)
				if err != nil {
					return err
				}
				table = sub.Table
			}

			if err := store.WriteTable(path, table); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", path, table.Len())
			return err
		},
	}
}
