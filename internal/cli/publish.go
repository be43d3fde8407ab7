package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exopop/internal/logging"
	"github.com/JonMunkholm/exopop/internal/store"
)

func newPublishCommand(a *app) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the standard table and subsets to PostgreSQL",
		Long: `Write the standard table and the membership of every registered subset
to the database named by DATABASE_URL. Each snapshot is published once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx)

			pool, err := store.Connect(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			pg := store.NewPostgres(pool)
			if err := pg.EnsureSchema(ctx); err != nil {
				return err
			}

			svc := a.Service()
			master, err := svc.Population(ctx, refresh)
			if err != nil {
				return err
			}
			subs, err := svc.Subsets(ctx, nil, false)
			if err != nil {
				return err
			}

			if err := pg.PublishSnapshot(ctx, master); err != nil {
				return err
			}
			for _, s := range subs {
				if err := pg.PublishSubset(ctx, master, s); err != nil {
					return err
				}
			}

			logger.Info("published", "snapshot", master.ID, "subsets", len(subs))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "published snapshot %s with %d subsets\n", master.ID, len(subs))
			return err
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild the standard table before publishing")

	return cmd
}
