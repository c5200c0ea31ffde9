package cli

import (
	"fmt"

	"catalogadmin/pkg/database"

	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, logger, pool, err := bootstrap(ctx, "migrate")
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := database.NewMigrator(pool)
			if err != nil {
				return err
			}
			applied, err := migrator.Migrate(ctx)
			if err != nil {
				return err
			}
			logger.Info("applied %d migrations", applied)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they have been applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, _, pool, err := bootstrap(ctx, "migrate")
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := database.NewMigrator(pool)
			if err != nil {
				return err
			}
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%03d  %-8s %s\n", s.Version, state, s.Description)
			}
			return nil
		},
	})

	return cmd
}
