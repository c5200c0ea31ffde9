package cli

import (
	"fmt"

	"catalogadmin/internal/repositories"
	"catalogadmin/internal/services"

	"github.com/spf13/cobra"
)

func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin users",
	}

	cmd.AddCommand(newUserCreateCommand())

	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, pool, err := bootstrap(ctx, "user")
			if err != nil {
				return err
			}
			defer pool.Close()

			auth := services.NewAuthService(repositories.NewUserRepo(pool), cfg.Auth, logger)
			user, err := auth.CreateUser(ctx, email, password)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
