package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"catalogadmin/internal/repositories"
	"catalogadmin/internal/server"
	"catalogadmin/internal/services"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/database"

	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, logger, pool, err := bootstrap(ctx, "catalogadmin")
			if err != nil {
				return err
			}
			defer pool.Close()

			if migrate {
				migrator, err := database.NewMigrator(pool)
				if err != nil {
					return err
				}
				applied, err := migrator.Migrate(ctx)
				if err != nil {
					return err
				}
				logger.Info("applied %d migrations", applied)
			}

			store, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Driver, err)
			}

			userRepo := repositories.NewUserRepo(pool)
			collectionRepo := repositories.NewCollectionRepo(pool)
			productRepo := repositories.NewProductRepo(pool)
			variantRepo := repositories.NewVariantRepo(pool)
			galleryRepo := repositories.NewGalleryRepo(pool)

			deps := server.Dependencies{
				Version:     versionInfo.Version,
				DB:          pool,
				Store:       store,
				Auth:        services.NewAuthService(userRepo, cfg.Auth, logger.Named("auth")),
				Collections: services.NewCollectionService(collectionRepo, productRepo, variantRepo, store, logger.Named("collections")),
				Products:    services.NewProductService(productRepo, collectionRepo, store, logger.Named("products")),
				Variants:    services.NewVariantService(variantRepo, productRepo, store, logger.Named("variants")),
				Gallery:     services.NewGalleryService(galleryRepo, store, logger.Named("gallery")),
			}

			logger.Info("storage driver: %s", cfg.Storage.Driver)
			return server.New(cfg.Server, deps, logger.Named("http")).Serve(ctx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}
