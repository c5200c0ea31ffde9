package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"catalogadmin/internal/config"
	"catalogadmin/internal/handlers"
	"catalogadmin/internal/middleware"
	"catalogadmin/internal/services"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Version     string
	DB          handlers.Pinger
	Store       storage.ImageStore
	Auth        services.AuthService
	Collections services.CollectionService
	Products    services.ProductService
	Variants    services.VariantService
	Gallery     services.GalleryService
}

type Server struct {
	echo   *echo.Echo
	cfg    config.ServerConfig
	logger log.LoggerService
}

func New(cfg config.ServerConfig, deps Dependencies, logger log.LoggerService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(echoMiddleware.LoggerWithConfig(echoMiddleware.LoggerConfig{
		Output: logger.Writer(),
	}))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.APIVersion(deps.Version))
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	registerRoutes(e, deps, logger)

	return &Server{echo: e, cfg: cfg, logger: logger}
}

func registerRoutes(e *echo.Echo, deps Dependencies, logger log.LoggerService) {
	requireAuth := middleware.JWT(deps.Auth)

	healthHandlers := handlers.NewHealthHandlers(deps.DB, deps.Store)
	uploadHandlers := handlers.NewUploadHandlers(deps.Store)
	authHandlers := handlers.NewAuthHandlers(deps.Auth)
	collectionHandlers := handlers.NewCollectionHandlers(deps.Collections)
	productHandlers := handlers.NewProductHandlers(deps.Products)
	variantHandlers := handlers.NewVariantHandlers(deps.Variants)
	galleryHandlers := handlers.NewGalleryHandlers(deps.Gallery)

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/uploads/*", uploadHandlers.Serve)

	api := e.Group("/api", middleware.Audit(logger.Named("audit")))

	auth := api.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.GET("/me", authHandlers.Me, requireAuth)

	collections := api.Group("/collections")
	collections.GET("", collectionHandlers.List)
	collections.GET("/:id", collectionHandlers.Get)
	collections.POST("", collectionHandlers.Create, requireAuth)
	collections.PUT("/:id", collectionHandlers.Update, requireAuth)
	collections.DELETE("/:id", collectionHandlers.Delete, requireAuth)

	products := api.Group("/products")
	products.GET("", productHandlers.List)
	products.GET("/:id", productHandlers.Get)
	products.GET("/collection/:collectionId", productHandlers.ListByCollection)
	products.POST("", productHandlers.Create, requireAuth)
	products.PUT("/:id", productHandlers.Update, requireAuth)
	products.DELETE("/:id", productHandlers.Delete, requireAuth)

	variants := api.Group("/product-variants")
	variants.GET("", variantHandlers.List)
	variants.GET("/product/:productId", variantHandlers.ListByProduct)
	variants.GET("/:id", variantHandlers.Get, requireAuth)
	variants.POST("", variantHandlers.Create, requireAuth)
	variants.PUT("/:id", variantHandlers.Update, requireAuth)
	variants.DELETE("/:id", variantHandlers.Delete, requireAuth)

	gallery := api.Group("/gallery")
	gallery.GET("", galleryHandlers.List)
	gallery.POST("", galleryHandlers.Create, requireAuth)
	gallery.PUT("/:id", galleryHandlers.Update, requireAuth)
	gallery.DELETE("/:id", galleryHandlers.Delete, requireAuth)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Serve listens until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", s.cfg.Address)
		if err := s.echo.Start(s.cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
