package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"provided-storefront/internal/cache"
	"provided-storefront/internal/config"
	"provided-storefront/internal/database"
	"provided-storefront/internal/handlers"
	"provided-storefront/internal/logger"
	"provided-storefront/internal/repository"
	"provided-storefront/internal/routes"
	"provided-storefront/internal/seed"
	"provided-storefront/internal/service"
)

const (
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Minute
)

func main() {
	app := &cli.App{
		Name:   "provided-api",
		Usage:  "Provided storefront backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "insert the demo catalog if it is missing",
				Action: seedCatalog,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("❌ Exiting")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	return cfg, nil
}

func connect(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}
	log.WithField("database", cfg.DatabaseName).Info("✅ Connected to MongoDB")

	if err := database.EnsureIndexes(ctx, db, cfg.CartTTL); err != nil {
		log.WithError(err).Warn("⚠️ Could not create indexes")
	}
	return db, nil
}

func disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := database.Disconnect(ctx, db); err != nil {
		log.WithError(err).Warn("⚠️ Error disconnecting from MongoDB")
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		return errors.Errorf("unknown GIN_MODE %q", cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sin base de datos el API sigue arriba: lecturas vacías y escrituras con 500
	db, err := connect(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("⚠️ MongoDB unavailable, serving without a database")
	}
	defer disconnect(db)

	catalogCache := cache.New(ctx, cfg.CatalogCacheTTL, cleanupInterval)

	productRepo := repository.NewProductRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	cartRepo := repository.NewCartRepository(db)

	catalog := service.NewCatalogService(productRepo, collectionRepo, catalogCache)
	carts := service.NewCartService(cartRepo, log.StandardLogger())

	if cfg.SeedOnStart && db != nil {
		seeder := seed.NewSeeder(productRepo, collectionRepo, log.StandardLogger())
		seeder.OnChange = catalog.InvalidateCache
		seeder.RunBestEffort(ctx)
	}

	router, err := routes.NewRouter(cfg.CORSOrigins, cfg.AllowAllOrigins(), log.StandardLogger())
	if err != nil {
		return err
	}
	routes.RegisterRoutes(router, routes.Handlers{
		Products: handlers.NewProductHandler(catalog, cfg.RequestTimeout),
		Carts:    handlers.NewCartHandler(carts, cfg.RequestTimeout),
		System: handlers.NewSystemHandler(func(ctx context.Context) database.Diagnostics {
			return database.Diagnose(ctx, db, cfg.DatabaseURLSet, cfg.DatabaseNameSet)
		}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("🚀 Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	log.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	log.Info("👋 Server exited")
	return nil
}

func seedCatalog(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer disconnect(db)

	seeder := seed.NewSeeder(
		repository.NewProductRepository(db),
		repository.NewCollectionRepository(db),
		log.StandardLogger(),
	)
	if err := seeder.Run(c.Context); err != nil {
		return err
	}

	log.Info("✅ Demo catalog is in place")
	return nil
}
