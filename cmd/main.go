package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"pos-service/internal/catalog"
	"pos-service/internal/handler"
	mid "pos-service/internal/middleware"
	"pos-service/internal/session"
	"pos-service/internal/storage"
	"pos-service/pkg/config"
	"pos-service/pkg/database"
	"pos-service/pkg/jwtutil"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	client "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting pos-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port),
		zap.String("display_timezone", appConfig.Display.TimeZone))

	// Initialize Prometheus metrics
	reg := client.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prometheus.InitMetrics(appConfig, reg)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the catalog slot
	slot, closeSlot, err := openStorage(appConfig)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeSlot()

	store, err := catalog.NewStore(ctx, slot, catalog.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}
	store.Subscribe(prometheus.UpdateInventory)
	prometheus.UpdateInventory(store.Snapshot())

	jwtUtil := jwtutil.NewJWTUtil(&appConfig.JWT)
	h := handler.New(store, session.NewCarts(), jwtUtil, appConfig.Display.Location)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware())
	e.Use(mid.RequestLoggerMiddleware())
	e.Use(mid.MetricsMiddleware)

	// Routes
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	handler.RegisterRoutes(e, h)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server", zap.Duration("timeout", appConfig.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return
	}
	log.Info("Server stopped")
}

// openStorage returns the persistence port selected by STORAGE_DRIVER and a
// function releasing whatever it holds open
func openStorage(cfg *config.Config) (catalog.Persistence, func(), error) {
	log := logger.GetLogger()

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, state is lost on restart")
		return storage.NewMemory(), func() {}, nil

	case config.StoragePostgres:
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateModels(db, &storage.Slot{}); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		log.Info("Using postgres storage", zap.String("key", cfg.Storage.Key))
		return storage.NewGorm(db, cfg.Storage.Key), func() {
			if err := database.Close(db); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
		}, nil

	default:
		file, err := storage.NewFile(cfg.Storage.Dir, cfg.Storage.Key)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using file storage", zap.String("path", file.Path()))
		return file, func() {}, nil
	}
}
