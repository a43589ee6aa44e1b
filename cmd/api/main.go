package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/handlers"
	"storefront-api/internal/logging"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
	"storefront-api/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel)

	// A missing or broken database is not fatal; the API answers and
	// /test reports the problem.
	var store *database.Store
	var diagnoser handlers.Diagnoser
	client, err := database.Connect(context.Background(), cfg.DatabaseURL, cfg.DatabaseTimeout)
	switch {
	case errors.Is(err, database.ErrNotConnected):
		logger.Warn("⚠️ DATABASE_URL not set, running without a database")
	case err != nil:
		logger.Error("❌ could not create database client", "error", err)
	default:
		store = database.NewStore(client.Database(cfg.DatabaseName))
		diagnoser = store

		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout)
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("⚠️ database not reachable yet", "error", err)
		} else {
			logger.Info("✅ connected to database", "database", cfg.DatabaseName)
		}
		cancel()
	}

	productRepo := repository.NewProductRepository(store)
	productHandler := handlers.NewProductHandler(productRepo, logger)
	systemHandler := handlers.NewSystemHandler(diagnoser, cfg.DatabaseURL != "", cfg.DatabaseTimeout, logger)

	router := routes.NewRouter(logger, cfg.CORSOrigins, middleware.NewMetrics())
	routes.RegisterRoutes(router, productHandler, systemHandler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("🚀 server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		logger.Error("closing database client failed", "error", err)
	}
	logger.Info("server stopped")

	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
