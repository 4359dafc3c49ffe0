// Command resourced is the development resource server: /users and /products
// over MongoDB, enough to run the dashboard end to end.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokobarang/inventory-dashboard/internal/core/service"
	mongostore "github.com/tokobarang/inventory-dashboard/internal/infrastructure/db/mongo"
	httpserver "github.com/tokobarang/inventory-dashboard/internal/infrastructure/http"
	"github.com/tokobarang/inventory-dashboard/internal/infrastructure/http/handlers"
	"github.com/tokobarang/inventory-dashboard/internal/pkg/config"
	"github.com/tokobarang/inventory-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "resourced",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Resourced.Mongo.URI,
		Database: cfg.Resourced.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()

	products := mongostore.NewProductRepository(db)
	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}
	if cfg.Resourced.Seed {
		if _, err := service.SeedUsers(ctx, users, service.DefaultUsers, log); err != nil {
			log.Fatal().Err(err).Msg("seed users")
		}
	}

	e := httpserver.NewRouter(products, users, map[string]handlers.Checker{
		"mongodb": handlers.CheckerFunc(func(ctx context.Context) error {
			return mongostore.Ping(ctx, db)
		}),
	}, log)

	go func() {
		log.Info().Str("port", cfg.Resourced.Port).Str("database", cfg.Resourced.Mongo.Database).Msg("resourced listening")
		if err := e.Start(":" + cfg.Resourced.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
