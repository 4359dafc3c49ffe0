// Command dashboard serves the inventory dashboard: sign-in, the product table
// and the admin product editor, backed by the remote resource API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/tokobarang/inventory-dashboard/internal/api"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
	"github.com/tokobarang/inventory-dashboard/internal/core/service"
	"github.com/tokobarang/inventory-dashboard/internal/infrastructure/db/memory"
	redisstore "github.com/tokobarang/inventory-dashboard/internal/infrastructure/db/redis"
	"github.com/tokobarang/inventory-dashboard/internal/infrastructure/http/handlers"
	"github.com/tokobarang/inventory-dashboard/internal/infrastructure/resource"
	"github.com/tokobarang/inventory-dashboard/internal/pkg/config"
	"github.com/tokobarang/inventory-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type sessionBackend interface {
	ports.SessionStorageFactory
	handlers.Checker
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "dashboard",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sessions sessionBackend
	switch cfg.Session.Backend {
	case config.BackendMemory:
		log.Warn().Msg("sessions kept in memory; they are lost on restart")
		sessions = memory.NewSessionStorage()
	default:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connect session redis")
		}
		defer rdb.Close()
		sessions = redisstore.NewSessionStorage(rdb, cfg.Session.TTL)
	}

	httpClient := &http.Client{Timeout: cfg.Resource.Timeout}
	client := resource.NewClient(cfg.Resource.BaseURL, httpClient, log.With().Str("component", "resource").Logger())

	e := api.NewRouter(api.Deps{
		Sessions: service.NewSessionRegistry(client, sessions, cfg.Session.RestoreDelay, log.With().Str("component", "session").Logger()).
			WithLimits(cfg.Session.IdleTTL, cfg.Session.MaxStores),
		Products: client,
		Checks: map[string]handlers.Checker{
			"session_storage": sessions,
			"resource_api":    client,
		},
		Log:          log,
		CookieName:   cfg.Session.Cookie,
		SecureCookie: cfg.Session.SecureCookie,
		LoginRate:    rate.Limit(cfg.Session.LoginRate),
		LoginBurst:   cfg.Session.LoginBurst,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("resource_api", cfg.Resource.BaseURL).Msg("dashboard listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
