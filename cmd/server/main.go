package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	adminapp "github.com/dwikikusuma/shopping-hub/internal/admin/app"
	cartapp "github.com/dwikikusuma/shopping-hub/internal/cart/app"
	cartpg "github.com/dwikikusuma/shopping-hub/internal/cart/infra/postgres"
	catalogapp "github.com/dwikikusuma/shopping-hub/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/shopping-hub/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/shopping-hub/internal/gateway"
	identityapp "github.com/dwikikusuma/shopping-hub/internal/identity/app"
	identitypg "github.com/dwikikusuma/shopping-hub/internal/identity/infra/postgres"
	"github.com/dwikikusuma/shopping-hub/internal/identity/token"
	orderapp "github.com/dwikikusuma/shopping-hub/internal/order/app"
	orderpg "github.com/dwikikusuma/shopping-hub/internal/order/infra/postgres"
	"github.com/dwikikusuma/shopping-hub/internal/order/infra/redisidem"

	"github.com/dwikikusuma/shopping-hub/pkg/config"
	"github.com/dwikikusuma/shopping-hub/pkg/logger"
	"github.com/dwikikusuma/shopping-hub/pkg/postgres"
	"github.com/dwikikusuma/shopping-hub/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "shopping-hub", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db, err := postgres.Open(postgres.Config{
		Host: cfg.PostgresHost,
		Port: cfg.PostgresPort,
		User: cfg.PostgresUser,
		Pass: cfg.PostgresPass,
		DB:   cfg.PostgresDB,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("redis ping failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer rdb.Close()

	identitySvc := identityapp.NewService(identitypg.NewUserRepo(db), token.NewIssuer(cfg.JWTSecret))
	catalogRepo := catalogpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(catalogRepo)
	cartSvc := cartapp.NewService(cartpg.NewCartRepo(db))
	orderRepo := orderpg.NewOrderRepo(db)
	orderSvc := orderapp.NewService(orderRepo, redisidem.NewStore(rdb))
	adminSvc := adminapp.NewService(catalogRepo, orderRepo)

	srv := gateway.NewServer(log, identitySvc, catalogSvc, cartSvc, orderSvc, adminSvc)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := httpServer.Shutdown(stopCtx); err != nil {
		log.Warn("graceful stop timeout, forcing close", slog.Any("err", err))
		httpServer.Close()
	}

	wg.Wait()
	log.Info("bye")
}
