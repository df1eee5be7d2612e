package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oakmart/storefront-api/internal/api"
	"github.com/oakmart/storefront-api/internal/core/ports"
	"github.com/oakmart/storefront-api/internal/core/service"
	"github.com/oakmart/storefront-api/internal/infrastructure/config"
	mongostore "github.com/oakmart/storefront-api/internal/infrastructure/db/mongo"
	redisstore "github.com/oakmart/storefront-api/internal/infrastructure/db/redis"
	httphandlers "github.com/oakmart/storefront-api/internal/infrastructure/http/handlers"
	"github.com/oakmart/storefront-api/internal/infrastructure/store/jsonfile"
	"github.com/oakmart/storefront-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Msg("starting storefront api")

	if cfg.UsingDefaultSecret() {
		log.Warn().Msg("JWT_SECRET is the shipped default; override it before exposing the service")
	}

	repos, checks, cleanup, err := buildRepositories(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise storage")
	}
	defer cleanup()

	var cache service.ProductCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		cache = redisstore.NewProductCache(rdb, log)
		checks = append(checks, httphandlers.Check{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	authService := service.NewAuthService(repos.users, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(repos.users, cfg.BcryptCost, service.BootstrapConfig{
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	}, log)
	productService := service.NewProductService(repos.products, cache, log)
	orderService := service.NewOrderService(repos.orders, log)

	if err := userService.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap user directory")
	}

	e := api.NewRouter(api.Services{
		Auth:     authService,
		Users:    userService,
		Products: productService,
		Orders:   orderService,
	}, log, httphandlers.NewReadinessHandler(checks...))

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

type repositories struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
}

// buildRepositories selects the collection backend from configuration and
// returns the repositories plus the readiness checks for that backend.
func buildRepositories(ctx context.Context, cfg *config.Config) (repositories, []httphandlers.Check, func(), error) {
	switch cfg.Store.Driver {
	case "jsonfile":
		st, err := jsonfile.New(cfg.Store.DataDir)
		if err != nil {
			return repositories{}, nil, nil, err
		}
		check := httphandlers.Check{
			Name: "datadir",
			Probe: func(context.Context) error {
				f, err := os.CreateTemp(st.Dir(), "ready-*.tmp")
				if err != nil {
					return err
				}
				f.Close()
				return os.Remove(f.Name())
			},
		}
		return repositories{
			users:    jsonfile.NewUserRepository(st),
			products: jsonfile.NewProductRepository(st),
			orders:   jsonfile.NewOrderRepository(st),
		}, []httphandlers.Check{check}, func() {}, nil

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return repositories{}, nil, nil, err
		}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}

		users := mongostore.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			cleanup()
			return repositories{}, nil, nil, err
		}

		check := httphandlers.Check{
			Name:  "mongodb",
			Probe: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}
		return repositories{
			users:    users,
			products: mongostore.NewProductRepository(db),
			orders:   mongostore.NewOrderRepository(db),
		}, []httphandlers.Check{check}, cleanup, nil

	default:
		return repositories{}, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
