package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/learnhub-backend/internal/api"
	"github.com/baharkarakas/learnhub-backend/internal/auth"
	"github.com/baharkarakas/learnhub-backend/internal/config"
	"github.com/baharkarakas/learnhub-backend/internal/db"
	"github.com/baharkarakas/learnhub-backend/internal/logger"
	"github.com/baharkarakas/learnhub-backend/internal/metrics"
	"github.com/baharkarakas/learnhub-backend/internal/middleware"
	"github.com/baharkarakas/learnhub-backend/internal/repository"
	"github.com/baharkarakas/learnhub-backend/internal/repository/memory"
	"github.com/baharkarakas/learnhub-backend/internal/repository/postgres"
	"github.com/baharkarakas/learnhub-backend/internal/services"
	"github.com/baharkarakas/learnhub-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accounts, profiles, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	wp := worker.NewPool(cfg.HashWorkers)
	defer wp.Stop()

	hasher, err := auth.NewHasher(cfg.BcryptCost, wp)
	if err != nil {
		log.Error("hasher", "err", err)
		os.Exit(1)
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		log.Error("token service", "err", err)
		os.Exit(1)
	}

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Log:      log,
		Accounts: services.NewAccountService(accounts, hasher, tokens, log),
		Profiles: services.NewProfileService(profiles, log),
		Gate:     middleware.NewAuthMiddleware(tokens, accounts, log, cfg.ExposeErrors()),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.StoreDriver, "bcrypt_cost", hasher.Cost())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Accounts, repository.Profiles, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on exit")
		s := memory.New()
		return s.Accounts(), s.Profiles(), func() {}, nil
	}

	if cfg.Migrate {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, nil, err
		}
		log.Info("migrations applied")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	repos := postgres.NewRepositories(pool)
	return repos.Accounts, repos.Profiles, pool.Close, nil
}
