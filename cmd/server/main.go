package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/shiftline/staff-scheduler/internal/api"
	"github.com/shiftline/staff-scheduler/internal/core/service"
	"github.com/shiftline/staff-scheduler/internal/core/token"
	"github.com/shiftline/staff-scheduler/internal/infrastructure/config"
	mongodb "github.com/shiftline/staff-scheduler/internal/infrastructure/db/mongo"
	redisdb "github.com/shiftline/staff-scheduler/internal/infrastructure/db/redis"
	"github.com/shiftline/staff-scheduler/internal/infrastructure/queue"
	"github.com/shiftline/staff-scheduler/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Staff Scheduler API
// @version      1.0
// @description  Shift scheduling service with token-based authentication.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Missing .env is fine, variables may come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The singleton is not initialised yet, so fail through a plain
		// stderr logger to keep the configuration error readable.
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	shiftRepo := mongodb.NewShiftRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := shiftRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create shift indexes")
	}

	auditService := service.NewAuditTrailService(mongodb.NewAuditRepository(db))
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:  db,
		Redis:  redisClient,
		Issuer: token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Audit:  dispatcher,
		Log:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
