package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/way2pg/way2pg-api/internal/api"
	"github.com/way2pg/way2pg-api/internal/core/service"
	"github.com/way2pg/way2pg-api/internal/infrastructure/config"
	mongodb "github.com/way2pg/way2pg-api/internal/infrastructure/db/mongo"
	redisdb "github.com/way2pg/way2pg-api/internal/infrastructure/db/redis"
	"github.com/way2pg/way2pg-api/internal/infrastructure/mail"
	"github.com/way2pg/way2pg-api/internal/infrastructure/queue"
	"github.com/way2pg/way2pg-api/pkg/logger"
)

// @title           Way2PG API
// @version         1.0
// @description     Student accommodation marketplace backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Indexes ---
	repos := api.NewRepositories(db)
	if err := repos.Users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := repos.Accommodations.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("accommodation indexes failed")
	}
	if err := repos.Bookings.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("booking indexes failed")
	}

	// --- Mail + notification pipeline ---
	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	dedup := redisdb.NewNotificationDedup(rdb)
	notificationService := service.NewNotificationService(mailer, dedup, log)
	dispatcher := queue.NewDispatcher(0, notificationService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, repos, mailer, dispatcher, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
