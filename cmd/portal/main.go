package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/edis-imaging/client-portal/internal/api"
	"github.com/edis-imaging/client-portal/internal/core/service"
	"github.com/edis-imaging/client-portal/internal/infrastructure/config"
	mongodb "github.com/edis-imaging/client-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/edis-imaging/client-portal/internal/infrastructure/db/redis"
	"github.com/edis-imaging/client-portal/internal/infrastructure/media"
	"github.com/edis-imaging/client-portal/internal/infrastructure/notify"
	"github.com/edis-imaging/client-portal/internal/infrastructure/queue"
	"github.com/edis-imaging/client-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	clients := mongodb.NewClientRepository(db)
	projects := mongodb.NewProjectRepository(db)
	deliverables := mongodb.NewDeliverableRepository(db)
	accessLogs := mongodb.NewAccessLogRepository(db)
	timeline := mongodb.NewTimelineRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"clients":      clients,
		"projects":     projects,
		"deliverables": deliverables,
		"access_logs":  accessLogs,
		"timeline":     timeline,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Outbound notifications ---
	notifier, err := notify.NewSMTPNotifier(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("smtp setup failed")
	}
	dispatcher := queue.NewDispatcher(0, notifier, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	storage := media.NewCloudinaryStorage(cfg.Cloudinary.CloudName, cfg.Cloudinary.APISecret)
	emails := notify.NewEmailBuilder(cfg.PortalBaseURL, cfg.Admin.Email)

	provisioning := service.NewProvisioningService(
		clients, projects, timeline,
		service.NewCredentialIssuer(),
		redisdb.NewDedupChecker(rdb),
		emails, dispatcher,
		cfg.ActivateOnDeposit,
		log,
	)
	auth := service.NewAuthService(clients, cfg.JWTSecret, service.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, log)
	deliverableSvc := service.NewDeliverableService(deliverables, clients, accessLogs, storage, log)

	e := api.NewRouter(api.Deps{
		Provisioning:  provisioning,
		Auth:          auth,
		Deliverables:  deliverableSvc,
		Clients:       clients,
		Projects:      projects,
		Timeline:      timeline,
		Mongo:         db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		WebhookSecret: cfg.WebhookSecret,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portal API listening")
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
