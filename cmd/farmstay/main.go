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

	"farmstay/internal/app/access"
	"farmstay/internal/app/commands"
	availabilityapp "farmstay/internal/app/handlers/availability"
	farmapp "farmstay/internal/app/handlers/farms"
	imageapp "farmstay/internal/app/handlers/images"
	"farmstay/internal/app/middleware"
	appoutbox "farmstay/internal/app/outbox"
	"farmstay/internal/app/queries"
	"farmstay/internal/app/uow"
	"farmstay/internal/infra/broker/kafka"
	"farmstay/internal/infra/config"
	mongodb "farmstay/internal/infra/db/mongo"
	ginserver "farmstay/internal/infra/http/gin"
	"farmstay/internal/infra/obs"
	"farmstay/internal/infra/storage/memory"
	"farmstay/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
	producer *kafka.Producer
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		uowFactory uow.Factory
		ready      = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			return application{}, err
		}
		uowFactory = mongodb.Factory{
			DB:               client.DB,
			FarmsRepo:        mongodb.NewFarmRepository(client.DB),
			AvailabilityRepo: mongodb.NewAvailabilityRepository(client.DB),
			ImagesRepo:       mongodb.NewImageRepository(client.DB),
		}
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		uowFactory = memory.Factory{
			FarmsRepo:        memory.NewFarmRepository(),
			AvailabilityRepo: memory.NewAvailabilityRepository(),
			ImagesRepo:       memory.NewImageRepository(),
		}
	}

	var producer *kafka.Producer
	var box appoutbox.Outbox
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka unavailable, events will be dropped", "error", err)
		} else {
			producer = p
		}
		box = kafka.NewPublishingOutbox(producer, cfg.KafkaTopicPrefix, logger)
	} else {
		box = memory.NewOutbox()
	}

	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("s3 unavailable, uploads disabled", "error", err)
		} else {
			uploader = client
		}
	}

	guard := access.Guard{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, farmapp.CreateFarmCommand{}.Key(), &farmapp.CreateFarmHandler{UoWFactory: uowFactory, Outbox: box})
	commands.RegisterHandler(commandBus, farmapp.UpdateFarmCommand{}.Key(), &farmapp.UpdateFarmHandler{UoWFactory: uowFactory, Guard: guard, Outbox: box})
	commands.RegisterHandler(commandBus, availabilityapp.SetDaysCommand{}.Key(), &availabilityapp.SetDaysHandler{UoWFactory: uowFactory, Guard: guard, Outbox: box})
	commands.RegisterHandler(commandBus, imageapp.UploadImageCommand{}.Key(), &imageapp.UploadImageHandler{UoWFactory: uowFactory, Guard: guard, Uploader: uploader, Outbox: box})
	commands.RegisterHandler(commandBus, imageapp.RemoveImageCommand{}.Key(), &imageapp.RemoveImageHandler{UoWFactory: uowFactory, Guard: guard, Outbox: box})
	commands.RegisterHandler(commandBus, imageapp.SetPrimaryCommand{}.Key(), &imageapp.SetPrimaryHandler{UoWFactory: uowFactory, Guard: guard, Outbox: box})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, farmapp.ListFarmsQuery{}.Key(), &farmapp.ListFarmsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, farmapp.GetFarmQuery{}.Key(), &farmapp.GetFarmHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, availabilityapp.CheckStayQuery{}.Key(), &availabilityapp.CheckStayHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, imageapp.ListImagesQuery{}.Key(), &imageapp.ListImagesHandler{UoWFactory: uowFactory})

	// OutboxFlush sits outside Transaction so events reach the broker only
	// after the storage transaction has committed.
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.OutboxFlush(box),
		middleware.Transaction(uowFactory),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	var authMW ginserver.AuthMiddleware
	if cfg.JWTSecret != "" {
		authMW = ginserver.AuthMiddleware{Secret: []byte(cfg.JWTSecret), Logger: logger}
	} else {
		logger.Warn("JWT_SECRET not set, requests are anonymous")
	}

	return application{
		handlers: ginserver.Handlers{
			Farm:           ginserver.FarmHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
			Availability:   ginserver.AvailabilityHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
			Image:          ginserver.ImageHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Uploader: uploader, Logger: logger},
			AuthMiddleware: authMW.Handle,
		},
		ready:    ready,
		producer: producer,
	}, nil
}

func (a application) close(logger *slog.Logger) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Error("kafka producer close failed", "error", err)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
