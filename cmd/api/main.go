package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/srgjo27/venue_booking/internal/adapter/cache"
	"github.com/srgjo27/venue_booking/internal/adapter/handler"
	"github.com/srgjo27/venue_booking/internal/adapter/mq"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/sqlite"
	"github.com/srgjo27/venue_booking/internal/adapter/storage"
	"github.com/srgjo27/venue_booking/internal/core/ports"
	"github.com/srgjo27/venue_booking/internal/core/services"
	"github.com/srgjo27/venue_booking/internal/platform/config"
	"github.com/srgjo27/venue_booking/internal/platform/database"
	"github.com/srgjo27/venue_booking/internal/platform/logging"
	"github.com/srgjo27/venue_booking/internal/platform/metrics"
)

type repositories struct {
	calendar  ports.CalendarRepository
	bookings  ports.BookingRepository
	occasions ports.OccasionRepository
	close     func() error
}

func openRepositories(ctx context.Context, cfg config.App, logger zerolog.Logger) (*repositories, error) {
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.NewPostgresDB(ctx, database.Config{
			Driver:   cfg.DBDriver,
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &repositories{
			calendar:  postgres.NewCalendarRepository(db),
			bookings:  postgres.NewBookingRepository(db),
			occasions: postgres.NewOccasionRepository(db),
			close:     db.Close,
		}, nil

	case "sqlite":
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", store.Path()).Msg("sqlite store opened")
		return &repositories{
			calendar:  store.Calendar(),
			bookings:  store.Bookings(),
			occasions: store.Occasions(),
			close:     store.Close,
		}, nil
	}

	logger.Warn().Msg("using in-memory store, data is lost on restart")
	return &repositories{
		calendar:  memory.NewCalendarRepository(),
		bookings:  memory.NewBookingRepository(),
		occasions: memory.NewOccasionRepository(),
		close:     func() error { return nil },
	}, nil
}

func openPhotoStore(ctx context.Context, cfg config.App) (ports.PhotoStore, error) {
	if cfg.PhotoDriver == "s3" {
		return storage.NewS3PhotoStore(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	}
	return storage.NewFSPhotoStore(cfg.PhotoDir)
}

func main() {
	cfg, err := config.Load()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	calendarRepo := repos.calendar
	if cfg.RedisAddr != "" {
		logger.Info().Str("addr", cfg.RedisAddr).Msg("connecting to redis")
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		calendarRepo = cache.NewCalendarRepository(calendarRepo, redisClient, cfg.CacheTTL, logger)
	}

	photos, err := openPhotoStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.PhotoDriver).Msg("failed to open photo store")
	}

	recorder := metrics.NewRecorder()
	opts := services.BookingOptions{
		Location:          cfg.Location(),
		CompensateUpdates: cfg.CompensateUpdates,
		Photos:            photos,
		Observer:          recorder,
	}

	if cfg.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer publisher.Close()
		opts.Publisher = publisher
	}

	calendarService := services.NewCalendarService(calendarRepo, logger)
	bookingService := services.NewBookingService(repos.bookings, calendarRepo, logger, opts)
	occasionService := services.NewOccasionService(repos.occasions)

	if cfg.SeedDemoData {
		if err := calendarService.Seed(ctx, services.DemoCatalogue()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed calendar")
		}
	}

	router := handler.NewRouter(handler.RouterConfig{
		Calendar:   handler.NewCalendarHandler(calendarService),
		Bookings:   handler.NewBookingHandler(bookingService),
		Occasions:  handler.NewOccasionHandler(occasionService),
		Metrics:    recorder.Handler(),
		Middleware: []func(http.Handler) http.Handler{logging.RequestLogging(logger)},
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server startup failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}
