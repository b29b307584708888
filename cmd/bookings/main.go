package main

import (
	"context"
	"time"

	aircraftrepository "aeroclub/internal/aircraft/repository"
	aircraftservice "aeroclub/internal/aircraft/service"
	aircraftvalidator "aeroclub/internal/aircraft/validator"
	"aeroclub/internal/bookings/events"
	"aeroclub/internal/bookings/handler"
	"aeroclub/internal/bookings/repository"
	"aeroclub/internal/bookings/service"
	"aeroclub/internal/bookings/validator"
	"aeroclub/pkg/app"
	"aeroclub/pkg/config"
	"aeroclub/pkg/contracts"
	"aeroclub/pkg/kafka"
	kafka_config "aeroclub/pkg/kafka/config"
	kafka_middleware "aeroclub/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.StoreDriver == config.StoreDriverPostgres {
		cfg.SetPostgres()
	}
	if cfg.BookingLockBackend == config.LockBackendRedis {
		cfg.SetRedis()
	}

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication()

	publisher := initPublisher(cfg, serverApp)
	bookingService := initServices(cfg, publisher)

	serverApp.SetApp(cfg, []contracts.Handler{handler.NewBookingHandler(bookingService, cfg.Log)}, dependencies(cfg)...)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	var bookingRepo repository.BookingRepository
	if cfg.StoreDriver == config.StoreDriverPostgres {
		bookingRepo = repository.NewSQLBookingRepository(cfg.Client.Postgres, cfg.ReadTimeout, cfg.WriteTimeout)
	} else {
		bookingRepo = repository.NewMongoBookingRepository(cfg)
	}

	var locker repository.Locker
	if cfg.BookingLockBackend == config.LockBackendRedis {
		locker = repository.NewRedisLocker(cfg.Client.Redis)
	} else {
		locker = repository.NewMongoLocker(cfg)
	}

	aircraftService := aircraftservice.NewAircraftService(
		aircraftrepository.NewMongoAircraftRepository(cfg),
		aircraftvalidator.NewAircraftValidator(cfg.Log),
		cfg,
	)

	bookingService := service.NewBookingService(
		bookingRepo,
		locker,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		aircraftService,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"store_driver", cfg.StoreDriver,
		"write_mode", cfg.BookingWriteMode,
		"lock_backend", cfg.BookingLockBackend,
	)
	return bookingService
}

// initPublisher returns a no-op publisher unless event publishing is enabled.
func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.PublishEvents {
		cfg.Log.Info("Booking event publishing disabled")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.BookingEventsTopic, cfg.BookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.MetricsProducerMiddleware())
	}

	serverApp.OnShutdown(func() {
		metrics.LogSnapshot(cfg.Log)
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return events.NewKafkaPublisher(producer, cfg.Log)
}

func dependencies(cfg *config.Config) []contracts.Pinger {
	deps := []contracts.Pinger{
		contracts.PingFunc{Dependency: "mongo", Fn: func(ctx context.Context) error {
			return cfg.Client.Mongo.Ping(ctx, nil)
		}},
	}
	if cfg.Client.Postgres != nil {
		deps = append(deps, contracts.PingFunc{Dependency: "postgres", Fn: func(ctx context.Context) error {
			sqlDB, err := cfg.Client.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}})
	}
	if cfg.Client.Redis != nil {
		deps = append(deps, contracts.PingFunc{Dependency: "redis", Fn: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return cfg.Client.Redis.Ping(ctx).Err()
		}})
	}
	return deps
}
