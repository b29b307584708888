package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"

	audithandler "aeroclub/internal/audit/handler"
	auditrepository "aeroclub/internal/audit/repository"
	"aeroclub/pkg/app"
	"aeroclub/pkg/config"
	"aeroclub/pkg/contracts"
	"aeroclub/pkg/kafka"
	kafka_config "aeroclub/pkg/kafka/config"
	kafka_middleware "aeroclub/pkg/kafka/middleware"
)

const (
	ServiceName     = "booking-audit"
	metricsInterval = time.Minute
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	repo := auditrepository.NewMongoEventRepository(cfg)
	eventConsumer := audithandler.NewEventConsumer(repo, cfg.Log)

	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.Log, cfg.BookingEventsTopic, cfg.BookingEventsDLQ, eventConsumer.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.MetricsConsumerMiddleware())
	}

	ctx, cancel := context.WithCancel(context.Background())
	go consume(ctx, cfg, consumer)
	go reportMetrics(ctx, cfg, consumer, metrics)

	serverApp := app.NewApplication()
	serverApp.OnShutdown(func() {
		cancel()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
		metrics.LogSnapshot(cfg.Log)
	})
	serverApp.SetApp(cfg,
		[]contracts.Handler{audithandler.NewHistoryHandler(repo, cfg.Log)},
		contracts.PingFunc{Dependency: "mongo", Fn: func(ctx context.Context) error {
			return cfg.Client.Mongo.Ping(ctx, nil)
		}},
	)

	cfg.Log.Info("Starting Booking audit service", "topic", cfg.BookingEventsTopic, "group_id", kafkaCfg.ConsumerGroupID)
	serverApp.Run()
}

// consume runs the consumer until ctx is cancelled. An unexpected stop takes
// the process down so the orchestrator restarts it.
func consume(ctx context.Context, cfg *config.Config, consumer *kafka.Consumer) {
	err := consumer.Start(ctx)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, kafka.ErrConsumerClosed) {
		return
	}
	cfg.Log.Error("Kafka consumer stopped", "error", err)
	if p, findErr := os.FindProcess(os.Getpid()); findErr == nil {
		_ = p.Signal(syscall.SIGTERM)
	}
}

func reportMetrics(ctx context.Context, cfg *config.Config, consumer *kafka.Consumer, metrics *kafka_middleware.Metrics) {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.LogSnapshot(cfg.Log)
			cfg.Log.Info("kafka consumer lag", "lag", consumer.Lag())
		}
	}
}
