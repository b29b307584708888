package main

import (
	"context"

	aircrafthandler "aeroclub/internal/aircraft/handler"
	aircraftrepository "aeroclub/internal/aircraft/repository"
	aircraftservice "aeroclub/internal/aircraft/service"
	aircraftvalidator "aeroclub/internal/aircraft/validator"
	logbookhandler "aeroclub/internal/logbook/handler"
	logbookrepository "aeroclub/internal/logbook/repository"
	logbookservice "aeroclub/internal/logbook/service"
	logbookvalidator "aeroclub/internal/logbook/validator"
	profilehandler "aeroclub/internal/profiles/handler"
	profilerepository "aeroclub/internal/profiles/repository"
	profileservice "aeroclub/internal/profiles/service"
	profilevalidator "aeroclub/internal/profiles/validator"
	"aeroclub/pkg/app"
	"aeroclub/pkg/config"
	"aeroclub/pkg/contracts"
)

const ServiceName = "members"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Members service")
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, initHandlers(cfg), contracts.PingFunc{
		Dependency: "mongo",
		Fn: func(ctx context.Context) error {
			return cfg.Client.Mongo.Ping(ctx, nil)
		},
	})
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	aircraftService := aircraftservice.NewAircraftService(
		aircraftrepository.NewMongoAircraftRepository(cfg),
		aircraftvalidator.NewAircraftValidator(cfg.Log),
		cfg,
	)
	logEntryService := logbookservice.NewLogEntryService(
		logbookrepository.NewMongoLogEntryRepository(cfg),
		logbookvalidator.NewLogEntryValidator(cfg.Log),
		cfg,
	)
	profileService := profileservice.NewProfileService(
		profilerepository.NewMongoProfileRepository(cfg),
		profilevalidator.NewProfileValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Member services initialized", "database", cfg.MongoDatabaseName)
	return []contracts.Handler{
		aircrafthandler.NewAircraftHandler(aircraftService, cfg.Log),
		logbookhandler.NewLogEntryHandler(logEntryService, cfg.Log),
		profilehandler.NewProfileHandler(profileService, cfg.Log),
	}
}
