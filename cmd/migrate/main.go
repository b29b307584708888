package main

import (
	"context"
	"time"

	mongoMigration "aeroclub/internal/migrations/mongo"
	sqlMigration "aeroclub/internal/migrations/postgres"
	"aeroclub/pkg/config"
)

const (
	JobName      = "migrate"
	migrationTTL = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTTL)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	if cfg.StoreDriver == config.StoreDriverPostgres {
		cfg.SetPostgres()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting migration job", "store_driver", cfg.StoreDriver)

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log); err != nil {
		cfg.Log.Error("Mongo migration failed", "error", err)
		cancel()
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed")
	}

	if cfg.Client.Postgres != nil {
		if err := sqlMigration.RunMigration(ctx, cfg.Client.Postgres, cfg.Log); err != nil {
			cfg.Log.Error("SQL migration failed", "error", err)
			cancel()
			cfg.GracefulShutdown()
			cfg.Log.Fatal("Migration failed")
		}
	}

	cfg.Log.Info("Migration completed successfully")
}
