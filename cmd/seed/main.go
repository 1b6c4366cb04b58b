package main

import (
	"context"
	"log"
	"time"

	"career-portal/internal/config"
	"career-portal/internal/database/migration"
	"career-portal/internal/database/postgres"
	"career-portal/internal/database/seeder"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database, lg)
	if err != nil {
		lg.Fatal("failed to connect database", "error", err)
	}
	defer db.Close()

	if err := migration.Up(ctx, db); err != nil {
		lg.Fatal("migration failed", "error", err)
	}

	seeders, err := seeder.Defaults(
		repository.NewPostgresJobRepository(db),
		repository.NewPostgresCourseRepository(db),
	)
	if err != nil {
		lg.Fatal("invalid seed catalog", "error", err)
	}

	if err := (seeder.Runner{Seeders: seeders, Logger: lg}).Run(ctx); err != nil {
		lg.Fatal("seed failed", "error", err)
	}
	lg.Info("seed completed")
}
