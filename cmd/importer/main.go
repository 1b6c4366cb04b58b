package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-portal/internal/config"
	"career-portal/internal/database/migration"
	"career-portal/internal/database/postgres"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"
	"career-portal/internal/scraper"
)

func main() {
	targetsPath := flag.String("targets", "import_targets.yaml", "YAML file listing career pages to import")
	pages := flag.Int("pages", 1, "listing pages per target (list_url must contain %d to paginate)")
	workers := flag.Int("workers", 4, "concurrent posting fetches per target")
	rps := flag.Int("rps", 3, "posting fetches per second, 0 for no limit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	targets, err := scraper.LoadTargets(*targetsPath)
	if err != nil {
		lg.Fatal("failed to load targets", "path", *targetsPath, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := postgres.Connect(connectCtx, cfg.Database, lg)
	cancel()
	if err != nil {
		lg.Fatal("failed to connect database", "error", err)
	}
	defer db.Close()

	if err := migration.Up(ctx, db); err != nil {
		lg.Fatal("migration failed", "error", err)
	}

	im := scraper.NewImporter(repository.NewPostgresJobRepository(db), lg, scraper.WithRateLimit(*rps))
	stats, err := im.Run(ctx, targets, *pages, *workers)
	if err != nil {
		lg.Error("import interrupted", "error", err)
	}
	lg.Info("import finished",
		"targets", stats.Targets,
		"listed", stats.Listed,
		"imported", stats.Imported,
		"failed", stats.Failed,
	)
}
