package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/polkiloo/fundraiser/internal/logger"
	"github.com/polkiloo/fundraiser/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	var (
		file     = flag.String("f", "rewards.yaml", "YAML file describing reward tiers")
		dsn      = flag.String("d", os.Getenv("DATABASE_URI"), "PostgreSQL DSN")
		logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(*logLevel)
	if err := run(ctx, *file, *dsn, log); err != nil {
		log.Error("reward seed failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, file, dsn string, log *slog.Logger) error {
	if dsn == "" {
		return fmt.Errorf("database URI must be provided")
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open tiers file: %w", err)
	}
	defer func() { _ = f.Close() }()

	tiers, err := loadTiers(f)
	if err != nil {
		return err
	}

	storage, err := postgres.New(ctx, dsn, log)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := seed(ctx, storage.Rewards(), tiers); err != nil {
		return err
	}
	log.Info("reward tiers seeded", slog.String("file", file), slog.Int("count", len(tiers)))
	return nil
}
