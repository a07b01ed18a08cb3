package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-event-calendar/internal/calendar/config"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/calendar/seed"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/ratelimit"

	"github.com/spf13/cobra"
)

var (
	seedEventsPath    string
	seedStocksPath    string
	seedDemoPortfolio bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Loads the default stock directory and event catalog",
	Run:   runSeed,
}

func runSeed(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := openDatabase(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, service.NewMockBroker(), ratelimit.NewMemoryLimiter(cfg.Portfolio.SyncWindow), appLogger)
	seeder := seed.NewSeeder(
		repository.NewEventRepository(db.DB),
		repository.NewStockRepository(db.DB),
		portfolioRepo,
		portfolioSvc,
		cfg.Location(),
		appLogger,
	)

	if err := seeder.Run(ctx, seed.Options{
		EventsPath:    seedEventsPath,
		StocksPath:    seedStocksPath,
		DemoPortfolio: seedDemoPortfolio,
	}); err != nil {
		appLogger.Fatal("Seeding failed", logger.ErrorField(err))
	}
	appLogger.Info("Seeding finished")
}
