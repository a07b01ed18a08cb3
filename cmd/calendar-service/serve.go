package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-event-calendar/internal/calendar/config"
	delivery "stock-event-calendar/internal/calendar/delivery/http"
	_ "stock-event-calendar/internal/calendar/docs"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/telegram"
	"stock-event-calendar/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
)

const (
	jobCatalogRefresh = "catalog-refresh"
	jobUpcomingDigest = "upcoming-digest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the calendar service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
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

	appLogger.Info("Starting Calendar Service", logger.Field("name", cfg.App.Name))
	loc := cfg.Location()

	db, err := openDatabase(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := openRedis(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	kv := newKVStore(cfg, redisClient, appLogger)
	syncLimiter := newSyncLimiter(cfg, redisClient)

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db.DB)
	stockRepo := repository.NewStockRepository(db.DB)
	placementRepo := repository.NewPlacementRepository(db.DB)
	voteRepo := repository.NewVoteRepository(db.DB)
	prefRepo := repository.NewUserPreferenceRepository(db.DB)
	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	executionRepo := repository.NewJobExecutionRepository(db.DB)

	// Initialize services
	catalog := service.NewEventCatalog(eventRepo, loc, appLogger)
	utils.GoSafe(func() {
		if err := catalog.Refresh(ctx); err != nil {
			appLogger.Warn("Initial catalog load failed", logger.ErrorField(err))
		}
	})

	voteSvc := service.NewVoteService(voteRepo, catalog, appLogger)
	placementSvc := service.NewPlacementService(placementRepo, catalog, loc, appLogger)
	board := service.NewCalendarBoard(catalog, service.NewPlacementStore(kv), voteSvc, service.BoardOptions{
		Location:       loc,
		VisiblePerDay:  cfg.Calendar.VisibleEventsDay,
		NoticeDuration: cfg.Calendar.NoticeDuration,
	}, appLogger)
	engine := service.NewRecommendationEngine(service.RulesFromConfig(cfg.Recommendation))
	onboardingSvc := service.NewOnboardingService(prefRepo, stockRepo, engine, appLogger)
	stockSvc := service.NewStockService(stockRepo, kv, cfg.Calendar.RecentSearchLimit, appLogger)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, service.NewMockBroker(), syncLimiter, appLogger)

	schedulerSvc, err := newScheduler(cfg, catalog, executionRepo, loc, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize scheduler", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	identity := delivery.NewIdentity(cfg.Identity)
	delivery.Register(e, identity, delivery.Handlers{
		System:     delivery.NewSystemHandler(cfg.App.Name, identity, schedulerSvc, appLogger),
		Event:      delivery.NewEventHandler(catalog, appLogger),
		Calendar:   delivery.NewCalendarHandler(board, placementSvc, loc, appLogger),
		Vote:       delivery.NewVoteHandler(voteSvc, appLogger),
		Onboarding: delivery.NewOnboardingHandler(onboardingSvc, identity, appLogger),
		Stock:      delivery.NewStockHandler(stockSvc, identity, appLogger),
		Portfolio:  delivery.NewPortfolioHandler(portfolioSvc, appLogger),
	}, appLogger)

	e.GET("/swagger/*", swagger.WrapHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schedulerSvc.Start(gctx)
		return nil
	})
	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", logger.ErrorField(err))
	}
	appLogger.Info("Server exiting")
}

func newScheduler(
	cfg *config.Config,
	catalog service.EventCatalog,
	history repository.JobExecutionRepository,
	loc *time.Location,
	appLogger *logger.Logger,
) (service.SchedulerService, error) {
	schedulerSvc := service.NewSchedulerService(history, appLogger, loc)

	if err := schedulerSvc.Register(service.Job{
		Name:     jobCatalogRefresh,
		Schedule: cfg.Catalog.RefreshSchedule,
		Run:      catalog.Refresh,
	}); err != nil {
		return nil, err
	}

	if !cfg.Digest.Enabled {
		return schedulerSvc, nil
	}

	notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	digest := service.NewDigestService(catalog, notifier, cfg.Digest.DaysAhead, loc, appLogger)
	if err := schedulerSvc.Register(service.Job{
		Name:     jobUpcomingDigest,
		Schedule: cfg.Digest.Schedule,
		Run:      digest.SendUpcoming,
	}); err != nil {
		return nil, err
	}
	return schedulerSvc, nil
}
