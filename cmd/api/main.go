package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staff-service/internal/api/http"
	"github.com/spec-kit/staff-service/internal/api/http/handlers"
	"github.com/spec-kit/staff-service/internal/auth"
	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/events"
	"github.com/spec-kit/staff-service/internal/feed"
	"github.com/spec-kit/staff-service/internal/observability"
	"github.com/spec-kit/staff-service/internal/persistence"
	"github.com/spec-kit/staff-service/internal/repository"
	"github.com/spec-kit/staff-service/internal/service"
	"github.com/spec-kit/staff-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.App.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	// accounts and messages live only in Postgres
	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var messageFeed feed.Closer
	switch cfg.Feed.Driver {
	case config.FeedDriverRedis:
		messageFeed = feed.NewRedisFeed(redis.Client, cfg.Feed.BufferSize, logger)
	default:
		messageFeed = feed.NewMemoryFeed(cfg.Feed.BufferSize, logger)
	}
	defer messageFeed.Close() //nolint:errcheck

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	var (
		staffRepo repository.StaffRepository
		shiftRepo repository.ShiftRepository
	)
	switch cfg.Roster.Source {
	case config.RosterSourcePostgres:
		staffRepo = repository.NewCachedStaffRepository(repository.NewStaffRepository(pool), redis.Client, cfg.Roster.StaffCacheTTL(), logger)
		shiftRepo = repository.NewShiftRepository(pool)
		// refresh at half the TTL so readers keep hitting a warm entry
		worker.StartStaffCacheWarmer(ctx, staffRepo, cfg.Roster.StaffCacheTTL()/2, logger)
	default:
		static := repository.NewStaticRoster(time.Now, loc)
		staffRepo = static.Staff()
		shiftRepo = static.Shifts()
	}
	logger.Info("roster source selected", zap.String("source", cfg.Roster.Source), zap.String("feed", cfg.Feed.Driver))

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, messageFeed, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	rosterService := service.NewRosterService(service.RosterDependencies{
		StaffRepo: staffRepo,
		ShiftRepo: shiftRepo,
		Location:  loc,
	}, logger)
	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Feed:        messageFeed,
	}, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Roster:         handlers.NewRosterHandler(rosterService),
		Messages:       handlers.NewMessagesHandler(messageService, logger, 0),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	// closing the feed first ends open message streams so Shutdown can drain
	_ = messageFeed.Close()
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
