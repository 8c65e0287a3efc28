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

	httptransport "github.com/spec-kit/crm-gateway/internal/api/http"
	"github.com/spec-kit/crm-gateway/internal/api/http/handlers"
	"github.com/spec-kit/crm-gateway/internal/auth"
	"github.com/spec-kit/crm-gateway/internal/config"
	"github.com/spec-kit/crm-gateway/internal/events"
	"github.com/spec-kit/crm-gateway/internal/observability"
	"github.com/spec-kit/crm-gateway/internal/persistence"
	"github.com/spec-kit/crm-gateway/internal/repository"
	"github.com/spec-kit/crm-gateway/internal/service"
	"github.com/spec-kit/crm-gateway/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	agencyRepo := repository.NewAgencyRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	entityRepo := repository.NewEntityRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(func(event events.Event, err error) {
		logger.Error("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("interaction_id", event.InteractionID),
			zap.Error(err))
	})

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		AgencyRepo:        agencyRepo,
		PasswordResetRepo: resetRepo,
	})
	suggestionService := service.NewSuggestionService(redis.Client, cfg.CRM.SuggestionLimit, logger)
	statusService := service.NewStatusService(statusRepo, logger)
	entityService := service.NewEntityService(entityRepo, contactRepo)
	interactionService := service.NewInteractionService(service.InteractionDependencies{
		InteractionRepo: interactionRepo,
		EventRepo:       eventRepo,
		EntityRepo:      entityRepo,
		ContactRepo:     contactRepo,
		StatusRepo:      statusRepo,
		Suggestions:     suggestionService,
		Dispatcher:      dispatcher,
		Logger:          logger,
		InternalCompany: cfg.CRM.InternalCompanyName,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	reminderWorker := worker.NewReminderWorker(interactionRepo, agencyRepo,
		time.Duration(cfg.CRM.ReminderScanSeconds)*time.Second, logger)
	reminderWorker.Start()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Interactions:   handlers.NewInteractionsHandler(interactionService),
		Entities:       handlers.NewEntitiesHandler(entityService, suggestionService),
		Statuses:       handlers.NewStatusesHandler(statusService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	reminderWorker.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
