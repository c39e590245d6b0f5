package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/agrolink/marketplace-service/internal/api/http"
	"github.com/agrolink/marketplace-service/internal/api/http/handlers"
	"github.com/agrolink/marketplace-service/internal/auth"
	"github.com/agrolink/marketplace-service/internal/config"
	"github.com/agrolink/marketplace-service/internal/events"
	"github.com/agrolink/marketplace-service/internal/observability"
	"github.com/agrolink/marketplace-service/internal/persistence"
	"github.com/agrolink/marketplace-service/internal/repository"
	"github.com/agrolink/marketplace-service/internal/service"
	"github.com/agrolink/marketplace-service/internal/worker"
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

	store, err := persistence.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init store", zap.Error(err))
	}
	defer store.Close()

	userRepo := repository.NewUserRepository(store)
	messageRepo := repository.NewMessageRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	identityService := service.NewIdentityService(*cfg, service.IdentityDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Dispatcher:  dispatcher,
	})
	reputationService := service.NewReputationService(userRepo, dispatcher)
	matchingService := service.NewMatchingService(userRepo)
	chatService := service.NewChatService(messageRepo, dispatcher, logger, cfg.Chat.RefreshInterval())
	assistantService := service.NewAssistantService(cfg.Assistant, logger)
	attachmentService := service.NewAttachmentService()

	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	worker.StartMessageRefresher(ctx, chatService)

	authMiddleware := auth.NewMiddleware(identityService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{BodyLimit: 8 << 20})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, metrics),
		Users:          handlers.NewUsersHandler(identityService),
		Profile:        handlers.NewProfileHandler(identityService, reputationService),
		Matches:        handlers.NewMatchesHandler(matchingService),
		Chat:           handlers.NewChatHandler(chatService, identityService, attachmentService),
		Assistant:      handlers.NewAssistantHandler(assistantService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
