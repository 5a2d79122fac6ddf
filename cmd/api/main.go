package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/config"
	"github.com/Ankitkushwaha90/techforge/internal/database"
	"github.com/Ankitkushwaha90/techforge/internal/handler"
	"github.com/Ankitkushwaha90/techforge/internal/middleware"
	"github.com/Ankitkushwaha90/techforge/internal/observability"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
	"github.com/Ankitkushwaha90/techforge/internal/router"
	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/pkg/backend"
	cloud "github.com/Ankitkushwaha90/techforge/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	observability.RegisterMetrics()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// NATS is optional: without it activity events are stored but not
	// fanned out to downstream consumers.
	var events *nats.Conn
	if cfg.NATSURL != "" {
		events, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer events.Close()
	} else {
		logger.Warn().Msg("nats url not configured, activity events will not be published")
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cld, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cld
	} else {
		logger.Warn().Msg("cloudinary not configured, file uploads are disabled")
	}

	backendClient, err := backend.New(backend.Config{
		BaseURL: cfg.BackendAPIURL,
		Timeout: cfg.BackendTimeout,
	}, redisClient, logger)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}
	if cfg.BackendUsername != "" {
		if err := backendClient.Authenticate(context.Background(), cfg.BackendUsername, cfg.BackendPassword); err != nil {
			logger.Warn().Err(err).Msg("backend authentication failed, continuing unauthenticated")
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityRepository(db)
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	forumRepo := repository.NewForumRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	contactRepo := repository.NewContactRepository(db)

	activityService := service.NewActivityService(activityRepo, events, logger)
	authService := service.NewAuthService(userRepo, uploader, validate, cfg.JWTSecret, cfg.JWTRefreshSecret, logger)
	catalogService := service.NewCatalogService(catalogRepo, activityService, validate, logger)
	forumService := service.NewForumService(forumRepo, activityService, validate, logger)
	resourceService := service.NewResourceService(resourceRepo, activityService, uploader, validate, logger)
	contactService := service.NewContactService(contactRepo, redisClient, validate, service.NewLogContactDelivery(logger), logger)
	dashboardService := service.NewDashboardService(backendClient, activityService, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:  handler.NewActivityHandler(activityService, logger),
		AuthHandler:      handler.NewAuthHandler(authService, logger),
		CatalogHandler:   handler.NewCatalogHandler(catalogService, logger),
		ForumHandler:     handler.NewForumHandler(forumService, logger),
		ResourceHandler:  handler.NewResourceHandler(resourceService, logger),
		ContactHandler:   handler.NewContactHandler(contactService, logger),
		DashboardHandler: handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
		OptionalJWT:      middleware.JWTOptional(cfg.JWTSecret),
		ActivityTracker:  middleware.ActivityTracker(activityService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
