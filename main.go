package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doitto/config"
	"doitto/cron"
	"doitto/database"
	"doitto/handlers"
	"doitto/middleware"
	"doitto/routes"
	"doitto/services/cardholder"
	"doitto/services/catalog"
	"doitto/services/helper"
	"doitto/services/profile"
	"doitto/services/storage"
	"doitto/services/tasks"
	"doitto/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	app, err := utils.FirebaseApp(rootCtx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase: %v", err)
	}
	authClient, err := app.Auth(rootCtx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase auth: %v", err)
	}

	backend, err := database.Open(rootCtx, app)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open %s store: %v", config.AppConfig.StoreDriver, err)
	}
	defer backend.Close()

	storageService, err := storage.NewStorageService(rootCtx, app)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Category cache is optional; without Redis the catalog reads straight through.
	var categoryCache catalog.Cache
	cacheClient := utils.GetCacheClient()
	if cacheClient != nil {
		categoryCache = catalog.NewRedisCache(cacheClient, config.AppConfig.CategoryCacheTTL, logger)
	}

	// Replaced images are deleted by the background worker when Redis is up.
	var imageCleanup handlers.ImageCleanup
	if cacheClient != nil {
		queueClient := asynq.NewClient(cron.RedisOpt())
		defer queueClient.Close()
		imageCleanup = tasks.NewQueue(queueClient)
		worker := cron.InitCleanupWorker(storageService)
		defer worker.Shutdown()
	}

	// services.
	gw := backend.Gateway
	helperService := helper.NewHelperService(gw.Helpers, logger)
	cardHolderService := cardholder.NewCardHolderService(gw.CardHolders, helperService, logger)
	profileService := profile.NewProfileService(gw.Users, logger)
	catalogService := catalog.NewCatalogService(gw.Categories, categoryCache, logger)

	handlerBundle := handlers.NewHandlerBundle(handlers.Handlers{
		Helpers:     handlers.NewHelperHandler(helperService),
		Share:       handlers.NewShareHandler(helperService, config.AppConfig.PublicBaseURL, config.AppConfig.SiteName),
		Storage:     handlers.NewStorageHandler(storageService, helperService, profileService, imageCleanup),
		Categories:  handlers.NewCategoryHandler(catalogService),
		Profile:     handlers.NewProfileHandler(profileService),
		Onboarding:  handlers.NewOnboardingHandler(profileService, config.AppConfig.EnforceRateOrder),
		CardHolders: handlers.NewCardHolderHandler(cardHolderService),
	}, authClient, middleware.NewIPAPILocator(config.AppConfig.GeoLookupURL))

	// Health snapshot of the backing store and cache.
	checks := map[string]utils.HealthCheck{backend.Driver: backend.Ping}
	if cacheClient != nil {
		checks["redis"] = func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() }
	}
	utils.StartHealthMonitor(rootCtx, time.Minute, checks)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("store", backend.Driver))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
