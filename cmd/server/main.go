package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	translationapp "github.com/jahiker-rca/tbc-translations-app/internal/application/translation"
	"github.com/jahiker-rca/tbc-translations-app/internal/infrastructure/config"
	"github.com/jahiker-rca/tbc-translations-app/internal/infrastructure/googletranslate"
	"github.com/jahiker-rca/tbc-translations-app/internal/infrastructure/logger"
	"github.com/jahiker-rca/tbc-translations-app/internal/infrastructure/shopify"
	"github.com/jahiker-rca/tbc-translations-app/internal/interfaces/http/handler"
	"github.com/jahiker-rca/tbc-translations-app/internal/interfaces/http/middleware"
	"github.com/jahiker-rca/tbc-translations-app/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting translations proxy",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize Shopify adapters
	shopifyCfg := shopify.NewConfig(cfg.Shopify.ShopDomain, cfg.Shopify.AccessToken)
	shopifyCfg.APIVersion = cfg.Shopify.APIVersion
	shopifyCfg.TimeoutSeconds = cfg.Shopify.TimeoutSeconds

	shopifyClient, err := shopify.NewClient(shopifyCfg)
	if err != nil {
		log.Fatal("Invalid Shopify configuration", zap.Error(err))
	}
	graphqlRegistrar := shopify.NewGraphQLRegistrar(shopifyClient)
	restRegistrar := shopify.NewRESTRegistrar(shopifyClient)
	autoTranslateTrigger := shopify.NewAutoTranslateTrigger(shopifyClient, log.Named("autotranslate"))

	// Initialize Google Translate adapter
	translatorCfg := googletranslate.NewConfig(cfg.GoogleTranslate.APIKey)
	if cfg.GoogleTranslate.Endpoint != "" {
		translatorCfg.Endpoint = cfg.GoogleTranslate.Endpoint
	}
	translatorCfg.TimeoutSeconds = cfg.GoogleTranslate.TimeoutSeconds

	translator, err := googletranslate.NewTranslator(translatorCfg)
	if err != nil {
		log.Fatal("Invalid Google Translate configuration", zap.Error(err))
	}

	// Initialize application service
	translationService := translationapp.NewService(
		shopifyClient,
		shopifyClient,
		autoTranslateTrigger,
		translator,
		graphqlRegistrar,
		restRegistrar,
		translationapp.Config{
			SourceLocale: cfg.Translation.SourceLocale,
			SettleDelay:  cfg.Translation.SettleDelay,
		},
		log.Named("translation"),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness endpoint
	engine.GET("/health", handler.NewHealthHandler(cfg.App.Name).Health)

	// Register API routes
	metafieldHandler := handler.NewMetafieldHandler(translationService, cfg.Translation.DefaultLocale)
	router.NewRouter(engine).Register(metafieldHandler).Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
