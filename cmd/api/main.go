package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/poshanai/khana-ai-platform/internal/api/router"
	appconfig "github.com/poshanai/khana-ai-platform/internal/config"
	"github.com/poshanai/khana-ai-platform/internal/extraction"
	"github.com/poshanai/khana-ai-platform/internal/hinglish"
	"github.com/poshanai/khana-ai-platform/internal/meal"
	"github.com/poshanai/khana-ai-platform/internal/nutrition"
	"github.com/poshanai/khana-ai-platform/internal/observability/metrics"
	"github.com/poshanai/khana-ai-platform/internal/pipeline"
	"github.com/poshanai/khana-ai-platform/internal/session"
	"github.com/poshanai/khana-ai-platform/internal/voice"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

func main() {
	// Local .env is optional; real deployments inject environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logging.Default().Debug("no .env file loaded", "error", err)
	}

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting khana-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"session_backend", cfg.SessionBackend,
	)

	// Session store
	var store session.Store
	switch cfg.SessionBackend {
	case "redis":
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = session.NewRedisStore(client, cfg.SessionRedisTTL)
	default:
		store = session.NewMemoryStore()
	}

	sessionManager := session.NewManager(session.ManagerConfig{
		Store:           store,
		Logger:          logger,
		IdleTimeout:     cfg.SessionIdleTimeout,
		GraceWindow:     cfg.SessionGraceWindow,
		MaxRecentMeals:  cfg.MaxRecentMeals,
		MaxActiveTopics: cfg.MaxActiveTopics,
	})

	// Nutrition lookup: external database when configured, curated static
	// table otherwise.
	var lookup nutrition.Lookup = nutrition.NewStaticLookup()
	if cfg.NutritionBaseURL != "" {
		client, err := nutrition.NewClient(nutrition.ClientConfig{
			BaseURL: cfg.NutritionBaseURL,
			APIKey:  cfg.NutritionAPIKey,
			HTTPClient: &http.Client{
				Timeout: cfg.NutritionTimeout,
			},
			Logger: logger,
		})
		if err != nil {
			logger.Error("failed to create nutrition client", "error", err)
			os.Exit(1)
		}
		lookup = client
	}

	pipelineMetrics := metrics.NewPipelineMetrics(nil)
	translator := hinglish.NewTranslator()
	service := pipeline.NewService(pipeline.ServiceConfig{
		Translator: translator,
		Extractor:  extraction.NewExtractor(translator, logger),
		Resolver:   extraction.NewResolver(translator),
		Assembler: meal.NewAssembler(meal.AssemblerConfig{
			Lookup: lookup,
			Logger: logger,
		}),
		Sessions: sessionManager,
		Metrics:  pipelineMetrics,
		Logger:   logger,
	})

	// Background sweeper for idle and ended sessions
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweeper := session.NewSweeper(sessionManager, cfg.SessionSweepEvery, logger)
	sweeper.Observe(pipelineMetrics)
	sweeper.Start(sweepCtx)

	r := router.New(&router.Config{
		Logger:             logger,
		UtteranceHandler:   pipeline.NewHandler(service, logger),
		SessionHandler:     session.NewHandler(sessionManager, logger),
		VoiceGateway:       voice.NewGateway(service, sessionManager, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancelSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
