package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frontdeskai/webchat-service/internal/api/router"
	"github.com/frontdeskai/webchat-service/internal/app/bootstrap"
	"github.com/frontdeskai/webchat-service/internal/chat"
	appconfig "github.com/frontdeskai/webchat-service/internal/config"
	"github.com/frontdeskai/webchat-service/internal/leads"
	"github.com/frontdeskai/webchat-service/internal/observability/metrics"
	"github.com/frontdeskai/webchat-service/internal/webchat"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting webchat-service API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	leadsRepo, closeRepo, err := bootstrap.BuildLeadsRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	transcript := chat.NewTranscriptStore(redisClient, int64(cfg.TranscriptLimit))

	chatMetrics := metrics.NewChatMetrics(prometheus.DefaultRegisterer)
	leadsMetrics := metrics.NewLeadsMetrics(prometheus.DefaultRegisterer)

	leadsHandler := leads.NewHandler(leadsRepo, logger, leadsMetrics)
	webchatHandler := webchat.NewHandler(webchat.Config{
		Logger:       logger,
		Transcript:   transcript,
		Submitter:    leads.NewChatSubmitter(leadsRepo, logger),
		Metrics:      chatMetrics,
		TypingDelay:  cfg.TypingDelay,
		BubbleDelay:  cfg.BubbleDelay,
		HistoryLimit: int64(cfg.TranscriptLimit),
	})

	r := router.New(&router.Config{
		Logger:             logger,
		WebchatHandler:     webchatHandler,
		LeadsHandler:       leadsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRateLimit:      5,
		ChatRateBurst:      20,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Cancel outstanding typing and bubble timers.
	webchatHandler.Shutdown()

	logger.Info("server stopped")
}
