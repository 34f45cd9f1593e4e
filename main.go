package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/config"
	"github.com/ideaforge/backend/handlers"
	"github.com/ideaforge/backend/middleware"
	"github.com/ideaforge/backend/models"
	"github.com/ideaforge/backend/services"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.WarnLevel)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.LogLevel != "" {
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		} else {
			logger.WithField("log_level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, keeping default")
		}
	}
	return logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg)
	log := logger.WithField("component", "main")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	chain, err := services.NewChainService(cfg, logger.WithField("component", "chain"))
	if err != nil {
		log.Fatalf("Failed to initialize chain service: %v", err)
	}
	defer chain.Close()

	var archive services.Archiver
	if cfg.ArchiveEnabled() {
		a, err := services.NewSupabaseArchive(context.Background(), services.ArchiveOptions{
			Endpoint:  cfg.SupabaseS3URL,
			Bucket:    cfg.SupabaseBucket,
			AccessKey: cfg.SupabaseAccessKey,
			SecretKey: cfg.SupabaseSecretKey,
		}, logger.WithField("component", "archive"))
		if err != nil {
			log.Fatalf("Failed to initialize archive: %v", err)
		}
		archive = a
	}

	storage := services.NewPinataService(services.PinataOptions{
		APIURL:     cfg.PinataAPIURL,
		GatewayURL: cfg.IPFSGatewayURL,
		APIKey:     cfg.PinataAPIKey,
		SecretKey:  cfg.PinataSecretKey,
		Timeout:    cfg.HTTPClientTimeout,
	}, archive, logger.WithField("component", "ipfs"))

	llm := services.NewOpenAIClient(services.OpenAIOptions{
		APIKey:  cfg.OpenAIAPIKey,
		OrgID:   cfg.OpenAIOrgID,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.HTTPClientTimeout,
	})
	ai := services.NewAIService(llm, services.AIModels{
		Validation: cfg.OpenAIValidationModel,
		Analysis:   cfg.OpenAIAnalysisModel,
	}, logger.WithField("component", "ai"))

	auth := services.NewJWTAuthService(cfg.JWTSecret, cfg.JWTExpiresIn, logger.WithField("component", "auth"))

	limiter := middleware.NewRateLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitWindow())
	defer limiter.Stop()
	metrics := middleware.NewMetrics()

	handler := handlers.NewHandler(chain, storage, ai, auth, cfg, models.NewClock(), logger.WithField("component", "handlers"))
	router, err := handlers.NewRouter(handler, handlers.RouterOptions{Limiter: limiter, Metrics: metrics})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": httpSrv.Addr, "environment": cfg.NodeEnv}).Info("IdeaForge API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	var metricsSrv *http.Server
	if cfg.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.WithField("addr", metricsSrv.Addr).Info("Metrics listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down")

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutCtx)
	}
}
