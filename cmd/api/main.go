package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/config"
	"founder-assessment/internal/db"
	"founder-assessment/internal/email"
	apihttp "founder-assessment/internal/http"
	"founder-assessment/internal/metrics"
	"founder-assessment/internal/report"
	"founder-assessment/internal/repository"
	"founder-assessment/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cat, err := catalog.Load(cfg.CatalogFile, cfg.DefaultLanguage)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	var submissions repository.SubmissionRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Warn("db ping failed", zap.Error(err))
		} else if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		submissions = repository.NewPgSubmissionRepository(pool)
	} else {
		logger.Info("DATABASE_URL not set, submissions will not be stored")
	}

	limiter := service.NewMemoryRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax, nil)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)
		}
		cancel()
	}

	sender := email.FromConfig(ctx, cfg, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	submissionSvc := service.NewSubmissionService(logger, cat, sender, limiter, submissions, recorder, service.SubmissionOptions{
		Inbox: cfg.ReportInbox,
		Report: report.Options{
			ContactURL: cfg.ReportContact,
			LogoURL:    cfg.ReportLogoURL,
		},
		DeliveryTimeout: cfg.DeliveryTimeout,
	})
	assessmentHandler := apihttp.NewAssessmentHandler(logger, cat, submissionSvc)
	router := apihttp.NewRouter(logger, assessmentHandler, apihttp.RouterOptions{
		AllowOrigin:    cfg.CORSAllowOrigin,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("catalog_version", cat.Version()),
		zap.String("email_provider", cfg.EmailProvider),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
