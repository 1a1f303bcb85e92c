package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-seating-api/api/swagger"
	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/handler"
	internalmiddleware "github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/repository"
	"github.com/noah-isme/exam-seating-api/internal/service"
	"github.com/noah-isme/exam-seating-api/pkg/broker"
	"github.com/noah-isme/exam-seating-api/pkg/cache"
	"github.com/noah-isme/exam-seating-api/pkg/config"
	"github.com/noah-isme/exam-seating-api/pkg/database"
	"github.com/noah-isme/exam-seating-api/pkg/export"
	"github.com/noah-isme/exam-seating-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-seating-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-seating-api/pkg/middleware/requestid"
)

// @title Exam Seating API
// @version 1.0.0
// @description Allocates examination seats across halls and serves the published seating.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, seating lookups will not be cached", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, redisClient != nil)

	eventCfg := service.EventConfig{
		Queue:      cfg.Events.Queue,
		Workers:    cfg.Events.Workers,
		MaxRetries: cfg.Events.MaxRetries,
		RetryDelay: cfg.Events.RetryDelay,
	}
	var eventSvc *service.EventService
	if cfg.Events.Enabled {
		publisher := broker.NewPublisher(cfg.Events.AMQPURL, logr)
		defer publisher.Close() //nolint:errcheck
		eventSvc = service.NewEventService(publisher, eventCfg, metricsSvc, logr)
	} else {
		eventSvc = service.NewEventService(nil, eventCfg, metricsSvc, logr)
	}

	designation := allocator.DefaultHallDesignation()
	if len(cfg.Seating.DrawingHalls) > 0 {
		designation.DrawingHalls = cfg.Seating.DrawingHalls
	}
	if len(cfg.Seating.GroundFloorHalls) > 0 {
		designation.GroundFloorHalls = cfg.Seating.GroundFloorHalls
	}

	hallRepo := repository.NewHallRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	subjectRepo := repository.NewSubjectConfigRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	hallSvc := service.NewHallService(hallRepo, blockRepo, designation, validate, logr)
	subjectSvc := service.NewSubjectConfigService(subjectRepo, validate, logr)
	seatingSvc := service.NewSeatingService(studentRepo, hallSvc, subjectSvc, cacheSvc, eventSvc, metricsSvc, validate, logr, service.SeatingConfig{
		Workers:          cfg.Seating.Workers,
		GenerationBudget: cfg.Seating.GenerationBudget,
		SearchCacheTTL:   cfg.Cache.TTL,
	})
	studentSvc := service.NewStudentService(studentRepo, seatingSvc, validate, logr)
	exportSvc := service.NewExportService(seatingSvc, service.ExportConfig{InstitutionTitle: cfg.Export.InstitutionTitle}, logr,
		export.NewCSVExporter(), export.NewPDFExporter(), export.NewXLSXExporter())
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, Leeway: 30 * time.Second})

	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
		"database": db.PingContext,
		"cache":    cacheRepo.Ping,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Seating:   handler.NewSeatingHandler(seatingSvc),
		Halls:     handler.NewHallHandler(hallSvc),
		Subjects:  handler.NewSubjectConfigHandler(subjectSvc),
		Students:  handler.NewStudentHandler(studentSvc),
		Downloads: handler.NewDownloadHandler(exportSvc),
		Metrics:   metricsHandler,
	}, internalmiddleware.JWT(tokenSvc), logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventSvc.Start(ctx)
	defer eventSvc.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "events", eventSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
