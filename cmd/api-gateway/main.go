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
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-admin-api/api/swagger"
	"github.com/noah-isme/campus-admin-api/internal/handler"
	"github.com/noah-isme/campus-admin-api/internal/middleware"
	"github.com/noah-isme/campus-admin-api/internal/repository"
	"github.com/noah-isme/campus-admin-api/internal/service"
	"github.com/noah-isme/campus-admin-api/pkg/cache"
	"github.com/noah-isme/campus-admin-api/pkg/config"
	"github.com/noah-isme/campus-admin-api/pkg/database"
	"github.com/noah-isme/campus-admin-api/pkg/jobs"
	"github.com/noah-isme/campus-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-admin-api/pkg/middleware/requestid"
	"github.com/noah-isme/campus-admin-api/pkg/storage"
)

// @title Campus Admin API
// @version 1.0.0
// @description Admin back-office for colleges, courses, specializations and inquiry leads.
// @BasePath /api
// @schemes http https
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	var cacheRepo service.CacheRepository
	if cfg.Analytics.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled)

	auditRepo := repository.NewAuditRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	specializationRepo := repository.NewSpecializationRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	loc := cfg.Analytics.Location()
	leadSvc := service.NewLeadService(leadRepo, auditRepo, cacheSvc, metrics, loc, validate, logr)
	collegeSvc := service.NewCollegeService(collegeRepo, courseRepo, catalogRepo, auditRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, collegeRepo, catalogRepo, auditRepo, validate, logr)
	specializationSvc := service.NewSpecializationService(specializationRepo, courseRepo, catalogRepo, auditRepo, validate, logr)

	h := handlers{
		leads:           handler.NewLeadHandler(leadSvc, loc),
		colleges:        handler.NewCollegeHandler(collegeSvc),
		courses:         handler.NewCourseHandler(courseSvc),
		specializations: handler.NewSpecializationHandler(specializationSvc),
		metrics:         handler.NewMetricsHandler(metrics, db),
	}

	if cfg.Exports.Enabled {
		queue, exportHandler, err := setupExports(ctx, cfg, db, leadSvc, auditRepo, metrics, logr)
		if err != nil {
			logr.Fatal("failed to initialise exports", zap.Error(err))
		}
		defer queue.Stop()
		h.exports = exportHandler
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))

	registerRoutes(r, cfg.APIPrefix, service.NewTokenVerifier(cfg.JWT), h)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
}

func setupExports(ctx context.Context, cfg *config.Config, db *sqlx.DB, leads *service.LeadService, audit *repository.AuditRepository, metrics *service.MetricsService, logr *zap.Logger) (*jobs.Queue, *handler.ExportHandler, error) {
	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(leads, store, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
		Location:  cfg.Analytics.Location(),
	}, logr, nil, nil, nil)

	jobRepo := repository.NewExportJobRepository(db)
	worker := service.NewExportWorker(jobRepo, exporter, metrics, cfg.Exports.WorkerRetries, logr)
	queue := jobs.NewQueue("lead-exports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	queue.Start(ctx)

	jobSvc := service.NewExportJobService(jobRepo, queue, exporter, audit, metrics, nil, logr, service.ExportJobServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	jobSvc.RecoverPendingJobs(ctx)
	jobSvc.StartCleanup(ctx)

	return queue, handler.NewExportHandler(jobSvc, logr), nil
}
