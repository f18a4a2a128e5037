package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/farmtrack/farmtrack-api/api/swagger"
	"github.com/farmtrack/farmtrack-api/internal/handler"
	internalmiddleware "github.com/farmtrack/farmtrack-api/internal/middleware"
	"github.com/farmtrack/farmtrack-api/internal/repository"
	"github.com/farmtrack/farmtrack-api/internal/scheduler"
	"github.com/farmtrack/farmtrack-api/internal/service"
	"github.com/farmtrack/farmtrack-api/pkg/cache"
	"github.com/farmtrack/farmtrack-api/pkg/config"
	"github.com/farmtrack/farmtrack-api/pkg/database"
	"github.com/farmtrack/farmtrack-api/pkg/logger"
	corsmiddleware "github.com/farmtrack/farmtrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/farmtrack/farmtrack-api/pkg/middleware/requestid"
)

// @title FarmTrack API
// @version 1.0.0
// @description Farm management backend: herd registry, heat detection, sensor ingestion, breeding calendar
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := buildApplication(cfg, db, redisClient, logr)
	app.notifications.Start(ctx)
	defer app.notifications.Stop()

	cronScheduler := scheduler.NewScheduler(cfg.Reminders, app.reminders, logr)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	router := setupRouter(cfg, db, logr, app)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// application bundles the wired services handed to the router.
type application struct {
	cows          *service.CowService
	heat          *service.HeatService
	ingest        *service.IngestService
	breeding      *service.BreedingService
	health        *service.HealthService
	alerts        *service.AlertService
	dashboard     *service.DashboardService
	notifications *service.NotificationService
	reminders     *service.ReminderService
	metrics       *service.MetricsService
}

func buildApplication(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logr *zap.Logger) *application {
	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	cowRepo := repository.NewCowRepository(db)
	heatRepo := repository.NewHeatRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	sensorRepo := repository.NewSensorRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	breedingRepo := repository.NewBreedingRepository(db)
	healthRepo := repository.NewHealthRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var cacheRepo *repository.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	var publisher service.NotificationPublisher
	if cacheRepo != nil {
		publisher = cacheRepo
	}
	notificationSvc := service.NewNotificationService(notificationRepo, publisher, cfg.Alerts, logr)

	return &application{
		cows:          service.NewCowService(cowRepo, logr),
		heat:          service.NewHeatService(heatRepo, cowRepo, notificationSvc, metricsSvc, validate, logr),
		ingest:        service.NewIngestService(sensorRepo, attendanceRepo, metricsSvc, logr),
		breeding:      service.NewBreedingService(breedingRepo, cowRepo, logr),
		health:        service.NewHealthService(healthRepo, cowRepo, logr),
		alerts:        service.NewAlertService(alertRepo, logr),
		dashboard:     service.NewDashboardService(cowRepo, sensorRepo, attendanceRepo, alertRepo, cacheSvc, metricsSvc, cfg.Dashboard.CacheTTL, logr),
		notifications: notificationSvc,
		reminders:     service.NewReminderService(breedingRepo, healthRepo, cowRepo, notificationSvc, logr),
		metrics:       metricsSvc,
	}
}

func setupRouter(cfg *config.Config, db *sqlx.DB, logr *zap.Logger, app *application) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(app.metrics))
	r.Use(internalmiddleware.FarmContext(cfg.JWT))

	metricsHandler := handler.NewMetricsHandler(app.metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	cowHandler := handler.NewCowHandler(app.cows)
	api.GET("/cows", cowHandler.List)
	api.GET("/cows/:id", cowHandler.Get)
	api.POST("/cows", cowHandler.Create)
	api.PUT("/cows/:id", cowHandler.Update)
	api.DELETE("/cows/:id", cowHandler.Delete)

	heatHandler := handler.NewHeatHandler(app.heat)
	api.GET("/heat-detections", heatHandler.History)
	api.POST("/heat-detections", heatHandler.Detect)
	api.PATCH("/heat-detections/:id/inseminated", heatHandler.MarkInseminated)

	sensorHandler := handler.NewSensorHandler(app.ingest)
	api.POST("/sensor-events", internalmiddleware.IngestAPIKey(cfg.Ingest), sensorHandler.Ingest)
	api.GET("/milk-production", sensorHandler.ListMilk)
	api.GET("/attendance", sensorHandler.ListAttendance)

	breedingHandler := handler.NewBreedingHandler(app.breeding)
	api.GET("/breeding-events", breedingHandler.List)
	api.GET("/breeding-events/:id", breedingHandler.Get)
	api.POST("/breeding-events", breedingHandler.Create)
	api.PUT("/breeding-events/:id", breedingHandler.Update)
	api.DELETE("/breeding-events/:id", breedingHandler.Delete)

	healthRecordHandler := handler.NewHealthRecordHandler(app.health)
	api.GET("/health-records", healthRecordHandler.List)
	api.GET("/health-records/:id", healthRecordHandler.Get)
	api.POST("/health-records", healthRecordHandler.Create)
	api.PUT("/health-records/:id", healthRecordHandler.Update)
	api.DELETE("/health-records/:id", healthRecordHandler.Delete)

	alertHandler := handler.NewAlertHandler(app.alerts)
	api.GET("/alerts", alertHandler.List)
	api.PATCH("/alerts/:id/read", alertHandler.MarkRead)
	api.PATCH("/alerts/:id/dismiss", alertHandler.Dismiss)

	notificationHandler := handler.NewNotificationHandler(app.notifications)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications", notificationHandler.Send)

	if cfg.Dashboard.Enabled {
		dashboardHandler := handler.NewDashboardHandler(app.dashboard)
		api.GET("/dashboard", dashboardHandler.Summary)
		api.GET("/analytics/milk-trend", dashboardHandler.MilkTrend)
		api.GET("/analytics/staff-attendance", dashboardHandler.StaffSummaries)
		api.GET("/analytics/system", dashboardHandler.SystemMetrics)
	}

	if cfg.Reports.Enabled {
		reportHandler := handler.NewReportHandler(app.dashboard)
		api.GET("/reports/milk-production", reportHandler.MilkProduction)
	}

	return r
}
