package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tumentor/tumentor-api/api/swagger"
	"github.com/tumentor/tumentor-api/internal/handler"
	"github.com/tumentor/tumentor-api/internal/middleware"
	"github.com/tumentor/tumentor-api/internal/repository"
	"github.com/tumentor/tumentor-api/internal/service"
	"github.com/tumentor/tumentor-api/pkg/cache"
	"github.com/tumentor/tumentor-api/pkg/config"
	"github.com/tumentor/tumentor-api/pkg/database"
	"github.com/tumentor/tumentor-api/pkg/logger"
	corsmiddleware "github.com/tumentor/tumentor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tumentor/tumentor-api/pkg/middleware/requestid"
)

// @title TuMentor API
// @version 0.1.0
// @description Academic calendar, scheduling and pricing engine
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	periodRepo := repository.NewPeriodRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	planRepo := repository.NewPlanRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	periodSvc := service.NewPeriodService(periodRepo, seasonRepo, cacheRepo, cfg.Calendar.CacheTTL, logr)
	generatorSvc := service.NewCalendarGeneratorService(periodRepo, cacheRepo, nil, logr)
	planSvc := service.NewPlanService(planRepo, nil, logr)
	prorationSvc := service.NewProrationService(planRepo, periodSvc, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, planRepo, periodSvc, nil, logr)
	exportSvc := service.NewExportService(periodRepo, seasonRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	calendarHandler := handler.NewCalendarHandler(generatorSvc, exportSvc, metricsSvc)
	periodHandler := handler.NewPeriodHandler(periodSvc, metricsSvc)
	planHandler := handler.NewPlanHandler(planSvc)
	prorationHandler := handler.NewProrationHandler(prorationSvc, metricsSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.JWT(authSvc), authHandler.Me)

		api.GET("/periods", periodHandler.List)
		api.GET("/periods/current", periodHandler.Current)
		api.GET("/periods/:id", periodHandler.Get)
		api.GET("/seasons", periodHandler.Seasons)
		api.GET("/calendar/export", calendarHandler.Export)

		api.GET("/plans", planHandler.List)
		api.GET("/plans/:id", planHandler.Get)

		api.POST("/pricing/proration", prorationHandler.Calculate)

		api.POST("/enrollments", enrollmentHandler.Create)
		api.GET("/enrollments/:id", enrollmentHandler.Get)

		protected := api.Group("", middleware.JWT(authSvc))
		{
			protected.POST("/calendar/generate", middleware.RequireRoles("ADMIN"), calendarHandler.Generate)
			protected.POST("/plans", middleware.RequireRoles("ADMIN"), planHandler.Create)
			protected.DELETE("/plans/:id", middleware.RequireRoles("ADMIN"), planHandler.Deactivate)
			protected.DELETE("/enrollments/:id", enrollmentHandler.Cancel)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
