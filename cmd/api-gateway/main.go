package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leadthebusiness/platform-api/api/swagger"
	"github.com/leadthebusiness/platform-api/internal/cms"
	"github.com/leadthebusiness/platform-api/internal/gateway"
	"github.com/leadthebusiness/platform-api/internal/handler"
	"github.com/leadthebusiness/platform-api/internal/mailer"
	"github.com/leadthebusiness/platform-api/internal/middleware"
	"github.com/leadthebusiness/platform-api/internal/repository"
	"github.com/leadthebusiness/platform-api/internal/service"
	"github.com/leadthebusiness/platform-api/internal/session"
	"github.com/leadthebusiness/platform-api/pkg/cache"
	"github.com/leadthebusiness/platform-api/pkg/config"
	"github.com/leadthebusiness/platform-api/pkg/database"
	"github.com/leadthebusiness/platform-api/pkg/logger"
	corsmiddleware "github.com/leadthebusiness/platform-api/pkg/middleware/cors"
	reqidmiddleware "github.com/leadthebusiness/platform-api/pkg/middleware/requestid"
)

// @title Lead The Business Platform API
// @version 1.0.0
// @description Backend for the marketing site: course catalog, enrollment dashboard, contact relay and payment counter.
// @BasePath /api/v1
// @schemes http https

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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	listingZone := time.Local
	if cfg.Listing.Timezone != "" {
		if zone, err := time.LoadLocation(cfg.Listing.Timezone); err == nil {
			listingZone = zone
		} else {
			logr.Sugar().Warnw("invalid listing timezone, using local", "timezone", cfg.Listing.Timezone)
		}
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("failed to connect redis, catalog cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	cmsClient := cms.NewClient(cfg.CMS, metricsSvc.UpstreamObserver("sanity"))
	resend := mailer.NewResend(cfg.Mail, metricsSvc.UpstreamObserver("resend"))
	cashfree := gateway.NewCashfree(cfg.Payments, metricsSvc.UpstreamObserver("cashfree"))

	enrollmentRepo := repository.NewEnrollmentRepository(db, metricsSvc.ObserveDBQuery)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, listingZone, nil, logr)
	catalogSvc := service.NewCatalogService(cmsClient, cacheSvc, logr)
	contactSvc := service.NewContactService(resend, cfg.Mail, nil, logr)
	paymentSvc := service.NewPaymentService(cashfree, cfg.Payments.OrderID, logr)
	authSvc := service.NewAuthService(cfg.Gates, nil, logr)

	gates := map[string]*session.Gate{
		service.SurfaceAdmin:  session.NewGate("admin", cfg.Gates.SessionTTL),
		service.SurfaceStudio: session.NewGate("studio", cfg.Gates.SessionTTL),
	}

	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	authHandler := handler.NewAuthHandler(authSvc, gates, cfg.Gates.SecureCookies)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", catalogHandler.Courses)
		api.GET("/courses/:slug", catalogHandler.CourseBySlug)
		api.GET("/categories", catalogHandler.Categories)
		api.GET("/posts", catalogHandler.Posts)
		api.GET("/posts/:slug", catalogHandler.PostBySlug)

		api.POST("/contact", contactHandler.Submit)
		api.GET("/payments/count", paymentHandler.Count)
		api.POST("/enrollments", enrollmentHandler.Create)

		api.POST("/auth/:surface/login", authHandler.Login)
		api.POST("/auth/:surface/logout", authHandler.Logout)
		api.GET("/auth/:surface/status", authHandler.Status)

		admin := api.Group("/admin", middleware.Gate(gates[service.SurfaceAdmin], cfg.Gates.SecureCookies))
		{
			admin.GET("/enrollments", enrollmentHandler.List)
			admin.GET("/enrollments/stats", enrollmentHandler.Stats)
			admin.GET("/enrollments/export", enrollmentHandler.Export)
			admin.GET("/enrollments/:id", enrollmentHandler.Get)
			admin.PUT("/enrollments/:id", enrollmentHandler.Update)
			admin.DELETE("/enrollments/:id", enrollmentHandler.Delete)
		}

		studio := api.Group("/studio", middleware.Gate(gates[service.SurfaceStudio], cfg.Gates.SecureCookies))
		{
			studio.POST("/catalog/revalidate", catalogHandler.Revalidate)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
