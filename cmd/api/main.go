package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mnadhif/student-records-api/api/swagger"
	"github.com/mnadhif/student-records-api/internal/handler"
	"github.com/mnadhif/student-records-api/internal/middleware"
	"github.com/mnadhif/student-records-api/internal/repository"
	"github.com/mnadhif/student-records-api/internal/service"
	"github.com/mnadhif/student-records-api/pkg/cache"
	"github.com/mnadhif/student-records-api/pkg/config"
	"github.com/mnadhif/student-records-api/pkg/database"
	"github.com/mnadhif/student-records-api/pkg/logger"
	corsmiddleware "github.com/mnadhif/student-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mnadhif/student-records-api/pkg/middleware/requestid"
)

// @title Student Records API
// @version 1.0.0
// @description Authenticated student-record management service
// @BasePath /api
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)

	studentSvc := service.NewStudentService(studentRepo, nil, logr)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		listCache := repository.NewCacheRepository(redisClient, cfg.Cache.StudentListTTL, logr)
		defer listCache.Close() //nolint:errcheck
		studentSvc = service.NewStudentService(studentRepo, listCache, logr)
	}

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:        cfg.Session.Secret,
		Lifetime:      cfg.Session.Lifetime,
		RefreshWindow: cfg.Session.RefreshWindow,
	})
	exportSvc := service.NewExportService(studentRepo, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session)
	studentHandler := handler.NewStudentHandler(studentSvc, exportSvc)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/signout", authHandler.Signout)
	auth.GET("/me", middleware.RequireSession(authSvc, cfg.Session, logr), authHandler.Me)

	students := api.Group("/students", middleware.RequireSession(authSvc, cfg.Session, logr))
	students.GET("", studentHandler.List)
	students.POST("", studentHandler.Create)
	students.PUT("", studentHandler.Replace)
	students.GET("/export", studentHandler.Export)
	students.GET("/:id", studentHandler.Get)
	students.PUT("/:id", studentHandler.Update)
	students.DELETE("/:id", studentHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
