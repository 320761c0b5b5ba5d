package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/allocatr/psa-api/api/swagger"
	"github.com/allocatr/psa-api/internal/handler"
	"github.com/allocatr/psa-api/internal/middleware"
	"github.com/allocatr/psa-api/internal/repository"
	"github.com/allocatr/psa-api/internal/service"
	"github.com/allocatr/psa-api/pkg/cache"
	"github.com/allocatr/psa-api/pkg/config"
	"github.com/allocatr/psa-api/pkg/database"
	"github.com/allocatr/psa-api/pkg/logger"
	corsmiddleware "github.com/allocatr/psa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/allocatr/psa-api/pkg/middleware/requestid"
)

const version = "0.1.0"

// @title Project Allocation API
// @version 0.1.0
// @description Students express interest in staff projects; staff approve one student per project.
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
		logr.Sugar().Fatalw("database unavailable", "error", err)
	}
	defer db.Close()

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(bootCtx, db); err != nil {
		logr.Sugar().Fatalw("schema bootstrap failed", "error", err)
	}
	if cfg.Seed.SampleData {
		if err := repository.SeedSampleData(bootCtx, db); err != nil {
			logr.Sugar().Fatalw("sample data seed failed", "error", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Catalog.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("redis unavailable", "error", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	metricsSvc := service.NewMetricsService()
	userSvc := service.NewUserService(userRepo, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	projectSvc := service.NewProjectService(projectRepo, userRepo, validate, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, userRepo, validate, logr)

	userHandler := handler.NewUserHandler(userSvc, authSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	systemHandler := handler.NewSystemHandler(db, version)

	var registrationHandler *handler.RegistrationHandler
	if cfg.Exports.Enabled {
		registrationHandler = handler.NewRegistrationHandler(registrationSvc, service.NewExportService(registrationSvc, logr))
	} else {
		registrationHandler = handler.NewRegistrationHandler(registrationSvc, nil)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.OptionalJWT(authSvc))

	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	users := r.Group("/user")
	{
		users.POST("", middleware.Audit(userRepo, "create", "user"), userHandler.Create)
		users.GET("/id/:id", userHandler.GetByID)
		users.GET("/username/:username", userHandler.GetByUsername)
		users.GET("/username/:username/id", userHandler.GetIDByUsername)
		users.PUT("", middleware.Audit(userRepo, "update", "user"), userHandler.Update)
		users.DELETE("/:id", middleware.Audit(userRepo, "delete", "user"), userHandler.Delete)
		users.GET("/all", userHandler.ListAll)
		users.PUT("/password", middleware.Audit(userRepo, "update_password", "user"), userHandler.UpdatePassword)
		users.POST("/login", userHandler.Login)
		users.POST("/verify-password", userHandler.VerifyPassword)
		users.GET("/me", middleware.JWT(authSvc), userHandler.Me)
	}

	projects := r.Group("/project")
	{
		projects.POST("/create",
			middleware.Audit(userRepo, "create", "project"),
			middleware.InvalidateCatalogCache(redisClient),
			projectHandler.Create)
		projects.GET("/:id", projectHandler.GetByID)
		projects.PUT("",
			middleware.Audit(userRepo, "update", "project"),
			middleware.InvalidateCatalogCache(redisClient),
			projectHandler.Update)
		projects.DELETE("/:id",
			middleware.Audit(userRepo, "delete", "project"),
			middleware.InvalidateCatalogCache(redisClient),
			projectHandler.Delete)
		projects.GET("/all", middleware.CatalogCache(redisClient, cfg.Catalog.CacheTTL, metricsSvc), projectHandler.ListAll)
		projects.GET("/staff/:staffId", projectHandler.ListByStaff)
		projects.PUT("/make-unavailable/:projectId",
			middleware.Audit(userRepo, "make_unavailable", "project"),
			middleware.InvalidateCatalogCache(redisClient),
			projectHandler.MakeUnavailable)
	}

	registrations := r.Group("/registration")
	{
		registrations.POST("/create", middleware.Audit(userRepo, "create", "registration"), registrationHandler.Create)
		registrations.GET("/student/:studentId", registrationHandler.ListByStudent)
		registrations.GET("/student/:studentId/assigned", registrationHandler.IsAssigned)
		registrations.GET("/students-registration/:staffId", registrationHandler.ListByStaff)
		registrations.GET("/students-registration/:staffId/export", registrationHandler.Export)
		registrations.PUT("/assign/:registrationId", middleware.Audit(userRepo, "assign", "registration"), registrationHandler.Assign)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
