package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unipanel/exam-planner-api/api/swagger"
	"github.com/unipanel/exam-planner-api/internal/handler"
	"github.com/unipanel/exam-planner-api/internal/middleware"
	"github.com/unipanel/exam-planner-api/internal/repository"
	"github.com/unipanel/exam-planner-api/internal/service"
	"github.com/unipanel/exam-planner-api/pkg/cache"
	"github.com/unipanel/exam-planner-api/pkg/config"
	"github.com/unipanel/exam-planner-api/pkg/database"
	"github.com/unipanel/exam-planner-api/pkg/export"
	"github.com/unipanel/exam-planner-api/pkg/logger"
	corsmiddleware "github.com/unipanel/exam-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unipanel/exam-planner-api/pkg/middleware/requestid"
)

// @title Exam Planner API
// @version 0.1.0
// @description University exam scheduling administration
// @BasePath /api/v1
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var cacheRepo service.CacheRepository
	if cfg.Catalog.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)

	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	scheduleRepo := repository.NewExamScheduleRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	facultySvc := service.NewFacultyService(facultyRepo, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, facultyRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, cacheSvc, validate, logr)
	scheduleSvc := service.NewExamScheduleService(scheduleRepo, userRepo, metricsSvc, validate, logr)
	exportSvc := service.NewExportService(scheduleSvc, export.NewPDFExporter(), export.NewCSVExporter(), logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, logr)

	draftSvc := service.NewDraftService(
		service.NewCatalogFetcher(courseSvc, classroomSvc),
		scheduleSvc,
		cfg.Drafts.TTL,
		logr,
	)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	draftSvc.StartSweeper(sweepCtx, cfg.Drafts.SweepInterval)

	authHandler := handler.NewAuthHandler(authSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc)
	departmentHandler := handler.NewDepartmentHandler(departmentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	scheduleHandler := handler.NewExamScheduleHandler(scheduleSvc, exportSvc)
	draftHandler := handler.NewDraftHandler(draftSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	r := gin.New()
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
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/faculties", facultyHandler.List)
	protected.POST("/faculties", facultyHandler.Create)
	protected.GET("/faculties/:id", facultyHandler.Get)

	protected.GET("/departments", departmentHandler.List)
	protected.POST("/departments", departmentHandler.Create)

	protected.GET("/courses", courseHandler.List)
	protected.POST("/courses", courseHandler.Create)

	protected.GET("/classrooms", classroomHandler.List)
	protected.POST("/classrooms", classroomHandler.Create)
	protected.GET("/classrooms/:id", classroomHandler.Get)
	protected.PUT("/classrooms/:id", classroomHandler.Update)
	protected.DELETE("/classrooms/:id", classroomHandler.Delete)

	protected.GET("/exam-schedules", scheduleHandler.List)
	protected.POST("/exam-schedules", scheduleHandler.Create)

	protected.GET("/exam-schedules/draft", draftHandler.Get)
	protected.DELETE("/exam-schedules/draft", draftHandler.Reset)
	protected.PUT("/exam-schedules/draft/faculty", draftHandler.SelectFaculty)
	protected.PUT("/exam-schedules/draft/header", draftHandler.SetHeader)
	protected.PATCH("/exam-schedules/draft/course-exams/:courseId", draftHandler.SetCourseExamField)
	protected.POST("/exam-schedules/draft/classrooms/:classroomId/toggle", draftHandler.ToggleClassroom)
	protected.POST("/exam-schedules/draft/submit", draftHandler.Submit)

	protected.GET("/exam-schedules/:id", scheduleHandler.Get)
	if cfg.Exports.Enabled {
		protected.GET("/exam-schedules/:id/export", scheduleHandler.Export)
	}

	protected.GET("/dashboard/summary", dashboardHandler.Summary)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
