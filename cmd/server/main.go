package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/classtrack/classtrack-api/api/swagger"
	"github.com/classtrack/classtrack-api/internal/handler"
	"github.com/classtrack/classtrack-api/internal/middleware"
	"github.com/classtrack/classtrack-api/internal/repository"
	"github.com/classtrack/classtrack-api/internal/service"
	"github.com/classtrack/classtrack-api/pkg/cache"
	"github.com/classtrack/classtrack-api/pkg/config"
	"github.com/classtrack/classtrack-api/pkg/database"
	"github.com/classtrack/classtrack-api/pkg/logger"
	"github.com/classtrack/classtrack-api/pkg/mailer"
	corsmiddleware "github.com/classtrack/classtrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classtrack/classtrack-api/pkg/middleware/requestid"
)

// @title ClassTrack API
// @version 1.0.0
// @description School attendance and roster management backend
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

	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	if cacheRepo == nil {
		cacheRepo = repository.NewCacheRepository(nil, logr)
	}

	validate := validator.New()
	mail := mailer.New(cfg.Mail, logr)

	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	metricsSvc := service.NewMetricsService()
	credentialSvc := service.NewCredentialService()
	authSvc := service.NewAuthService(teacherRepo, studentRepo, credentialSvc, validate, logr)
	rosterSvc := service.NewRosterService(studentRepo, credentialSvc, mail, cacheRepo, cfg.Cache.RosterTTL, metricsSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, cacheRepo, cfg.Cache.ReportTTL, metricsSvc, logr)
	qrSvc := service.NewQRService(studentRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(rosterSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	qrHandler := handler.NewQRHandler(qrSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/teachers/register", authHandler.RegisterTeacher)
		api.POST("/auth/login", authHandler.Login)

		api.POST("/students", studentHandler.Add)
		api.POST("/students/bulk", studentHandler.BulkAdd)
		api.GET("/teachers/:id/students", studentHandler.ListByTeacher)
		api.GET("/students/export/csv", studentHandler.ExportCSV)

		api.POST("/attendance", attendanceHandler.Mark)
		api.GET("/students/:studentId/report/weekly", attendanceHandler.WeeklyReport)
		api.GET("/students/:studentId/report/weekly/pdf", attendanceHandler.WeeklyReportPDF)
		api.GET("/students/:studentId/qr", qrHandler.IdentityPayload)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
