package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/config"
	"github.com/fadilmartias/bgv-backend/internal/domain/fiber/handler"
	"github.com/fadilmartias/bgv-backend/internal/metrics"
	"github.com/fadilmartias/bgv-backend/internal/middleware"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/service"
	"github.com/fadilmartias/bgv-backend/internal/usecase"
	"github.com/fadilmartias/bgv-backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zlog, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			message := "Internal Server Error"
			if errors.As(err, &e) {
				message = e.Message
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Message: message}, err)
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := connectDB(zlog)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	if err := repository.Migrate(migrateCtx, db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	cancelMigrate()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics, err := metrics.NewPipelineMetrics(registry)
	if err != nil {
		zlog.Fatal("could not register metrics", zap.Error(err))
	}

	apiConfig := config.LoadVerificationAPIConfig()
	pipelineConfig := config.LoadPipelineConfig()
	api := service.NewVerificationAPI(apiConfig, zlog)
	identity := service.NewIdentityService(api)

	transactor := repository.NewTransactor(db)
	candidateRepo := repository.NewCandidateRepository(db)
	statusRepo := repository.NewVerificationStatusRepository(db)

	verifier := usecase.NewVerificationUsecase(transactor, candidateRepo, repository.NewCheckReportRepository(db), statusRepo,
		usecase.VerificationServices{
			Identity:   identity,
			Employment: service.NewEmploymentService(api),
			Court:      service.NewCourtService(api, apiConfig.CourtPollInterval, apiConfig.CourtPollAttempts, zlog),
			AML:        service.NewAMLService(api),
			Bank:       service.NewBankService(api),
		}, pipelineConfig, pipelineMetrics, zlog)
	candidateUC := usecase.NewCandidateUsecase(transactor, candidateRepo, repository.NewCompanyRepository(db), statusRepo,
		identity, verifier, pipelineConfig, zlog)

	handler.NewCandidateHandler(candidateUC, util.NewValidator()).RegisterRoutes(app)
	handler.NewVerificationHandler(verifier).RegisterRoutes(app, middleware.RateLimiter(10, 1*time.Minute))
	handler.RegisterMetricsRoute(app, registry)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			zlog.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			zlog.Error("shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(appConfig *config.AppConfig) (*zap.Logger, error) {
	if appConfig.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func connectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	logLevel := gormlogger.Info
	if appConfig.IsProduction() {
		logLevel = gormlogger.Warn
	}
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}
