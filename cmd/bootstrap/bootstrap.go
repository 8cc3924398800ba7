package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-backoffice/config"
	deliveryHttp "clinic-backoffice/internal/delivery/http"
	"clinic-backoffice/internal/delivery/http/handler"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/infrastructure/cache"
	"clinic-backoffice/internal/infrastructure/database"
	"clinic-backoffice/internal/infrastructure/mail"
	"clinic-backoffice/internal/infrastructure/metrics"
	"clinic-backoffice/internal/infrastructure/storage"
	"clinic-backoffice/internal/repository"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/jwt"
	"clinic-backoffice/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	SetupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(db, cfg.DB.MigrationsPath); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// SetupLogger configures the logrus logger
func SetupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	ctx := context.Background()
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Outbound integrations
	emailSender, err := mail.NewEmailSender(ctx, cfg.Mail, log)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Bucket == "" {
		log.Warn("S3_BUCKET is not set, analysis result uploads will fail")
	}
	fileStorage, err := storage.NewS3StorageFromConfig(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	serviceRepo := repository.NewServiceRepository()
	priceListRepo := repository.NewPriceListRepository()
	entryRepo := repository.NewPriceListEntryRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	invoiceRepo := repository.NewInvoiceRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	codeRepo := repository.NewVerificationCodeRepository(redisClient)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	notificationService := service.NewNotificationService(emailSender, log, bookingMetrics, cfg.Mail.PatientCardURL, cfg.Booking.NotificationTimeout)
	slotLocker := service.NewRedisSlotLocker(redisClient, log, cfg.Booking.SlotLockTTL)
	renderer := service.NewHTMLDocumentRenderer()

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	pricingUsecase := usecase.NewPricingUsecase(db, log, patientRepo, priceListRepo, entryRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, invoiceRepo, patientRepo, userRepo,
		priceListRepo, entryRepo, slotLocker, auditService, notificationService, bookingMetrics)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo, appointmentRepo)
	priceListUsecase := usecase.NewPriceListUsecase(db, log, priceListRepo, entryRepo, serviceRepo, auditService, bookingMetrics)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, priceListRepo, entryRepo, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, serviceRepo, auditService)
	recordUsecase := usecase.NewMedicalRecordUsecase(db, log, recordRepo, patientRepo, serviceRepo, fileStorage, auditService)
	verificationUsecase := usecase.NewVerificationUsecase(log, codeRepo, notificationService, cfg.Verification.CodeTTL)
	statisticsUsecase := usecase.NewStatisticsUsecase(db, log, appointmentRepo, userRepo)
	invoiceUsecase := usecase.NewInvoiceUsecase(db, log, invoiceRepo, renderer)
	documentUsecase := usecase.NewDocumentUsecase(db, log, appointmentRepo, patientRepo, priceListRepo, entryRepo, renderer)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Patient:       handler.NewPatientHandler(patientUsecase, pricingUsecase, appointmentUsecase, customValidator),
		Pricing:       handler.NewPricingHandler(pricingUsecase, customValidator),
		Appointment:   handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Doctor:        handler.NewDoctorHandler(doctorUsecase),
		PriceList:     handler.NewPriceListHandler(priceListUsecase, customValidator),
		Service:       handler.NewServiceHandler(serviceUsecase, customValidator),
		User:          handler.NewUserHandler(userUsecase, customValidator),
		MedicalRecord: handler.NewMedicalRecordHandler(recordUsecase, customValidator),
		Verification:  handler.NewVerificationHandler(verificationUsecase),
		Statistics:    handler.NewStatisticsHandler(statisticsUsecase),
		Invoice:       handler.NewInvoiceHandler(invoiceUsecase),
		Document:      handler.NewDocumentHandler(documentUsecase, customValidator),
		AuditLog:      handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log, bookingMetrics)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), authMiddleware, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
