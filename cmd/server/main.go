package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-market.backend/internal/config"
	"estate-market.backend/internal/infrastructure/models"
	"estate-market.backend/internal/infrastructure/notifier"
	"estate-market.backend/internal/infrastructure/repositories"
	"estate-market.backend/internal/infrastructure/storage"
	"estate-market.backend/internal/interfaces/http/handlers"
	"estate-market.backend/internal/interfaces/http/middleware"
	"estate-market.backend/internal/usecases"
	"estate-market.backend/pkg/jwt"
	"estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 10 * time.Second
	bucketCheckTimeout = 5 * time.Second
)

type objectStore interface {
	usecases.ObjectStorage
	EnsureBucket(ctx context.Context) error
}

type closingNotifier interface {
	usecases.Notifier
	Close() error
}

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	newObjectStore  = func(cfg config.StorageConfig) (objectStore, error) { return storage.NewMinioStore(cfg) }
	newNotifier     = buildNotifier
	runServer       = serveUntilSignal
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func buildNotifier(cfg config.KafkaConfig) (closingNotifier, error) {
	if !cfg.Enabled {
		return notifier.NewLoggingNotifier(), nil
	}
	return notifier.NewKafkaNotifier(cfg.Brokers, cfg.Topic)
}

func accountPolicy(cfg config.SecurityConfig) usecases.AccountPolicy {
	return usecases.AccountPolicy{
		MainAdminEmail:      cfg.MainAdminEmail,
		MainAdminPassword:   cfg.MainAdminPassword,
		MainAdminName:       cfg.MainAdminName,
		AdminEmailDomain:    cfg.AdminEmailDomain,
		VerificationCodeTTL: cfg.VerificationCodeTTL,
		SessionExpiry:       cfg.SessionExpiry,
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	ctx := context.Background()

	initLog(cfg.Server.Env)
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	dbReady := sqlDB.Ping() == nil
	if dbReady {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	} else {
		logger.Warn(ctx, "Database not available, endpoints will return errors")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	objects, err := newObjectStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	bucketCtx, cancelBucket := context.WithTimeout(ctx, bucketCheckTimeout)
	if err := objects.EnsureBucket(bucketCtx); err != nil {
		logger.Warn(ctx, "Object storage bucket not ready, uploads will fail", zap.Error(err))
	}
	cancelBucket()

	notifications, err := newNotifier(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	defer notifications.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository()
	messageRepo := repositories.NewMessageRepository(db)
	blockRepo := repositories.NewBlockRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	policy := accountPolicy(cfg.Security)
	authUsecase := usecases.NewAuthUsecase(userRepo, codeRepo, jwtService, sessionStore, notifications, policy)
	adminUsecase := usecases.NewAdminUsecase(userRepo, uow, objects, notifications, policy)
	idDocumentUsecase := usecases.NewIDDocumentUsecase(userRepo, uow, objects, cfg.Storage.MaxUploadBytes, cfg.Storage.PresignedExpiry)
	messageUsecase := usecases.NewMessageUsecase(messageRepo, blockRepo, userRepo)
	reviewUsecase := usecases.NewReviewUsecase(reviewRepo, messageRepo, userRepo, uow)
	propertyUsecase := usecases.NewPropertyUsecase(propertyRepo, userRepo, objects, cfg.Storage.MaxUploadBytes)
	reportUsecase := usecases.NewReportUsecase(reportRepo, userRepo, propertyRepo)

	if dbReady {
		if _, err := authUsecase.EnsureMainAdmin(ctx); err != nil {
			logger.Warn(ctx, "Failed to seed main admin", zap.Error(err))
		}
	}

	sessions := middleware.NewSessions(sessionStore, policy.SessionExpiry)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     handlers.NewAuthHandler(authUsecase),
		userHandler:     handlers.NewUserHandler(authUsecase, idDocumentUsecase),
		adminHandler:    handlers.NewAdminHandler(adminUsecase, idDocumentUsecase),
		messageHandler:  handlers.NewMessageHandler(messageUsecase),
		reviewHandler:   handlers.NewReviewHandler(reviewUsecase),
		propertyHandler: handlers.NewPropertyHandler(propertyUsecase),
		reportHandler:   handlers.NewReportHandler(reportUsecase),
		authMiddleware:  middleware.AuthMiddleware(jwtService, sessions),
		optionalAuth:    middleware.OptionalAuthMiddleware(jwtService, sessions),
	})

	logger.Info(ctx, "Estate market backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// serveUntilSignal runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests.
func serveUntilSignal(r *gin.Engine, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-quit:
		logger.Info(context.Background(), "Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
