package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"estate-market.backend/internal/config"
	"estate-market.backend/internal/infrastructure/models"
	"estate-market.backend/internal/infrastructure/notifier"
	plog "estate-market.backend/pkg/logger"
	"estate-market.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubObjectStore struct {
	ensureErr error
}

func (s *stubObjectStore) Put(context.Context, string, io.Reader, int64, string) error { return nil }
func (s *stubObjectStore) Delete(context.Context, string) error { return nil }
func (s *stubObjectStore) PresignedURL(context.Context, string, time.Duration) (string, error) {
	return "http://objects.local/key", nil
}
func (s *stubObjectStore) EnsureBucket(context.Context) error { return s.ensureErr }

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origNewSessionStore := newSessionStore
	origNewObjectStore := newObjectStore
	origNewNotifier := newNotifier
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		newSessionStore = origNewSessionStore
		newObjectStore = origNewObjectStore
		newNotifier = origNewNotifier
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	newObjectStore = func(config.StorageConfig) (objectStore, error) { return &stubObjectStore{}, nil }
}

func sqliteOpener(name string) func(string) (*gorm.DB, error) {
	return func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	}
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "18080",
			Env:            "development",
			AllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "estate_market",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL:      "redis://localhost:6379",
			Password: "",
		},
		JWT: config.JWTConfig{
			Secret:        "secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			SessionEncryptionKey: "0000000000000000000000000000000000000000000000000000000000000000",
			SessionExpiry:        24 * time.Hour,
			MainAdminEmail:       "root@estate.local",
			MainAdminPassword:    "RootPassw0rd!",
			MainAdminName:        "Root",
			AdminEmailDomain:     "estate.local",
			VerificationCodeTTL:  15 * time.Minute,
		},
		Storage: config.StorageConfig{
			Endpoint:        "localhost:9000",
			Bucket:          "estate-market",
			MaxUploadBytes:  10 << 20,
			PresignedExpiry: 15 * time.Minute,
		},
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	initRedis = func(string, string) error { return errors.New("redis down") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected redis init error")
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_SessionStoreError(t *testing.T) {
	withMainHooks(t)
	openDB = sqliteOpener("main_session_err")
	newSessionStore = func(string) (*redis.SessionStore, error) { return nil, errors.New("bad session key") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected session store error")
	}
}

func TestRunMainProcess_ObjectStoreError(t *testing.T) {
	withMainHooks(t)
	openDB = sqliteOpener("main_objects_err")
	newObjectStore = func(config.StorageConfig) (objectStore, error) { return nil, errors.New("bad endpoint") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected object store error")
	}
}

func TestRunMainProcess_NotifierError(t *testing.T) {
	withMainHooks(t)
	openDB = sqliteOpener("main_notifier_err")
	newNotifier = func(config.KafkaConfig) (closingNotifier, error) { return nil, errors.New("no brokers") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected notifier error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	openDB = sqliteOpener("main_server_err")
	runServer = func(*gin.Engine, string) error { return errors.New("listen failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_BucketErrorIsNotFatal(t *testing.T) {
	withMainHooks(t)
	openDB = sqliteOpener("main_bucket_warn")
	newObjectStore = func(config.StorageConfig) (objectStore, error) {
		return &stubObjectStore{ensureErr: errors.New("bucket unreachable")}, nil
	}
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunMainProcess_SuccessPathSeedsMainAdmin(t *testing.T) {
	withMainHooks(t)

	var db *gorm.DB
	openDB = func(dsn string) (*gorm.DB, error) {
		var err error
		db, err = sqliteOpener("main_success")(dsn)
		return db, err
	}

	var routes int
	var admin models.User
	var seedErr error
	runServer = func(r *gin.Engine, port string) error {
		if port != "18080" {
			t.Errorf("unexpected port %q", port)
		}
		routes = len(r.Routes())
		seedErr = db.Where("email = ?", "root@estate.local").First(&admin).Error
		return nil
	}

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if routes < 50 {
		t.Fatalf("expected full route table, got %d routes", routes)
	}
	if seedErr != nil {
		t.Fatalf("main admin not seeded: %v", seedErr)
	}
	if admin.Role != "admin" || admin.ApprovalStatus != "APPROVED" {
		t.Fatalf("unexpected main admin row: role=%s approval=%s", admin.Role, admin.ApprovalStatus)
	}
}

func TestBuildNotifier_DefaultsToLogging(t *testing.T) {
	n, err := buildNotifier(config.KafkaConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(*notifier.LoggingNotifier); !ok {
		t.Fatalf("expected logging notifier, got %T", n)
	}
}

func TestAccountPolicy_CopiesSecuritySettings(t *testing.T) {
	cfg := baseTestConfig().Security
	policy := accountPolicy(cfg)
	if policy.MainAdminEmail != cfg.MainAdminEmail || policy.AdminEmailDomain != cfg.AdminEmailDomain {
		t.Fatalf("unexpected policy: %+v", policy)
	}
	if policy.VerificationCodeTTL != cfg.VerificationCodeTTL || policy.SessionExpiry != cfg.SessionExpiry {
		t.Fatalf("unexpected durations: %+v", policy)
	}
}
