package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"userapi/internal/config"
	"userapi/internal/database"
	"userapi/internal/database/migration"
	"userapi/internal/logger"
	appotel "userapi/internal/otel"
	"userapi/internal/repository"
	"userapi/internal/repository/memory"
	"userapi/internal/repository/postgres"
	"userapi/internal/server"
	"userapi/internal/service"
	"userapi/internal/storage"
)

// @title User API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx, cfg.Name, zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			zl.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	var (
		db    *sql.DB
		users repository.UserRepository
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			zl.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := migration.EnsureMigrated(ctx, db, zl, cfg.Database.Host); err != nil {
				zl.Fatal("failed to migrate database", zap.Error(err))
			}
		}
		users = postgres.NewUserPostgres(db)
	} else {
		zl.Warn("DB_HOST not set, serving from an empty in-memory user store")
		users = memory.NewUserMemory()
	}

	var avatars storage.Storage
	if cfg.MinIO.Enabled() {
		avatars, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			zl.Fatal("failed to initialize object storage", zap.Error(err))
		}
	}

	userSvc := service.NewUserService(
		users,
		avatars,
		time.Duration(cfg.MinIO.PresignExpirySec)*time.Second,
		zl,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := server.New(server.Options{
		Port:     cfg.Port,
		Logger:   zl,
		DB:       db,
		Users:    userSvc,
		Registry: reg,
	})
	if err != nil {
		zl.Fatal("failed to build server", zap.Error(err))
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
