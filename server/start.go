package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-records/config"
	"student-records/database"
	"student-records/filestore"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// InitLogger sets up the process-wide logger
func InitLogger() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
}

func StartServer() {
	InitLogger()
	cfg := config.Load()

	logger.Info("Starting student records service...")

	dbConn := database.InitializeDatabase(cfg.DBPath, cfg.MigrationsDir)
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
			return
		}
		logger.Info("Database connection closed")
	}()

	files, err := filestore.New(cfg.UploadsDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Error("Failed to prepare uploads directory", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: NewRouter(Deps{
			DB:            dbConn,
			Files:         files,
			AllowedOrigin: cfg.AllowedOrigin,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server is running", zap.String("addr", srv.Addr), zap.String("uploads", files.Dir()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", zap.Error(err))
		}
		return
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// Migrate applies pending migrations to the configured database and returns
func Migrate() error {
	InitLogger()
	cfg := config.Load()

	dbConn, err := database.Open(cfg.DBPath, cfg.MigrationsDir)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	logger.Info("Migrations applied", zap.String("dir", cfg.MigrationsDir))
	return nil
}
