package main

import (
	"Flashcards/internal/config"
	"Flashcards/internal/handlers"
	"Flashcards/internal/middleware"
	"Flashcards/internal/notify"
	"Flashcards/internal/repo"
	"Flashcards/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	notifier := notify.LogNotifier{Logger: sugar}

	userRepo := repo.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo, notifier, sugar)

	flashcardRepo := repo.NewFlashcardRepository(gormDB)
	flashcardService := service.NewFlashcardService(flashcardRepo, notifier, sugar, cfg)

	h := handlers.NewHandler(userService, flashcardService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"QueryTimeout", cfg.QueryTimeout,
		"ReviewInterval", cfg.ReviewInterval,
		"CORSOrigins", cfg.CORSOrigins,
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down server")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
