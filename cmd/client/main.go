package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Flashcards/internal/cli/commands"
	"Flashcards/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	// клиенту нужны только предупреждения (работа из кеша, ошибки закрытия)
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if logger, err := zcfg.Build(); err == nil {
		defer func() { _ = logger.Sync() }()
		commands.SetLogger(logger.Sugar())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("Flashcards CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
