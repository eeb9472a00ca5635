package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pizzabot/internal/app"
	"pizzabot/internal/commons"
	"pizzabot/internal/config"
	"pizzabot/internal/infrastructure/logger"
	"pizzabot/internal/server"

	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := app.Build(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("building application", zap.Error(err))
	}
	defer bot.Close()

	srv := server.New(cfg.Server.Port, bot.Router, zapLogger)
	if err := srv.Run(ctx, cfg.Server.ShutdownTimeout); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}
