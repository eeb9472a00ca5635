package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pizzabot/internal/app"
	"pizzabot/internal/commons"
	"pizzabot/internal/config"
	"pizzabot/internal/infrastructure/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

// logLevel honours a level the user set through LOG_LEVEL or a config file.
// Otherwise only warnings are shown so logs do not interleave with the chat.
func logLevel(cfg *config.Config) string {
	if cfg.Log.Level == "" {
		return "warn"
	}
	if os.Getenv("LOG_LEVEL") == "" && os.Getenv("CONFIG_FILE") == "" {
		return "warn"
	}
	return cfg.Log.Level
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(logLevel(cfg), logger.WithConsole())
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

	conversationID := uuid.New().String()
	expired := make(chan string, 1)
	cancelWatch := bot.Sessions.Watch(conversationID, func(farewell string) {
		select {
		case expired <- farewell:
		default:
		}
	})
	defer cancelWatch()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Println("Bot: Hi! Welcome to our pizza shop. How can I help you today?")
	for {
		fmt.Print("You: ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case farewell := <-expired:
			fmt.Println()
			fmt.Println("Bot: " + farewell)
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			turn, err := bot.Sessions.Process(ctx, conversationID, line)
			if err != nil {
				fmt.Println("Bot: Sorry, something went wrong. Please try again later.")
				zapLogger.Error("processing turn", zap.Error(err))
				return
			}
			fmt.Println("Bot: " + turn.Reply)
			if turn.Ended {
				return
			}
		}
	}
}
