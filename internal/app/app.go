package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	chatcontroller "pizzabot/internal/chat/controller"
	"pizzabot/internal/config"
	"pizzabot/internal/dialog"
	"pizzabot/internal/infrastructure/gemini"
	"pizzabot/internal/infrastructure/mysql"
	"pizzabot/internal/infrastructure/rabbitmq"
	"pizzabot/internal/infrastructure/redis"
	"pizzabot/internal/menu"
	"pizzabot/internal/order"
	"pizzabot/internal/order/service"
	"pizzabot/internal/server"
	"pizzabot/internal/store"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type backend interface {
	store.Store
	store.CounterStore
}

// App holds the assembled bot. Close releases everything Build opened.
type App struct {
	Sessions *dialog.SessionStore
	Router   http.Handler

	db          *sql.DB
	redisClient *goredis.Client
	publisher   *rabbitmq.Publisher
	logger      *zap.Logger
}

// Build assembles the bot from cfg. Redis, RabbitMQ and Gemini are optional:
// when one is not configured or not reachable the bot runs without it.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	st, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	catalog, menuCtrl, err := menu.NewModule(cfg.Menu.File, cfg.Menu.Enforce, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	var publisher service.TicketPublisher
	if cfg.Broker.URL != "" {
		p, err := rabbitmq.Dial(cfg.Broker.URL, cfg.Broker.Exchange, logger)
		if err != nil {
			logger.Warn("kitchen tickets disabled", zap.Error(err))
		} else {
			a.publisher = p
			publisher = p
			logger.Info("publishing kitchen tickets", zap.String("exchange", cfg.Broker.Exchange))
		}
	}

	orders := order.NewModule(st, st, publisher, cfg.Order, logger)

	var assistant dialog.Assistant = dialog.NoopAssistant{}
	if cfg.Assistant.APIKey != "" {
		g, err := gemini.NewAssistant(ctx, gemini.Config{
			APIKey:  cfg.Assistant.APIKey,
			Model:   cfg.Assistant.Model,
			Timeout: cfg.Assistant.Timeout,
		}, logger)
		if err != nil {
			logger.Warn("language assistant disabled", zap.Error(err))
		} else {
			assistant = g
			logger.Info("language assistant enabled", zap.String("model", cfg.Assistant.Model))
		}
	}

	var mirror dialog.SessionMirror
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Warn("session mirror disabled", zap.Error(err))
		} else {
			a.redisClient = client
			mirror = redis.NewSessionMirror(client)
			logger.Info("mirroring sessions to redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	engine := dialog.NewEngine(catalog, orders.Checkout, orders.Customers, assistant, logger)
	a.Sessions = dialog.NewSessionStore(engine, mirror, dialog.SessionStoreConfig{
		Timeout:     cfg.Session.Timeout,
		MaxSessions: cfg.Session.MaxSessions,
	}, logger)

	chatCtrl := chatcontroller.NewChatController(a.Sessions, logger)
	a.Router = server.NewRouter(chatCtrl, menuCtrl, orders.Controller, a.Sessions, logger)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.db = db

		ms := store.NewMySQLStore(db, a.logger)
		if err := ms.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("preparing schema: %w", err)
		}
		a.logger.Info("using mysql store", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Name))
		return ms, nil
	default:
		a.logger.Info("using file store", zap.String("dir", cfg.Store.Dir))
		return store.NewFileStore(store.FileStoreConfig{
			Dir:           cfg.Store.Dir,
			OrdersFile:    cfg.Store.OrdersFile,
			CustomersFile: cfg.Store.CustomersFile,
			CounterFile:   cfg.Store.CounterFile,
		}, a.logger), nil
	}
}

// Close ends every live conversation and releases external connections.
func (a *App) Close() {
	if a.Sessions != nil {
		a.Sessions.Shutdown()
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("closing redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("closing database", zap.Error(err))
		}
	}
}
