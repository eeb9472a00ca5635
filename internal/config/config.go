package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverFile  = "file"
	StoreDriverMySQL = "mysql"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Session   SessionConfig   `yaml:"session"`
	Menu      MenuConfig      `yaml:"menu"`
	Assistant AssistantConfig `yaml:"assistant"`
	Redis     RedisConfig     `yaml:"redis"`
	Broker    BrokerConfig    `yaml:"broker"`
	Order     OrderConfig     `yaml:"order"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig selects where orders, customers and the id counter live.
type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Dir           string `yaml:"dir"`
	OrdersFile    string `yaml:"orders_file"`
	CustomersFile string `yaml:"customers_file"`
	CounterFile   string `yaml:"counter_file"`
}

type SessionConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxSessions int           `yaml:"max_sessions"`
}

type MenuConfig struct {
	File    string `yaml:"file"`
	Enforce bool   `yaml:"enforce"`
}

// AssistantConfig enables the Gemini-backed sentiment, end-intent and upsell
// checks. An empty API key disables them.
type AssistantConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type BrokerConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type OrderConfig struct {
	MaxRetryAttempts int `yaml:"max_retry_attempts"`
}

// Default returns the configuration used when neither the environment nor
// a config file says otherwise.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "pizzabot",
			Password:        "secret",
			Name:            "pizzabot",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Driver:        StoreDriverFile,
			Dir:           ".",
			OrdersFile:    "orders.json",
			CustomersFile: "customers.json",
			CounterFile:   "last_order_id.txt",
		},
		Session: SessionConfig{
			Timeout:     5 * time.Minute,
			MaxSessions: 1000,
		},
		Menu: MenuConfig{
			Enforce: true,
		},
		Assistant: AssistantConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 5 * time.Second,
		},
		Broker: BrokerConfig{
			Exchange: "orders_topic",
		},
		Order: OrderConfig{
			MaxRetryAttempts: 3,
		},
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	def := Default()
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", def.Server.Port)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", def.Server.ShutdownTimeout.String())
	v.SetDefault("DB_HOST", def.Database.Host)
	v.SetDefault("DB_PORT", def.Database.Port)
	v.SetDefault("DB_USER", def.Database.User)
	v.SetDefault("DB_PASSWORD", def.Database.Password)
	v.SetDefault("DB_NAME", def.Database.Name)
	v.SetDefault("DB_MAX_OPEN_CONNS", def.Database.MaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", def.Database.MaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME", def.Database.ConnMaxLifetime.String())
	v.SetDefault("LOG_LEVEL", def.Log.Level)
	v.SetDefault("STORE_DRIVER", def.Store.Driver)
	v.SetDefault("STORE_DIR", def.Store.Dir)
	v.SetDefault("STORE_ORDERS_FILE", def.Store.OrdersFile)
	v.SetDefault("STORE_CUSTOMERS_FILE", def.Store.CustomersFile)
	v.SetDefault("STORE_COUNTER_FILE", def.Store.CounterFile)
	v.SetDefault("SESSION_TIMEOUT", def.Session.Timeout.String())
	v.SetDefault("SESSION_MAX", def.Session.MaxSessions)
	v.SetDefault("MENU_FILE", "")
	v.SetDefault("MENU_ENFORCE", def.Menu.Enforce)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", def.Assistant.Model)
	v.SetDefault("ASSISTANT_TIMEOUT", def.Assistant.Timeout.String())
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", def.Broker.Exchange)
	v.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", def.Order.MaxRetryAttempts)

	durations := map[string]*time.Duration{}
	var (
		shutdownTimeout  time.Duration
		connMaxLifetime  time.Duration
		sessionTimeout   time.Duration
		assistantTimeout time.Duration
	)
	durations["SERVER_SHUTDOWN_TIMEOUT"] = &shutdownTimeout
	durations["DB_CONN_MAX_LIFETIME"] = &connMaxLifetime
	durations["SESSION_TIMEOUT"] = &sessionTimeout
	durations["ASSISTANT_TIMEOUT"] = &assistantTimeout
	for key, dst := range durations {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Driver:        v.GetString("STORE_DRIVER"),
			Dir:           v.GetString("STORE_DIR"),
			OrdersFile:    v.GetString("STORE_ORDERS_FILE"),
			CustomersFile: v.GetString("STORE_CUSTOMERS_FILE"),
			CounterFile:   v.GetString("STORE_COUNTER_FILE"),
		},
		Session: SessionConfig{
			Timeout:     sessionTimeout,
			MaxSessions: v.GetInt("SESSION_MAX"),
		},
		Menu: MenuConfig{
			File:    v.GetString("MENU_FILE"),
			Enforce: v.GetBool("MENU_ENFORCE"),
		},
		Assistant: AssistantConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			Model:   v.GetString("GEMINI_MODEL"),
			Timeout: assistantTimeout,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		Broker: BrokerConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Order: OrderConfig{
			MaxRetryAttempts: v.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverFile, StoreDriverMySQL:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Session.Timeout <= 0 {
		return fmt.Errorf("session timeout must be positive, got %s", c.Session.Timeout)
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", c.Session.MaxSessions)
	}
	if c.Order.MaxRetryAttempts < 1 {
		return fmt.Errorf("order max retry attempts must be at least 1, got %d", c.Order.MaxRetryAttempts)
	}
	return nil
}
