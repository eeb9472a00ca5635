package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Option func(*zap.Config)

// WithConsole switches to the human-readable encoder. The command-line chat
// uses it so log lines stay readable next to the conversation.
func WithConsole() Option {
	return func(cfg *zap.Config) {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
}

// WithOutput replaces the default stderr sink.
func WithOutput(paths ...string) Option {
	return func(cfg *zap.Config) {
		cfg.OutputPaths = paths
	}
}

func New(level string, opts ...Option) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg.Build(zap.Fields(zap.String("service", "pizzabot")))
}
