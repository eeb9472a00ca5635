package main

import (
	"testing"

	"pizzabot/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CONFIG_FILE", "")

	cfg := config.Default()
	assert.Equal(t, "warn", logLevel(cfg))

	cfg.Log.Level = ""
	assert.Equal(t, "warn", logLevel(cfg))

	t.Setenv("LOG_LEVEL", "debug")
	cfg.Log.Level = "debug"
	assert.Equal(t, "debug", logLevel(cfg))

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CONFIG_FILE", "/etc/pizzabot.yaml")
	cfg.Log.Level = "error"
	assert.Equal(t, "error", logLevel(cfg))
}
