package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "last_order_id.txt", cfg.Store.CounterFile)
	assert.Equal(t, 5*time.Minute, cfg.Session.Timeout)
	assert.True(t, cfg.Menu.Enforce)
	assert.Equal(t, "orders_topic", cfg.Broker.Exchange)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
	assert.Empty(t, cfg.Assistant.APIKey)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SESSION_TIMEOUT", "90s")
	t.Setenv("MENU_ENFORCE", "false")
	t.Setenv("STORE_DIR", "/var/lib/pizzabot")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Session.Timeout)
	assert.False(t, cfg.Menu.Enforce)
	assert.Equal(t, "/var/lib/pizzabot", cfg.Store.Dir)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_TIMEOUT", "forever")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Session.MaxSessions = 0
	assert.Error(t, cfg.Validate())
}
