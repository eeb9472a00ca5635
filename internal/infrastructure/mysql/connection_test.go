package mysql

import (
	"testing"

	"pizzabot/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db.local",
		Port:     3307,
		User:     "bot",
		Password: "pw",
		Name:     "orders",
	})

	assert.Contains(t, dsn, "bot:pw@tcp(db.local:3307)/orders")
	assert.Contains(t, dsn, "parseTime=true")
}
