package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL test database. Tests are skipped when it is not
// reachable. The DSN defaults to root on localhost:3306/pizzabot_test and can
// be overridden with TEST_MYSQL_DSN.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/pizzabot_test"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the store tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"store_collections", "store_counters"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
